// Package report derives read-only reporting views from the record set.
// Nothing here mutates stored state; every query recomputes from scratch so
// results are reproducible at any time.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"duka/internal/core"
	"duka/internal/store"
)

type Engine struct {
	sales    store.SaleStore
	expenses store.ExpenseStore
	payments store.PaymentStore
	users    store.UserStore
}

func New(sales store.SaleStore, expenses store.ExpenseStore, payments store.PaymentStore, users store.UserStore) *Engine {
	return &Engine{sales: sales, expenses: expenses, payments: payments, users: users}
}

func inMonth(t time.Time, year int, month time.Month) bool {
	return t.Year() == year && t.Month() == month
}

// MonthlySummary folds sales, expenses and debtor payments for one calendar
// month into a profit/loss view.
//
// Salary cost sums the salaries of the CURRENT sales staff roster regardless
// of the queried month: salaries are a flat recurring cost, not tracked per
// month, so changing a salary today changes the computed cost of past months
// on re-query. Debtor payments are informational only; they recover
// previously extended credit and never count as revenue.
func (e *Engine) MonthlySummary(ctx context.Context, year int, month time.Month) (core.MonthlySummary, error) {
	summary := core.MonthlySummary{Month: month, Year: year}

	sales, err := e.sales.ReadSales(ctx)
	if err != nil {
		return summary, fmt.Errorf("read sales: %w", err)
	}
	for _, s := range sales {
		if inMonth(s.Date, year, month) {
			summary.TotalSales.Cents += s.Total.Cents
		}
	}

	expenses, err := e.expenses.ReadExpenses(ctx)
	if err != nil {
		return summary, fmt.Errorf("read expenses: %w", err)
	}
	for _, exp := range expenses {
		if inMonth(exp.Date, year, month) {
			summary.TotalExpenses.Cents += exp.Amount.Cents
		}
	}

	payments, err := e.payments.ReadPayments(ctx)
	if err != nil {
		return summary, fmt.Errorf("read payments: %w", err)
	}
	for _, p := range payments {
		if inMonth(p.Date, year, month) {
			summary.TotalDebtorPayments.Cents += p.AmountPaid.Cents
		}
	}

	users, err := e.users.ReadUsers(ctx)
	if err != nil {
		return summary, fmt.Errorf("read users: %w", err)
	}
	for _, u := range users {
		if u.Role == core.RoleSaler {
			summary.SalaryCost.Cents += u.SalaryAmount.Cents
		}
	}

	summary.ProfitOrLoss.Cents = summary.TotalSales.Cents - (summary.TotalExpenses.Cents + summary.SalaryCost.Cents)
	return summary, nil
}

// DailyBreakdown groups the month's sales by day-of-month, ascending.
// Days with no sales are omitted.
func (e *Engine) DailyBreakdown(ctx context.Context, year int, month time.Month) ([]core.DailySales, error) {
	sales, err := e.sales.ReadSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("read sales: %w", err)
	}

	daily := make(map[int]int64)
	for _, s := range sales {
		if inMonth(s.Date, year, month) {
			daily[s.Date.Day()] += s.Total.Cents
		}
	}

	out := make([]core.DailySales, 0, len(daily))
	for day, cents := range daily {
		out = append(out, core.DailySales{Day: day, Total: core.Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}
