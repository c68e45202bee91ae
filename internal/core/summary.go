package core

import "time"

// MonthlySummary is the derived profit/loss view for one calendar month.
// It is never persisted: it must be recomputable from the record set at any
// time, so every query rebuilds it from sales, expenses, payments and the
// current salary roster.
type MonthlySummary struct {
	Month               time.Month `json:"month"`
	Year                int        `json:"year"`
	TotalSales          Money      `json:"total_sales"`
	TotalExpenses       Money      `json:"total_expenses"`
	TotalDebtorPayments Money      `json:"total_debtor_payments"`
	SalaryCost          Money      `json:"salary_cost"`
	ProfitOrLoss        Money      `json:"profit_or_loss"`
}

// DailySales is one day's sales total within a month. Days with no sales are
// omitted from breakdowns, not zero-filled.
type DailySales struct {
	Day   int   `json:"day"`
	Total Money `json:"total"`
}
