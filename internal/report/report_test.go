package report

import (
	"context"
	"reflect"
	"testing"
	"time"

	"duka/internal/core"
	"duka/internal/store/memory"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// Scenario: sales of 5000 and 3000 on 2024-03-05, expense of 2000 on
// 2024-03-10, one salaried staff member at 1000/month.
func seedMarch(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.New()

	_ = s.AppendSale(ctx, core.Sale{ID: "s1", ProductName: "Rice", Quantity: 1,
		UnitPrice: core.Money{Cents: 500000}, Total: core.Money{Cents: 500000},
		PaymentMethod: core.PaymentCash, Date: day(2024, time.March, 5)})
	_ = s.AppendSale(ctx, core.Sale{ID: "s2", ProductName: "Oil", Quantity: 1,
		UnitPrice: core.Money{Cents: 300000}, Total: core.Money{Cents: 300000},
		PaymentMethod: core.PaymentMobileMoney, Date: day(2024, time.March, 5)})
	_ = s.AppendExpense(ctx, core.Expense{ID: "e1", Description: "Transport",
		Amount: core.Money{Cents: 200000}, Date: day(2024, time.March, 10)})
	_ = s.WriteUsers(ctx, []core.User{
		{ID: "admin_1", Role: core.RoleAdmin, Name: "Administrator"},
		{ID: "saler_1", Role: core.RoleSaler, Name: "Sales Staff", SalaryAmount: core.Money{Cents: 100000}},
	})
	return s
}

func TestMonthlySummary(t *testing.T) {
	s := seedMarch(t)
	e := New(s, s, s, s)

	got, err := e.MonthlySummary(context.Background(), 2024, time.March)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if got.TotalSales.Cents != 800000 {
		t.Fatalf("total sales = %d, want 800000", got.TotalSales.Cents)
	}
	if got.TotalExpenses.Cents != 200000 {
		t.Fatalf("total expenses = %d, want 200000", got.TotalExpenses.Cents)
	}
	if got.SalaryCost.Cents != 100000 {
		t.Fatalf("salary cost = %d, want 100000", got.SalaryCost.Cents)
	}
	if got.ProfitOrLoss.Cents != 500000 {
		t.Fatalf("profit = %d, want 500000", got.ProfitOrLoss.Cents)
	}
	if got.TotalDebtorPayments.Cents != 0 {
		t.Fatalf("debtor payments = %d, want 0", got.TotalDebtorPayments.Cents)
	}
}

func TestMonthlySummaryExcludesOtherMonths(t *testing.T) {
	ctx := context.Background()
	s := seedMarch(t)
	_ = s.AppendSale(ctx, core.Sale{ID: "s3", ProductName: "Soap", Quantity: 1,
		UnitPrice: core.Money{Cents: 900000}, Total: core.Money{Cents: 900000},
		PaymentMethod: core.PaymentCash, Date: day(2024, time.April, 1)})
	e := New(s, s, s, s)

	got, err := e.MonthlySummary(ctx, 2024, time.March)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if got.TotalSales.Cents != 800000 {
		t.Fatalf("april sale leaked into march: %d", got.TotalSales.Cents)
	}
}

func TestMonthlySummaryDebtorPaymentsInformational(t *testing.T) {
	ctx := context.Background()
	s := seedMarch(t)
	_ = s.AppendPayment(ctx, core.DebtorPayment{ID: "p1", DebtorID: "d1",
		AmountPaid: core.Money{Cents: 150000}, RemainingBalance: core.Money{Cents: 0},
		Date: day(2024, time.March, 7)})
	e := New(s, s, s, s)

	got, err := e.MonthlySummary(ctx, 2024, time.March)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if got.TotalDebtorPayments.Cents != 150000 {
		t.Fatalf("debtor payments = %d, want 150000", got.TotalDebtorPayments.Cents)
	}
	// recoveries never move profit or loss
	if got.ProfitOrLoss.Cents != 500000 {
		t.Fatalf("profit = %d, want 500000", got.ProfitOrLoss.Cents)
	}
}

func TestMonthlySummaryEmptyMonth(t *testing.T) {
	s := memory.New()
	e := New(s, s, s, s)

	got, err := e.MonthlySummary(context.Background(), 2030, time.January)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	want := core.MonthlySummary{Month: time.January, Year: 2030}
	if got != want {
		t.Fatalf("empty month summary = %+v, want all zeros", got)
	}
}

func TestMonthlySummaryIdempotent(t *testing.T) {
	s := seedMarch(t)
	e := New(s, s, s, s)
	ctx := context.Background()

	first, err := e.MonthlySummary(ctx, 2024, time.March)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	second, err := e.MonthlySummary(ctx, 2024, time.March)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if first != second {
		t.Fatalf("repeated query differs: %+v vs %+v", first, second)
	}
}

func TestDailyBreakdown(t *testing.T) {
	ctx := context.Background()
	s := seedMarch(t)
	_ = s.AppendSale(ctx, core.Sale{ID: "s4", ProductName: "Flour", Quantity: 1,
		UnitPrice: core.Money{Cents: 120000}, Total: core.Money{Cents: 120000},
		PaymentMethod: core.PaymentCash, Date: day(2024, time.March, 2)})
	e := New(s, s, s, s)

	got, err := e.DailyBreakdown(ctx, 2024, time.March)
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	want := []core.DailySales{
		{Day: 2, Total: core.Money{Cents: 120000}},
		{Day: 5, Total: core.Money{Cents: 800000}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("breakdown = %+v, want %+v", got, want)
	}
}

func TestDailyBreakdownEmptyMonth(t *testing.T) {
	s := memory.New()
	e := New(s, s, s, s)

	got, err := e.DailyBreakdown(context.Background(), 2024, time.March)
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty breakdown, got %+v", got)
	}
}
