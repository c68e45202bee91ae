package core

import (
	"testing"
	"time"
)

func TestDebtorStatusOf(t *testing.T) {
	cases := []struct {
		balance   int64
		totalDebt int64
		want      DebtorStatus
	}{
		{10000, 10000, StatusUnpaid},
		{6000, 10000, StatusPartiallyPaid},
		{0, 10000, StatusPaid},
		{1, 10000, StatusPartiallyPaid},
		// zero-debt debtor is UNPAID: no payment event ever occurred
		{0, 0, StatusUnpaid},
	}
	for i, tc := range cases {
		got := DebtorStatusOf(Money{Cents: tc.balance}, Money{Cents: tc.totalDebt})
		if got != tc.want {
			t.Fatalf("case %d: DebtorStatusOf(%d, %d) = %s, want %s", i, tc.balance, tc.totalDebt, got, tc.want)
		}
	}
}

func TestSaleTotal(t *testing.T) {
	got := SaleTotal(3, Money{Cents: 500000}, Money{Cents: 100000})
	if got.Cents != 1400000 {
		t.Fatalf("SaleTotal = %d, want 1400000", got.Cents)
	}
}

func TestSaleValidate(t *testing.T) {
	good := Sale{
		Quantity:      2,
		UnitPrice:     Money{Cents: 250000},
		Total:         Money{Cents: 500000},
		ProductName:   "Sugar 1kg",
		PaymentMethod: PaymentCash,
		Date:          time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Sale{
		{Quantity: 0, UnitPrice: Money{Cents: 1}, ProductName: "a", PaymentMethod: PaymentCash, Date: good.Date},
		{Quantity: 1, UnitPrice: Money{Cents: -1}, ProductName: "a", PaymentMethod: PaymentCash, Date: good.Date},
		{Quantity: 1, UnitPrice: Money{Cents: 1}, ProductName: "", PaymentMethod: PaymentCash, Date: good.Date},
		{Quantity: 1, UnitPrice: Money{Cents: 1}, ProductName: "a", PaymentMethod: "Cheque", Date: good.Date},
		{Quantity: 1, UnitPrice: Money{Cents: 1}, ProductName: "a", PaymentMethod: PaymentCash},
	}
	for i, s := range bads {
		if err := s.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Description: "Transport",
		Category:    "Logistics",
		Amount:      Money{Cents: 200000},
		Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Expense{Description: "x", Amount: Money{Cents: -1}, Date: good.Date}).Validate(); err == nil {
		t.Fatal("expected error for negative amount")
	}
	if err := (Expense{Description: "", Amount: Money{Cents: 1}, Date: good.Date}).Validate(); err == nil {
		t.Fatal("expected error for empty description")
	}
}

func TestDebtorValidate(t *testing.T) {
	good := Debtor{Name: "Asha", TotalDebt: Money{Cents: 1000}, Balance: Money{Cents: 400}}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bads := []Debtor{
		{Name: "", TotalDebt: Money{Cents: 100}, Balance: Money{Cents: 100}},
		{Name: "a", TotalDebt: Money{Cents: -1}, Balance: Money{Cents: 0}},
		{Name: "a", TotalDebt: Money{Cents: 100}, Balance: Money{Cents: -1}},
		{Name: "a", TotalDebt: Money{Cents: 100}, Balance: Money{Cents: 101}},
	}
	for i, d := range bads {
		if err := d.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDebtorPaymentValidate(t *testing.T) {
	good := DebtorPayment{DebtorID: "d1", AmountPaid: Money{Cents: 1}, RemainingBalance: Money{Cents: 0}}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (DebtorPayment{DebtorID: "d1", AmountPaid: Money{Cents: 0}}).Validate(); err == nil {
		t.Fatal("expected error for non-positive amount")
	}
	if err := (DebtorPayment{AmountPaid: Money{Cents: 1}}).Validate(); err == nil {
		t.Fatal("expected error for missing debtor reference")
	}
}
