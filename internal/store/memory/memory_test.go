package memory

import (
	"context"
	"testing"
	"time"

	"duka/internal/core"
)

func TestReadReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.AppendDebtor(ctx, core.Debtor{ID: "d1", Name: "Asha", TotalDebt: core.Money{Cents: 100}, Balance: core.Money{Cents: 100}}); err != nil {
		t.Fatalf("append: %v", err)
	}

	first, err := s.ReadDebtors(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	first[0].Balance = core.Money{Cents: 0}

	again, err := s.ReadDebtors(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if again[0].Balance.Cents != 100 {
		t.Fatal("mutating a read slice must not affect the store")
	}
}

func TestWriteDebtorsReplacesCollection(t *testing.T) {
	ctx := context.Background()
	s := New()
	_ = s.AppendDebtor(ctx, core.Debtor{ID: "d1"})
	_ = s.AppendDebtor(ctx, core.Debtor{ID: "d2"})

	if err := s.WriteDebtors(ctx, []core.Debtor{{ID: "d2", Name: "Neema"}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, _ := s.ReadDebtors(ctx)
	if len(got) != 1 || got[0].ID != "d2" || got[0].Name != "Neema" {
		t.Fatalf("unexpected collection after replace: %+v", got)
	}
}

func TestNewSeededUsers(t *testing.T) {
	users, err := NewSeeded().ReadUsers(context.Background())
	if err != nil {
		t.Fatalf("read users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 seed users, got %d", len(users))
	}
	if users[0].Role != core.RoleAdmin || users[1].Role != core.RoleSaler {
		t.Fatalf("unexpected seed roles: %+v", users)
	}
	for _, u := range users {
		if u.SalaryAmount.Cents != 0 {
			t.Fatalf("seed user %s should start with zero salary", u.ID)
		}
	}
}

func TestAppendOrderPreserved(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_ = s.AppendPayment(ctx, core.DebtorPayment{ID: string(rune('a' + i)), DebtorID: "d1", AmountPaid: core.Money{Cents: 1}, Date: base.AddDate(0, 0, i)})
	}
	got, _ := s.ReadPayments(ctx)
	if len(got) != 3 || got[0].ID != "a" || got[2].ID != "c" {
		t.Fatalf("payments out of order: %+v", got)
	}
}
