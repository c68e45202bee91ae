// Package memory holds an in-memory record store. It backs tests and the
// default development backend.
package memory

import (
	"context"
	"sync"

	"duka/internal/core"
)

type Store struct {
	mu       sync.Mutex
	sales    []core.Sale
	expenses []core.Expense
	debtors  []core.Debtor
	payments []core.DebtorPayment
	users    []core.User
}

func New() *Store {
	return &Store{}
}

// NewSeeded returns a store pre-populated with the default staff roster:
// one administrator and one sales staff member with no salary set yet.
func NewSeeded() *Store {
	return &Store{
		users: []core.User{
			{ID: "admin_1", Role: core.RoleAdmin, Name: "Administrator"},
			{ID: "saler_1", Role: core.RoleSaler, Name: "Sales Staff"},
		},
	}
}

func (s *Store) ReadSales(_ context.Context) ([]core.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Sale(nil), s.sales...), nil
}

func (s *Store) AppendSale(_ context.Context, sale core.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = append(s.sales, sale)
	return nil
}

func (s *Store) ReadExpenses(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.expenses...), nil
}

func (s *Store) AppendExpense(_ context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, e)
	return nil
}

func (s *Store) ReadDebtors(_ context.Context) ([]core.Debtor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Debtor(nil), s.debtors...), nil
}

func (s *Store) AppendDebtor(_ context.Context, d core.Debtor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debtors = append(s.debtors, d)
	return nil
}

func (s *Store) WriteDebtors(_ context.Context, debtors []core.Debtor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debtors = append([]core.Debtor(nil), debtors...)
	return nil
}

func (s *Store) ReadPayments(_ context.Context) ([]core.DebtorPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.DebtorPayment(nil), s.payments...), nil
}

func (s *Store) AppendPayment(_ context.Context, p core.DebtorPayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = append(s.payments, p)
	return nil
}

func (s *Store) ReadUsers(_ context.Context) ([]core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.User(nil), s.users...), nil
}

func (s *Store) WriteUsers(_ context.Context, users []core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]core.User(nil), users...)
	return nil
}
