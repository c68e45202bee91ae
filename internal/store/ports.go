// Package store defines the record store ports the engines depend on.
//
// Each entity collection follows the same contract: read the whole
// collection, append one record, or replace the whole collection. Engines
// read a full copy, mutate it in memory and write it back; no partial
// updates exist.
package store

import (
	"context"

	"duka/internal/core"
)

type (
	SaleStore interface {
		ReadSales(ctx context.Context) ([]core.Sale, error)
		AppendSale(ctx context.Context, s core.Sale) error
	}

	ExpenseStore interface {
		ReadExpenses(ctx context.Context) ([]core.Expense, error)
		AppendExpense(ctx context.Context, e core.Expense) error
	}

	DebtorStore interface {
		ReadDebtors(ctx context.Context) ([]core.Debtor, error)
		AppendDebtor(ctx context.Context, d core.Debtor) error
		// WriteDebtors replaces the whole collection. The ledger engine uses
		// it to persist a balance mutation.
		WriteDebtors(ctx context.Context, debtors []core.Debtor) error
	}

	PaymentStore interface {
		ReadPayments(ctx context.Context) ([]core.DebtorPayment, error)
		AppendPayment(ctx context.Context, p core.DebtorPayment) error
	}

	UserStore interface {
		ReadUsers(ctx context.Context) ([]core.User, error)
		WriteUsers(ctx context.Context, users []core.User) error
	}
)

// RecordStore is the full persistence surface consumed by the engines.
type RecordStore interface {
	SaleStore
	ExpenseStore
	DebtorStore
	PaymentStore
	UserStore
}
