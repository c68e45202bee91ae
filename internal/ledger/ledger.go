// Package ledger owns the debtor balance state machine: extending credit,
// applying partial payments and keeping the append-only payment trail.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"duka/internal/core"
	"duka/internal/ident"
	"duka/internal/phone"
	"duka/internal/store"
)

// Engine applies payments through a read-modify-write on the debtor
// collection. The store has no transactional isolation, so a mutex
// serializes every debtor mutation, creations included; without it a lost
// update could break the non-negative-balance invariant or drop a debtor
// appended mid-payment.
type Engine struct {
	mu       sync.Mutex
	debtors  store.DebtorStore
	payments store.PaymentStore
}

func New(debtors store.DebtorStore, payments store.PaymentStore) *Engine {
	return &Engine{debtors: debtors, payments: payments}
}

// CreateDebtor records newly extended credit. The balance starts equal to
// the total debt and the status is UNPAID even for a zero debt: status only
// moves once a payment event occurs.
func (e *Engine) CreateDebtor(ctx context.Context, name, phoneNumber, itemBorrowed string, totalDebt core.Money) (core.Debtor, error) {
	// The append must not interleave with ApplyPayment's whole-collection
	// write-back, or the new debtor is overwritten by a stale snapshot.
	e.mu.Lock()
	defer e.mu.Unlock()

	if totalDebt.Cents < 0 {
		return core.Debtor{}, fmt.Errorf("total debt %s: %w", totalDebt, core.ErrInvalidAmount)
	}
	if phone.Valid(phoneNumber) {
		phoneNumber = phone.Normalize(phoneNumber)
	}
	d := core.Debtor{
		ID:           ident.New(),
		Name:         name,
		Phone:        phoneNumber,
		ItemBorrowed: itemBorrowed,
		TotalDebt:    totalDebt,
		Balance:      totalDebt,
		Status:       core.DebtorStatusOf(totalDebt, totalDebt),
		CreatedAt:    time.Now(),
	}
	if err := d.Validate(); err != nil {
		return core.Debtor{}, fmt.Errorf("validate debtor: %w", err)
	}
	if err := e.debtors.AppendDebtor(ctx, d); err != nil {
		return core.Debtor{}, fmt.Errorf("append debtor: %w", err)
	}

	slog.InfoContext(ctx, "Debtor created",
		"debtor_id", d.ID,
		"name", d.Name,
		"total_debt_cents", d.TotalDebt.Cents)

	return d, nil
}

// ApplyPayment reduces a debtor's balance and appends one DebtorPayment
// whose RemainingBalance snapshots the balance after the update.
//
// Amount must be positive and must not exceed the current balance; the
// resulting balance is still clamped at zero so a negative balance can never
// be persisted. On any validation failure the debtor and the payment history
// are left untouched.
func (e *Engine) ApplyPayment(ctx context.Context, debtorID string, amount core.Money) (core.Debtor, core.DebtorPayment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if amount.Cents <= 0 {
		return core.Debtor{}, core.DebtorPayment{}, fmt.Errorf("payment of %s: %w", amount, core.ErrInvalidAmount)
	}

	debtors, err := e.debtors.ReadDebtors(ctx)
	if err != nil {
		return core.Debtor{}, core.DebtorPayment{}, fmt.Errorf("read debtors: %w", err)
	}

	idx := -1
	for i := range debtors {
		if debtors[i].ID == debtorID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return core.Debtor{}, core.DebtorPayment{}, fmt.Errorf("debtor %s: %w", debtorID, core.ErrNotFound)
	}

	d := debtors[idx]
	if amount.Cents > d.Balance.Cents {
		return core.Debtor{}, core.DebtorPayment{}, fmt.Errorf("payment %s exceeds balance %s: %w", amount, d.Balance, core.ErrInvalidAmount)
	}

	newBalance := d.Balance.Cents - amount.Cents
	if newBalance < 0 {
		// Second line of defense: the check above already rejects
		// overpayment, but a negative balance must never be written.
		newBalance = 0
	}
	d.Balance = core.Money{Cents: newBalance}
	d.Status = core.DebtorStatusOf(d.Balance, d.TotalDebt)
	debtors[idx] = d

	if err := e.debtors.WriteDebtors(ctx, debtors); err != nil {
		return core.Debtor{}, core.DebtorPayment{}, fmt.Errorf("write debtors: %w", err)
	}

	p := core.DebtorPayment{
		ID:               ident.New(),
		DebtorID:         d.ID,
		AmountPaid:       amount,
		Date:             time.Now(),
		RemainingBalance: d.Balance,
	}
	if err := e.payments.AppendPayment(ctx, p); err != nil {
		return core.Debtor{}, core.DebtorPayment{}, fmt.Errorf("append payment: %w", err)
	}

	slog.InfoContext(ctx, "Payment applied",
		"debtor_id", d.ID,
		"payment_id", p.ID,
		"amount_cents", amount.Cents,
		"remaining_balance_cents", d.Balance.Cents,
		"status", string(d.Status))

	return d, p, nil
}

// Debtors returns all debtors with status recomputed from balance and total
// debt, never trusted from storage.
func (e *Engine) Debtors(ctx context.Context) ([]core.Debtor, error) {
	debtors, err := e.debtors.ReadDebtors(ctx)
	if err != nil {
		return nil, fmt.Errorf("read debtors: %w", err)
	}
	for i := range debtors {
		debtors[i].Status = core.DebtorStatusOf(debtors[i].Balance, debtors[i].TotalDebt)
	}
	return debtors, nil
}

// Payments returns the payment trail for one debtor, in application order.
func (e *Engine) Payments(ctx context.Context, debtorID string) ([]core.DebtorPayment, error) {
	all, err := e.payments.ReadPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("read payments: %w", err)
	}
	var out []core.DebtorPayment
	for _, p := range all {
		if p.DebtorID == debtorID {
			out = append(out, p)
		}
	}
	return out, nil
}
