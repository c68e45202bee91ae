// Package services wires the engines to the record store and the sync queue.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"duka/internal/amqp"
	"duka/internal/core"
	"duka/internal/ident"
	"duka/internal/ledger"
	"duka/internal/store"
)

// Publisher pushes record-change notifications for the export worker.
type Publisher interface {
	PublishRecordSync(ctx context.Context, kind, id string) error
}

// Bookkeeper is the write surface of the application: it records sales and
// expenses, drives the debtor ledger, and notifies the sync queue after each
// successful write. Publishing is best-effort; the local store already holds
// the record when a publish fails.
type Bookkeeper struct {
	records   store.RecordStore
	ledger    *ledger.Engine
	publisher Publisher
}

func NewBookkeeper(records store.RecordStore, publisher Publisher) *Bookkeeper {
	return &Bookkeeper{
		records:   records,
		ledger:    ledger.New(records, records),
		publisher: publisher,
	}
}

type SaleParams struct {
	ProductName   string
	Quantity      int64
	UnitPrice     core.Money
	Discount      core.Money
	PaymentMethod core.PaymentMethod
	Date          time.Time // zero means now
}

type ExpenseParams struct {
	Description string
	Category    string
	Amount      core.Money
	Date        time.Time // zero means now
}

// RecordSale stores one immutable sale record. Total is computed here:
// quantity*price minus discount.
func (b *Bookkeeper) RecordSale(ctx context.Context, p SaleParams) (core.Sale, error) {
	date := p.Date
	if date.IsZero() {
		date = time.Now()
	}
	s := core.Sale{
		ID:            ident.New(),
		Code:          ident.NewSaleCode(),
		ProductName:   p.ProductName,
		Quantity:      p.Quantity,
		UnitPrice:     p.UnitPrice,
		Discount:      p.Discount,
		Total:         core.SaleTotal(p.Quantity, p.UnitPrice, p.Discount),
		PaymentMethod: p.PaymentMethod,
		Date:          date,
	}
	if err := s.Validate(); err != nil {
		return core.Sale{}, fmt.Errorf("validate sale: %w", err)
	}
	if err := b.records.AppendSale(ctx, s); err != nil {
		return core.Sale{}, fmt.Errorf("append sale: %w", err)
	}

	slog.InfoContext(ctx, "Sale recorded",
		"sale_id", s.ID,
		"code", s.Code,
		"product", s.ProductName,
		"total_cents", s.Total.Cents,
		"payment_method", string(s.PaymentMethod))

	b.publishSync(ctx, amqp.KindSale, s.ID)
	return s, nil
}

// RecordExpense stores one immutable expense record.
func (b *Bookkeeper) RecordExpense(ctx context.Context, p ExpenseParams) (core.Expense, error) {
	date := p.Date
	if date.IsZero() {
		date = time.Now()
	}
	e := core.Expense{
		ID:          ident.New(),
		Description: p.Description,
		Category:    p.Category,
		Amount:      p.Amount,
		Date:        date,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}
	if err := b.records.AppendExpense(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("append expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense recorded",
		"expense_id", e.ID,
		"description", e.Description,
		"amount_cents", e.Amount.Cents)

	b.publishSync(ctx, amqp.KindExpense, e.ID)
	return e, nil
}

// CreateDebtor extends credit to a customer.
func (b *Bookkeeper) CreateDebtor(ctx context.Context, name, phone, itemBorrowed string, totalDebt core.Money) (core.Debtor, error) {
	d, err := b.ledger.CreateDebtor(ctx, name, phone, itemBorrowed, totalDebt)
	if err != nil {
		return core.Debtor{}, err
	}
	b.publishSync(ctx, amqp.KindDebtor, d.ID)
	return d, nil
}

// ApplyPayment applies a partial or full payment against a debtor's balance.
func (b *Bookkeeper) ApplyPayment(ctx context.Context, debtorID string, amount core.Money) (core.Debtor, core.DebtorPayment, error) {
	d, p, err := b.ledger.ApplyPayment(ctx, debtorID, amount)
	if err != nil {
		return core.Debtor{}, core.DebtorPayment{}, err
	}
	b.publishSync(ctx, amqp.KindPayment, p.ID)
	return d, p, nil
}

// UpdateUserSalary sets the flat monthly salary for one staff member.
// Note that summaries compute salary cost from the live roster, so this
// retroactively changes past months on re-query.
func (b *Bookkeeper) UpdateUserSalary(ctx context.Context, userID string, salary core.Money) (core.User, error) {
	if salary.Cents < 0 {
		return core.User{}, fmt.Errorf("salary %s: %w", salary, core.ErrInvalidAmount)
	}
	users, err := b.records.ReadUsers(ctx)
	if err != nil {
		return core.User{}, fmt.Errorf("read users: %w", err)
	}
	idx := -1
	for i := range users {
		if users[i].ID == userID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return core.User{}, fmt.Errorf("user %s: %w", userID, core.ErrNotFound)
	}
	users[idx].SalaryAmount = salary
	if err := b.records.WriteUsers(ctx, users); err != nil {
		return core.User{}, fmt.Errorf("write users: %w", err)
	}

	slog.InfoContext(ctx, "Salary updated",
		"user_id", userID,
		"salary_cents", salary.Cents)

	b.publishSync(ctx, amqp.KindSalary, userID)
	return users[idx], nil
}

func (b *Bookkeeper) Sales(ctx context.Context) ([]core.Sale, error) {
	return b.records.ReadSales(ctx)
}

func (b *Bookkeeper) Expenses(ctx context.Context) ([]core.Expense, error) {
	return b.records.ReadExpenses(ctx)
}

func (b *Bookkeeper) Debtors(ctx context.Context) ([]core.Debtor, error) {
	return b.ledger.Debtors(ctx)
}

func (b *Bookkeeper) Payments(ctx context.Context, debtorID string) ([]core.DebtorPayment, error) {
	return b.ledger.Payments(ctx, debtorID)
}

func (b *Bookkeeper) Users(ctx context.Context) ([]core.User, error) {
	return b.records.ReadUsers(ctx)
}

func (b *Bookkeeper) publishSync(ctx context.Context, kind, id string) {
	if b.publisher == nil {
		return
	}
	if err := b.publisher.PublishRecordSync(ctx, kind, id); err != nil {
		// Don't fail the request - the record is saved locally
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"kind", kind, "id", id, "error", err)
	}
}
