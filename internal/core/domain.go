package core

import (
	"errors"
	"strings"
	"time"
)

const (
	PaymentCash        PaymentMethod = "Cash"
	PaymentMobileMoney PaymentMethod = "MobileMoney"
)

const (
	RoleAdmin UserRole = "ADMIN"
	RoleSaler UserRole = "SALER"
)

const (
	StatusUnpaid        DebtorStatus = "UNPAID"
	StatusPartiallyPaid DebtorStatus = "PARTIALLY_PAID"
	StatusPaid          DebtorStatus = "PAID"
)

type (
	PaymentMethod string

	UserRole string

	DebtorStatus string

	Money struct {
		Cents int64
	}

	Sale struct {
		ID            string        `json:"id"`
		Code          string        `json:"code"`
		ProductName   string        `json:"product_name"`
		Quantity      int64         `json:"quantity"`
		UnitPrice     Money         `json:"price"`
		Discount      Money         `json:"discount"`
		Total         Money         `json:"total"`
		PaymentMethod PaymentMethod `json:"payment_method"`
		Date          time.Time     `json:"date"`
	}

	Expense struct {
		ID          string    `json:"id"`
		Description string    `json:"description"`
		Category    string    `json:"category"`
		Amount      Money     `json:"amount"`
		Date        time.Time `json:"date"`
	}

	Debtor struct {
		ID           string       `json:"id"`
		Name         string       `json:"name"`
		Phone        string       `json:"phone"`
		ItemBorrowed string       `json:"item_borrowed"`
		TotalDebt    Money        `json:"total_debt"`
		Balance      Money        `json:"balance"`
		Status       DebtorStatus `json:"status"`
		CreatedAt    time.Time    `json:"created_at"`
	}

	DebtorPayment struct {
		ID               string    `json:"id"`
		DebtorID         string    `json:"debtor_id"`
		AmountPaid       Money     `json:"amount_paid"`
		Date             time.Time `json:"date"`
		RemainingBalance Money     `json:"remaining_balance"`
	}

	User struct {
		ID           string   `json:"id"`
		Role         UserRole `json:"role"`
		Name         string   `json:"name"`
		SalaryAmount Money    `json:"salary_amount"`
	}
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyProduct     = errors.New("empty product name")
	ErrInvalidMethod    = errors.New("invalid payment method")
)

// DebtorStatusOf derives the status from balance and total debt. Status is
// never stored as an independent source of truth: every read and write
// boundary recomputes it through this function. A zero-debt debtor is UNPAID,
// not PAID, because no payment event has occurred.
func DebtorStatusOf(balance, totalDebt Money) DebtorStatus {
	switch {
	case balance.Cents == 0 && totalDebt.Cents > 0:
		return StatusPaid
	case balance.Cents < totalDebt.Cents:
		return StatusPartiallyPaid
	default:
		return StatusUnpaid
	}
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentMobileMoney:
		return true
	}
	return false
}

// SaleTotal computes quantity*price minus discount.
func SaleTotal(quantity int64, unitPrice, discount Money) Money {
	return Money{Cents: quantity*unitPrice.Cents - discount.Cents}
}

func (s Sale) Validate() error {
	if s.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if s.UnitPrice.Cents < 0 || s.Discount.Cents < 0 {
		return ErrInvalidAmount
	}
	if len(strings.TrimSpace(s.ProductName)) == 0 {
		return ErrEmptyProduct
	}
	if !s.PaymentMethod.Valid() {
		return ErrInvalidMethod
	}
	if s.Date.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

func (e Expense) Validate() error {
	if e.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if e.Date.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

func (d Debtor) Validate() error {
	if len(strings.TrimSpace(d.Name)) == 0 {
		return ErrEmptyName
	}
	if d.TotalDebt.Cents < 0 {
		return ErrInvalidAmount
	}
	if d.Balance.Cents < 0 || d.Balance.Cents > d.TotalDebt.Cents {
		return ErrInvalidAmount
	}
	return nil
}

func (p DebtorPayment) Validate() error {
	if p.AmountPaid.Cents <= 0 {
		return ErrInvalidAmount
	}
	if p.RemainingBalance.Cents < 0 {
		return ErrInvalidAmount
	}
	if p.DebtorID == "" {
		return errors.New("missing debtor reference")
	}
	return nil
}
