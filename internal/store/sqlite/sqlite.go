// Package sqlite implements the record store on a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"duka/internal/core"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	if err := seedUsers(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed users: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// seedUsers inserts the default staff roster on first start: one
// administrator and one sales staff member with no salary set yet.
func seedUsers(db *sql.DB) error {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return nil
	}
	_, err := db.Exec(
		`INSERT INTO users (id, role, name, salary_amount_cents) VALUES
		 ('admin_1', ?, 'Administrator', 0),
		 ('saler_1', ?, 'Sales Staff', 0)`,
		string(core.RoleAdmin), string(core.RoleSaler))
	if err != nil {
		return fmt.Errorf("insert seed users: %w", err)
	}
	slog.Info("Seeded default users", "count", 2)
	return nil
}

func (r *Repository) ReadSales(ctx context.Context) ([]core.Sale, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, code, product_name, quantity, price_cents, discount_cents,
		        total_cents, payment_method, date
		   FROM sales ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	var sales []core.Sale
	for rows.Next() {
		var s core.Sale
		var method, date string
		if err := rows.Scan(&s.ID, &s.Code, &s.ProductName, &s.Quantity,
			&s.UnitPrice.Cents, &s.Discount.Cents, &s.Total.Cents, &method, &date); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		s.PaymentMethod = core.PaymentMethod(method)
		s.Date, err = parseDate(date)
		if err != nil {
			return nil, fmt.Errorf("sale %s: %w", s.ID, err)
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *Repository) AppendSale(ctx context.Context, s core.Sale) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sales (id, code, product_name, quantity, price_cents,
		                    discount_cents, total_cents, payment_method, date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Code, s.ProductName, s.Quantity, s.UnitPrice.Cents,
		s.Discount.Cents, s.Total.Cents, string(s.PaymentMethod), formatDate(s.Date))
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (r *Repository) ReadExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, description, category, amount_cents, date
		   FROM expenses ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var e core.Expense
		var date string
		if err := rows.Scan(&e.ID, &e.Description, &e.Category, &e.Amount.Cents, &date); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Date, err = parseDate(date)
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", e.ID, err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *Repository) AppendExpense(ctx context.Context, e core.Expense) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, description, category, amount_cents, date)
		 VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Description, e.Category, e.Amount.Cents, formatDate(e.Date))
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (r *Repository) ReadDebtors(ctx context.Context) ([]core.Debtor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, phone, item_borrowed, total_debt_cents, balance_cents, created_at
		   FROM debtors ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query debtors: %w", err)
	}
	defer rows.Close()

	var debtors []core.Debtor
	for rows.Next() {
		var d core.Debtor
		var createdAt string
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.ItemBorrowed,
			&d.TotalDebt.Cents, &d.Balance.Cents, &createdAt); err != nil {
			return nil, fmt.Errorf("scan debtor: %w", err)
		}
		d.CreatedAt, err = parseDate(createdAt)
		if err != nil {
			return nil, fmt.Errorf("debtor %s: %w", d.ID, err)
		}
		// Status is derived, never trusted from storage.
		d.Status = core.DebtorStatusOf(d.Balance, d.TotalDebt)
		debtors = append(debtors, d)
	}
	return debtors, rows.Err()
}

func (r *Repository) AppendDebtor(ctx context.Context, d core.Debtor) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO debtors (id, name, phone, item_borrowed, total_debt_cents,
		                      balance_cents, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.Phone, d.ItemBorrowed, d.TotalDebt.Cents,
		d.Balance.Cents, formatDate(d.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert debtor: %w", err)
	}
	return nil
}

// WriteDebtors replaces the whole debtor collection in one transaction,
// mirroring the engines' read-all/write-all contract.
func (r *Repository) WriteDebtors(ctx context.Context, debtors []core.Debtor) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM debtors`); err != nil {
		return fmt.Errorf("clear debtors: %w", err)
	}
	for _, d := range debtors {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO debtors (id, name, phone, item_borrowed, total_debt_cents,
			                      balance_cents, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			d.ID, d.Name, d.Phone, d.ItemBorrowed, d.TotalDebt.Cents,
			d.Balance.Cents, formatDate(d.CreatedAt)); err != nil {
			return fmt.Errorf("insert debtor %s: %w", d.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit debtors: %w", err)
	}
	return nil
}

func (r *Repository) ReadPayments(ctx context.Context) ([]core.DebtorPayment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, debtor_id, amount_paid_cents, remaining_balance_cents, date
		   FROM debtor_payments ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var payments []core.DebtorPayment
	for rows.Next() {
		var p core.DebtorPayment
		var date string
		if err := rows.Scan(&p.ID, &p.DebtorID, &p.AmountPaid.Cents,
			&p.RemainingBalance.Cents, &date); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p.Date, err = parseDate(date)
		if err != nil {
			return nil, fmt.Errorf("payment %s: %w", p.ID, err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *Repository) AppendPayment(ctx context.Context, p core.DebtorPayment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO debtor_payments (id, debtor_id, amount_paid_cents,
		                              remaining_balance_cents, date)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.DebtorID, p.AmountPaid.Cents, p.RemainingBalance.Cents, formatDate(p.Date))
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *Repository) ReadUsers(ctx context.Context) ([]core.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, role, name, salary_amount_cents FROM users ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		var u core.User
		var role string
		if err := rows.Scan(&u.ID, &role, &u.Name, &u.SalaryAmount.Cents); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Role = core.UserRole(role)
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *Repository) WriteUsers(ctx context.Context, users []core.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	for _, u := range users {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, role, name, salary_amount_cents) VALUES (?, ?, ?, ?)`,
			u.ID, string(u.Role), u.Name, u.SalaryAmount.Cents); err != nil {
			return fmt.Errorf("insert user %s: %w", u.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit users: %w", err)
	}
	return nil
}

// formatDate keeps the record's own UTC offset so month and day boundaries
// stay in the shop's local calendar after a round trip.
func formatDate(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}
