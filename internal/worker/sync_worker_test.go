package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"duka/internal/amqp"
	"duka/internal/core"
	"duka/internal/ident"
	"duka/internal/report"
	"duka/internal/store/memory"
)

type fakeExporter struct {
	sales     []core.Sale
	expenses  []core.Expense
	debtors   []core.Debtor
	payments  []core.DebtorPayment
	summaries []core.MonthlySummary
}

func (f *fakeExporter) AppendSale(_ context.Context, s core.Sale) error {
	f.sales = append(f.sales, s)
	return nil
}

func (f *fakeExporter) AppendExpense(_ context.Context, e core.Expense) error {
	f.expenses = append(f.expenses, e)
	return nil
}

func (f *fakeExporter) AppendDebtor(_ context.Context, d core.Debtor) error {
	f.debtors = append(f.debtors, d)
	return nil
}

func (f *fakeExporter) AppendPayment(_ context.Context, p core.DebtorPayment) error {
	f.payments = append(f.payments, p)
	return nil
}

func (f *fakeExporter) AppendMonthlySummary(_ context.Context, s core.MonthlySummary) error {
	f.summaries = append(f.summaries, s)
	return nil
}

func newTestWorker(t *testing.T) (*SyncWorker, *memory.Store, *fakeExporter) {
	t.Helper()
	st := memory.NewSeeded()
	exp := &fakeExporter{}
	w := NewSyncWorker(st, report.New(st, st, st, st), exp)
	return w, st, exp
}

func TestHandleSyncMessageSale(t *testing.T) {
	w, st, exp := newTestWorker(t)
	ctx := context.Background()

	sale := core.Sale{
		ID:            ident.New(),
		Code:          ident.NewSaleCode(),
		ProductName:   "Rice 5kg",
		Quantity:      2,
		UnitPrice:     core.Money{Cents: 500000},
		Total:         core.Money{Cents: 1000000},
		PaymentMethod: core.PaymentCash,
		Date:          time.Now(),
	}
	if err := st.AppendSale(ctx, sale); err != nil {
		t.Fatalf("AppendSale() error = %v", err)
	}

	msg := amqp.NewRecordSyncMessage(amqp.KindSale, sale.ID)
	if err := w.HandleSyncMessage(ctx, msg); err != nil {
		t.Fatalf("HandleSyncMessage() error = %v", err)
	}
	if len(exp.sales) != 1 || exp.sales[0].ID != sale.ID {
		t.Fatalf("exported sales = %+v, want one with ID %s", exp.sales, sale.ID)
	}
}

func TestHandleSyncMessageUnknownRecord(t *testing.T) {
	w, _, _ := newTestWorker(t)

	msg := amqp.NewRecordSyncMessage(amqp.KindExpense, "missing")
	err := w.HandleSyncMessage(context.Background(), msg)
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("HandleSyncMessage() error = %v, want ErrNotFound", err)
	}
}

func TestHandleSyncMessageUnknownKindIgnored(t *testing.T) {
	w, _, exp := newTestWorker(t)

	msg := amqp.NewRecordSyncMessage("banana", "id")
	if err := w.HandleSyncMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleSyncMessage() error = %v, want nil for unknown kind", err)
	}
	if len(exp.sales)+len(exp.expenses)+len(exp.debtors)+len(exp.payments) != 0 {
		t.Fatal("nothing should be exported for an unknown kind")
	}
}

func TestHandleSyncMessageSalaryNoop(t *testing.T) {
	w, _, exp := newTestWorker(t)

	msg := amqp.NewRecordSyncMessage(amqp.KindSalary, "user-1")
	if err := w.HandleSyncMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleSyncMessage() error = %v", err)
	}
	if len(exp.summaries) != 0 {
		t.Fatal("salary messages should not trigger an immediate summary export")
	}
}

func TestExportMonthlySummary(t *testing.T) {
	w, st, exp := newTestWorker(t)
	ctx := context.Background()

	if err := st.AppendSale(ctx, core.Sale{
		ID:            ident.New(),
		Code:          ident.NewSaleCode(),
		ProductName:   "Sugar",
		Quantity:      1,
		UnitPrice:     core.Money{Cents: 300000},
		Total:         core.Money{Cents: 300000},
		PaymentMethod: core.PaymentMobileMoney,
		Date:          time.Now(),
	}); err != nil {
		t.Fatalf("AppendSale() error = %v", err)
	}

	if err := w.ExportMonthlySummary(ctx); err != nil {
		t.Fatalf("ExportMonthlySummary() error = %v", err)
	}
	if len(exp.summaries) != 1 {
		t.Fatalf("len(summaries) = %d, want 1", len(exp.summaries))
	}
	if exp.summaries[0].TotalSales.Cents != 300000 {
		t.Fatalf("TotalSales = %d cents, want 300000", exp.summaries[0].TotalSales.Cents)
	}
}

func TestRunPeriodicSummaryExportStopsOnCancel(t *testing.T) {
	w, _, _ := newTestWorker(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.RunPeriodicSummaryExport(ctx, time.Hour) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("RunPeriodicSummaryExport() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}
