// Package worker exports book records to Google Sheets in the background so
// the HTTP path never waits on the Sheets API.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"duka/internal/amqp"
	"duka/internal/core"
	"duka/internal/report"
	"duka/internal/store"
)

// Exporter is the destination for exported records.
type Exporter interface {
	AppendSale(ctx context.Context, s core.Sale) error
	AppendExpense(ctx context.Context, e core.Expense) error
	AppendDebtor(ctx context.Context, d core.Debtor) error
	AppendPayment(ctx context.Context, p core.DebtorPayment) error
	AppendMonthlySummary(ctx context.Context, s core.MonthlySummary) error
}

// SyncWorker consumes record sync messages, reads the full record from the
// store, and appends it to the export destination.
type SyncWorker struct {
	records  store.RecordStore
	reports  *report.Engine
	exporter Exporter
}

func NewSyncWorker(records store.RecordStore, reports *report.Engine, exporter Exporter) *SyncWorker {
	return &SyncWorker{
		records:  records,
		reports:  reports,
		exporter: exporter,
	}
}

// HandleSyncMessage processes a single record sync message from AMQP.
// The message carries only kind and id; the record itself is read back from
// the store so the export always reflects the stored state.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.RecordSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"kind", msg.Kind,
		"id", msg.ID)

	switch msg.Kind {
	case amqp.KindSale:
		sale, err := w.findSale(ctx, msg.ID)
		if err != nil {
			return err
		}
		if err := w.exporter.AppendSale(ctx, sale); err != nil {
			return fmt.Errorf("export sale: %w", err)
		}
	case amqp.KindExpense:
		expense, err := w.findExpense(ctx, msg.ID)
		if err != nil {
			return err
		}
		if err := w.exporter.AppendExpense(ctx, expense); err != nil {
			return fmt.Errorf("export expense: %w", err)
		}
	case amqp.KindDebtor:
		debtor, err := w.findDebtor(ctx, msg.ID)
		if err != nil {
			return err
		}
		if err := w.exporter.AppendDebtor(ctx, debtor); err != nil {
			return fmt.Errorf("export debtor: %w", err)
		}
	case amqp.KindPayment:
		payment, err := w.findPayment(ctx, msg.ID)
		if err != nil {
			return err
		}
		if err := w.exporter.AppendPayment(ctx, payment); err != nil {
			return fmt.Errorf("export payment: %w", err)
		}
	case amqp.KindSalary:
		// Salary changes surface in the periodic summary export, nothing
		// to append per record.
		slog.DebugContext(ctx, "Salary change noted, exported with next summary", "id", msg.ID)
	default:
		slog.WarnContext(ctx, "Unknown record kind, skipping", "kind", msg.Kind, "id", msg.ID)
	}

	slog.InfoContext(ctx, "Sync message processed", "kind", msg.Kind, "id", msg.ID)
	return nil
}

// ExportMonthlySummary computes the current month's figures and appends a
// snapshot row to the export destination.
func (w *SyncWorker) ExportMonthlySummary(ctx context.Context) error {
	now := time.Now()
	summary, err := w.reports.MonthlySummary(ctx, now.Year(), now.Month())
	if err != nil {
		return fmt.Errorf("compute monthly summary: %w", err)
	}
	if err := w.exporter.AppendMonthlySummary(ctx, summary); err != nil {
		return fmt.Errorf("export monthly summary: %w", err)
	}
	slog.InfoContext(ctx, "Monthly summary exported",
		"year", summary.Year,
		"month", int(summary.Month),
		"profit_cents", summary.ProfitOrLoss.Cents)
	return nil
}

// RunPeriodicSummaryExport exports the monthly summary on the given interval
// until the context is cancelled.
func (w *SyncWorker) RunPeriodicSummaryExport(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.ExportMonthlySummary(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic summary export failed", "error", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *SyncWorker) findSale(ctx context.Context, id string) (core.Sale, error) {
	sales, err := w.records.ReadSales(ctx)
	if err != nil {
		return core.Sale{}, fmt.Errorf("read sales: %w", err)
	}
	for _, s := range sales {
		if s.ID == id {
			return s, nil
		}
	}
	return core.Sale{}, fmt.Errorf("sale %s: %w", id, core.ErrNotFound)
}

func (w *SyncWorker) findExpense(ctx context.Context, id string) (core.Expense, error) {
	expenses, err := w.records.ReadExpenses(ctx)
	if err != nil {
		return core.Expense{}, fmt.Errorf("read expenses: %w", err)
	}
	for _, e := range expenses {
		if e.ID == id {
			return e, nil
		}
	}
	return core.Expense{}, fmt.Errorf("expense %s: %w", id, core.ErrNotFound)
}

func (w *SyncWorker) findDebtor(ctx context.Context, id string) (core.Debtor, error) {
	debtors, err := w.records.ReadDebtors(ctx)
	if err != nil {
		return core.Debtor{}, fmt.Errorf("read debtors: %w", err)
	}
	for _, d := range debtors {
		if d.ID == id {
			return d, nil
		}
	}
	return core.Debtor{}, fmt.Errorf("debtor %s: %w", id, core.ErrNotFound)
}

func (w *SyncWorker) findPayment(ctx context.Context, id string) (core.DebtorPayment, error) {
	payments, err := w.records.ReadPayments(ctx)
	if err != nil {
		return core.DebtorPayment{}, fmt.Errorf("read payments: %w", err)
	}
	for _, p := range payments {
		if p.ID == id {
			return p, nil
		}
	}
	return core.DebtorPayment{}, fmt.Errorf("payment %s: %w", id, core.ErrNotFound)
}
