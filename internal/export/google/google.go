// Package google exports book records to a Google Sheets spreadsheet so the
// shop owner can share and archive the books outside the application.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"duka/internal/core"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	recordsSheet  string
	summarySheet  string
}

// Config selects the target spreadsheet and sheet names.
type Config struct {
	SpreadsheetID string
	RecordsSheet  string
	SummarySheet  string
}

// New creates a Sheets client for the given spreadsheet. Credentials come
// from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	recordsSheet := cfg.RecordsSheet
	if recordsSheet == "" {
		recordsSheet = "Records"
	}
	summarySheet := cfg.SummarySheet
	if summarySheet == "" {
		summarySheet = "Summary"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		recordsSheet:  recordsSheet,
		summarySheet:  summarySheet,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets service created")
	return service, nil
}

// appendRow appends one row to the named sheet.
func (c *Client) appendRow(ctx context.Context, sheet string, row []any) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:A", sheet)
	vr := &gsheet.ValueRange{Values: [][]any{row}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append row to sheet %s: %w", sheet, err)
	}
	return nil
}

func (c *Client) AppendSale(ctx context.Context, s core.Sale) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return c.appendRow(ctx, c.recordsSheet, []any{
		s.Date.Format("2006-01-02"), "sale", s.ID, s.Code,
		s.ProductName, s.Quantity, s.UnitPrice.TZS(), s.Discount.TZS(),
		s.Total.TZS(), string(s.PaymentMethod),
	})
}

func (c *Client) AppendExpense(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return c.appendRow(ctx, c.recordsSheet, []any{
		e.Date.Format("2006-01-02"), "expense", e.ID, "",
		e.Description, "", "", "", -e.Amount.TZS(), e.Category,
	})
}

func (c *Client) AppendDebtor(ctx context.Context, d core.Debtor) error {
	return c.appendRow(ctx, c.recordsSheet, []any{
		d.CreatedAt.Format("2006-01-02"), "debtor", d.ID, "",
		d.Name, "", "", "", d.TotalDebt.TZS(), d.ItemBorrowed,
	})
}

func (c *Client) AppendPayment(ctx context.Context, p core.DebtorPayment) error {
	return c.appendRow(ctx, c.recordsSheet, []any{
		p.Date.Format("2006-01-02"), "payment", p.ID, p.DebtorID,
		"", "", "", "", p.AmountPaid.TZS(), "",
	})
}

// AppendMonthlySummary writes a timestamped snapshot of the month's figures.
func (c *Client) AppendMonthlySummary(ctx context.Context, s core.MonthlySummary) error {
	return c.appendRow(ctx, c.summarySheet, []any{
		time.Now().Format(time.RFC3339),
		s.Year, int(s.Month),
		s.TotalSales.TZS(), s.TotalExpenses.TZS(),
		s.TotalDebtorPayments.TZS(), s.SalaryCost.TZS(),
		s.ProfitOrLoss.TZS(),
	})
}
