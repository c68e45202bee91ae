package http

import (
	"log/slog"
	"net/http"
	"time"

	"duka/internal/core"
	"duka/internal/phone"
	"duka/internal/services"
)

type createSaleRequest struct {
	ProductName   string     `json:"product_name"`
	Quantity      int64      `json:"quantity"`
	UnitPrice     core.Money `json:"price"`
	Discount      core.Money `json:"discount"`
	PaymentMethod string     `json:"payment_method"`
	Date          *time.Time `json:"date,omitempty"`
}

func (s *Server) handleCreateSale(w http.ResponseWriter, r *http.Request) {
	var req createSaleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	params := services.SaleParams{
		ProductName:   sanitizeInput(req.ProductName),
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		Discount:      req.Discount,
		PaymentMethod: core.PaymentMethod(req.PaymentMethod),
	}
	if req.Date != nil {
		params.Date = *req.Date
	}

	sale, err := s.book.RecordSale(r.Context(), params)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateReports()
	slog.InfoContext(r.Context(), "Sale recorded",
		"sale_id", sale.ID, "code", sale.Code, "total_cents", sale.Total.Cents)
	writeJSON(w, http.StatusCreated, sale)
}

func (s *Server) handleListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := s.book.Sales(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if sales == nil {
		sales = []core.Sale{}
	}
	writeJSON(w, http.StatusOK, sales)
}

type createExpenseRequest struct {
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Amount      core.Money `json:"amount"`
	Date        *time.Time `json:"date,omitempty"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	params := services.ExpenseParams{
		Description: sanitizeInput(req.Description),
		Category:    sanitizeInput(req.Category),
		Amount:      req.Amount,
	}
	if req.Date != nil {
		params.Date = *req.Date
	}

	expense, err := s.book.RecordExpense(r.Context(), params)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateReports()
	slog.InfoContext(r.Context(), "Expense recorded",
		"expense_id", expense.ID, "amount_cents", expense.Amount.Cents)
	writeJSON(w, http.StatusCreated, expense)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.book.Expenses(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

type createDebtorRequest struct {
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	ItemBorrowed string     `json:"item_borrowed"`
	TotalDebt    core.Money `json:"total_debt"`
}

func (s *Server) handleCreateDebtor(w http.ResponseWriter, r *http.Request) {
	var req createDebtorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	phoneNumber := sanitizeInput(req.Phone)
	if phoneNumber != "" && !phone.Valid(phoneNumber) {
		writeError(w, http.StatusUnprocessableEntity, "invalid phone number")
		return
	}

	debtor, err := s.book.CreateDebtor(r.Context(),
		sanitizeInput(req.Name), phoneNumber, sanitizeInput(req.ItemBorrowed), req.TotalDebt)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateReports()
	slog.InfoContext(r.Context(), "Debtor created",
		"debtor_id", debtor.ID, "total_debt_cents", debtor.TotalDebt.Cents)
	writeJSON(w, http.StatusCreated, debtor)
}

func (s *Server) handleListDebtors(w http.ResponseWriter, r *http.Request) {
	debtors, err := s.book.Debtors(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if debtors == nil {
		debtors = []core.Debtor{}
	}
	writeJSON(w, http.StatusOK, debtors)
}

type applyPaymentRequest struct {
	Amount core.Money `json:"amount"`
}

type applyPaymentResponse struct {
	Debtor  core.Debtor        `json:"debtor"`
	Payment core.DebtorPayment `json:"payment"`
}

func (s *Server) handleApplyPayment(w http.ResponseWriter, r *http.Request) {
	debtorID := r.PathValue("id")

	var req applyPaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	debtor, payment, err := s.book.ApplyPayment(r.Context(), debtorID, req.Amount)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateReports()
	slog.InfoContext(r.Context(), "Payment applied",
		"debtor_id", debtor.ID,
		"payment_id", payment.ID,
		"amount_cents", payment.AmountPaid.Cents,
		"remaining_cents", payment.RemainingBalance.Cents,
		"status", debtor.Status)
	writeJSON(w, http.StatusCreated, applyPaymentResponse{Debtor: debtor, Payment: payment})
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	debtorID := r.PathValue("id")

	payments, err := s.book.Payments(r.Context(), debtorID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if payments == nil {
		payments = []core.DebtorPayment{}
	}
	writeJSON(w, http.StatusOK, payments)
}

func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	year, month, err := monthQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := reportCacheKey(year, month)
	if summary, found := s.monthlyCache.Get(key); found {
		slog.DebugContext(r.Context(), "Monthly summary cache hit", "year", year, "month", int(month))
		writeJSON(w, http.StatusOK, summary)
		return
	}

	summary, err := s.reports.MonthlySummary(r.Context(), year, month)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.monthlyCache.Set(key, summary)
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleDailyReport(w http.ResponseWriter, r *http.Request) {
	year, month, err := monthQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := reportCacheKey(year, month)
	if days, found := s.dailyCache.Get(key); found {
		slog.DebugContext(r.Context(), "Daily breakdown cache hit", "year", year, "month", int(month))
		writeJSON(w, http.StatusOK, days)
		return
	}

	days, err := s.reports.DailyBreakdown(r.Context(), year, month)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if days == nil {
		days = []core.DailySales{}
	}

	s.dailyCache.Set(key, days)
	writeJSON(w, http.StatusOK, days)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.book.Users(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if users == nil {
		users = []core.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

type updateSalaryRequest struct {
	SalaryAmount core.Money `json:"salary_amount"`
}

func (s *Server) handleUpdateSalary(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	var req updateSalaryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := s.book.UpdateUserSalary(r.Context(), userID, req.SalaryAmount)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.invalidateReports()
	slog.InfoContext(r.Context(), "Salary updated",
		"user_id", user.ID, "salary_cents", user.SalaryAmount.Cents)
	writeJSON(w, http.StatusOK, user)
}
