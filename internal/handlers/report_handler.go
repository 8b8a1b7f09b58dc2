package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/cache"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/services"
	"github.com/rokadeamol25/billing-app-mvp-sub000/internal/timeutil"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

// asOfDate reads ?as_of=YYYY-MM-DD, defaulting to today
func asOfDate(r *http.Request) (time.Time, error) {
	if v := r.URL.Query().Get("as_of"); v != "" {
		return timeutil.ParseInIST(timeutil.DateLayout, v)
	}
	return timeutil.StartOfDay(timeutil.Now()), nil
}

// dateRange reads ?from= and ?to=, defaulting to the current month
func dateRange(r *http.Request) (time.Time, time.Time, error) {
	now := timeutil.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, timeutil.IST)
	to := timeutil.EndOfDay(now)

	if v := r.URL.Query().Get("from"); v != "" {
		d, err := timeutil.ParseInIST(timeutil.DateLayout, v)
		if err != nil {
			return from, to, err
		}
		from = d
	}
	if v := r.URL.Query().Get("to"); v != "" {
		d, err := timeutil.ParseInIST(timeutil.DateLayout, v)
		if err != nil {
			return from, to, err
		}
		to = timeutil.EndOfDay(d)
	}
	return from, to, nil
}

// ReceivablesAging returns outstanding invoices bucketed by age.
// Responses for "today" are served from Redis when available.
func (h *ReportHandler) ReceivablesAging(w http.ResponseWriter, r *http.Request) {
	asOf, err := asOfDate(r)
	if err != nil {
		http.Error(w, "invalid as_of, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	today := r.URL.Query().Get("as_of") == ""
	if today {
		if data, ok := cache.GetCachedAging(r.Context(), "receivable"); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(data)
			return
		}
	}

	report, err := h.Service.ReceivablesAging(r.Context(), asOf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data, err := json.Marshal(report)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if today {
		cache.CacheAging(r.Context(), "receivable", data)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// PayablesAging returns outstanding purchases bucketed by age
func (h *ReportHandler) PayablesAging(w http.ResponseWriter, r *http.Request) {
	asOf, err := asOfDate(r)
	if err != nil {
		http.Error(w, "invalid as_of, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	today := r.URL.Query().Get("as_of") == ""
	if today {
		if data, ok := cache.GetCachedAging(r.Context(), "payable"); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(data)
			return
		}
	}

	report, err := h.Service.PayablesAging(r.Context(), asOf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data, err := json.Marshal(report)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if today {
		cache.CacheAging(r.Context(), "payable", data)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// ReceivablesAgingPDF streams the receivables aging report as a PDF
func (h *ReportHandler) ReceivablesAgingPDF(w http.ResponseWriter, r *http.Request) {
	asOf, err := asOfDate(r)
	if err != nil {
		http.Error(w, "invalid as_of, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	report, err := h.Service.ReceivablesAging(r.Context(), asOf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	pdfBytes, err := h.Service.GenerateAgingPDF(report, "Receivables Aging Report")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receivables-aging.pdf")
	w.Write(pdfBytes)
}

// PayablesAgingPDF streams the payables aging report as a PDF
func (h *ReportHandler) PayablesAgingPDF(w http.ResponseWriter, r *http.Request) {
	asOf, err := asOfDate(r)
	if err != nil {
		http.Error(w, "invalid as_of, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	report, err := h.Service.PayablesAging(r.Context(), asOf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	pdfBytes, err := h.Service.GenerateAgingPDF(report, "Payables Aging Report")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=payables-aging.pdf")
	w.Write(pdfBytes)
}

// Dashboard returns the headline summary, cached briefly in Redis
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if data, ok := cache.GetCachedDashboard(r.Context()); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	summary, err := h.Service.Dashboard(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data, err := json.Marshal(summary)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	cache.CacheDashboard(r.Context(), data)

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// SalesReport returns invoices in a date range with payment state
func (h *ReportHandler) SalesReport(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	rows, err := h.Service.SalesReport(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}

// SalesReportCSV streams the sales report as a CSV download
func (h *ReportHandler) SalesReportCSV(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	csvBytes, err := h.Service.SalesReportCSV(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=sales-report.csv")
	w.Write(csvBytes)
}

// ProfitLoss compares sales and purchases over a date range
func (h *ReportHandler) ProfitLoss(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	report, err := h.Service.ProfitLoss(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}
