package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"contas/internal/cards"
	"contas/internal/core"
	"contas/internal/log"
	"contas/internal/report"
)

// periodFromQuery reads month and year query parameters.
func periodFromQuery(r *http.Request) (core.Period, error) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		return core.Period{}, core.ErrInvalidMonth
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		return core.Period{}, core.ErrInvalidYear
	}
	p := core.Period{Year: year, Month: month}
	return p, p.Validate()
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	period, err := periodFromQuery(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	key := period.String()
	if cached, ok := s.summaryCache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	summary := report.Summarize(s.store.Snapshot(), period)
	s.summaryCache.Set(key, summary)
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	period, err := periodFromQuery(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report.FilterLedger(s.store.Snapshot(), period))
}

func (s *Server) handlePeriods(w http.ResponseWriter, r *http.Request) {
	periods := report.Periods(s.store.Snapshot())
	if periods == nil {
		periods = []core.Period{}
	}
	writeJSON(w, http.StatusOK, periods)
}

type earningRequest struct {
	Source string      `json:"source"`
	Amount string      `json:"amount"`
	Date   core.Date   `json:"date"`
	Period core.Period `json:"referenceMonth"`
}

func (s *Server) handleAddEarning(w http.ResponseWriter, r *http.Request) {
	var req earningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "malformed request body")
		return
	}
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.store.AddEarning(r.Context(), core.Earning{
		Source: req.Source,
		Amount: core.Money{Cents: cents},
		Date:   req.Date,
	}, req.Period)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.afterWrite(core.KindEarnings, "added")
	writeJSON(w, http.StatusCreated, created)
}

type fixedExpenseRequest struct {
	Name   string      `json:"name"`
	Amount string      `json:"amount"`
	Notes  string      `json:"observations"`
	Period core.Period `json:"referenceMonth"`
}

func (s *Server) handleAddFixedExpense(w http.ResponseWriter, r *http.Request) {
	var req fixedExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "malformed request body")
		return
	}
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.store.AddFixedExpense(r.Context(), core.FixedExpense{
		Name:   req.Name,
		Amount: core.Money{Cents: cents},
		Notes:  req.Notes,
	}, req.Period)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.afterWrite(core.KindFixedExpenses, "added")
	writeJSON(w, http.StatusCreated, created)
}

type diverseExpenseRequest struct {
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Amount      string      `json:"amount"`
	Date        core.Date   `json:"date"`
	Notes       string      `json:"observations"`
	Period      core.Period `json:"referenceMonth"`
}

func (s *Server) handleAddDiverseExpense(w http.ResponseWriter, r *http.Request) {
	var req diverseExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "malformed request body")
		return
	}
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.store.AddDiverseExpense(r.Context(), core.DiverseExpense{
		Description: req.Description,
		Category:    core.Category(req.Category),
		Amount:      core.Money{Cents: cents},
		Date:        req.Date,
		Notes:       req.Notes,
	}, req.Period)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.afterWrite(core.KindDiverseExpenses, "added")
	writeJSON(w, http.StatusCreated, created)
}

type purchaseRequest struct {
	Card         string    `json:"cardName"`
	Date         core.Date `json:"date"`
	Amount       string    `json:"amount"`
	Description  string    `json:"description"`
	Installments int       `json:"installments"`
}

func (s *Server) handleAddPurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "malformed request body")
		return
	}
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.store.AddPurchase(r.Context(), cards.PurchaseRequest{
		Card:         req.Card,
		Date:         req.Date,
		Total:        core.Money{Cents: cents},
		Description:  req.Description,
		Installments: req.Installments,
	})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.afterWrite(core.KindCreditCards, "added")
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	kind, err := core.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.Delete(r.Context(), kind, chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.afterWrite(kind, "deleted")
	w.WriteHeader(http.StatusNoContent)
}

// afterWrite invalidates cached summaries and counts the mutation.
func (s *Server) afterWrite(kind core.Kind, action string) {
	s.summaryCache.Clear()
	s.metrics.EntriesTotal.WithLabelValues(string(kind), action).Inc()
}

type adviceRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (s *Server) handleGenerateAdvice(w http.ResponseWriter, r *http.Request) {
	if s.advisor == nil {
		writeError(w, http.StatusServiceUnavailable, "analysis is not configured")
		return
	}

	var req adviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "malformed request body")
		return
	}
	period := core.Period{Year: req.Year, Month: req.Month}
	if err := period.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	analysis := s.advisor.Advise(r.Context(), s.store.Snapshot(), period)
	result := &adviceResult{
		Period:      period,
		Analysis:    analysis,
		GeneratedAt: time.Now().UTC(),
	}

	s.adviceMu.Lock()
	s.adviceSlot = result
	s.adviceMu.Unlock()

	outcome := "ok"
	if analysis == "" {
		outcome = "empty"
	}
	s.metrics.AdviceRequests.WithLabelValues(outcome).Inc()
	s.logger.InfoContext(r.Context(), "Analysis generated",
		log.FieldPeriod, period.String(),
		log.FieldOperation, log.OpAdvise)

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetAdvice(w http.ResponseWriter, r *http.Request) {
	s.adviceMu.Lock()
	result := s.adviceSlot
	s.adviceMu.Unlock()

	if result == nil {
		writeError(w, http.StatusNotFound, "no analysis generated yet")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
