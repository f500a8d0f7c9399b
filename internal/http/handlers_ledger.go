package http

import (
	"errors"
	"net/http"

	"finsight/internal/core"
	"finsight/internal/log"
	"finsight/internal/services"
)

var validationErrors = []error{
	core.ErrInvalidType,
	core.ErrInvalidAmount,
	core.ErrShortSource,
	core.ErrLongSource,
	core.ErrMissingDate,
	core.ErrNegativeBudget,
}

func isValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// writeServiceError maps a service error to a status code and logs server faults
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if isValidationError(err) {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}
	requestLogger(r).ErrorContext(r.Context(), "Request failed",
		log.FieldOperation, op,
		log.FieldErrorType, log.ErrorTypeInternal,
		log.FieldError, err)
	InternalServerError("internal error").Write(w)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.dash.Transactions(r.Context())
	if err != nil {
		writeServiceError(w, r, log.OpList, err)
		return
	}
	out := make([]transactionJSON, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransactionJSON(t))
	}
	NewJSONResponse().Body(out).Write(w)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	txType, err := core.ParseTransactionType(req.Type)
	if err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}
	if req.Amount == nil {
		UnprocessableEntityError(core.ErrInvalidAmount.Error()).Write(w)
		return
	}
	amount, err := core.MoneyFromDollars(*req.Amount)
	if err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	tx, err := s.dash.AddTransaction(r.Context(), services.NewTransaction{
		Type:   txType,
		Source: sanitizeInput(req.Source),
		Amount: amount,
	})
	if err != nil {
		writeServiceError(w, r, log.OpCreate, err)
		return
	}

	NewJSONResponse().
		Status(http.StatusCreated).
		Body(toTransactionJSON(tx)).
		Write(w)
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	if req.Budget == nil {
		BadRequestError("budget is required").Write(w)
		return
	}

	budget, err := core.MoneyFromDollars(*req.Budget)
	if err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}
	if err := s.dash.SetBudget(r.Context(), budget); err != nil {
		writeServiceError(w, r, log.OpBudget, err)
		return
	}
	s.writeSummary(w, r)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.writeSummary(w, r)
}

func (s *Server) writeSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.dash.Summary(r.Context())
	if err != nil {
		writeServiceError(w, r, log.OpSummary, err)
		return
	}
	NewJSONResponse().Body(toSummaryJSON(sum)).Write(w)
}
