package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/ledger"
)

// BalanceResponse is the current coin balance of a character's account
type BalanceResponse struct {
	CharacterID string `json:"character_id"`
	Balance     int64  `json:"balance"`
}

// HandleGetBalance returns the cached coin balance for a character
func HandleGetBalance(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		characterID, ok := GetQueryParam(r, w, "character_id")
		if !ok {
			return
		}

		balance, err := svc.GetBalance(r.Context(), characterID)
		if err != nil {
			respondServiceError(w, r, "Get balance", err)
			return
		}

		respondJSON(w, http.StatusOK, BalanceResponse{
			CharacterID: characterID,
			Balance:     balance,
		})
	}
}

// HandleGetStatement returns the balance plus matching ledger entries for a
// character, both read at the same snapshot
func HandleGetStatement(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		characterID, ok := GetQueryParam(r, w, "character_id")
		if !ok {
			return
		}

		var filter domain.LedgerFilter

		if reason := r.URL.Query().Get("reason"); reason != "" {
			filter.Reason = &reason
		}

		if since, ok := parseTimeParam(w, r, "since"); !ok {
			return
		} else if since != nil {
			filter.Since = since
		}
		if until, ok := parseTimeParam(w, r, "until"); !ok {
			return
		} else if until != nil {
			filter.Until = until
		}

		limitStr := GetOptionalQueryParam(r, "limit", "0")
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			http.Error(w, ErrMsgInvalidLimit, http.StatusBadRequest)
			return
		}
		filter.Limit = limit

		statement, err := svc.GetStatement(r.Context(), characterID, filter)
		if err != nil {
			respondServiceError(w, r, "Get statement", err)
			return
		}

		respondJSON(w, http.StatusOK, statement)
	}
}

// HandleVerifyConservation recomputes an account balance from its entries
// and reports whether the cached balance agrees
func HandleVerifyConservation(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		characterID, ok := GetQueryParam(r, w, "character_id")
		if !ok {
			return
		}

		report, err := svc.VerifyConservation(r.Context(), characterID)
		if err != nil {
			respondServiceError(w, r, "Verify conservation", err)
			return
		}

		respondJSON(w, http.StatusOK, report)
	}
}

// parseTimeParam reads an optional RFC 3339 query parameter. A malformed
// value writes the error response and returns ok=false.
func parseTimeParam(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		http.Error(w, fmt.Sprintf(ErrMsgInvalidTimeParam, name), http.StatusBadRequest)
		return nil, false
	}
	return &parsed, true
}
