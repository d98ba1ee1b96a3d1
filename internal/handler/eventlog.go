package handler

import (
	"net/http"
	"strconv"

	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/eventlog"
)

// defaultEventLimit caps audit queries that don't ask for a limit.
const defaultEventLimit = 50

// HandleGetEvents returns audit log rows, newest first. All filters are
// optional query parameters: character_id, type, since, until, limit.
func HandleGetEvents(svc eventlog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter domain.EventFilter

		if characterID := r.URL.Query().Get("character_id"); characterID != "" {
			filter.CharacterID = &characterID
		}
		if eventType := r.URL.Query().Get("type"); eventType != "" {
			filter.EventType = &eventType
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

		limitStr := GetOptionalQueryParam(r, "limit", strconv.Itoa(defaultEventLimit))
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			http.Error(w, ErrMsgInvalidLimit, http.StatusBadRequest)
			return
		}
		filter.Limit = limit

		records, err := svc.GetEvents(r.Context(), filter)
		if err != nil {
			respondServiceError(w, r, "Get events", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: records})
	}
}
