package handler

import (
	"net/http"
	"strconv"

	"github.com/classforge/engine/internal/logger"
	"github.com/classforge/engine/internal/selection"
)

type SelectionRewardRequest struct {
	XP    int64 `json:"xp" validate:"min=0,max=1000"`
	Coins int64 `json:"coins" validate:"min=0"`
}

type SelectStudentRequest struct {
	ClassID       string                  `json:"class_id" validate:"required,max=100"`
	ExcludeRecent int                     `json:"exclude_recent" validate:"min=0,max=50"`
	Reward        *SelectionRewardRequest `json:"reward,omitempty"`
}

// HandleSelectStudent draws one student uniformly from the class roster and
// records the pick. An optional reward is granted to the selected character
// before the record is written.
func HandleSelectStudent(svc selection.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SelectStudentRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Select student"); err != nil {
			return
		}

		opts := selection.Options{ExcludeRecent: req.ExcludeRecent}
		if req.Reward != nil {
			opts.Reward = &selection.RewardConfig{
				XP:    req.Reward.XP,
				Coins: req.Reward.Coins,
			}
		}

		record, err := svc.SelectRandom(r.Context(), req.ClassID, opts)
		if err != nil {
			respondServiceError(w, r, "Select student", err)
			return
		}

		logger.FromContext(r.Context()).Info("Student selected",
			"class_id", record.ClassID,
			"character_id", record.CharacterID,
			"method", record.Method)

		respondJSON(w, http.StatusCreated, record)
	}
}

// HandleRecentSelections lists the most recent selection records for a class
func HandleRecentSelections(svc selection.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		classID, ok := GetQueryParam(r, w, "class_id")
		if !ok {
			return
		}

		limitStr := GetOptionalQueryParam(r, "limit", "0")
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			http.Error(w, ErrMsgInvalidLimit, http.StatusBadRequest)
			return
		}

		records, err := svc.ListRecent(r.Context(), classID, limit)
		if err != nil {
			respondServiceError(w, r, "List recent selections", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: records})
	}
}
