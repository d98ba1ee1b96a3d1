package handler

import (
	"net/http"

	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/logger"
	"github.com/classforge/engine/internal/reward"
)

// HeaderIdempotencyKey carries the caller-supplied idempotency key. A key in
// the body takes precedence when both are present.
const HeaderIdempotencyKey = "X-Idempotency-Key"

type GrantRewardRequest struct {
	CharacterID    string  `json:"character_id" validate:"required"`
	XP             int64   `json:"xp" validate:"min=0,max=1000"`
	Coins          int64   `json:"coins"`
	Reason         string  `json:"reason" validate:"required,max=64"`
	ReferenceType  *string `json:"reference_type,omitempty" validate:"omitempty,max=64"`
	ReferenceID    *string `json:"reference_id,omitempty" validate:"omitempty,max=100"`
	ActorID        *string `json:"actor_id,omitempty" validate:"omitempty,max=100"`
	IdempotencyKey string  `json:"idempotency_key" validate:"omitempty,max=255"`
}

// HandleGrantReward applies an XP and/or coin grant to a character. Repeat
// calls with the same idempotency key return the original result.
func HandleGrantReward(svc reward.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		headerKey := r.Header.Get(HeaderIdempotencyKey)

		var req GrantRewardRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Grant reward"); err != nil {
			return
		}

		if req.IdempotencyKey == "" {
			req.IdempotencyKey = headerKey
		}

		result, err := svc.GrantReward(r.Context(), domain.GrantRequest{
			CharacterID:    req.CharacterID,
			XP:             req.XP,
			Coins:          req.Coins,
			Reason:         req.Reason,
			ReferenceType:  req.ReferenceType,
			ReferenceID:    req.ReferenceID,
			ActorID:        req.ActorID,
			IdempotencyKey: req.IdempotencyKey,
		})
		if err != nil {
			respondServiceError(w, r, "Grant reward", err)
			return
		}

		log.Debug("Grant handled",
			"character_id", req.CharacterID,
			"replayed", result.Replayed)

		status := http.StatusCreated
		if result.Replayed {
			status = http.StatusOK
		}
		respondJSON(w, status, result)
	}
}
