package handler

import (
	"net/http"
	"strings"

	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/item"
	"github.com/classforge/engine/internal/logger"
)

// HandleListCatalog returns every item definition
func HandleListCatalog(svc item.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catalog, err := svc.ListCatalog(r.Context())
		if err != nil {
			respondServiceError(w, r, "List catalog", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: catalog})
	}
}

// HandleGetDefinition returns one item definition by key
func HandleGetDefinition(svc item.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, ok := GetQueryParam(r, w, "key")
		if !ok {
			return
		}

		definition, err := svc.GetDefinition(r.Context(), key)
		if err != nil {
			respondServiceError(w, r, "Get definition", err)
			return
		}

		respondJSON(w, http.StatusOK, definition)
	}
}

type CreateDefinitionRequest struct {
	Key         string           `json:"key" validate:"required,max=100,excludesall=\x00\n\r\t "`
	Name        string           `json:"name" validate:"required,max=200"`
	Description string           `json:"description" validate:"max=2000"`
	Category    string           `json:"category" validate:"required,slot"`
	MinLevel    int              `json:"min_level" validate:"min=1,max=50"`
	Bonuses     domain.StatBlock `json:"bonuses"`
}

// HandleCreateDefinition adds a new definition to the item catalog
func HandleCreateDefinition(svc item.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateDefinitionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create definition"); err != nil {
			return
		}

		created, err := svc.CreateDefinition(r.Context(), &domain.ItemDefinition{
			Key:         req.Key,
			Name:        req.Name,
			Description: req.Description,
			Category:    domain.Slot(strings.ToLower(req.Category)),
			MinLevel:    req.MinLevel,
			Bonuses:     req.Bonuses,
		})
		if err != nil {
			respondServiceError(w, r, "Create definition", err)
			return
		}

		logger.FromContext(r.Context()).Info("Item definition created",
			"key", created.Key,
			"definition_id", created.ID)

		respondJSON(w, http.StatusCreated, created)
	}
}
