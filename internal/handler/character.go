package handler

import (
	"net/http"

	"github.com/classforge/engine/internal/character"
	"github.com/classforge/engine/internal/leveling"
	"github.com/classforge/engine/internal/logger"
)

type CreateCharacterRequest struct {
	StudentID string `json:"student_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	ClassID   string `json:"class_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
}

// HandleCreateCharacter provisions a character for a (student, class) pair
func HandleCreateCharacter(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateCharacterRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create character"); err != nil {
			return
		}

		created, err := svc.Create(r.Context(), req.StudentID, req.ClassID)
		if err != nil {
			respondServiceError(w, r, "Create character", err)
			return
		}

		logger.FromContext(r.Context()).Info("Character created",
			"character_id", created.ID,
			"student_id", created.StudentID,
			"class_id", created.ClassID)

		respondJSON(w, http.StatusCreated, created)
	}
}

// HandleGetCharacter returns a character by id
func HandleGetCharacter(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		characterID, ok := GetQueryParam(r, w, "character_id")
		if !ok {
			return
		}

		found, err := svc.Get(r.Context(), characterID)
		if err != nil {
			respondServiceError(w, r, "Get character", err)
			return
		}

		respondJSON(w, http.StatusOK, found)
	}
}

// HandleGetCharacterByStudent resolves a character from its (student, class) pair
func HandleGetCharacterByStudent(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID, ok := GetQueryParam(r, w, "student_id")
		if !ok {
			return
		}
		classID, ok := GetQueryParam(r, w, "class_id")
		if !ok {
			return
		}

		found, err := svc.GetByStudent(r.Context(), studentID, classID)
		if err != nil {
			respondServiceError(w, r, "Get character by student", err)
			return
		}

		respondJSON(w, http.StatusOK, found)
	}
}

// HandleGetRoster lists every character in a class, archived included
func HandleGetRoster(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		classID, ok := GetQueryParam(r, w, "class_id")
		if !ok {
			return
		}

		roster, err := svc.ListRoster(r.Context(), classID)
		if err != nil {
			respondServiceError(w, r, "Get roster", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: roster})
	}
}

// HandleArchiveCharacter archives a character, freezing its progression
func HandleArchiveCharacter(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		characterID, ok := GetQueryParam(r, w, "character_id")
		if !ok {
			return
		}

		if err := svc.Archive(r.Context(), characterID); err != nil {
			respondServiceError(w, r, "Archive character", err)
			return
		}

		logger.FromContext(r.Context()).Info("Character archived", "character_id", characterID)

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgCharacterArchivedSuccess})
	}
}

// ProgressResponse pairs a character with its position on the level curve
type ProgressResponse struct {
	CharacterID string `json:"character_id"`
	Level       int    `json:"level"`
	XP          int64  `json:"xp"`
	XPIntoLevel int64  `json:"xp_into_level"`
	XPToNext    int64  `json:"xp_to_next"`
	MaxLevel    int    `json:"max_level"`
}

// HandleGetProgress reports where a character sits within the level curve
func HandleGetProgress(svc character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		characterID, ok := GetQueryParam(r, w, "character_id")
		if !ok {
			return
		}

		found, err := svc.Get(r.Context(), characterID)
		if err != nil {
			respondServiceError(w, r, "Get progress", err)
			return
		}

		progress := leveling.LevelFor(found.XP)
		respondJSON(w, http.StatusOK, ProgressResponse{
			CharacterID: found.ID,
			Level:       progress.Level,
			XP:          found.XP,
			XPIntoLevel: progress.XPIntoLevel,
			XPToNext:    progress.XPToNext,
			MaxLevel:    leveling.MaxLevel,
		})
	}
}
