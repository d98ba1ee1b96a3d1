package repository

import (
	"context"

	"github.com/classforge/engine/internal/domain"
)

// Character defines the interface for character persistence
type Character interface {
	CreateCharacter(ctx context.Context, character *domain.Character) error
	GetCharacter(ctx context.Context, characterID string) (*domain.Character, error)
	GetCharacterByStudent(ctx context.Context, studentID, classID string) (*domain.Character, error)
	ListClassRoster(ctx context.Context, classID string) ([]domain.Character, error)
	ArchiveCharacter(ctx context.Context, characterID string) error
}
