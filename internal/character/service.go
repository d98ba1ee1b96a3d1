package character

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/logger"
	"github.com/classforge/engine/internal/repository"
)

// StartingMaxLight is the light capacity of a fresh character, matching the
// schema default. Light itself starts empty and fills on level-up.
const StartingMaxLight = 10

// Log message constants
const (
	LogMsgCharacterCreated  = "Character created"
	LogMsgCharacterArchived = "Character archived"
)

// Service defines the interface for character lifecycle operations
type Service interface {
	// Create provisions a character and its ledger account for a (student,
	// class) pair. Each pair gets exactly one character.
	Create(ctx context.Context, studentID, classID string) (*domain.Character, error)
	Get(ctx context.Context, characterID string) (*domain.Character, error)
	GetByStudent(ctx context.Context, studentID, classID string) (*domain.Character, error)
	ListRoster(ctx context.Context, classID string) ([]domain.Character, error)
	Archive(ctx context.Context, characterID string) error
}

type service struct {
	repo repository.Character
}

// NewService creates a new character service
func NewService(repo repository.Character) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, studentID, classID string) (*domain.Character, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(studentID) == "" {
		return nil, fmt.Errorf("%w: student id is required", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(classID) == "" {
		return nil, fmt.Errorf("%w: class id is required", domain.ErrInvalidArgument)
	}

	character := &domain.Character{
		ID:        uuid.NewString(),
		StudentID: studentID,
		ClassID:   classID,
		Level:     1,
		MaxLight:  StartingMaxLight,
	}

	if err := s.repo.CreateCharacter(ctx, character); err != nil {
		return nil, err
	}

	log.Info(LogMsgCharacterCreated,
		"character_id", character.ID,
		"student_id", studentID,
		"class_id", classID)
	return character, nil
}

func (s *service) Get(ctx context.Context, characterID string) (*domain.Character, error) {
	return s.repo.GetCharacter(ctx, characterID)
}

func (s *service) GetByStudent(ctx context.Context, studentID, classID string) (*domain.Character, error) {
	return s.repo.GetCharacterByStudent(ctx, studentID, classID)
}

func (s *service) ListRoster(ctx context.Context, classID string) ([]domain.Character, error) {
	if strings.TrimSpace(classID) == "" {
		return nil, fmt.Errorf("%w: class id is required", domain.ErrInvalidArgument)
	}
	return s.repo.ListClassRoster(ctx, classID)
}

func (s *service) Archive(ctx context.Context, characterID string) error {
	log := logger.FromContext(ctx)

	if err := s.repo.ArchiveCharacter(ctx, characterID); err != nil {
		return err
	}

	log.Info(LogMsgCharacterArchived, "character_id", characterID)
	return nil
}
