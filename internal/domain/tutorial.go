package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Difficulty represents how advanced a tutorial is.
type Difficulty string

// Possible tutorial difficulty values.
const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Common validation errors for Tutorial.
var (
	ErrEmptyTutorialID    = errors.New("tutorial ID cannot be empty")
	ErrEmptyTutorialTitle = errors.New("tutorial title cannot be empty")
)

// Tutorial is an ordered collection of lessons about one technology.
type Tutorial struct {
	ID           uuid.UUID  `json:"id"`
	TechnologyID uuid.UUID  `json:"technology_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Difficulty   Difficulty `json:"difficulty"`
	IsPublished  bool       `json:"is_published"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewTutorial creates a new unpublished Tutorial.
func NewTutorial(technologyID uuid.UUID, title, description string, difficulty Difficulty) (*Tutorial, error) {
	if difficulty == "" {
		difficulty = DifficultyBeginner
	}

	tutorial := &Tutorial{
		ID:           uuid.New(),
		TechnologyID: technologyID,
		Title:        strings.TrimSpace(title),
		Description:  strings.TrimSpace(description),
		Difficulty:   difficulty,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	if err := tutorial.Validate(); err != nil {
		return nil, err
	}

	return tutorial, nil
}

// Validate checks if the Tutorial has valid data.
func (t *Tutorial) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTutorialID
	}
	if t.TechnologyID == uuid.Nil {
		return ErrEmptyTechnologyID
	}
	if t.Title == "" {
		return ErrEmptyTutorialTitle
	}
	if !isValidDifficulty(t.Difficulty) {
		return ErrInvalidDifficulty
	}
	return nil
}

func isValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	default:
		return false
	}
}
