package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Dacosmicgiant/CodeCraft-backend/internal/content"
)

// Common validation errors for Lesson.
var (
	ErrEmptyLessonID      = errors.New("lesson ID cannot be empty")
	ErrEmptyLessonTitle   = errors.New("lesson title cannot be empty")
	ErrInvalidLessonOrder = errors.New("lesson order must be at least 1")
	ErrInvalidDuration    = errors.New("lesson duration must be at least 1 minute")
)

// Lesson is one unit of a tutorial. It owns exactly one canonical content
// document; Order is its display position, unique within the tutorial.
type Lesson struct {
	ID          uuid.UUID        `json:"id"`
	TutorialID  uuid.UUID        `json:"tutorial_id"`
	Title       string           `json:"title"`
	Order       int              `json:"order"`
	Duration    int              `json:"duration"` // minutes
	Content     content.Document `json:"content"`
	IsPublished bool             `json:"is_published"`
	PublishedAt *time.Time       `json:"published_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// NewLesson creates a new unpublished Lesson. The caller provides content
// that has already been through the sanitization pipeline.
func NewLesson(tutorialID uuid.UUID, title string, order, duration int, doc content.Document) (*Lesson, error) {
	lesson := &Lesson{
		ID:         uuid.New(),
		TutorialID: tutorialID,
		Title:      strings.TrimSpace(title),
		Order:      order,
		Duration:   duration,
		Content:    doc,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}

	if err := lesson.Validate(); err != nil {
		return nil, err
	}

	return lesson, nil
}

// Validate checks if the Lesson has valid data.
func (l *Lesson) Validate() error {
	if l.ID == uuid.Nil {
		return ErrEmptyLessonID
	}
	if l.TutorialID == uuid.Nil {
		return ErrEmptyTutorialID
	}
	if l.Title == "" {
		return ErrEmptyLessonTitle
	}
	if l.Order < 1 {
		return ErrInvalidLessonOrder
	}
	if l.Duration < 1 {
		return ErrInvalidDuration
	}
	return nil
}

// SetPublished flips the publish flag. PublishedAt is set only on the
// transition to published and cleared when unpublishing.
func (l *Lesson) SetPublished(published bool) {
	if published && !l.IsPublished {
		now := time.Now().UTC()
		l.PublishedAt = &now
	}
	if !published {
		l.PublishedAt = nil
	}
	l.IsPublished = published
	l.UpdatedAt = time.Now().UTC()
}
