package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/Dacosmicgiant/CodeCraft-backend/internal/content"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/domain"
)

// OrderUpdate is one (lesson, order) pair of a reorder batch.
type OrderUpdate struct {
	LessonID uuid.UUID
	Order    int
}

// LessonStore defines the interface for lesson data persistence.
type LessonStore interface {
	// Create saves a new lesson. Returns ErrOrderExists if the lesson's
	// order is already taken within its tutorial (unique constraint on
	// (tutorial_id, position)).
	Create(ctx context.Context, lesson *domain.Lesson) error

	// GetByID retrieves a lesson by its unique ID.
	// Returns ErrLessonNotFound if the lesson does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)

	// FindByTutorial retrieves all lessons of a tutorial ordered by their
	// display position. Returns an empty slice when there are none.
	FindByTutorial(ctx context.Context, tutorialID uuid.UUID) ([]*domain.Lesson, error)

	// FindByOrder retrieves the lesson occupying the given order within a
	// tutorial. Returns ErrLessonNotFound if the slot is free.
	FindByOrder(ctx context.Context, tutorialID uuid.UUID, order int) (*domain.Lesson, error)

	// MaxOrder returns the highest order in use within a tutorial, or 0
	// when the tutorial has no lessons.
	MaxOrder(ctx context.Context, tutorialID uuid.UUID) (int, error)

	// Update saves all mutable fields of an existing lesson.
	// Returns ErrLessonNotFound if the lesson does not exist and
	// ErrOrderExists on an order conflict.
	Update(ctx context.Context, lesson *domain.Lesson) error

	// ReplaceContent replaces a lesson's content document wholesale.
	// Returns ErrLessonNotFound if the lesson does not exist.
	ReplaceContent(ctx context.Context, id uuid.UUID, doc content.Document) error

	// Delete removes a lesson by its ID.
	// Returns ErrLessonNotFound if the lesson does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// BulkUpdateOrders applies a batch of order changes within one
	// tutorial as a single atomic unit: either every pair is applied or
	// none are. Pairs referencing lessons outside the tutorial fail the
	// whole batch with ErrLessonNotFound.
	BulkUpdateOrders(ctx context.Context, tutorialID uuid.UUID, updates []OrderUpdate) error

	// WithTx returns a LessonStore bound to the given transaction.
	WithTx(tx *sql.Tx) LessonStore
}
