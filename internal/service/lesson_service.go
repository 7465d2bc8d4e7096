package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Dacosmicgiant/CodeCraft-backend/internal/content"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/domain"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/platform/logger"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/store"
)

// LessonServiceError is a custom error type for lesson service errors.
type LessonServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for LessonServiceError.
func (e *LessonServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("lesson service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("lesson service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *LessonServiceError) Unwrap() error {
	return e.Err
}

// NewLessonServiceError creates a new LessonServiceError.
func NewLessonServiceError(operation, message string, err error) *LessonServiceError {
	return &LessonServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// ExportFormat selects the representation produced by ExportLesson.
type ExportFormat string

// Supported export formats.
const (
	ExportJSON ExportFormat = "json"
	ExportHTML ExportFormat = "html"
	ExportText ExportFormat = "text"
)

// ContentType returns the MIME type of the exported representation.
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportHTML:
		return "text/html; charset=utf-8"
	case ExportText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// CreateLessonInput carries the fields needed to create a lesson.
// Content is the raw editor document; it is sanitized, never rejected.
type CreateLessonInput struct {
	TutorialID uuid.UUID
	Title      string
	Order      int
	Duration   int
	Content    json.RawMessage
}

// UpdateLessonInput carries a partial lesson update. Nil fields are left
// unchanged; a non-nil Content replaces the document wholesale after
// sanitization.
type UpdateLessonInput struct {
	Title    *string
	Order    *int
	Duration *int
	Content  json.RawMessage
}

// LessonService provides lesson lifecycle operations. All content passing
// through mutating operations goes through the sanitization pipeline, so
// persisted documents are always canonical.
type LessonService interface {
	// CreateLesson sanitizes the content and creates a new unpublished
	// lesson. Returns store.ErrOrderExists if the order is taken within
	// the tutorial and store.ErrTutorialNotFound for an unknown tutorial.
	CreateLesson(ctx context.Context, input CreateLessonInput) (*domain.Lesson, error)

	// GetLesson retrieves a lesson by ID.
	GetLesson(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)

	// ListLessons retrieves the lessons of a tutorial in display order.
	// Unpublished lessons are filtered out unless includeUnpublished is set.
	ListLessons(ctx context.Context, tutorialID uuid.UUID, includeUnpublished bool) ([]*domain.Lesson, error)

	// UpdateLesson applies a partial update. Order uniqueness is
	// re-checked only when the order actually changes.
	UpdateLesson(ctx context.Context, id uuid.UUID, input UpdateLessonInput) (*domain.Lesson, error)

	// DeleteLesson removes a lesson.
	DeleteLesson(ctx context.Context, id uuid.UUID) error

	// DuplicateLesson creates an unpublished copy of a lesson at the end
	// of its tutorial with a "(Copy)" title suffix.
	DuplicateLesson(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)

	// ReorderLessons applies a batch of order changes within one tutorial
	// atomically. Either all pairs apply or none do.
	ReorderLessons(ctx context.Context, tutorialID uuid.UUID, updates []store.OrderUpdate) error

	// ExportLesson renders a lesson in the requested format. Returns
	// ErrInvalidExportFormat for formats other than json, html and text.
	ExportLesson(ctx context.Context, id uuid.UUID, format ExportFormat) ([]byte, error)

	// SetLessonPublished flips the publish flag. PublishedAt is set only
	// on the transition to published and cleared when unpublishing.
	SetLessonPublished(ctx context.Context, id uuid.UUID, published bool) (*domain.Lesson, error)
}

// lessonServiceImpl implements the LessonService interface
type lessonServiceImpl struct {
	db            *sql.DB
	lessonStore   store.LessonStore
	tutorialStore store.TutorialStore
	logger        *slog.Logger

	// runInTx wraps store.RunInTransaction; tests replace it to exercise
	// transactional paths without a live database.
	runInTx func(ctx context.Context, fn store.TxFn) error
}

// NewLessonService creates a new LessonService.
// It returns an error if any of the required dependencies are nil.
// db may be nil in tests that never exercise transactional operations.
func NewLessonService(
	db *sql.DB,
	lessonStore store.LessonStore,
	tutorialStore store.TutorialStore,
	logger *slog.Logger,
) (LessonService, error) {
	if lessonStore == nil {
		return nil, fmt.Errorf("%w: lessonStore cannot be nil", domain.ErrValidation)
	}
	if tutorialStore == nil {
		return nil, fmt.Errorf("%w: tutorialStore cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &lessonServiceImpl{
		db:            db,
		lessonStore:   lessonStore,
		tutorialStore: tutorialStore,
		logger:        logger.With(slog.String("component", "lesson_service")),
	}
	s.runInTx = func(ctx context.Context, fn store.TxFn) error {
		return store.RunInTransaction(ctx, s.db, fn)
	}
	return s, nil
}

// CreateLesson implements LessonService.CreateLesson
func (s *lessonServiceImpl) CreateLesson(ctx context.Context, input CreateLessonInput) (*domain.Lesson, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.tutorialStore.GetByID(ctx, input.TutorialID); err != nil {
		return nil, err
	}

	// Pre-check gives a clean conflict before touching the row; the unique
	// constraint still backs it up under concurrency.
	if _, err := s.lessonStore.FindByOrder(ctx, input.TutorialID, input.Order); err == nil {
		return nil, fmt.Errorf("%w: order %d in tutorial %s",
			store.ErrOrderExists, input.Order, input.TutorialID)
	} else if !store.IsNotFoundError(err) {
		return nil, NewLessonServiceError("create_lesson", "failed to check order", err)
	}

	doc := content.Sanitize(input.Content)

	lesson, err := domain.NewLesson(input.TutorialID, input.Title, input.Order, input.Duration, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.lessonStore.Create(ctx, lesson); err != nil {
		log.Error("failed to create lesson",
			slog.String("tutorial_id", input.TutorialID.String()),
			slog.Int("order", input.Order),
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("created lesson",
		slog.String("lesson_id", lesson.ID.String()),
		slog.String("tutorial_id", lesson.TutorialID.String()),
		slog.Int("order", lesson.Order))
	return lesson, nil
}

// GetLesson implements LessonService.GetLesson
func (s *lessonServiceImpl) GetLesson(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	return s.lessonStore.GetByID(ctx, id)
}

// ListLessons implements LessonService.ListLessons
func (s *lessonServiceImpl) ListLessons(ctx context.Context, tutorialID uuid.UUID, includeUnpublished bool) ([]*domain.Lesson, error) {
	if _, err := s.tutorialStore.GetByID(ctx, tutorialID); err != nil {
		return nil, err
	}

	lessons, err := s.lessonStore.FindByTutorial(ctx, tutorialID)
	if err != nil {
		return nil, err
	}

	if includeUnpublished {
		return lessons, nil
	}

	published := []*domain.Lesson{}
	for _, lesson := range lessons {
		if lesson.IsPublished {
			published = append(published, lesson)
		}
	}
	return published, nil
}

// UpdateLesson implements LessonService.UpdateLesson
func (s *lessonServiceImpl) UpdateLesson(ctx context.Context, id uuid.UUID, input UpdateLessonInput) (*domain.Lesson, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	lesson, err := s.lessonStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		lesson.Title = *input.Title
	}
	if input.Duration != nil {
		lesson.Duration = *input.Duration
	}
	if input.Order != nil && *input.Order != lesson.Order {
		if _, err := s.lessonStore.FindByOrder(ctx, lesson.TutorialID, *input.Order); err == nil {
			return nil, fmt.Errorf("%w: order %d in tutorial %s",
				store.ErrOrderExists, *input.Order, lesson.TutorialID)
		} else if !store.IsNotFoundError(err) {
			return nil, NewLessonServiceError("update_lesson", "failed to check order", err)
		}
		lesson.Order = *input.Order
	}
	if input.Content != nil {
		lesson.Content = content.Sanitize(input.Content)
	}

	if err := lesson.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.lessonStore.Update(ctx, lesson); err != nil {
		log.Error("failed to update lesson",
			slog.String("lesson_id", id.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	return lesson, nil
}

// DeleteLesson implements LessonService.DeleteLesson
func (s *lessonServiceImpl) DeleteLesson(ctx context.Context, id uuid.UUID) error {
	return s.lessonStore.Delete(ctx, id)
}

// DuplicateLesson implements LessonService.DuplicateLesson
// The copy re-enters the sanitization pipeline, lands at the end of the
// tutorial and is always unpublished, whatever the original's state.
func (s *lessonServiceImpl) DuplicateLesson(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	original, err := s.lessonStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	maxOrder, err := s.lessonStore.MaxOrder(ctx, original.TutorialID)
	if err != nil {
		return nil, NewLessonServiceError("duplicate_lesson", "failed to determine next order", err)
	}

	raw, err := original.Content.JSON()
	if err != nil {
		return nil, NewLessonServiceError("duplicate_lesson", "failed to encode content", err)
	}
	doc := content.Sanitize(raw)

	copyLesson, err := domain.NewLesson(
		original.TutorialID,
		original.Title+" (Copy)",
		maxOrder+1,
		original.Duration,
		doc,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.lessonStore.Create(ctx, copyLesson); err != nil {
		log.Error("failed to create lesson copy",
			slog.String("source_lesson_id", id.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("duplicated lesson",
		slog.String("source_lesson_id", id.String()),
		slog.String("lesson_id", copyLesson.ID.String()),
		slog.Int("order", copyLesson.Order))
	return copyLesson, nil
}

// ReorderLessons implements LessonService.ReorderLessons
// All pairs apply within a single transaction so a failed batch leaves
// every lesson at its previous position.
func (s *lessonServiceImpl) ReorderLessons(ctx context.Context, tutorialID uuid.UUID, updates []store.OrderUpdate) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(updates) == 0 {
		return ErrEmptyReorder
	}

	if _, err := s.tutorialStore.GetByID(ctx, tutorialID); err != nil {
		return err
	}

	for _, u := range updates {
		if u.Order < 1 {
			return fmt.Errorf("%w: order must be at least 1, got %d for lesson %s",
				domain.ErrValidation, u.Order, u.LessonID)
		}
	}

	seen := make(map[int]uuid.UUID, len(updates))
	for _, u := range updates {
		if other, ok := seen[u.Order]; ok {
			return fmt.Errorf("%w: order %d requested for lessons %s and %s",
				store.ErrOrderExists, u.Order, other, u.LessonID)
		}
		seen[u.Order] = u.LessonID
	}

	err := s.runInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.lessonStore.WithTx(tx).BulkUpdateOrders(ctx, tutorialID, updates)
	})
	if err != nil {
		log.Error("failed to reorder lessons",
			slog.String("tutorial_id", tutorialID.String()),
			slog.Int("count", len(updates)),
			slog.String("error", err.Error()))
		return err
	}

	log.Info("reordered lessons",
		slog.String("tutorial_id", tutorialID.String()),
		slog.Int("count", len(updates)))
	return nil
}

// ExportLesson implements LessonService.ExportLesson
func (s *lessonServiceImpl) ExportLesson(ctx context.Context, id uuid.UUID, format ExportFormat) ([]byte, error) {
	lesson, err := s.lessonStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	meta := content.LessonMeta{
		Title:    lesson.Title,
		Duration: lesson.Duration,
	}

	switch format {
	case ExportJSON:
		raw, err := lesson.Content.JSON()
		if err != nil {
			return nil, NewLessonServiceError("export_lesson", "failed to encode content", err)
		}
		return raw, nil
	case ExportHTML:
		return []byte(content.RenderHTML(lesson.Content, meta)), nil
	case ExportText:
		return []byte(content.RenderText(lesson.Content, meta)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidExportFormat, format)
	}
}

// SetLessonPublished implements LessonService.SetLessonPublished
func (s *lessonServiceImpl) SetLessonPublished(ctx context.Context, id uuid.UUID, published bool) (*domain.Lesson, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	lesson, err := s.lessonStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lesson.SetPublished(published)

	if err := s.lessonStore.Update(ctx, lesson); err != nil {
		log.Error("failed to update lesson publish state",
			slog.String("lesson_id", id.String()),
			slog.Bool("published", published),
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("changed lesson publish state",
		slog.String("lesson_id", id.String()),
		slog.Bool("published", published))
	return lesson, nil
}
