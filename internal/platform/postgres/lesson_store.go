package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Dacosmicgiant/CodeCraft-backend/internal/content"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/domain"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/platform/logger"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/store"
)

// PostgresLessonStore implements the store.LessonStore interface
// using a PostgreSQL database as the storage backend. Lesson content is
// stored as a JSONB column holding the canonical document.
type PostgresLessonStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLessonStore creates a new PostgreSQL implementation of the
// LessonStore interface. If logger is nil, a default logger is used.
func NewPostgresLessonStore(db store.DBTX, logger *slog.Logger) *PostgresLessonStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLessonStore{
		db:     db,
		logger: logger.With(slog.String("component", "lesson_store")),
	}
}

// Ensure PostgresLessonStore implements store.LessonStore interface
var _ store.LessonStore = (*PostgresLessonStore)(nil)

// WithTx implements store.LessonStore.WithTx
func (s *PostgresLessonStore) WithTx(tx *sql.Tx) store.LessonStore {
	return &PostgresLessonStore{
		db:     tx,
		logger: s.logger,
	}
}

const lessonColumns = `id, tutorial_id, title, position, duration, content, is_published, published_at, created_at, updated_at`

// Create implements store.LessonStore.Create
func (s *PostgresLessonStore) Create(ctx context.Context, lesson *domain.Lesson) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := lesson.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	contentJSON, err := json.Marshal(lesson.Content)
	if err != nil {
		return fmt.Errorf("failed to marshal lesson content: %w", err)
	}

	query := `
		INSERT INTO lessons (` + lessonColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = s.db.ExecContext(ctx, query,
		lesson.ID,
		lesson.TutorialID,
		lesson.Title,
		lesson.Order,
		lesson.Duration,
		contentJSON,
		lesson.IsPublished,
		lesson.PublishedAt,
		lesson.CreatedAt,
		lesson.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to insert lesson",
			slog.String("lesson_id", lesson.ID.String()),
			slog.String("tutorial_id", lesson.TutorialID.String()),
			slog.Int("order", lesson.Order),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.LessonStore.GetByID
func (s *PostgresLessonStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`
	return s.scanLesson(s.db.QueryRowContext(ctx, query, id))
}

// FindByOrder implements store.LessonStore.FindByOrder
func (s *PostgresLessonStore) FindByOrder(ctx context.Context, tutorialID uuid.UUID, order int) (*domain.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE tutorial_id = $1 AND position = $2`
	return s.scanLesson(s.db.QueryRowContext(ctx, query, tutorialID, order))
}

// FindByTutorial implements store.LessonStore.FindByTutorial
func (s *PostgresLessonStore) FindByTutorial(ctx context.Context, tutorialID uuid.UUID) ([]*domain.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE tutorial_id = $1
		ORDER BY position ASC
	`

	rows, err := s.db.QueryContext(ctx, query, tutorialID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	lessons := []*domain.Lesson{}
	for rows.Next() {
		lesson, err := s.scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return lessons, nil
}

// MaxOrder implements store.LessonStore.MaxOrder
func (s *PostgresLessonStore) MaxOrder(ctx context.Context, tutorialID uuid.UUID) (int, error) {
	var max int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), 0) FROM lessons WHERE tutorial_id = $1`,
		tutorialID,
	).Scan(&max)
	if err != nil {
		return 0, MapError(err)
	}
	return max, nil
}

// Update implements store.LessonStore.Update
func (s *PostgresLessonStore) Update(ctx context.Context, lesson *domain.Lesson) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := lesson.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	contentJSON, err := json.Marshal(lesson.Content)
	if err != nil {
		return fmt.Errorf("failed to marshal lesson content: %w", err)
	}

	lesson.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE lessons
		SET title = $1, position = $2, duration = $3, content = $4,
		    is_published = $5, published_at = $6, updated_at = $7
		WHERE id = $8
	`

	result, err := s.db.ExecContext(ctx, query,
		lesson.Title,
		lesson.Order,
		lesson.Duration,
		contentJSON,
		lesson.IsPublished,
		lesson.PublishedAt,
		lesson.UpdatedAt,
		lesson.ID,
	)
	if err != nil {
		log.Error("failed to update lesson",
			slog.String("lesson_id", lesson.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrLessonNotFound)
}

// ReplaceContent implements store.LessonStore.ReplaceContent
func (s *PostgresLessonStore) ReplaceContent(ctx context.Context, id uuid.UUID, doc content.Document) error {
	contentJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal lesson content: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE lessons SET content = $1, updated_at = $2 WHERE id = $3`,
		contentJSON, time.Now().UTC(), id)
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrLessonNotFound)
}

// Delete implements store.LessonStore.Delete
func (s *PostgresLessonStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrLessonNotFound)
}

// BulkUpdateOrders implements store.LessonStore.BulkUpdateOrders.
// All pairs are applied in a single UPDATE statement so the batch is
// atomic even outside an explicit transaction. The unique constraint on
// (tutorial_id, position) is DEFERRABLE INITIALLY DEFERRED, so swaps
// within one batch do not trip it mid-statement.
func (s *PostgresLessonStore) BulkUpdateOrders(ctx context.Context, tutorialID uuid.UUID, updates []store.OrderUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	var sb strings.Builder
	args := make([]any, 0, len(updates)*2+2)
	args = append(args, tutorialID, time.Now().UTC())
	for i, u := range updates {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "($%d::uuid, $%d::int)", len(args)+1, len(args)+2)
		args = append(args, u.LessonID, u.Order)
	}

	query := `
		UPDATE lessons AS l
		SET position = v.position, updated_at = $2
		FROM (VALUES ` + sb.String() + `) AS v(id, position)
		WHERE l.id = v.id AND l.tutorial_id = $1
	`

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to bulk update lesson orders",
			slog.String("tutorial_id", tutorialID.String()),
			slog.Int("count", len(updates)),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected != int64(len(updates)) {
		// Some pair referenced a lesson that does not exist or belongs to
		// another tutorial. Callers run this inside a transaction, so the
		// error rolls back the rows that did match.
		return fmt.Errorf("%w: reorder matched %d of %d lessons",
			store.ErrLessonNotFound, rowsAffected, len(updates))
	}

	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresLessonStore) scanLesson(row rowScanner) (*domain.Lesson, error) {
	var (
		lesson      domain.Lesson
		contentJSON []byte
		publishedAt sql.NullTime
		createdAt   time.Time
		updatedAt   time.Time
	)

	err := row.Scan(
		&lesson.ID,
		&lesson.TutorialID,
		&lesson.Title,
		&lesson.Order,
		&lesson.Duration,
		&contentJSON,
		&lesson.IsPublished,
		&publishedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			return nil, store.ErrLessonNotFound
		}
		return nil, mapped
	}

	if err := json.Unmarshal(contentJSON, &lesson.Content); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lesson content: %w", err)
	}

	if publishedAt.Valid {
		t := publishedAt.Time.UTC()
		lesson.PublishedAt = &t
	}
	lesson.CreatedAt = createdAt.UTC()
	lesson.UpdatedAt = updatedAt.UTC()

	return &lesson, nil
}
