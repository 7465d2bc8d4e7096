package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Dacosmicgiant/CodeCraft-backend/internal/domain"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/platform/logger"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/store"
)

// PostgresTutorialStore implements the store.TutorialStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTutorialStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTutorialStore creates a new PostgreSQL implementation of the
// TutorialStore interface. If logger is nil, a default logger is used.
func NewPostgresTutorialStore(db store.DBTX, logger *slog.Logger) *PostgresTutorialStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTutorialStore{
		db:     db,
		logger: logger.With(slog.String("component", "tutorial_store")),
	}
}

// Ensure PostgresTutorialStore implements store.TutorialStore interface
var _ store.TutorialStore = (*PostgresTutorialStore)(nil)

// Create implements store.TutorialStore.Create
func (s *PostgresTutorialStore) Create(ctx context.Context, tutorial *domain.Tutorial) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tutorial.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tutorials (id, technology_id, title, description, difficulty, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.ExecContext(ctx, query,
		tutorial.ID, tutorial.TechnologyID, tutorial.Title, tutorial.Description,
		tutorial.Difficulty, tutorial.IsPublished, tutorial.CreatedAt, tutorial.UpdatedAt)
	if err != nil {
		log.Error("failed to insert tutorial",
			slog.String("tutorial_id", tutorial.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.TutorialStore.GetByID
func (s *PostgresTutorialStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tutorial, error) {
	query := `
		SELECT id, technology_id, title, description, difficulty, is_published, created_at, updated_at
		FROM tutorials
		WHERE id = $1
	`

	var (
		tutorial  domain.Tutorial
		createdAt time.Time
		updatedAt time.Time
	)

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&tutorial.ID, &tutorial.TechnologyID, &tutorial.Title, &tutorial.Description,
		&tutorial.Difficulty, &tutorial.IsPublished, &createdAt, &updatedAt)
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			return nil, store.ErrTutorialNotFound
		}
		return nil, mapped
	}

	tutorial.CreatedAt = createdAt.UTC()
	tutorial.UpdatedAt = updatedAt.UTC()
	return &tutorial, nil
}

// ListByTechnology implements store.TutorialStore.ListByTechnology
func (s *PostgresTutorialStore) ListByTechnology(ctx context.Context, technologyID uuid.UUID, publishedOnly bool) ([]*domain.Tutorial, error) {
	query := `
		SELECT id, technology_id, title, description, difficulty, is_published, created_at, updated_at
		FROM tutorials
		WHERE technology_id = $1
	`
	args := []any{technologyID}
	if publishedOnly {
		query += ` AND is_published = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	tutorials := []*domain.Tutorial{}
	for rows.Next() {
		var (
			tutorial  domain.Tutorial
			createdAt time.Time
			updatedAt time.Time
		)
		if err := rows.Scan(&tutorial.ID, &tutorial.TechnologyID, &tutorial.Title,
			&tutorial.Description, &tutorial.Difficulty, &tutorial.IsPublished,
			&createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tutorial row: %w", err)
		}
		tutorial.CreatedAt = createdAt.UTC()
		tutorial.UpdatedAt = updatedAt.UTC()
		tutorials = append(tutorials, &tutorial)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return tutorials, nil
}

// Update implements store.TutorialStore.Update
func (s *PostgresTutorialStore) Update(ctx context.Context, tutorial *domain.Tutorial) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tutorial.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	tutorial.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE tutorials
		SET technology_id = $1, title = $2, description = $3, difficulty = $4,
		    is_published = $5, updated_at = $6
		WHERE id = $7
	`

	result, err := s.db.ExecContext(ctx, query,
		tutorial.TechnologyID, tutorial.Title, tutorial.Description,
		tutorial.Difficulty, tutorial.IsPublished, tutorial.UpdatedAt, tutorial.ID)
	if err != nil {
		log.Error("failed to update tutorial",
			slog.String("tutorial_id", tutorial.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrTutorialNotFound)
}

// Delete implements store.TutorialStore.Delete
func (s *PostgresTutorialStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tutorials WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrTutorialNotFound)
}
