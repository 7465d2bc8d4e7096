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

// PostgresTechnologyStore implements the store.TechnologyStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTechnologyStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTechnologyStore creates a new PostgreSQL implementation of the
// TechnologyStore interface. If logger is nil, a default logger is used.
func NewPostgresTechnologyStore(db store.DBTX, logger *slog.Logger) *PostgresTechnologyStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTechnologyStore{
		db:     db,
		logger: logger.With(slog.String("component", "technology_store")),
	}
}

// Ensure PostgresTechnologyStore implements store.TechnologyStore interface
var _ store.TechnologyStore = (*PostgresTechnologyStore)(nil)

// Create implements store.TechnologyStore.Create
func (s *PostgresTechnologyStore) Create(ctx context.Context, tech *domain.Technology) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tech.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO technologies (id, domain_id, name, slug, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.db.ExecContext(ctx, query,
		tech.ID, tech.DomainID, tech.Name, tech.Slug, tech.Description,
		tech.CreatedAt, tech.UpdatedAt)
	if err != nil {
		log.Error("failed to insert technology",
			slog.String("technology_id", tech.ID.String()),
			slog.String("slug", tech.Slug),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.TechnologyStore.GetByID
func (s *PostgresTechnologyStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Technology, error) {
	query := `
		SELECT id, domain_id, name, slug, description, created_at, updated_at
		FROM technologies
		WHERE id = $1
	`
	return s.scanTechnology(ctx, query, id)
}

// GetBySlug implements store.TechnologyStore.GetBySlug
func (s *PostgresTechnologyStore) GetBySlug(ctx context.Context, slug string) (*domain.Technology, error) {
	query := `
		SELECT id, domain_id, name, slug, description, created_at, updated_at
		FROM technologies
		WHERE slug = $1
	`
	return s.scanTechnology(ctx, query, slug)
}

// ListByDomain implements store.TechnologyStore.ListByDomain
func (s *PostgresTechnologyStore) ListByDomain(ctx context.Context, domainID uuid.UUID) ([]*domain.Technology, error) {
	query := `
		SELECT id, domain_id, name, slug, description, created_at, updated_at
		FROM technologies
		WHERE domain_id = $1
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, domainID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	techs := []*domain.Technology{}
	for rows.Next() {
		var (
			tech      domain.Technology
			createdAt time.Time
			updatedAt time.Time
		)
		if err := rows.Scan(&tech.ID, &tech.DomainID, &tech.Name, &tech.Slug,
			&tech.Description, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan technology row: %w", err)
		}
		tech.CreatedAt = createdAt.UTC()
		tech.UpdatedAt = updatedAt.UTC()
		techs = append(techs, &tech)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return techs, nil
}

// Update implements store.TechnologyStore.Update
func (s *PostgresTechnologyStore) Update(ctx context.Context, tech *domain.Technology) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tech.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	tech.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE technologies
		SET domain_id = $1, name = $2, slug = $3, description = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := s.db.ExecContext(ctx, query,
		tech.DomainID, tech.Name, tech.Slug, tech.Description, tech.UpdatedAt, tech.ID)
	if err != nil {
		log.Error("failed to update technology",
			slog.String("technology_id", tech.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrTechnologyNotFound)
}

// Delete implements store.TechnologyStore.Delete
func (s *PostgresTechnologyStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM technologies WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrTechnologyNotFound)
}

func (s *PostgresTechnologyStore) scanTechnology(ctx context.Context, query string, arg any) (*domain.Technology, error) {
	var (
		tech      domain.Technology
		createdAt time.Time
		updatedAt time.Time
	)

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&tech.ID, &tech.DomainID, &tech.Name, &tech.Slug, &tech.Description,
		&createdAt, &updatedAt)
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			return nil, store.ErrTechnologyNotFound
		}
		return nil, mapped
	}

	tech.CreatedAt = createdAt.UTC()
	tech.UpdatedAt = updatedAt.UTC()
	return &tech, nil
}
