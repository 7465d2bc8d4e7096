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

// PostgresDomainStore implements the store.DomainStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDomainStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDomainStore creates a new PostgreSQL implementation of the
// DomainStore interface. If logger is nil, a default logger is used.
func NewPostgresDomainStore(db store.DBTX, logger *slog.Logger) *PostgresDomainStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDomainStore{
		db:     db,
		logger: logger.With(slog.String("component", "domain_store")),
	}
}

// Ensure PostgresDomainStore implements store.DomainStore interface
var _ store.DomainStore = (*PostgresDomainStore)(nil)

// Create implements store.DomainStore.Create
func (s *PostgresDomainStore) Create(ctx context.Context, d *domain.Domain) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := d.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO domains (id, name, slug, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		d.ID, d.Name, d.Slug, d.Description, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		log.Error("failed to insert domain",
			slog.String("domain_id", d.ID.String()),
			slog.String("slug", d.Slug),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.DomainStore.GetByID
func (s *PostgresDomainStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Domain, error) {
	query := `
		SELECT id, name, slug, description, created_at, updated_at
		FROM domains
		WHERE id = $1
	`
	return s.scanDomain(ctx, query, id)
}

// GetBySlug implements store.DomainStore.GetBySlug
func (s *PostgresDomainStore) GetBySlug(ctx context.Context, slug string) (*domain.Domain, error) {
	query := `
		SELECT id, name, slug, description, created_at, updated_at
		FROM domains
		WHERE slug = $1
	`
	return s.scanDomain(ctx, query, slug)
}

// List implements store.DomainStore.List
func (s *PostgresDomainStore) List(ctx context.Context) ([]*domain.Domain, error) {
	query := `
		SELECT id, name, slug, description, created_at, updated_at
		FROM domains
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	domains := []*domain.Domain{}
	for rows.Next() {
		var (
			d         domain.Domain
			createdAt time.Time
			updatedAt time.Time
		)
		if err := rows.Scan(&d.ID, &d.Name, &d.Slug, &d.Description, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan domain row: %w", err)
		}
		d.CreatedAt = createdAt.UTC()
		d.UpdatedAt = updatedAt.UTC()
		domains = append(domains, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return domains, nil
}

// Update implements store.DomainStore.Update
func (s *PostgresDomainStore) Update(ctx context.Context, d *domain.Domain) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := d.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	d.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE domains
		SET name = $1, slug = $2, description = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := s.db.ExecContext(ctx, query,
		d.Name, d.Slug, d.Description, d.UpdatedAt, d.ID)
	if err != nil {
		log.Error("failed to update domain",
			slog.String("domain_id", d.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrDomainNotFound)
}

// Delete implements store.DomainStore.Delete
func (s *PostgresDomainStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM domains WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrDomainNotFound)
}

func (s *PostgresDomainStore) scanDomain(ctx context.Context, query string, arg any) (*domain.Domain, error) {
	var (
		d         domain.Domain
		createdAt time.Time
		updatedAt time.Time
	)

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&d.ID, &d.Name, &d.Slug, &d.Description, &createdAt, &updatedAt)
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			return nil, store.ErrDomainNotFound
		}
		return nil, mapped
	}

	d.CreatedAt = createdAt.UTC()
	d.UpdatedAt = updatedAt.UTC()
	return &d, nil
}
