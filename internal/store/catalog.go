package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/Dacosmicgiant/CodeCraft-backend/internal/domain"
)

// DomainStore defines the interface for domain (subject area) persistence.
type DomainStore interface {
	// Create saves a new domain. Returns ErrSlugExists on a slug collision.
	Create(ctx context.Context, d *domain.Domain) error

	// GetByID retrieves a domain by ID. Returns ErrDomainNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Domain, error)

	// GetBySlug retrieves a domain by slug. Returns ErrDomainNotFound if absent.
	GetBySlug(ctx context.Context, slug string) (*domain.Domain, error)

	// List retrieves all domains ordered by name.
	List(ctx context.Context) ([]*domain.Domain, error)

	// Update saves changes to an existing domain.
	Update(ctx context.Context, d *domain.Domain) error

	// Delete removes a domain by ID. Technologies beneath it are removed
	// by the database cascade.
	Delete(ctx context.Context, id uuid.UUID) error
}

// TechnologyStore defines the interface for technology persistence.
type TechnologyStore interface {
	// Create saves a new technology. Returns ErrSlugExists on a slug
	// collision and ErrInvalidEntity when the parent domain is missing.
	Create(ctx context.Context, tech *domain.Technology) error

	// GetByID retrieves a technology by ID. Returns ErrTechnologyNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Technology, error)

	// GetBySlug retrieves a technology by slug. Returns ErrTechnologyNotFound if absent.
	GetBySlug(ctx context.Context, slug string) (*domain.Technology, error)

	// ListByDomain retrieves all technologies of a domain ordered by name.
	ListByDomain(ctx context.Context, domainID uuid.UUID) ([]*domain.Technology, error)

	// Update saves changes to an existing technology.
	Update(ctx context.Context, tech *domain.Technology) error

	// Delete removes a technology by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

// TutorialStore defines the interface for tutorial persistence.
type TutorialStore interface {
	// Create saves a new tutorial. Returns ErrInvalidEntity when the
	// parent technology is missing.
	Create(ctx context.Context, tutorial *domain.Tutorial) error

	// GetByID retrieves a tutorial by ID. Returns ErrTutorialNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tutorial, error)

	// ListByTechnology retrieves tutorials of a technology, newest first.
	// When publishedOnly is set, unpublished tutorials are filtered out.
	ListByTechnology(ctx context.Context, technologyID uuid.UUID, publishedOnly bool) ([]*domain.Tutorial, error)

	// Update saves changes to an existing tutorial.
	Update(ctx context.Context, tutorial *domain.Tutorial) error

	// Delete removes a tutorial by ID. Its lessons are removed by the
	// database cascade.
	Delete(ctx context.Context, id uuid.UUID) error
}
