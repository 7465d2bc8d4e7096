package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Dacosmicgiant/CodeCraft-backend/internal/domain"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/platform/logger"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/store"
)

// CatalogServiceError is a custom error type for catalog service errors.
type CatalogServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for CatalogServiceError.
func (e *CatalogServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("catalog service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *CatalogServiceError) Unwrap() error {
	return e.Err
}

// UpdateDomainInput carries a partial domain update.
type UpdateDomainInput struct {
	Name        *string
	Description *string
}

// UpdateTechnologyInput carries a partial technology update.
type UpdateTechnologyInput struct {
	Name        *string
	Description *string
}

// UpdateTutorialInput carries a partial tutorial update.
type UpdateTutorialInput struct {
	Title       *string
	Description *string
	Difficulty  *domain.Difficulty
	IsPublished *bool
}

// CatalogService provides CRUD operations over the catalog hierarchy:
// domains contain technologies, technologies contain tutorials. Renaming
// a domain or technology re-derives its slug.
type CatalogService interface {
	CreateDomain(ctx context.Context, name, description string) (*domain.Domain, error)
	GetDomain(ctx context.Context, id uuid.UUID) (*domain.Domain, error)
	GetDomainBySlug(ctx context.Context, slug string) (*domain.Domain, error)
	ListDomains(ctx context.Context) ([]*domain.Domain, error)
	UpdateDomain(ctx context.Context, id uuid.UUID, input UpdateDomainInput) (*domain.Domain, error)
	DeleteDomain(ctx context.Context, id uuid.UUID) error

	CreateTechnology(ctx context.Context, domainID uuid.UUID, name, description string) (*domain.Technology, error)
	GetTechnology(ctx context.Context, id uuid.UUID) (*domain.Technology, error)
	GetTechnologyBySlug(ctx context.Context, slug string) (*domain.Technology, error)
	ListTechnologies(ctx context.Context, domainID uuid.UUID) ([]*domain.Technology, error)
	UpdateTechnology(ctx context.Context, id uuid.UUID, input UpdateTechnologyInput) (*domain.Technology, error)
	DeleteTechnology(ctx context.Context, id uuid.UUID) error

	CreateTutorial(ctx context.Context, technologyID uuid.UUID, title, description string, difficulty domain.Difficulty) (*domain.Tutorial, error)
	GetTutorial(ctx context.Context, id uuid.UUID) (*domain.Tutorial, error)
	// ListTutorials filters out unpublished tutorials unless
	// includeUnpublished is set.
	ListTutorials(ctx context.Context, technologyID uuid.UUID, includeUnpublished bool) ([]*domain.Tutorial, error)
	UpdateTutorial(ctx context.Context, id uuid.UUID, input UpdateTutorialInput) (*domain.Tutorial, error)
	DeleteTutorial(ctx context.Context, id uuid.UUID) error
}

// catalogServiceImpl implements the CatalogService interface
type catalogServiceImpl struct {
	domainStore     store.DomainStore
	technologyStore store.TechnologyStore
	tutorialStore   store.TutorialStore
	logger          *slog.Logger
}

// NewCatalogService creates a new CatalogService.
// It returns an error if any of the required stores are nil.
func NewCatalogService(
	domainStore store.DomainStore,
	technologyStore store.TechnologyStore,
	tutorialStore store.TutorialStore,
	logger *slog.Logger,
) (CatalogService, error) {
	if domainStore == nil {
		return nil, fmt.Errorf("%w: domainStore cannot be nil", domain.ErrValidation)
	}
	if technologyStore == nil {
		return nil, fmt.Errorf("%w: technologyStore cannot be nil", domain.ErrValidation)
	}
	if tutorialStore == nil {
		return nil, fmt.Errorf("%w: tutorialStore cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &catalogServiceImpl{
		domainStore:     domainStore,
		technologyStore: technologyStore,
		tutorialStore:   tutorialStore,
		logger:          logger.With(slog.String("component", "catalog_service")),
	}, nil
}

// CreateDomain implements CatalogService.CreateDomain
func (s *catalogServiceImpl) CreateDomain(ctx context.Context, name, description string) (*domain.Domain, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	d, err := domain.NewDomain(name, description)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.domainStore.Create(ctx, d); err != nil {
		log.Error("failed to create domain",
			slog.String("slug", d.Slug),
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("created domain",
		slog.String("domain_id", d.ID.String()),
		slog.String("slug", d.Slug))
	return d, nil
}

// GetDomain implements CatalogService.GetDomain
func (s *catalogServiceImpl) GetDomain(ctx context.Context, id uuid.UUID) (*domain.Domain, error) {
	return s.domainStore.GetByID(ctx, id)
}

// GetDomainBySlug implements CatalogService.GetDomainBySlug
func (s *catalogServiceImpl) GetDomainBySlug(ctx context.Context, slug string) (*domain.Domain, error) {
	return s.domainStore.GetBySlug(ctx, slug)
}

// ListDomains implements CatalogService.ListDomains
func (s *catalogServiceImpl) ListDomains(ctx context.Context) ([]*domain.Domain, error) {
	return s.domainStore.List(ctx)
}

// UpdateDomain implements CatalogService.UpdateDomain
func (s *catalogServiceImpl) UpdateDomain(ctx context.Context, id uuid.UUID, input UpdateDomainInput) (*domain.Domain, error) {
	d, err := s.domainStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		d.Name = *input.Name
		d.Slug = domain.Slugify(*input.Name)
	}
	if input.Description != nil {
		d.Description = *input.Description
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.domainStore.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// DeleteDomain implements CatalogService.DeleteDomain
func (s *catalogServiceImpl) DeleteDomain(ctx context.Context, id uuid.UUID) error {
	return s.domainStore.Delete(ctx, id)
}

// CreateTechnology implements CatalogService.CreateTechnology
func (s *catalogServiceImpl) CreateTechnology(ctx context.Context, domainID uuid.UUID, name, description string) (*domain.Technology, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.domainStore.GetByID(ctx, domainID); err != nil {
		return nil, err
	}

	tech, err := domain.NewTechnology(domainID, name, description)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.technologyStore.Create(ctx, tech); err != nil {
		log.Error("failed to create technology",
			slog.String("slug", tech.Slug),
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("created technology",
		slog.String("technology_id", tech.ID.String()),
		slog.String("slug", tech.Slug))
	return tech, nil
}

// GetTechnology implements CatalogService.GetTechnology
func (s *catalogServiceImpl) GetTechnology(ctx context.Context, id uuid.UUID) (*domain.Technology, error) {
	return s.technologyStore.GetByID(ctx, id)
}

// GetTechnologyBySlug implements CatalogService.GetTechnologyBySlug
func (s *catalogServiceImpl) GetTechnologyBySlug(ctx context.Context, slug string) (*domain.Technology, error) {
	return s.technologyStore.GetBySlug(ctx, slug)
}

// ListTechnologies implements CatalogService.ListTechnologies
func (s *catalogServiceImpl) ListTechnologies(ctx context.Context, domainID uuid.UUID) ([]*domain.Technology, error) {
	if _, err := s.domainStore.GetByID(ctx, domainID); err != nil {
		return nil, err
	}
	return s.technologyStore.ListByDomain(ctx, domainID)
}

// UpdateTechnology implements CatalogService.UpdateTechnology
func (s *catalogServiceImpl) UpdateTechnology(ctx context.Context, id uuid.UUID, input UpdateTechnologyInput) (*domain.Technology, error) {
	tech, err := s.technologyStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		tech.Name = *input.Name
		tech.Slug = domain.Slugify(*input.Name)
	}
	if input.Description != nil {
		tech.Description = *input.Description
	}

	if err := tech.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.technologyStore.Update(ctx, tech); err != nil {
		return nil, err
	}
	return tech, nil
}

// DeleteTechnology implements CatalogService.DeleteTechnology
func (s *catalogServiceImpl) DeleteTechnology(ctx context.Context, id uuid.UUID) error {
	return s.technologyStore.Delete(ctx, id)
}

// CreateTutorial implements CatalogService.CreateTutorial
func (s *catalogServiceImpl) CreateTutorial(ctx context.Context, technologyID uuid.UUID, title, description string, difficulty domain.Difficulty) (*domain.Tutorial, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.technologyStore.GetByID(ctx, technologyID); err != nil {
		return nil, err
	}

	tutorial, err := domain.NewTutorial(technologyID, title, description, difficulty)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.tutorialStore.Create(ctx, tutorial); err != nil {
		log.Error("failed to create tutorial",
			slog.String("technology_id", technologyID.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("created tutorial",
		slog.String("tutorial_id", tutorial.ID.String()),
		slog.String("technology_id", technologyID.String()))
	return tutorial, nil
}

// GetTutorial implements CatalogService.GetTutorial
func (s *catalogServiceImpl) GetTutorial(ctx context.Context, id uuid.UUID) (*domain.Tutorial, error) {
	return s.tutorialStore.GetByID(ctx, id)
}

// ListTutorials implements CatalogService.ListTutorials
func (s *catalogServiceImpl) ListTutorials(ctx context.Context, technologyID uuid.UUID, includeUnpublished bool) ([]*domain.Tutorial, error) {
	if _, err := s.technologyStore.GetByID(ctx, technologyID); err != nil {
		return nil, err
	}
	return s.tutorialStore.ListByTechnology(ctx, technologyID, !includeUnpublished)
}

// UpdateTutorial implements CatalogService.UpdateTutorial
func (s *catalogServiceImpl) UpdateTutorial(ctx context.Context, id uuid.UUID, input UpdateTutorialInput) (*domain.Tutorial, error) {
	tutorial, err := s.tutorialStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		tutorial.Title = *input.Title
	}
	if input.Description != nil {
		tutorial.Description = *input.Description
	}
	if input.Difficulty != nil {
		tutorial.Difficulty = *input.Difficulty
	}
	if input.IsPublished != nil {
		tutorial.IsPublished = *input.IsPublished
	}

	if err := tutorial.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.tutorialStore.Update(ctx, tutorial); err != nil {
		return nil, err
	}
	return tutorial, nil
}

// DeleteTutorial implements CatalogService.DeleteTutorial
func (s *catalogServiceImpl) DeleteTutorial(ctx context.Context, id uuid.UUID) error {
	return s.tutorialStore.Delete(ctx, id)
}
