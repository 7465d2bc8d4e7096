package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dacosmicgiant/CodeCraft-backend/internal/domain"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/store"
)

// fakeDomainStore is an in-memory DomainStore for service tests.
type fakeDomainStore struct {
	domains map[uuid.UUID]*domain.Domain
}

func newFakeDomainStore() *fakeDomainStore {
	return &fakeDomainStore{domains: make(map[uuid.UUID]*domain.Domain)}
}

func (f *fakeDomainStore) Create(ctx context.Context, d *domain.Domain) error {
	for _, existing := range f.domains {
		if existing.Slug == d.Slug {
			return store.ErrSlugExists
		}
	}
	cp := *d
	f.domains[d.ID] = &cp
	return nil
}

func (f *fakeDomainStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Domain, error) {
	d, ok := f.domains[id]
	if !ok {
		return nil, store.ErrDomainNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDomainStore) GetBySlug(ctx context.Context, slug string) (*domain.Domain, error) {
	for _, d := range f.domains {
		if d.Slug == slug {
			cp := *d
			return &cp, nil
		}
	}
	return nil, store.ErrDomainNotFound
}

func (f *fakeDomainStore) List(ctx context.Context) ([]*domain.Domain, error) {
	out := []*domain.Domain{}
	for _, d := range f.domains {
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeDomainStore) Update(ctx context.Context, d *domain.Domain) error {
	if _, ok := f.domains[d.ID]; !ok {
		return store.ErrDomainNotFound
	}
	cp := *d
	f.domains[d.ID] = &cp
	return nil
}

func (f *fakeDomainStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.domains[id]; !ok {
		return store.ErrDomainNotFound
	}
	delete(f.domains, id)
	return nil
}

// fakeTechnologyStore is an in-memory TechnologyStore for service tests.
type fakeTechnologyStore struct {
	technologies map[uuid.UUID]*domain.Technology
}

func newFakeTechnologyStore() *fakeTechnologyStore {
	return &fakeTechnologyStore{technologies: make(map[uuid.UUID]*domain.Technology)}
}

func (f *fakeTechnologyStore) Create(ctx context.Context, tech *domain.Technology) error {
	for _, existing := range f.technologies {
		if existing.Slug == tech.Slug {
			return store.ErrSlugExists
		}
	}
	cp := *tech
	f.technologies[tech.ID] = &cp
	return nil
}

func (f *fakeTechnologyStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Technology, error) {
	tech, ok := f.technologies[id]
	if !ok {
		return nil, store.ErrTechnologyNotFound
	}
	cp := *tech
	return &cp, nil
}

func (f *fakeTechnologyStore) GetBySlug(ctx context.Context, slug string) (*domain.Technology, error) {
	for _, tech := range f.technologies {
		if tech.Slug == slug {
			cp := *tech
			return &cp, nil
		}
	}
	return nil, store.ErrTechnologyNotFound
}

func (f *fakeTechnologyStore) ListByDomain(ctx context.Context, domainID uuid.UUID) ([]*domain.Technology, error) {
	out := []*domain.Technology{}
	for _, tech := range f.technologies {
		if tech.DomainID == domainID {
			cp := *tech
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeTechnologyStore) Update(ctx context.Context, tech *domain.Technology) error {
	if _, ok := f.technologies[tech.ID]; !ok {
		return store.ErrTechnologyNotFound
	}
	cp := *tech
	f.technologies[tech.ID] = &cp
	return nil
}

func (f *fakeTechnologyStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.technologies[id]; !ok {
		return store.ErrTechnologyNotFound
	}
	delete(f.technologies, id)
	return nil
}

type catalogFixture struct {
	svc          CatalogService
	domains      *fakeDomainStore
	technologies *fakeTechnologyStore
	tutorials    *fakeTutorialStore
}

func newCatalogFixture(t *testing.T) catalogFixture {
	t.Helper()

	domains := newFakeDomainStore()
	technologies := newFakeTechnologyStore()
	tutorials := newFakeTutorialStore()

	svc, err := NewCatalogService(domains, technologies, tutorials, nil)
	require.NoError(t, err)

	return catalogFixture{svc: svc, domains: domains, technologies: technologies, tutorials: tutorials}
}

func TestCreateDomain(t *testing.T) {
	t.Parallel()

	t.Run("derives slug from name", func(t *testing.T) {
		t.Parallel()
		fix := newCatalogFixture(t)

		d, err := fix.svc.CreateDomain(context.Background(), "Web Development", "Building for the web")
		require.NoError(t, err)
		assert.Equal(t, "Web Development", d.Name)
		assert.Equal(t, "web-development", d.Slug)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		t.Parallel()
		fix := newCatalogFixture(t)

		_, err := fix.svc.CreateDomain(context.Background(), "Web Development", "")
		require.NoError(t, err)

		_, err = fix.svc.CreateDomain(context.Background(), "Web   Development!", "")
		assert.ErrorIs(t, err, store.ErrSlugExists)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		t.Parallel()
		fix := newCatalogFixture(t)

		_, err := fix.svc.CreateDomain(context.Background(), "   ", "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestUpdateDomain(t *testing.T) {
	t.Parallel()

	fix := newCatalogFixture(t)

	d, err := fix.svc.CreateDomain(context.Background(), "Web Development", "old description")
	require.NoError(t, err)

	t.Run("rename re-derives the slug", func(t *testing.T) {
		name := "Mobile Development"
		updated, err := fix.svc.UpdateDomain(context.Background(), d.ID, UpdateDomainInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Mobile Development", updated.Name)
		assert.Equal(t, "mobile-development", updated.Slug)
	})

	t.Run("description only keeps the slug", func(t *testing.T) {
		desc := "new description"
		updated, err := fix.svc.UpdateDomain(context.Background(), d.ID, UpdateDomainInput{Description: &desc})
		require.NoError(t, err)
		assert.Equal(t, "new description", updated.Description)
		assert.Equal(t, "mobile-development", updated.Slug)
	})

	t.Run("unknown domain", func(t *testing.T) {
		_, err := fix.svc.UpdateDomain(context.Background(), uuid.New(), UpdateDomainInput{})
		assert.ErrorIs(t, err, store.ErrDomainNotFound)
	})
}

func TestDomainLookups(t *testing.T) {
	t.Parallel()

	fix := newCatalogFixture(t)

	d, err := fix.svc.CreateDomain(context.Background(), "Data Science", "")
	require.NoError(t, err)

	bySlug, err := fix.svc.GetDomainBySlug(context.Background(), "data-science")
	require.NoError(t, err)
	assert.Equal(t, d.ID, bySlug.ID)

	list, err := fix.svc.ListDomains(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, fix.svc.DeleteDomain(context.Background(), d.ID))
	_, err = fix.svc.GetDomain(context.Background(), d.ID)
	assert.ErrorIs(t, err, store.ErrDomainNotFound)
}

func TestCreateTechnology(t *testing.T) {
	t.Parallel()

	t.Run("created under existing domain", func(t *testing.T) {
		t.Parallel()
		fix := newCatalogFixture(t)

		d, err := fix.svc.CreateDomain(context.Background(), "Web Development", "")
		require.NoError(t, err)

		tech, err := fix.svc.CreateTechnology(context.Background(), d.ID, "React", "UI library")
		require.NoError(t, err)
		assert.Equal(t, d.ID, tech.DomainID)
		assert.Equal(t, "react", tech.Slug)
	})

	t.Run("unknown domain rejected", func(t *testing.T) {
		t.Parallel()
		fix := newCatalogFixture(t)

		_, err := fix.svc.CreateTechnology(context.Background(), uuid.New(), "React", "")
		assert.ErrorIs(t, err, store.ErrDomainNotFound)
	})
}

func TestListTechnologies(t *testing.T) {
	t.Parallel()

	fix := newCatalogFixture(t)

	d, err := fix.svc.CreateDomain(context.Background(), "Web Development", "")
	require.NoError(t, err)
	other, err := fix.svc.CreateDomain(context.Background(), "Data Science", "")
	require.NoError(t, err)

	_, err = fix.svc.CreateTechnology(context.Background(), d.ID, "React", "")
	require.NoError(t, err)
	_, err = fix.svc.CreateTechnology(context.Background(), other.ID, "Pandas", "")
	require.NoError(t, err)

	list, err := fix.svc.ListTechnologies(context.Background(), d.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "react", list[0].Slug)

	_, err = fix.svc.ListTechnologies(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrDomainNotFound)
}

func TestCreateTutorial(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (catalogFixture, uuid.UUID) {
		fix := newCatalogFixture(t)
		d, err := fix.svc.CreateDomain(context.Background(), "Web Development", "")
		require.NoError(t, err)
		tech, err := fix.svc.CreateTechnology(context.Background(), d.ID, "React", "")
		require.NoError(t, err)
		return fix, tech.ID
	}

	t.Run("defaults to beginner and unpublished", func(t *testing.T) {
		t.Parallel()
		fix, techID := setup(t)

		tutorial, err := fix.svc.CreateTutorial(context.Background(), techID, "React Basics", "", "")
		require.NoError(t, err)
		assert.Equal(t, domain.DifficultyBeginner, tutorial.Difficulty)
		assert.False(t, tutorial.IsPublished)
	})

	t.Run("invalid difficulty rejected", func(t *testing.T) {
		t.Parallel()
		fix, techID := setup(t)

		_, err := fix.svc.CreateTutorial(context.Background(), techID, "React Basics", "", "expert")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown technology rejected", func(t *testing.T) {
		t.Parallel()
		fix, _ := setup(t)

		_, err := fix.svc.CreateTutorial(context.Background(), uuid.New(), "React Basics", "", "")
		assert.ErrorIs(t, err, store.ErrTechnologyNotFound)
	})
}

func TestListTutorialsVisibility(t *testing.T) {
	t.Parallel()

	fix := newCatalogFixture(t)
	d, err := fix.svc.CreateDomain(context.Background(), "Web Development", "")
	require.NoError(t, err)
	tech, err := fix.svc.CreateTechnology(context.Background(), d.ID, "React", "")
	require.NoError(t, err)

	published, err := fix.svc.CreateTutorial(context.Background(), tech.ID, "Published", "", "")
	require.NoError(t, err)
	_, err = fix.svc.CreateTutorial(context.Background(), tech.ID, "Draft", "", "")
	require.NoError(t, err)

	isPublished := true
	_, err = fix.svc.UpdateTutorial(context.Background(), published.ID, UpdateTutorialInput{IsPublished: &isPublished})
	require.NoError(t, err)

	t.Run("readers see published only", func(t *testing.T) {
		list, err := fix.svc.ListTutorials(context.Background(), tech.ID, false)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Published", list[0].Title)
	})

	t.Run("admins see drafts too", func(t *testing.T) {
		list, err := fix.svc.ListTutorials(context.Background(), tech.ID, true)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})
}

func TestUpdateTutorial(t *testing.T) {
	t.Parallel()

	fix := newCatalogFixture(t)
	d, err := fix.svc.CreateDomain(context.Background(), "Web Development", "")
	require.NoError(t, err)
	tech, err := fix.svc.CreateTechnology(context.Background(), d.ID, "React", "")
	require.NoError(t, err)
	tutorial, err := fix.svc.CreateTutorial(context.Background(), tech.ID, "React Basics", "", "")
	require.NoError(t, err)

	difficulty := domain.DifficultyAdvanced
	updated, err := fix.svc.UpdateTutorial(context.Background(), tutorial.ID, UpdateTutorialInput{
		Difficulty: &difficulty,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DifficultyAdvanced, updated.Difficulty)
	assert.Equal(t, "React Basics", updated.Title, "unset fields are untouched")

	bad := domain.Difficulty("expert")
	_, err = fix.svc.UpdateTutorial(context.Background(), tutorial.ID, UpdateTutorialInput{
		Difficulty: &bad,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
