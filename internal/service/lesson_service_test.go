package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dacosmicgiant/CodeCraft-backend/internal/content"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/domain"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/store"
)

// fakeLessonStore is an in-memory LessonStore for service tests.
type fakeLessonStore struct {
	lessons map[uuid.UUID]*domain.Lesson

	findByOrderCalls int
	bulkUpdateCalls  int
}

func newFakeLessonStore() *fakeLessonStore {
	return &fakeLessonStore{lessons: make(map[uuid.UUID]*domain.Lesson)}
}

func (f *fakeLessonStore) Create(ctx context.Context, lesson *domain.Lesson) error {
	for _, l := range f.lessons {
		if l.TutorialID == lesson.TutorialID && l.Order == lesson.Order {
			return store.ErrOrderExists
		}
	}
	cp := *lesson
	f.lessons[lesson.ID] = &cp
	return nil
}

func (f *fakeLessonStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	l, ok := f.lessons[id]
	if !ok {
		return nil, store.ErrLessonNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLessonStore) FindByTutorial(ctx context.Context, tutorialID uuid.UUID) ([]*domain.Lesson, error) {
	max := 0
	for _, l := range f.lessons {
		if l.TutorialID == tutorialID && l.Order > max {
			max = l.Order
		}
	}
	out := []*domain.Lesson{}
	for order := 1; order <= max; order++ {
		for _, l := range f.lessons {
			if l.TutorialID == tutorialID && l.Order == order {
				cp := *l
				out = append(out, &cp)
			}
		}
	}
	return out, nil
}

func (f *fakeLessonStore) FindByOrder(ctx context.Context, tutorialID uuid.UUID, order int) (*domain.Lesson, error) {
	f.findByOrderCalls++
	for _, l := range f.lessons {
		if l.TutorialID == tutorialID && l.Order == order {
			cp := *l
			return &cp, nil
		}
	}
	return nil, store.ErrLessonNotFound
}

func (f *fakeLessonStore) MaxOrder(ctx context.Context, tutorialID uuid.UUID) (int, error) {
	max := 0
	for _, l := range f.lessons {
		if l.TutorialID == tutorialID && l.Order > max {
			max = l.Order
		}
	}
	return max, nil
}

func (f *fakeLessonStore) Update(ctx context.Context, lesson *domain.Lesson) error {
	if _, ok := f.lessons[lesson.ID]; !ok {
		return store.ErrLessonNotFound
	}
	cp := *lesson
	f.lessons[lesson.ID] = &cp
	return nil
}

func (f *fakeLessonStore) ReplaceContent(ctx context.Context, id uuid.UUID, doc content.Document) error {
	l, ok := f.lessons[id]
	if !ok {
		return store.ErrLessonNotFound
	}
	l.Content = doc
	return nil
}

func (f *fakeLessonStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.lessons[id]; !ok {
		return store.ErrLessonNotFound
	}
	delete(f.lessons, id)
	return nil
}

func (f *fakeLessonStore) BulkUpdateOrders(ctx context.Context, tutorialID uuid.UUID, updates []store.OrderUpdate) error {
	f.bulkUpdateCalls++
	for _, u := range updates {
		l, ok := f.lessons[u.LessonID]
		if !ok || l.TutorialID != tutorialID {
			return fmt.Errorf("%w: reorder", store.ErrLessonNotFound)
		}
	}
	for _, u := range updates {
		f.lessons[u.LessonID].Order = u.Order
	}
	return nil
}

func (f *fakeLessonStore) WithTx(tx *sql.Tx) store.LessonStore {
	return f
}

// fakeTutorialStore is an in-memory TutorialStore for service tests.
type fakeTutorialStore struct {
	tutorials map[uuid.UUID]*domain.Tutorial
}

func newFakeTutorialStore(ids ...uuid.UUID) *fakeTutorialStore {
	f := &fakeTutorialStore{tutorials: make(map[uuid.UUID]*domain.Tutorial)}
	for _, id := range ids {
		f.tutorials[id] = &domain.Tutorial{
			ID:           id,
			TechnologyID: uuid.New(),
			Title:        "Test Tutorial",
			Difficulty:   domain.DifficultyBeginner,
		}
	}
	return f
}

func (f *fakeTutorialStore) Create(ctx context.Context, t *domain.Tutorial) error {
	cp := *t
	f.tutorials[t.ID] = &cp
	return nil
}

func (f *fakeTutorialStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tutorial, error) {
	t, ok := f.tutorials[id]
	if !ok {
		return nil, store.ErrTutorialNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTutorialStore) ListByTechnology(ctx context.Context, technologyID uuid.UUID, publishedOnly bool) ([]*domain.Tutorial, error) {
	out := []*domain.Tutorial{}
	for _, t := range f.tutorials {
		if t.TechnologyID != technologyID {
			continue
		}
		if publishedOnly && !t.IsPublished {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeTutorialStore) Update(ctx context.Context, t *domain.Tutorial) error {
	if _, ok := f.tutorials[t.ID]; !ok {
		return store.ErrTutorialNotFound
	}
	cp := *t
	f.tutorials[t.ID] = &cp
	return nil
}

func (f *fakeTutorialStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.tutorials[id]; !ok {
		return store.ErrTutorialNotFound
	}
	delete(f.tutorials, id)
	return nil
}

// newTestLessonService wires a LessonService over the fakes with an
// in-process transaction runner.
func newTestLessonService(t *testing.T, lessons *fakeLessonStore, tutorials *fakeTutorialStore) LessonService {
	t.Helper()

	svc, err := NewLessonService(nil, lessons, tutorials, nil)
	require.NoError(t, err)

	impl := svc.(*lessonServiceImpl)
	impl.runInTx = func(ctx context.Context, fn store.TxFn) error {
		return fn(ctx, nil)
	}
	return svc
}

func validContent() json.RawMessage {
	return json.RawMessage(`{
		"time": 1700000000000,
		"blocks": [
			{"id": "b1", "type": "paragraph", "data": {"text": "hello"}}
		],
		"version": "2.28.2"
	}`)
}

func TestCreateLesson(t *testing.T) {
	t.Parallel()

	t.Run("creates sanitized unpublished lesson", func(t *testing.T) {
		t.Parallel()
		tutorialID := uuid.New()
		lessons := newFakeLessonStore()
		svc := newTestLessonService(t, lessons, newFakeTutorialStore(tutorialID))

		lesson, err := svc.CreateLesson(context.Background(), CreateLessonInput{
			TutorialID: tutorialID,
			Title:      "Intro",
			Order:      1,
			Duration:   5,
			Content:    validContent(),
		})
		require.NoError(t, err)
		assert.False(t, lesson.IsPublished)
		assert.Nil(t, lesson.PublishedAt)
		require.Len(t, lesson.Content.Blocks, 1)
		assert.Equal(t, content.TypeParagraph, lesson.Content.Blocks[0].Type)
	})

	t.Run("malformed content is sanitized, not rejected", func(t *testing.T) {
		t.Parallel()
		tutorialID := uuid.New()
		svc := newTestLessonService(t, newFakeLessonStore(), newFakeTutorialStore(tutorialID))

		lesson, err := svc.CreateLesson(context.Background(), CreateLessonInput{
			TutorialID: tutorialID,
			Title:      "Broken",
			Order:      1,
			Duration:   5,
			Content:    json.RawMessage(`"not an object"`),
		})
		require.NoError(t, err)
		assert.NotNil(t, lesson.Content.Blocks)
		assert.Empty(t, lesson.Content.Blocks)
	})

	t.Run("rejects duplicate order", func(t *testing.T) {
		t.Parallel()
		tutorialID := uuid.New()
		lessons := newFakeLessonStore()
		svc := newTestLessonService(t, lessons, newFakeTutorialStore(tutorialID))

		_, err := svc.CreateLesson(context.Background(), CreateLessonInput{
			TutorialID: tutorialID, Title: "First", Order: 1, Duration: 5,
		})
		require.NoError(t, err)

		_, err = svc.CreateLesson(context.Background(), CreateLessonInput{
			TutorialID: tutorialID, Title: "Second", Order: 1, Duration: 5,
		})
		assert.ErrorIs(t, err, store.ErrOrderExists)
	})

	t.Run("unknown tutorial", func(t *testing.T) {
		t.Parallel()
		svc := newTestLessonService(t, newFakeLessonStore(), newFakeTutorialStore())

		_, err := svc.CreateLesson(context.Background(), CreateLessonInput{
			TutorialID: uuid.New(), Title: "Orphan", Order: 1, Duration: 5,
		})
		assert.ErrorIs(t, err, store.ErrTutorialNotFound)
	})

	t.Run("rejects invalid fields", func(t *testing.T) {
		t.Parallel()
		tutorialID := uuid.New()
		svc := newTestLessonService(t, newFakeLessonStore(), newFakeTutorialStore(tutorialID))

		_, err := svc.CreateLesson(context.Background(), CreateLessonInput{
			TutorialID: tutorialID, Title: "", Order: 1, Duration: 5,
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestUpdateLesson(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (LessonService, *fakeLessonStore, *domain.Lesson) {
		tutorialID := uuid.New()
		lessons := newFakeLessonStore()
		svc := newTestLessonService(t, lessons, newFakeTutorialStore(tutorialID))

		lesson, err := svc.CreateLesson(context.Background(), CreateLessonInput{
			TutorialID: tutorialID, Title: "Original", Order: 1, Duration: 5,
			Content: validContent(),
		})
		require.NoError(t, err)
		return svc, lessons, lesson
	}

	t.Run("updates present fields only", func(t *testing.T) {
		t.Parallel()
		svc, _, lesson := setup(t)

		title := "Renamed"
		updated, err := svc.UpdateLesson(context.Background(), lesson.ID, UpdateLessonInput{
			Title: &title,
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, lesson.Order, updated.Order)
		assert.Equal(t, lesson.Duration, updated.Duration)
	})

	t.Run("order conflict on change", func(t *testing.T) {
		t.Parallel()
		svc, _, lesson := setup(t)

		_, err := svc.CreateLesson(context.Background(), CreateLessonInput{
			TutorialID: lesson.TutorialID, Title: "Second", Order: 2, Duration: 5,
		})
		require.NoError(t, err)

		order := 2
		_, err = svc.UpdateLesson(context.Background(), lesson.ID, UpdateLessonInput{
			Order: &order,
		})
		assert.ErrorIs(t, err, store.ErrOrderExists)
	})

	t.Run("same order skips uniqueness check", func(t *testing.T) {
		t.Parallel()
		svc, lessons, lesson := setup(t)

		calls := lessons.findByOrderCalls
		order := lesson.Order
		_, err := svc.UpdateLesson(context.Background(), lesson.ID, UpdateLessonInput{
			Order: &order,
		})
		require.NoError(t, err)
		assert.Equal(t, calls, lessons.findByOrderCalls)
	})

	t.Run("content replaced wholesale after sanitization", func(t *testing.T) {
		t.Parallel()
		svc, _, lesson := setup(t)

		updated, err := svc.UpdateLesson(context.Background(), lesson.ID, UpdateLessonInput{
			Content: json.RawMessage(`{"blocks": [{"type": "header", "data": {"text": "T", "level": 99}}]}`),
		})
		require.NoError(t, err)
		require.Len(t, updated.Content.Blocks, 1)
		header, ok := updated.Content.Blocks[0].Data.(content.HeaderData)
		require.True(t, ok)
		assert.Equal(t, 6, header.Level)
	})

	t.Run("unknown lesson", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := setup(t)

		_, err := svc.UpdateLesson(context.Background(), uuid.New(), UpdateLessonInput{})
		assert.ErrorIs(t, err, store.ErrLessonNotFound)
	})
}

func TestDuplicateLesson(t *testing.T) {
	t.Parallel()

	tutorialID := uuid.New()
	lessons := newFakeLessonStore()
	svc := newTestLessonService(t, lessons, newFakeTutorialStore(tutorialID))

	original, err := svc.CreateLesson(context.Background(), CreateLessonInput{
		TutorialID: tutorialID, Title: "Source", Order: 1, Duration: 7,
		Content: validContent(),
	})
	require.NoError(t, err)

	_, err = svc.SetLessonPublished(context.Background(), original.ID, true)
	require.NoError(t, err)

	_, err = svc.CreateLesson(context.Background(), CreateLessonInput{
		TutorialID: tutorialID, Title: "Filler", Order: 4, Duration: 3,
	})
	require.NoError(t, err)

	duplicate, err := svc.DuplicateLesson(context.Background(), original.ID)
	require.NoError(t, err)

	assert.Equal(t, "Source (Copy)", duplicate.Title)
	assert.Equal(t, 5, duplicate.Order, "copy lands at max order plus one")
	assert.Equal(t, 7, duplicate.Duration)
	assert.False(t, duplicate.IsPublished, "copy is unpublished even when source is published")
	assert.Nil(t, duplicate.PublishedAt)
	assert.NotEqual(t, original.ID, duplicate.ID)
	require.Len(t, duplicate.Content.Blocks, 1)
}

func TestReorderLessons(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (LessonService, *fakeLessonStore, uuid.UUID, []*domain.Lesson) {
		tutorialID := uuid.New()
		lessons := newFakeLessonStore()
		svc := newTestLessonService(t, lessons, newFakeTutorialStore(tutorialID))

		created := make([]*domain.Lesson, 3)
		for i := range created {
			lesson, err := svc.CreateLesson(context.Background(), CreateLessonInput{
				TutorialID: tutorialID,
				Title:      fmt.Sprintf("Lesson %d", i+1),
				Order:      i + 1,
				Duration:   5,
			})
			require.NoError(t, err)
			created[i] = lesson
		}
		return svc, lessons, tutorialID, created
	}

	t.Run("applies full permutation", func(t *testing.T) {
		t.Parallel()
		svc, _, tutorialID, created := setup(t)

		err := svc.ReorderLessons(context.Background(), tutorialID, []store.OrderUpdate{
			{LessonID: created[0].ID, Order: 3},
			{LessonID: created[1].ID, Order: 1},
			{LessonID: created[2].ID, Order: 2},
		})
		require.NoError(t, err)

		result, err := svc.ListLessons(context.Background(), tutorialID, true)
		require.NoError(t, err)
		require.Len(t, result, 3)
		assert.Equal(t, created[1].ID, result[0].ID)
		assert.Equal(t, created[2].ID, result[1].ID)
		assert.Equal(t, created[0].ID, result[2].ID)
	})

	t.Run("empty batch rejected", func(t *testing.T) {
		t.Parallel()
		svc, _, tutorialID, _ := setup(t)

		err := svc.ReorderLessons(context.Background(), tutorialID, nil)
		assert.ErrorIs(t, err, ErrEmptyReorder)
	})

	t.Run("duplicate target orders rejected before any write", func(t *testing.T) {
		t.Parallel()
		svc, lessons, tutorialID, created := setup(t)

		err := svc.ReorderLessons(context.Background(), tutorialID, []store.OrderUpdate{
			{LessonID: created[0].ID, Order: 2},
			{LessonID: created[1].ID, Order: 2},
		})
		assert.ErrorIs(t, err, store.ErrOrderExists)
		assert.Zero(t, lessons.bulkUpdateCalls)
	})

	t.Run("foreign lesson fails whole batch", func(t *testing.T) {
		t.Parallel()
		svc, _, tutorialID, created := setup(t)

		err := svc.ReorderLessons(context.Background(), tutorialID, []store.OrderUpdate{
			{LessonID: created[0].ID, Order: 4},
			{LessonID: uuid.New(), Order: 5},
		})
		assert.ErrorIs(t, err, store.ErrLessonNotFound)
	})
}

func TestExportLesson(t *testing.T) {
	t.Parallel()

	tutorialID := uuid.New()
	svc := newTestLessonService(t, newFakeLessonStore(), newFakeTutorialStore(tutorialID))

	lesson, err := svc.CreateLesson(context.Background(), CreateLessonInput{
		TutorialID: tutorialID, Title: "Export Me", Order: 1, Duration: 10,
		Content: validContent(),
	})
	require.NoError(t, err)

	t.Run("json round trips the canonical document", func(t *testing.T) {
		t.Parallel()
		body, err := svc.ExportLesson(context.Background(), lesson.ID, ExportJSON)
		require.NoError(t, err)

		var doc content.Document
		require.NoError(t, json.Unmarshal(body, &doc))
		assert.Equal(t, lesson.Content.Version, doc.Version)
		require.Len(t, doc.Blocks, 1)
	})

	t.Run("html wraps blocks in an article", func(t *testing.T) {
		t.Parallel()
		body, err := svc.ExportLesson(context.Background(), lesson.ID, ExportHTML)
		require.NoError(t, err)
		assert.Contains(t, string(body), `<article class="lesson">`)
		assert.Contains(t, string(body), "<h1>Export Me</h1>")
		assert.Contains(t, string(body), "<p>hello</p>")
	})

	t.Run("text includes title and duration", func(t *testing.T) {
		t.Parallel()
		body, err := svc.ExportLesson(context.Background(), lesson.ID, ExportText)
		require.NoError(t, err)
		assert.Contains(t, string(body), "Export Me")
		assert.Contains(t, string(body), "Duration: 10 min")
	})

	t.Run("unknown format is a client error", func(t *testing.T) {
		t.Parallel()
		_, err := svc.ExportLesson(context.Background(), lesson.ID, "pdf")
		assert.ErrorIs(t, err, ErrInvalidExportFormat)
	})
}

func TestSetLessonPublished(t *testing.T) {
	t.Parallel()

	tutorialID := uuid.New()
	svc := newTestLessonService(t, newFakeLessonStore(), newFakeTutorialStore(tutorialID))

	lesson, err := svc.CreateLesson(context.Background(), CreateLessonInput{
		TutorialID: tutorialID, Title: "Publish Me", Order: 1, Duration: 5,
	})
	require.NoError(t, err)

	published, err := svc.SetLessonPublished(context.Background(), lesson.ID, true)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)
	require.NotNil(t, published.PublishedAt)
	firstPublishedAt := *published.PublishedAt

	// Publishing again keeps the original timestamp
	again, err := svc.SetLessonPublished(context.Background(), lesson.ID, true)
	require.NoError(t, err)
	require.NotNil(t, again.PublishedAt)
	assert.Equal(t, firstPublishedAt, *again.PublishedAt)

	unpublished, err := svc.SetLessonPublished(context.Background(), lesson.ID, false)
	require.NoError(t, err)
	assert.False(t, unpublished.IsPublished)
	assert.Nil(t, unpublished.PublishedAt)
}
