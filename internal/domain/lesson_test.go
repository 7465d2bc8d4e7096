package domain

import (
	"testing"

	"github.com/google/uuid"

	"github.com/Dacosmicgiant/CodeCraft-backend/internal/content"
)

func TestNewLesson(t *testing.T) {
	t.Parallel()

	tutorialID := uuid.New()
	doc := content.Sanitize(nil)

	lesson, err := NewLesson(tutorialID, "  Intro  ", 1, 10, doc)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if lesson.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if lesson.Title != "Intro" {
		t.Errorf("Expected trimmed title %q, got %q", "Intro", lesson.Title)
	}
	if lesson.IsPublished {
		t.Error("Expected new lesson to be unpublished")
	}
	if lesson.PublishedAt != nil {
		t.Error("Expected nil PublishedAt for new lesson")
	}

	// Invalid title
	if _, err := NewLesson(tutorialID, "   ", 1, 10, doc); err != ErrEmptyLessonTitle {
		t.Errorf("Expected error %v, got %v", ErrEmptyLessonTitle, err)
	}

	// Invalid order
	if _, err := NewLesson(tutorialID, "Intro", 0, 10, doc); err != ErrInvalidLessonOrder {
		t.Errorf("Expected error %v, got %v", ErrInvalidLessonOrder, err)
	}

	// Invalid duration
	if _, err := NewLesson(tutorialID, "Intro", 1, 0, doc); err != ErrInvalidDuration {
		t.Errorf("Expected error %v, got %v", ErrInvalidDuration, err)
	}

	// Invalid tutorial ID
	if _, err := NewLesson(uuid.Nil, "Intro", 1, 10, doc); err != ErrEmptyTutorialID {
		t.Errorf("Expected error %v, got %v", ErrEmptyTutorialID, err)
	}
}

func TestLessonSetPublished(t *testing.T) {
	t.Parallel()

	lesson, err := NewLesson(uuid.New(), "Intro", 1, 10, content.Sanitize(nil))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	lesson.SetPublished(true)
	if !lesson.IsPublished {
		t.Error("Expected lesson to be published")
	}
	if lesson.PublishedAt == nil {
		t.Fatal("Expected PublishedAt to be set on publish transition")
	}

	firstPublishedAt := *lesson.PublishedAt

	// Publishing an already-published lesson keeps the original timestamp
	lesson.SetPublished(true)
	if !lesson.PublishedAt.Equal(firstPublishedAt) {
		t.Error("Expected PublishedAt to be unchanged when already published")
	}

	lesson.SetPublished(false)
	if lesson.IsPublished {
		t.Error("Expected lesson to be unpublished")
	}
	if lesson.PublishedAt != nil {
		t.Error("Expected PublishedAt to be cleared on unpublish")
	}
}
