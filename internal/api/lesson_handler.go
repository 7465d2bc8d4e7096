package api

import (
	"net/http"

	"github.com/Dacosmicgiant/CodeCraft-backend/internal/api/middleware"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/api/shared"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/service"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/store"
)

// LessonHandler handles lesson API requests. Content payloads go through
// the sanitization pipeline inside the service; the handler never rejects
// a request because of content shape.
type LessonHandler struct {
	lessonService service.LessonService
}

// NewLessonHandler creates a new LessonHandler with the given dependencies.
func NewLessonHandler(lessonService service.LessonService) *LessonHandler {
	return &LessonHandler{
		lessonService: lessonService,
	}
}

// CreateLesson handles POST /api/tutorials/{id}/lessons.
func (h *LessonHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	tutorialID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req CreateLessonRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	lesson, err := h.lessonService.CreateLesson(r.Context(), service.CreateLessonInput{
		TutorialID: tutorialID,
		Title:      req.Title,
		Order:      req.Order,
		Duration:   req.Duration,
		Content:    req.Content,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, lesson)
}

// GetLesson handles GET /api/lessons/{id}. Unpublished lessons are visible
// only to admins.
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	lesson, err := h.lessonService.GetLesson(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if !lesson.IsPublished && !middleware.IsAdmin(r) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Lesson not found")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, lesson)
}

// ListLessons handles GET /api/tutorials/{id}/lessons. Admins see
// unpublished lessons too.
func (h *LessonHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	tutorialID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	lessons, err := h.lessonService.ListLessons(r.Context(), tutorialID, middleware.IsAdmin(r))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, lessons)
}

// UpdateLesson handles PUT /api/lessons/{id}.
func (h *LessonHandler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req UpdateLessonRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	lesson, err := h.lessonService.UpdateLesson(r.Context(), id, service.UpdateLessonInput{
		Title:    req.Title,
		Order:    req.Order,
		Duration: req.Duration,
		Content:  req.Content,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, lesson)
}

// DeleteLesson handles DELETE /api/lessons/{id}.
func (h *LessonHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.lessonService.DeleteLesson(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DuplicateLesson handles POST /api/lessons/{id}/duplicate.
func (h *LessonHandler) DuplicateLesson(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	lesson, err := h.lessonService.DuplicateLesson(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, lesson)
}

// ReorderLessons handles PUT /api/tutorials/{id}/lessons/reorder.
func (h *LessonHandler) ReorderLessons(w http.ResponseWriter, r *http.Request) {
	tutorialID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req ReorderLessonsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	updates := make([]store.OrderUpdate, len(req.Lessons))
	for i, pair := range req.Lessons {
		updates[i] = store.OrderUpdate{
			LessonID: pair.LessonID,
			Order:    pair.Order,
		}
	}

	if err := h.lessonService.ReorderLessons(r.Context(), tutorialID, updates); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	lessons, err := h.lessonService.ListLessons(r.Context(), tutorialID, true)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, lessons)
}

// ExportLesson handles GET /api/lessons/{id}/export?format=json|html|text.
func (h *LessonHandler) ExportLesson(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	format := service.ExportFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = service.ExportJSON
	}

	lesson, err := h.lessonService.GetLesson(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	if !lesson.IsPublished && !middleware.IsAdmin(r) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Lesson not found")
		return
	}

	body, err := h.lessonService.ExportLesson(r.Context(), id, format)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to write export", err)
	}
}

// PublishLesson handles PUT /api/lessons/{id}/publish.
func (h *LessonHandler) PublishLesson(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req PublishLessonRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	lesson, err := h.lessonService.SetLessonPublished(r.Context(), id, req.IsPublished)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, lesson)
}
