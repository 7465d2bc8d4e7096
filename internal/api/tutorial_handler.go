package api

import (
	"net/http"

	"github.com/Dacosmicgiant/CodeCraft-backend/internal/api/middleware"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/api/shared"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/service"
)

// TutorialHandler handles tutorial API requests.
type TutorialHandler struct {
	catalogService service.CatalogService
}

// NewTutorialHandler creates a new TutorialHandler with the given dependencies.
func NewTutorialHandler(catalogService service.CatalogService) *TutorialHandler {
	return &TutorialHandler{
		catalogService: catalogService,
	}
}

// CreateTutorial handles POST /api/tutorials.
func (h *TutorialHandler) CreateTutorial(w http.ResponseWriter, r *http.Request) {
	var req CreateTutorialRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	tutorial, err := h.catalogService.CreateTutorial(
		r.Context(), req.TechnologyID, req.Title, req.Description, req.Difficulty)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, tutorial)
}

// GetTutorial handles GET /api/tutorials/{id}. Unpublished tutorials are
// visible only to admins.
func (h *TutorialHandler) GetTutorial(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	tutorial, err := h.catalogService.GetTutorial(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if !tutorial.IsPublished && !middleware.IsAdmin(r) {
		// Hidden content looks identical to missing content.
		shared.RespondWithError(w, r, http.StatusNotFound, "Tutorial not found")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tutorial)
}

// ListTutorials handles GET /api/technologies/{id}/tutorials. Admins see
// unpublished tutorials too.
func (h *TutorialHandler) ListTutorials(w http.ResponseWriter, r *http.Request) {
	technologyID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	tutorials, err := h.catalogService.ListTutorials(
		r.Context(), technologyID, middleware.IsAdmin(r))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tutorials)
}

// UpdateTutorial handles PUT /api/tutorials/{id}.
func (h *TutorialHandler) UpdateTutorial(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req UpdateTutorialRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	tutorial, err := h.catalogService.UpdateTutorial(r.Context(), id, service.UpdateTutorialInput{
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tutorial)
}

// DeleteTutorial handles DELETE /api/tutorials/{id}.
func (h *TutorialHandler) DeleteTutorial(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteTutorial(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
