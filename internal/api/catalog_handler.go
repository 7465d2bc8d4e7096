package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Dacosmicgiant/CodeCraft-backend/internal/api/shared"
	"github.com/Dacosmicgiant/CodeCraft-backend/internal/service"
)

// CatalogHandler handles domain and technology API requests.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler with the given dependencies.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// parseIDParam extracts and parses a UUID path parameter. On failure it
// writes a 400 response and returns false.
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// CreateDomain handles POST /api/domains.
func (h *CatalogHandler) CreateDomain(w http.ResponseWriter, r *http.Request) {
	var req CreateDomainRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	d, err := h.catalogService.CreateDomain(r.Context(), req.Name, req.Description)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, d)
}

// GetDomain handles GET /api/domains/{id}. The path parameter may be a UUID
// or a slug.
func (h *CatalogHandler) GetDomain(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "id")

	if id, err := uuid.Parse(param); err == nil {
		d, err := h.catalogService.GetDomain(r.Context(), id)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r,
				MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, d)
		return
	}

	d, err := h.catalogService.GetDomainBySlug(r.Context(), param)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, d)
}

// ListDomains handles GET /api/domains.
func (h *CatalogHandler) ListDomains(w http.ResponseWriter, r *http.Request) {
	domains, err := h.catalogService.ListDomains(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, domains)
}

// UpdateDomain handles PUT /api/domains/{id}.
func (h *CatalogHandler) UpdateDomain(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req UpdateDomainRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	d, err := h.catalogService.UpdateDomain(r.Context(), id, service.UpdateDomainInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, d)
}

// DeleteDomain handles DELETE /api/domains/{id}.
func (h *CatalogHandler) DeleteDomain(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteDomain(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateTechnology handles POST /api/technologies.
func (h *CatalogHandler) CreateTechnology(w http.ResponseWriter, r *http.Request) {
	var req CreateTechnologyRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	tech, err := h.catalogService.CreateTechnology(r.Context(), req.DomainID, req.Name, req.Description)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, tech)
}

// GetTechnology handles GET /api/technologies/{id}. The path parameter may
// be a UUID or a slug.
func (h *CatalogHandler) GetTechnology(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "id")

	if id, err := uuid.Parse(param); err == nil {
		tech, err := h.catalogService.GetTechnology(r.Context(), id)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r,
				MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, tech)
		return
	}

	tech, err := h.catalogService.GetTechnologyBySlug(r.Context(), param)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tech)
}

// ListTechnologies handles GET /api/domains/{id}/technologies.
func (h *CatalogHandler) ListTechnologies(w http.ResponseWriter, r *http.Request) {
	domainID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	techs, err := h.catalogService.ListTechnologies(r.Context(), domainID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, techs)
}

// UpdateTechnology handles PUT /api/technologies/{id}.
func (h *CatalogHandler) UpdateTechnology(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req UpdateTechnologyRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	tech, err := h.catalogService.UpdateTechnology(r.Context(), id, service.UpdateTechnologyInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tech)
}

// DeleteTechnology handles DELETE /api/technologies/{id}.
func (h *CatalogHandler) DeleteTechnology(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteTechnology(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
