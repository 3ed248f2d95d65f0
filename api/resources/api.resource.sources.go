// FilePath: api/resources/api.resource.sources.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/photodream/hub/internal/errors"
	"github.com/photodream/hub/internal/hubservice"
	"github.com/photodream/hub/internal/models"
	"github.com/photodream/hub/internal/poller"
	nuts "github.com/vaudience/go-nuts"
)

// SourceHandlers encapsulates the Immich source HTTP handlers
type SourceHandlers struct {
	hubservice *hubservice.HubService
	pollers    *poller.Manager
}

// @Summary List sources
// @Description Get all configured Immich sources
// @Tags sources
// @Produce json
// @Success 200 {array} models.Source
// @Router /sources [get]
// @Security ApiKeyAuth
func (h *SourceHandlers) ListSources(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	sources, err := h.hubservice.Sources.List(r.Context())
	if err != nil {
		respondWithError(w, errors.NewInternalError("failed to list sources", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, sources)
}

// @Summary Create a source
// @Description Register a new Immich connection
// @Tags sources
// @Accept json
// @Produce json
// @Param source body models.Source true "Source details"
// @Success 201 {object} models.Source
// @Failure 400 {object} errors.APIError
// @Router /sources [post]
// @Security ApiKeyAuth
func (h *SourceHandlers) CreateSource(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var source models.Source
	if err := json.NewDecoder(r.Body).Decode(&source); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.CreateSource(r.Context(), &source); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	h.pollers.Ensure(source.ID)
	respondWithJSON(w, http.StatusCreated, source)
}

// @Summary Get a source
// @Tags sources
// @Produce json
// @Param id path string true "Source ID"
// @Success 200 {object} models.Source
// @Failure 404 {object} errors.APIError
// @Router /sources/{id} [get]
// @Security ApiKeyAuth
func (h *SourceHandlers) GetSource(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	source, err := h.hubservice.Sources.Get(r.Context(), id)
	if err != nil {
		respondWithError(w, errors.NewNotFoundError("source not found", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, source)
}

// @Summary Update a source
// @Tags sources
// @Accept json
// @Produce json
// @Param id path string true "Source ID"
// @Param source body models.Source true "Updated source details"
// @Success 200 {object} models.Source
// @Failure 404 {object} errors.APIError
// @Router /sources/{id} [put]
// @Security ApiKeyAuth
func (h *SourceHandlers) UpdateSource(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	var source models.Source
	if err := json.NewDecoder(r.Body).Decode(&source); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	source.ID = id
	if err := h.hubservice.UpdateSource(r.Context(), &source); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, source)
}

// @Summary Delete a source
// @Description Delete a source and all profiles under it
// @Tags sources
// @Param id path string true "Source ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /sources/{id} [delete]
// @Security ApiKeyAuth
func (h *SourceHandlers) DeleteSource(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteSource(r.Context(), id); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	h.pollers.Remove(id)
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Test a source connection
// @Description Validate base URL and API key against the Immich ping endpoint
// @Tags sources
// @Produce json
// @Param id path string true "Source ID"
// @Success 200 {object} map[string]string
// @Failure 502 {object} errors.APIError
// @Router /sources/{id}/test [post]
// @Security ApiKeyAuth
func (h *SourceHandlers) TestSource(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.TestSource(r.Context(), id); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// @Summary Manually refresh a source
// @Description Run one image-count cycle now, bypassing the timer
// @Tags sources
// @Produce json
// @Param id path string true "Source ID"
// @Success 200 {array} poller.ProfileCount
// @Failure 404 {object} errors.APIError
// @Router /sources/{id}/refresh [post]
// @Security ApiKeyAuth
func (h *SourceHandlers) RefreshSource(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	if err := h.pollers.Refresh(r.Context(), id); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	counts, err := h.pollers.Counts(id)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, counts)
}

// @Summary Get last image counts
// @Description Results of the most recent count cycle for a source
// @Tags sources
// @Produce json
// @Param id path string true "Source ID"
// @Success 200 {array} poller.ProfileCount
// @Failure 404 {object} errors.APIError
// @Router /sources/{id}/counts [get]
// @Security ApiKeyAuth
func (h *SourceHandlers) GetCounts(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	counts, err := h.pollers.Counts(id)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, counts)
}
