// FilePath: api/resources/api.resource.profiles.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/photodream/hub/internal/errors"
	"github.com/photodream/hub/internal/hubservice"
	"github.com/photodream/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// ProfileHandlers encapsulates the profile HTTP handlers. Profiles are
// always addressed through their owning source.
type ProfileHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary List profiles of a source
// @Tags profiles
// @Produce json
// @Param id path string true "Source ID"
// @Success 200 {array} models.Profile
// @Router /sources/{id}/profiles [get]
// @Security ApiKeyAuth
func (h *ProfileHandlers) ListProfiles(w http.ResponseWriter, r *http.Request) {
	sourceID := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	profiles, err := h.hubservice.Profiles.ListBySource(r.Context(), sourceID)
	if err != nil {
		respondWithError(w, errors.NewInternalError("failed to list profiles", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, profiles)
}

// @Summary Create a profile
// @Description Add a named search filter under a source
// @Tags profiles
// @Accept json
// @Produce json
// @Param id path string true "Source ID"
// @Param profile body models.Profile true "Profile details"
// @Success 201 {object} models.Profile
// @Failure 400 {object} errors.APIError
// @Router /sources/{id}/profiles [post]
// @Security ApiKeyAuth
func (h *ProfileHandlers) CreateProfile(w http.ResponseWriter, r *http.Request) {
	sourceID := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	profile.SourceID = sourceID
	if err := h.hubservice.CreateProfile(r.Context(), &profile); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, profile)
}

// @Summary Get a profile
// @Tags profiles
// @Produce json
// @Param id path string true "Source ID"
// @Param name path string true "Profile name"
// @Success 200 {object} models.Profile
// @Failure 404 {object} errors.APIError
// @Router /sources/{id}/profiles/{name} [get]
// @Security ApiKeyAuth
func (h *ProfileHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	profile, err := h.hubservice.Profiles.Get(r.Context(), vars["id"], vars["name"])
	if err != nil {
		respondWithError(w, errors.NewNotFoundError("profile not found", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

// @Summary Update a profile
// @Description Replace a profile's search filter and path exclusions
// @Tags profiles
// @Accept json
// @Produce json
// @Param id path string true "Source ID"
// @Param name path string true "Profile name"
// @Param profile body models.Profile true "Updated profile"
// @Success 200 {object} models.Profile
// @Failure 404 {object} errors.APIError
// @Router /sources/{id}/profiles/{name} [put]
// @Security ApiKeyAuth
func (h *ProfileHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	profile.SourceID = vars["id"]
	profile.Name = vars["name"]
	if err := h.hubservice.UpdateProfile(r.Context(), &profile); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

// @Summary Delete a profile
// @Description Remove a profile; devices referencing it fall back at the next resolution
// @Tags profiles
// @Param id path string true "Source ID"
// @Param name path string true "Profile name"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /sources/{id}/profiles/{name} [delete]
// @Security ApiKeyAuth
func (h *ProfileHandlers) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteProfile(r.Context(), vars["id"], vars["name"]); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
