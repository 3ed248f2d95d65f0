// FilePath: api/resources/api.resource.devices.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/photodream/hub/internal/errors"
	"github.com/photodream/hub/internal/hubservice"
	"github.com/photodream/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// DeviceHandlers encapsulates the device-related HTTP handlers
type DeviceHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary List devices
// @Description Get a paginated list of registered devices
// @Tags devices
// @Produce json
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {array} models.Device
// @Router /devices [get]
// @Security ApiKeyAuth
func (h *DeviceHandlers) ListDevices(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	params := getListParams(r)

	devices, err := h.hubservice.ListDevices(r.Context(), params.Offset, params.Limit)
	if err != nil {
		respondWithError(w, errors.NewInternalError("failed to list devices", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, devices)
}

// @Summary List pending devices
// @Description Get devices waiting for approval
// @Tags devices
// @Produce json
// @Success 200 {array} models.PendingDevice
// @Router /devices/pending [get]
// @Security ApiKeyAuth
func (h *DeviceHandlers) ListPending(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.hubservice.Registry.ListPending())
}

// @Summary Get a device
// @Description Get a device record by ID
// @Tags devices
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {object} models.Device
// @Failure 404 {object} errors.APIError
// @Router /devices/{id} [get]
// @Security ApiKeyAuth
func (h *DeviceHandlers) GetDevice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	device, err := h.hubservice.GetDevice(r.Context(), id)
	if err != nil {
		respondWithError(w, errors.NewNotFoundError("device not found", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, device)
}

// @Summary Get device runtime status
// @Description Get a device with its last reported status and online verdict
// @Tags devices
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {object} hubservice.DeviceState
// @Failure 404 {object} errors.APIError
// @Router /devices/{id}/status [get]
// @Security ApiKeyAuth
func (h *DeviceHandlers) GetDeviceStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	state, err := h.hubservice.GetDeviceState(r.Context(), id)
	if err != nil {
		respondWithError(w, errors.NewNotFoundError("device not found", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, state)
}

// @Summary Update a device
// @Description Update a device's name, address, profile or display settings
// @Tags devices
// @Accept json
// @Produce json
// @Param id path string true "Device ID"
// @Param device body models.Device true "Updated device record"
// @Success 200 {object} models.Device
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /devices/{id} [put]
// @Security ApiKeyAuth
func (h *DeviceHandlers) UpdateDevice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	var device models.Device
	if err := json.NewDecoder(r.Body).Decode(&device); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	device.ID = id
	if err := h.hubservice.UpdateDevice(r.Context(), &device); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, device)
}

// @Summary Delete a device
// @Description Remove a device record and its runtime state
// @Tags devices
// @Param id path string true "Device ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /devices/{id} [delete]
// @Security ApiKeyAuth
func (h *DeviceHandlers) DeleteDevice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteDevice(r.Context(), id); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type approveRequest struct {
	Name    string `json:"name"`
	Profile string `json:"profile"`
}

// @Summary Approve a pending device
// @Description Move a pending device into the configured fleet
// @Tags devices
// @Accept json
// @Produce json
// @Param id path string true "Device ID"
// @Param approval body approveRequest true "Device name and profile"
// @Success 201 {object} models.Device
// @Failure 404 {object} errors.APIError
// @Router /devices/{id}/approve [post]
// @Security ApiKeyAuth
func (h *DeviceHandlers) ApproveDevice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	var req approveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	device, err := h.hubservice.ApproveDevice(r.Context(), id, req.Name, req.Profile)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, device)
}

// @Summary Push configuration to a device
// @Description Assemble and transmit the device's configuration document
// @Tags devices
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {object} map[string]bool
// @Router /devices/{id}/refresh [post]
// @Security ApiKeyAuth
func (h *DeviceHandlers) RefreshDevice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ok := h.hubservice.PushConfig(r.Context(), id)
	respondWithJSON(w, http.StatusOK, map[string]bool{"success": ok})
}

// @Summary Advance to the next image
// @Description Send the "next" command to a device
// @Tags devices
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {object} map[string]bool
// @Router /devices/{id}/next [post]
// @Security ApiKeyAuth
func (h *DeviceHandlers) NextImage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ok := h.hubservice.SendCommand(r.Context(), id, "next", nil)
	respondWithJSON(w, http.StatusOK, map[string]bool{"success": ok})
}

type setProfileRequest struct {
	Profile string `json:"profile"`
}

// @Summary Set a device's profile
// @Description Assign a profile to a device and push the new configuration
// @Tags devices
// @Accept json
// @Produce json
// @Param id path string true "Device ID"
// @Param profile body setProfileRequest true "Profile identifier"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.APIError
// @Router /devices/{id}/profile [post]
// @Security ApiKeyAuth
func (h *DeviceHandlers) SetProfile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	requestID := nuts.NID("req", 12)

	var req setProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.SetDeviceProfile(r.Context(), id, req.Profile); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Helper functions

var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

func getListParams(r *http.Request) models.ListParams {
	var params models.ListParams
	// Decoding errors just leave the defaults in place.
	_ = queryDecoder.Decode(&params, r.URL.Query())
	params.Normalize()
	return params
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	nuts.L.Errorf("[API] %s", err.Error())
}

// respondWithServiceError passes typed service errors through with their own
// status code and wraps everything else as internal.
func respondWithServiceError(w http.ResponseWriter, err error, requestID string) {
	if apiErr, ok := err.(*errors.APIError); ok {
		respondWithError(w, apiErr.WithRequestID(requestID))
		return
	}
	respondWithError(w, errors.NewInternalError("unexpected error", err).WithRequestID(requestID))
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
