// FilePath: api/resources/api.resource.webhooks.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/photodream/hub/internal/errors"
	"github.com/photodream/hub/internal/hubservice"
	"github.com/photodream/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// WebhookHandlers serves the unauthenticated device-facing endpoints.
type WebhookHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Device registration and poll webhook
// @Description Devices announce themselves here and poll for approval
// @Tags webhooks
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 200 {object} models.RegisterResponse
// @Failure 400 {object} models.RegisterResponse
// @Router /webhook/register [post]
func (h *WebhookHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, models.RegisterResponse{
			Status:  models.RegistrationError,
			Message: "invalid request body",
		})
		return
	}

	resp, err := h.hubservice.RegisterDevice(r.Context(), &req)
	if err != nil {
		// Devices expect the error in the registration envelope, not the
		// admin API error shape.
		code := http.StatusInternalServerError
		if apiErr, ok := err.(*errors.APIError); ok {
			code = apiErr.Code
		}
		nuts.L.Errorf("[Webhook] Registration failed for %q: %v", req.DeviceID, err)
		respondWithJSON(w, code, models.RegisterResponse{
			Status:  models.RegistrationError,
			Message: err.Error(),
		})
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// @Summary Device status webhook
// @Description Devices report their runtime status here
// @Tags webhooks
// @Accept json
// @Produce json
// @Param report body models.StatusReport true "Status report"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.APIError
// @Router /webhook/status [post]
func (h *WebhookHandlers) Status(w http.ResponseWriter, r *http.Request) {
	var report models.StatusReport
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err))
		return
	}

	if err := h.hubservice.ReportStatus(&report); err != nil {
		if apiErr, ok := err.(*errors.APIError); ok {
			respondWithError(w, apiErr)
			return
		}
		respondWithError(w, errors.NewInternalError("failed to process status report", err))
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
