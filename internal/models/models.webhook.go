// FilePath: internal/models/models.webhook.go
package models

// Registration statuses returned to devices.
const (
	RegistrationConfigured = "configured"
	RegistrationPending    = "pending"
	RegistrationUnknown    = "unknown"
	RegistrationError      = "error"
)

// RegisterRequest is the body a device sends to the registration webhook.
// With Action "poll" the device is asking whether it has been approved;
// otherwise it is announcing itself for the first time.
type RegisterRequest struct {
	Action   string `json:"action,omitempty"`
	DeviceID string `json:"device_id"`
	DeviceIP string `json:"device_ip,omitempty"`
	Port     int    `json:"device_port,omitempty"`
}

// RegisterResponse is the registration webhook reply.
type RegisterResponse struct {
	Status  string        `json:"status"`
	Config  *DeviceConfig `json:"config,omitempty"`
	Message string        `json:"message,omitempty"`
}

// StatusReport is the body a device posts to the status webhook. Online
// defaults to true when omitted, Active to false, matching what the devices
// actually send.
type StatusReport struct {
	DeviceID        string `json:"device_id"`
	Online          *bool  `json:"online,omitempty"`
	Active          bool   `json:"active,omitempty"`
	CurrentImage    string `json:"current_image,omitempty"`
	CurrentImageURL string `json:"current_image_url,omitempty"`
	Profile         string `json:"profile,omitempty"`
	LastRefresh     string `json:"last_refresh,omitempty"`
	MACAddress      string `json:"mac_address,omitempty"`
	IPAddress       string `json:"ip_address,omitempty"`
	DisplayWidth    int    `json:"display_width,omitempty"`
	DisplayHeight   int    `json:"display_height,omitempty"`
	AppVersion      string `json:"app_version,omitempty"`
}

// ListParams are the common pagination query parameters on list endpoints.
type ListParams struct {
	Offset int `schema:"offset"`
	Limit  int `schema:"limit"`
}

// Normalize clamps pagination parameters to sane bounds.
func (p *ListParams) Normalize() {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}
