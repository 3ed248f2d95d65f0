// FilePath: internal/models/models.device.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Display defaults. Applied field by field whenever a device record leaves a
// preference unset.
const (
	DefaultPort          = 8080
	DefaultClock         = true
	DefaultClockPosition = 3 // bottom-right
	DefaultClockFormat   = "24h"
	DefaultClockFontSize = "medium"
	DefaultDate          = false
	DefaultDateFormat    = "EEE, MMM d"
	DefaultInterval      = 30
	DefaultPanSpeed      = 0.5
	DefaultDisplayMode   = "smart_shuffle"
)

// DisplaySettings holds the per-device display preferences. All fields are
// optional; unset fields fall back to the defaults above when a configuration
// document is assembled. WeatherEntity references an external weather entity
// and is resolved live at assembly time.
type DisplaySettings struct {
	Clock           *bool    `json:"clock,omitempty"`
	ClockPosition   *int     `json:"clock_position,omitempty"`
	ClockFormat     *string  `json:"clock_format,omitempty"`
	ClockFontSize   *string  `json:"clock_font_size,omitempty"`
	Date            *bool    `json:"date,omitempty"`
	DateFormat      *string  `json:"date_format,omitempty"`
	WeatherEntity   string   `json:"weather_entity,omitempty"`
	IntervalSeconds *int     `json:"interval_seconds,omitempty"`
	PanSpeed        *float64 `json:"pan_speed,omitempty"`
	Mode            *string  `json:"mode,omitempty"`
}

// Value implements the driver.Valuer interface
func (d DisplaySettings) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements the sql.Scanner interface
func (d *DisplaySettings) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, &d)
}

// Device is a registered photo frame. The ID is the stable identifier the
// device announced at registration; IP and port may be empty only while the
// device has not been approved yet.
type Device struct {
	ID        string          `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	IP        string          `json:"ip" db:"ip"`
	Port      int             `json:"port" db:"port"`
	Profile   string          `json:"profile" db:"profile"`
	Display   DisplaySettings `json:"display" db:"display"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// DeviceStatus is the last runtime report received from a device. It is
// rebuilt wholesale from every inbound report and never persisted.
type DeviceStatus struct {
	Online          bool      `json:"online"`
	Active          bool      `json:"active"`
	CurrentImage    string    `json:"current_image,omitempty"`
	CurrentImageURL string    `json:"current_image_url,omitempty"`
	Profile         string    `json:"profile,omitempty"`
	LastSeen        time.Time `json:"last_seen"`
	MACAddress      string    `json:"mac_address,omitempty"`
	IPAddress       string    `json:"ip_address,omitempty"`
	DisplayWidth    int       `json:"display_width,omitempty"`
	DisplayHeight   int       `json:"display_height,omitempty"`
	AppVersion      string    `json:"app_version,omitempty"`
}

// PendingDevice is a device that has announced itself but has not been
// approved by an operator yet.
type PendingDevice struct {
	ID        string    `json:"id"`
	IP        string    `json:"ip"`
	Port      int       `json:"port"`
	FirstSeen time.Time `json:"first_seen"`
}
