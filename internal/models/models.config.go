// FilePath: internal/models/models.config.go
package models

// DeviceConfig is the complete configuration document pushed to a device.
// The shape is part of the device protocol and must stay stable.
type DeviceConfig struct {
	DeviceID   string        `json:"device_id"`
	Immich     ImmichAccess  `json:"immich"`
	Display    DisplayConfig `json:"display"`
	Profile    ProfileConfig `json:"profile"`
	WebhookURL string        `json:"webhook_url"`
}

// ImmichAccess carries the credentials a device needs to pull images itself.
type ImmichAccess struct {
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key"`
}

// DisplayConfig is the fully resolved display block: every field carries a
// concrete value, defaults already applied. Weather is present only when the
// device references a weather entity that could be read at assembly time.
type DisplayConfig struct {
	Clock           bool         `json:"clock"`
	ClockPosition   int          `json:"clock_position"`
	ClockFormat     string       `json:"clock_format"`
	ClockFontSize   string       `json:"clock_font_size"`
	Date            bool         `json:"date"`
	DateFormat      string       `json:"date_format"`
	Weather         *WeatherInfo `json:"weather,omitempty"`
	IntervalSeconds int          `json:"interval_seconds"`
	PanSpeed        float64      `json:"pan_speed"`
	Mode            string       `json:"mode"`
}

// WeatherInfo is a snapshot of the referenced weather entity.
type WeatherInfo struct {
	Entity      string  `json:"entity"`
	Condition   string  `json:"condition"`
	Temperature float64 `json:"temperature"`
	Unit        string  `json:"unit,omitempty"`
}

// ProfileConfig is the resolved profile block of a configuration document.
type ProfileConfig struct {
	Name         string   `json:"name"`
	SearchFilter JSON     `json:"search_filter"`
	ExcludePaths []string `json:"exclude_paths"`
}

// ResolvedDisplay applies per-field defaults to a device's stored display
// preferences.
func (d *Device) ResolvedDisplay() DisplayConfig {
	s := d.Display
	return DisplayConfig{
		Clock:           boolOr(s.Clock, DefaultClock),
		ClockPosition:   intOr(s.ClockPosition, DefaultClockPosition),
		ClockFormat:     stringOr(s.ClockFormat, DefaultClockFormat),
		ClockFontSize:   stringOr(s.ClockFontSize, DefaultClockFontSize),
		Date:            boolOr(s.Date, DefaultDate),
		DateFormat:      stringOr(s.DateFormat, DefaultDateFormat),
		IntervalSeconds: intOr(s.IntervalSeconds, DefaultInterval),
		PanSpeed:        floatOr(s.PanSpeed, DefaultPanSpeed),
		Mode:            stringOr(s.Mode, DefaultDisplayMode),
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func stringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
