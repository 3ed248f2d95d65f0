// FilePath: internal/models/models.source.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"
)

// JSON is a wrapper around map[string]interface{} for database storage
type JSON map[string]interface{}

// Value implements the driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	return json.Marshal(j)
}

// Scan implements the sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, &j)
}

// StringList is a wrapper around []string for database storage
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, &l)
}

// Source is one configured Immich connection. Multiple sources may coexist,
// each owning its own set of profiles.
type Source struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	BaseURL   string    `json:"base_url" db:"base_url"`
	APIKey    string    `json:"api_key" db:"api_key"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Profile is a named search filter plus path exclusions against one source's
// photo library. Name is unique within its source.
type Profile struct {
	ID           string     `json:"id" db:"id"`
	SourceID     string     `json:"source_id" db:"source_id"`
	Name         string     `json:"name" db:"name"`
	SearchFilter JSON       `json:"search_filter" db:"search_filter"`
	ExcludePaths StringList `json:"exclude_paths" db:"exclude_paths"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// CompoundProfileID builds the globally unique profile identifier from a
// source ID and a profile name: lower-cased, spaces replaced by underscores.
// Devices created before sources existed may still reference a bare profile
// name; the resolver accepts both.
func CompoundProfileID(sourceID, name string) string {
	return strings.ToLower(strings.ReplaceAll(sourceID+"_"+name, " ", "_"))
}

// CompoundID returns the profile's compound identifier.
func (p *Profile) CompoundID() string {
	return CompoundProfileID(p.SourceID, p.Name)
}
