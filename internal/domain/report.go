package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReportState string

const (
	ReportActive    ReportState = "active"
	ReportCancelled ReportState = "cancelled"
	ReportClosed    ReportState = "closed"
	ReportDuplicate ReportState = "duplicate"
)

// ReportType is category metadata controlling default lifetime and display.
// Seeded at bootstrap and read-only at runtime apart from deactivation.
type ReportType struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	IconName        string    `json:"icon_name"`
	Snippet         string    `json:"snippet"`
	Size            int       `json:"size"`
	HideAfterZoom   int       `json:"hide_after_zoom"`
	LifetimeMinutes int       `json:"lifetime_minutes"` // must be > 0
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}

// Report is a single geolocated incident submission with a bounded
// validity window. ExpiresAt is computed once at creation from the type's
// lifetime and never recomputed.
type Report struct {
	ID             uuid.UUID   `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Latitude       float64     `json:"latitude"`  // -90..90, 5 decimals
	Longitude      float64     `json:"longitude"` // -180..180, 5 decimals
	TypeID         uuid.UUID   `json:"type_id"`
	Type           *ReportType `json:"type,omitempty"`
	ReportedAt     time.Time   `json:"reported_at"`
	ExpiresAt      time.Time   `json:"expires_at"`
	Expired        bool        `json:"expired"`
	Visible        bool        `json:"visible"`
	State          ReportState `json:"state"`
	DuplicateCount int         `json:"duplicate_count"`
	CreatedAt      time.Time   `json:"created_at"`
}

// ReportView is a Report annotated for query responses. DistanceKm is set
// only on radius-based queries.
type ReportView struct {
	Report
	IsActive         bool     `json:"is_active"`
	MinutesRemaining int      `json:"minutes_remaining"`
	DistanceKm       *float64 `json:"distance_km,omitempty"`
}

// MinutesRemainingAt returns whole minutes until expiration, never negative.
func (r *Report) MinutesRemainingAt(now time.Time) int {
	remaining := r.ExpiresAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(remaining / time.Minute)
}

func (r *Report) IsActiveAt(now time.Time) bool {
	return !r.Expired && r.Visible && now.Before(r.ExpiresAt)
}
