package domain

import (
	"time"

	"github.com/google/uuid"
)

type DangerLevel string

const (
	DangerLow      DangerLevel = "low"
	DangerMedium   DangerLevel = "medium"
	DangerHigh     DangerLevel = "high"
	DangerVeryHigh DangerLevel = "very_high"
)

// CriticalPoint is a known high-accident road sector from the national
// road-safety registry. Unlike reports these never expire; the catalog is
// refreshed wholesale when new registry data lands.
type CriticalPoint struct {
	ID            uuid.UUID   `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Latitude      float64     `json:"latitude"`
	Longitude     float64     `json:"longitude"`
	Department    string      `json:"department"`
	Municipality  string      `json:"municipality"`
	SectorClass   string      `json:"sector_class"`
	Code          string      `json:"code"`
	AccidentCount int         `json:"accident_count"`
	Deaths        int         `json:"deaths"`
	Injuries      int         `json:"injuries"`
	Year          string      `json:"year"`
	Address       string      `json:"address"`
	Zone          string      `json:"zone"`
	DangerLevel   DangerLevel `json:"danger_level"`
	Size          int         `json:"size"`
	IconName      string      `json:"icon_name"`
	HideAfterZoom int         `json:"hide_after_zoom"`
	Active        bool        `json:"active"`
	Visible       bool        `json:"visible"`
	DataSource    string      `json:"data_source,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// CriticalPointView adds the distance annotation for radius queries.
type CriticalPointView struct {
	CriticalPoint
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// CriticalPointFilter narrows the catalog listing. A nil Visible means no
// visibility filter; inactive points are always excluded.
type CriticalPointFilter struct {
	Department   string        `json:"department,omitempty"`
	Municipality string        `json:"municipality,omitempty"`
	DangerLevels []DangerLevel `json:"danger_levels,omitempty"`
	Visible      *bool         `json:"visible,omitempty"`
}

type DangerLevelStats struct {
	Level          DangerLevel `json:"level"`
	Count          int64       `json:"count"`
	TotalAccidents int64       `json:"total_accidents"`
	TotalDeaths    int64       `json:"total_deaths"`
	TotalInjuries  int64       `json:"total_injuries"`
}

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

type CriticalPointStats struct {
	Total        int64              `json:"total"`
	ByLevel      []DangerLevelStats `json:"by_level"`
	ByDepartment []DepartmentCount  `json:"by_department"`
}

// MarkerSize maps a danger level to its map marker size.
func (l DangerLevel) MarkerSize() int {
	switch l {
	case DangerVeryHigh:
		return 45
	case DangerHigh:
		return 38
	case DangerMedium:
		return 32
	case DangerLow:
		return 28
	default:
		return 30
	}
}
