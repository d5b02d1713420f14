package domain

import (
	"time"

	"github.com/google/uuid"
)

type SubmitReportRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude" validate:"lat"`
	Longitude   float64 `json:"longitude" validate:"lng"`
	TypeID      string  `json:"type_id" validate:"required,uuid"`
}

type BoundingBox struct {
	LatMin float64 `json:"lat_min" validate:"lat"`
	LatMax float64 `json:"lat_max" validate:"lat"`
	LngMin float64 `json:"lng_min" validate:"lng"`
	LngMax float64 `json:"lng_max" validate:"lng"`
}

// Contains is an inclusive range check on both axes.
func (b BoundingBox) Contains(lat, lng float64) bool {
	return lat >= b.LatMin && lat <= b.LatMax &&
		lng >= b.LngMin && lng <= b.LngMax
}

type RoutePoint struct {
	Latitude  float64 `json:"latitude" validate:"lat"`
	Longitude float64 `json:"longitude" validate:"lng"`
}

type RouteQueryRequest struct {
	Points     []RoutePoint `json:"points" validate:"dive"`
	RadiusKm   float64      `json:"radius_km" validate:"omitempty,radius_km"`
	OnlyActive bool         `json:"only_active"`
}

type OrderField string

const (
	OrderByCreated  OrderField = "created"
	OrderByReported OrderField = "reported"
	OrderByExpires  OrderField = "expires"
	OrderByDistance OrderField = "distance"
)

// SearchCriteria is the composite filter for QueryService.WithFilters.
// Ordering by distance is only honoured when Center is set; the engine
// falls back to creation-time ordering otherwise.
type SearchCriteria struct {
	BBox         *BoundingBox  `json:"bbox,omitempty"`
	Center       *RoutePoint   `json:"center,omitempty"`
	RadiusKm     *float64      `json:"radius_km,omitempty" validate:"omitempty,radius_km"`
	TypeIDs      []uuid.UUID   `json:"type_ids,omitempty"`
	ReportedFrom *time.Time    `json:"reported_from,omitempty"`
	ReportedTo   *time.Time    `json:"reported_to,omitempty"`
	States       []ReportState `json:"states,omitempty"`
	OnlyActive   bool          `json:"only_active"`
	OrderBy      OrderField    `json:"order_by,omitempty"`
	Descending   bool          `json:"descending"`
}

type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}
