package domain

import (
	"testing"
	"time"
)

func TestMinutesRemainingAt(t *testing.T) {
	expires := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	r := Report{ExpiresAt: expires}

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"half an hour left", expires.Add(-30 * time.Minute), 30},
		{"partial minute floors", expires.Add(-90 * time.Second), 1},
		{"at expiration", expires, 0},
		{"past expiration never negative", expires.Add(10 * time.Minute), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.MinutesRemainingAt(tt.now); got != tt.want {
				t.Errorf("MinutesRemainingAt(%v) = %d, want %d", tt.now, got, tt.want)
			}
		})
	}
}

func TestIsActiveAt(t *testing.T) {
	expires := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		report Report
		now    time.Time
		want   bool
	}{
		{"live", Report{ExpiresAt: expires, Visible: true}, expires.Add(-time.Minute), true},
		{"window closed", Report{ExpiresAt: expires, Visible: true}, expires, false},
		{"flagged expired", Report{ExpiresAt: expires, Visible: true, Expired: true}, expires.Add(-time.Minute), false},
		{"hidden", Report{ExpiresAt: expires, Visible: false}, expires.Add(-time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.report.IsActiveAt(tt.now); got != tt.want {
				t.Errorf("IsActiveAt(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestBoundingBoxContains(t *testing.T) {
	box := BoundingBox{LatMin: 4.7, LatMax: 4.8, LngMin: -74.1, LngMax: -74.0}

	tests := []struct {
		name     string
		lat, lng float64
		want     bool
	}{
		{"inside", 4.75, -74.05, true},
		{"on min corner", 4.7, -74.1, true},
		{"on max corner", 4.8, -74.0, true},
		{"north of box", 4.81, -74.05, false},
		{"west of box", 4.75, -74.11, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Contains(tt.lat, tt.lng); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.lat, tt.lng, got, tt.want)
			}
		})
	}
}
