package geo

import (
	"math"
	"testing"
)

func TestDistanceKm_Symmetry(t *testing.T) {
	t.Parallel()

	cases := [][4]float64{
		{4.710, -74.072, 4.711, -74.073},
		{4.710, -74.072, 4.9, -74.9},
		{55.75, 37.61, 59.93, 30.33},
		{-33.45, -70.66, 40.41, -3.70},
	}

	for _, c := range cases {
		ab := DistanceKm(c[0], c[1], c[2], c[3])
		ba := DistanceKm(c[2], c[3], c[0], c[1])
		if ab != ba {
			t.Fatalf("distance not symmetric: %v vs %v for %v", ab, ba, c)
		}
	}
}

func TestDistanceKm_Identity(t *testing.T) {
	t.Parallel()

	if d := DistanceKm(4.710, -74.072, 4.710, -74.072); d != 0 {
		t.Fatalf("expected 0, got %v", d)
	}
}

func TestDistanceKm_KnownDistances(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		want                   float64
		tolerance              float64
	}{
		{
			// two points a block apart in Bogotá
			name: "adjacent blocks",
			lat1: 4.710, lng1: -74.072,
			lat2: 4.711, lng2: -74.073,
			want: 0.15, tolerance: 0.02,
		},
		{
			name: "across the savannah",
			lat1: 4.710, lng1: -74.072,
			lat2: 4.9, lng2: -74.9,
			want: 94.0, tolerance: 2.0,
		},
		{
			name: "one degree of latitude",
			lat1: 0, lng1: 0,
			lat2: 1, lng2: 0,
			want: 111.19, tolerance: 0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Fatalf("got %v, want %v ± %v", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestDistanceKm_RoundedToTwoDecimals(t *testing.T) {
	t.Parallel()

	d := DistanceKm(4.710, -74.072, 4.711, -74.073)
	if d != math.Round(d*100)/100 {
		t.Fatalf("distance %v not rounded to 2 decimals", d)
	}
}

func TestRound5(t *testing.T) {
	t.Parallel()

	if got := Round5(4.7123456789); got != 4.71235 {
		t.Fatalf("got %v, want 4.71235", got)
	}
	if got := Round5(-74.0721449); got != -74.07214 {
		t.Fatalf("got %v, want -74.07214", got)
	}
}

func TestValidCoordinates(t *testing.T) {
	t.Parallel()

	valid := [][2]float64{{0, 0}, {90, 180}, {-90, -180}, {4.71, -74.07}}
	for _, c := range valid {
		if !ValidCoordinates(c[0], c[1]) {
			t.Fatalf("expected valid: %v", c)
		}
	}

	invalid := [][2]float64{{90.1, 0}, {-91, 0}, {0, 180.5}, {0, -181}}
	for _, c := range invalid {
		if ValidCoordinates(c[0], c[1]) {
			t.Fatalf("expected invalid: %v", c)
		}
	}
}
