package geo

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantMeters             float64
		tolerance              float64
	}{
		{
			name: "same point",
			lat1: 52.52, lon1: 13.405, lat2: 52.52, lon2: 13.405,
			wantMeters: 0,
			tolerance:  0.001,
		},
		{
			// One degree of latitude is ~111.2 km everywhere.
			name: "one degree latitude",
			lat1: 0, lon1: 0, lat2: 1, lon2: 0,
			wantMeters: 111195,
			tolerance:  100,
		},
		{
			// ~11 m apart, the scale the tracker's minimum-displacement
			// filter operates at.
			name: "short urban hop",
			lat1: 52.520000, lon1: 13.405000, lat2: 52.520100, lon2: 13.405000,
			wantMeters: 11.1,
			tolerance:  0.2,
		},
		{
			// Berlin to Potsdam, ~26-27 km.
			name: "tens of kilometers",
			lat1: 52.5200, lon1: 13.4050, lat2: 52.3906, lon2: 13.0645,
			wantMeters: 27000,
			tolerance:  1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.wantMeters) > tt.tolerance {
				t.Errorf("Distance() = %v, want %v ± %v", got, tt.wantMeters, tt.tolerance)
			}
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	d1 := Distance(48.8566, 2.3522, 51.5074, -0.1278)
	d2 := Distance(51.5074, -0.1278, 48.8566, 2.3522)
	if math.Abs(d1-d2) > 0.001 {
		t.Errorf("distance not symmetric: %v vs %v", d1, d2)
	}
}

func TestBearing(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
	}{
		{"due north", 0, 0, 1, 0, 0},
		{"due east", 0, 0, 0, 1, 90},
		{"due south", 1, 0, 0, 0, 180},
		{"due west", 0, 1, 0, 0, 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bearing(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("Bearing() = %v, want %v", got, tt.want)
			}
		})
	}
}
