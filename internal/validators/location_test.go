package validators

import "testing"

func TestIsValidCoordinates(t *testing.T) {
	tests := []struct {
		name      string
		longitude float64
		latitude  float64
		want      bool
	}{
		{name: "origin", longitude: 0, latitude: 0, want: true},
		{name: "typical city", longitude: 72.8777, latitude: 19.076, want: true},
		{name: "longitude boundary", longitude: 180, latitude: 0, want: true},
		{name: "latitude boundary", longitude: 0, latitude: -90, want: true},
		{name: "longitude too large", longitude: 180.1, latitude: 0, want: false},
		{name: "longitude too small", longitude: -181, latitude: 0, want: false},
		{name: "latitude too large", longitude: 0, latitude: 91, want: false},
		{name: "latitude too small", longitude: 0, latitude: -90.5, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidCoordinates(tt.longitude, tt.latitude); got != tt.want {
				t.Errorf("IsValidCoordinates(%v, %v) = %v, want %v",
					tt.longitude, tt.latitude, got, tt.want)
			}
		})
	}
}
