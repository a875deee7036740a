package fakedata

import (
	"strings"
	"testing"
)

func TestNewRegistrant(t *testing.T) {
	for i := 0; i < 10; i++ {
		r := NewRegistrant()

		if r.Name == "" {
			t.Error("NewRegistrant() returned empty name")
		}
		if !strings.Contains(r.Email, "@") {
			t.Errorf("NewRegistrant() email = %q, want an address with '@'", r.Email)
		}
		if r.City == "" {
			t.Error("NewRegistrant() returned empty city")
		}
		if r.Age < 18 || r.Age > 80 {
			t.Errorf("NewRegistrant() age = %d, want 18..80", r.Age)
		}
		if r.Location.Type != "Point" {
			t.Errorf("NewRegistrant() location type = %q, want 'Point'", r.Location.Type)
		}
		if len(r.Location.Coordinates) != 2 {
			t.Errorf("NewRegistrant() coordinates = %v, want [longitude, latitude]", r.Location.Coordinates)
		}
	}
}
