// Package fakedata generates registrants with realistic random values
// for seeding test environments.
package fakedata

import (
	"math/rand"

	"github.com/go-faker/faker/v4"

	"github.com/sandrolain/regkit/pkg/registrant"
)

// profile carries the faker-generated fields of a registrant.
// https://github.com/go-faker/faker#supported-tags
type profile struct {
	Name  string  `faker:"name"`
	Email string  `faker:"email"`
	Lat   float64 `faker:"lat"`
	Lon   float64 `faker:"long"`
}

var cities = []string{"Rome", "Milan", "Turin", "Naples", "Bologna", "Genoa", "Palermo", "Florence"}

// NewRegistrant generates a registrant with realistic random values.
func NewRegistrant() registrant.Registrant {
	var p profile
	if err := faker.FakeData(&p); err != nil {
		// If faker fails, fall back to a minimal valid profile
		p = profile{Name: "default", Email: "default@example.com"}
	}
	city := cities[rand.Intn(len(cities))] // #nosec G404 -- test data generator
	age := 18 + rand.Intn(63)              // #nosec G404 -- test data generator
	return registrant.New(p.Name, age, city, p.Email, p.Lat, p.Lon)
}
