// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package voyage

import (
	"context"
	"time"

	"github.com/teradata-labs/troupe/pkg/props"
)

// DefaultOrigin is the departure city used when the model omits one.
const DefaultOrigin = "New York"

// Flight is one mock flight option.
type Flight struct {
	Airline      string `json:"airline"`
	FlightNumber string `json:"flight_number"`
	Departure    string `json:"departure"`
	Price        string `json:"price"`
}

// Hotel is one mock hotel option.
type Hotel struct {
	Name      string   `json:"name"`
	Rating    float64  `json:"rating"`
	Price     string   `json:"price"`
	Amenities []string `json:"amenities"`
}

// Attraction is one mock point of interest.
type Attraction struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Duration string `json:"duration"`
}

// Restaurant is one mock dining option.
type Restaurant struct {
	Name       string  `json:"name"`
	Cuisine    string  `json:"cuisine"`
	PriceRange string  `json:"price_range"`
	Rating     float64 `json:"rating"`
}

// departureDate and returnDate compute the default travel window:
// one and two weeks out.
func departureDate(now time.Time) string { return now.AddDate(0, 0, 7).Format("2006-01-02") }
func returnDate(now time.Time) string    { return now.AddDate(0, 0, 14).Format("2006-01-02") }

// FlightsTool returns mock flights between two cities.
type FlightsTool struct{}

func (FlightsTool) Name() string        { return "get_flights" }
func (FlightsTool) Description() string { return "Retrieve available flights between two locations" }

func (FlightsTool) InputSchema() *props.JSONSchema {
	return props.NewObjectSchema("Flight search parameters", map[string]*props.JSONSchema{
		"origin":      props.NewStringSchema("Departure city"),
		"destination": props.NewStringSchema("Arrival city"),
		"date":        props.NewStringSchema("Departure date (YYYY-MM-DD)"),
	}, []string{"origin", "destination", "date"})
}

func (FlightsTool) Execute(ctx context.Context, params map[string]interface{}) (*props.Result, error) {
	return &props.Result{Success: true, Data: []Flight{
		{Airline: "Delta", FlightNumber: "DL123", Departure: "08:00 AM", Price: "$350"},
		{Airline: "United", FlightNumber: "UA456", Departure: "11:30 AM", Price: "$420"},
		{Airline: "American", FlightNumber: "AA789", Departure: "03:15 PM", Price: "$390"},
	}}, nil
}

// HotelsTool returns mock hotels in a destination.
type HotelsTool struct{}

func (HotelsTool) Name() string        { return "suggest_hotels" }
func (HotelsTool) Description() string { return "Find hotels in a destination" }

func (HotelsTool) InputSchema() *props.JSONSchema {
	return props.NewObjectSchema("Hotel search parameters", map[string]*props.JSONSchema{
		"destination": props.NewStringSchema("City to search in"),
		"check_in":    props.NewStringSchema("Check-in date (YYYY-MM-DD)"),
		"check_out":   props.NewStringSchema("Check-out date (YYYY-MM-DD)"),
	}, []string{"destination", "check_in", "check_out"})
}

func (HotelsTool) Execute(ctx context.Context, params map[string]interface{}) (*props.Result, error) {
	return &props.Result{Success: true, Data: []Hotel{
		{Name: "Grand Plaza Hotel", Rating: 4.5, Price: "$120/night", Amenities: []string{"Pool", "Spa", "Free WiFi"}},
		{Name: "Harbor View Inn", Rating: 4.2, Price: "$95/night", Amenities: []string{"Beach Access", "Breakfast"}},
		{Name: "City Center Suites", Rating: 4.0, Price: "$110/night", Amenities: []string{"Gym", "Restaurant"}},
	}}, nil
}

// AttractionsTool returns mock attractions in a destination.
type AttractionsTool struct{}

func (AttractionsTool) Name() string        { return "get_attractions" }
func (AttractionsTool) Description() string { return "Get top attractions in a destination" }

func (AttractionsTool) InputSchema() *props.JSONSchema {
	return props.NewObjectSchema("Attraction search parameters", map[string]*props.JSONSchema{
		"destination": props.NewStringSchema("City to explore"),
	}, []string{"destination"})
}

func (AttractionsTool) Execute(ctx context.Context, params map[string]interface{}) (*props.Result, error) {
	return &props.Result{Success: true, Data: []Attraction{
		{Name: "Historic Downtown", Type: "Cultural", Duration: "3-4 hours"},
		{Name: "Nature Reserve Park", Type: "Outdoor", Duration: "Half day"},
		{Name: "Art Museum", Type: "Indoor", Duration: "2-3 hours"},
	}}, nil
}

// RestaurantsTool returns mock restaurants in a destination.
type RestaurantsTool struct{}

func (RestaurantsTool) Name() string        { return "get_restaurants" }
func (RestaurantsTool) Description() string { return "Find recommended restaurants" }

func (RestaurantsTool) InputSchema() *props.JSONSchema {
	return props.NewObjectSchema("Restaurant search parameters", map[string]*props.JSONSchema{
		"destination": props.NewStringSchema("City to search in"),
	}, []string{"destination"})
}

func (RestaurantsTool) Execute(ctx context.Context, params map[string]interface{}) (*props.Result, error) {
	return &props.Result{Success: true, Data: []Restaurant{
		{Name: "Seafood Haven", Cuisine: "Seafood", PriceRange: "$$$", Rating: 4.7},
		{Name: "Mountain View Bistro", Cuisine: "International", PriceRange: "$$", Rating: 4.5},
		{Name: "Local Bites", Cuisine: "Traditional", PriceRange: "$", Rating: 4.3},
	}}, nil
}

var (
	_ props.Tool = FlightsTool{}
	_ props.Tool = HotelsTool{}
	_ props.Tool = AttractionsTool{}
	_ props.Tool = RestaurantsTool{}
)
