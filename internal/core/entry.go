package core

import (
	"strconv"
	"strings"
)

// FlightEntry is one logged flight exactly as the pilot entered it. Every
// field is free-form text; numeric fields are coerced on demand so a typo in
// one column never poisons the rest of the record.
type FlightEntry struct {
	Date                string `json:"date"`
	AircraftModel       string `json:"aircraft_model"`
	AircraftID          string `json:"aircraft_id"`
	From                string `json:"from"`
	To                  string `json:"to"`
	SingleEngine        string `json:"single_engine"`
	MultiEngine         string `json:"multi_engine"`
	Helicopter          string `json:"helicopter"`
	DualReceived        string `json:"dual_received"`
	PilotInCommand      string `json:"pilot_in_command"`
	SecondInCommand     string `json:"second_in_command"`
	FlightInstructor    string `json:"flight_instructor"`
	GroundTrainer       string `json:"ground_trainer"`
	Day                 string `json:"day"`
	Night               string `json:"night"`
	CrossCountry        string `json:"cross_country"`
	ActualInstrument    string `json:"actual_instrument"`
	SimulatedInstrument string `json:"simulated_instrument"`
	InstApp             string `json:"inst_app"`
	LDGDay              string `json:"ldg_day"`
	LDGNight            string `json:"ldg_night"`
	FlightDuration      string `json:"flight_duration"`
	Remarks             string `json:"remarks"`
}

// ParseCount reads an integer count field (landings, approaches, aircraft
// category ticks). Decimal input is truncated; anything unparsable
// contributes zero. Negative values pass through unchanged.
func ParseCount(s string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return int(f)
}

// ParseHours reads a decimal hours field. Unparsable input contributes zero.
func ParseHours(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
