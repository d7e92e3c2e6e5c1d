package core

import (
	"math"
	"time"
)

const (
	// Trailing window for recency-of-experience rules.
	RecencyWindowDays = 90

	requiredRecentLandings  = 3
	requiredInstrumentHours = 6.0
	requiredInstructorHours = 10.0
)

// LandingCurrency is the status of a landing-recency rule. LastLandingDate is
// the most recent in-window date on which any landing (day or night) was
// logged; the zero time means no qualifying landing.
type LandingCurrency struct {
	Met             bool      `json:"met"`
	Deficit         int       `json:"deficit"`
	LastLandingDate time.Time `json:"last_landing_date"`
}

// InstrumentCurrency is the status of the cumulative instrument-time rule.
// TimeRequiredHours counts actual instrument time only, while Deficit uses
// the combined actual+simulated total.
type InstrumentCurrency struct {
	Met               bool    `json:"met"`
	Deficit           float64 `json:"deficit"`
	TimeRequiredHours float64 `json:"time_required_hours"`
}

// InstructorCurrency is the status of the cumulative instructor-time rule.
type InstructorCurrency struct {
	Met     bool    `json:"met"`
	Deficit float64 `json:"deficit"`
}

// CurrencyStatus bundles all four rule results. It is derived state, never
// persisted, and recomputed whenever the entry sequence changes.
type CurrencyStatus struct {
	FlightProficiency LandingCurrency    `json:"flight_proficiency"`
	IFRCurrency       InstrumentCurrency `json:"ifr_currency"`
	CFICurrency       InstructorCurrency `json:"cfi_currency"`
	NightCurrency     LandingCurrency    `json:"night_currency"`
}

// EvaluateCurrency derives regulatory currency from the raw entry sequence
// and its totals. Proficiency and night landings look at a rolling window of
// RecencyWindowDays ending at today; instrument and instructor time are
// lifetime cumulative. Entries with an invalid or unset date are silently
// excluded from the window.
func EvaluateCurrency(entries []FlightEntry, totals Totals, today time.Time) CurrencyStatus {
	// Date-only subtraction so DST shifts cannot move the window edge.
	y, m, d := today.Date()
	windowStart := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -RecencyWindowDays)

	var recentDayLandings, recentNightLandings int
	var lastLanding time.Time
	for _, e := range entries {
		date, ok := DecodeDate(e.Date)
		if !ok || date.Before(windowStart) {
			continue
		}
		day := ParseCount(e.LDGDay)
		night := ParseCount(e.LDGNight)
		recentDayLandings += day
		recentNightLandings += night
		if (day > 0 || night > 0) && date.After(lastLanding) {
			lastLanding = date
		}
	}

	profDeficit := max(requiredRecentLandings-recentDayLandings, 0)
	nightDeficit := max(requiredRecentLandings-recentNightLandings, 0)
	ifrDeficit := math.Max(requiredInstrumentHours-(totals.ActualInstrument+totals.SimulatedInstrument), 0)
	cfiDeficit := math.Max(requiredInstructorHours-totals.FlightInstructor, 0)

	return CurrencyStatus{
		// Day and night proficiency share the pooled last-landing date.
		FlightProficiency: LandingCurrency{
			Met:             profDeficit == 0,
			Deficit:         profDeficit,
			LastLandingDate: lastLanding,
		},
		NightCurrency: LandingCurrency{
			Met:             nightDeficit == 0,
			Deficit:         nightDeficit,
			LastLandingDate: lastLanding,
		},
		IFRCurrency: InstrumentCurrency{
			Met:               ifrDeficit == 0,
			Deficit:           ifrDeficit,
			TimeRequiredHours: math.Max(requiredInstrumentHours-totals.ActualInstrument, 0),
		},
		CFICurrency: InstructorCurrency{
			Met:     cfiDeficit == 0,
			Deficit: cfiDeficit,
		},
	}
}
