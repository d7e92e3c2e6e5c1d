package core

// Totals holds the running sum of every numeric logbook category across the
// whole entry sequence. Count categories sum as integers, piloting-time
// categories as decimal hours. Totals are always recomputed in full; there is
// no incremental path to keep consistent.
type Totals struct {
	SingleEngine        int     `json:"single_engine"`
	MultiEngine         int     `json:"multi_engine"`
	Helicopter          int     `json:"helicopter"`
	DualReceived        float64 `json:"dual_received"`
	PilotInCommand      float64 `json:"pilot_in_command"`
	SecondInCommand     float64 `json:"second_in_command"`
	FlightInstructor    float64 `json:"flight_instructor"`
	GroundTrainer       int     `json:"ground_trainer"`
	Day                 float64 `json:"day"`
	Night               float64 `json:"night"`
	CrossCountry        float64 `json:"cross_country"`
	ActualInstrument    float64 `json:"actual_instrument"`
	SimulatedInstrument float64 `json:"simulated_instrument"`
	InstApp             int     `json:"inst_app"`
	LDGDay              int     `json:"ldg_day"`
	LDGNight            int     `json:"ldg_night"`
	FlightDuration      float64 `json:"flight_duration"`
}

// Aggregate computes category totals over the entry sequence. Unparsable or
// missing values contribute zero, never an error.
func Aggregate(entries []FlightEntry) Totals {
	var t Totals
	for _, e := range entries {
		t.SingleEngine += ParseCount(e.SingleEngine)
		t.MultiEngine += ParseCount(e.MultiEngine)
		t.Helicopter += ParseCount(e.Helicopter)
		t.DualReceived += ParseHours(e.DualReceived)
		t.PilotInCommand += ParseHours(e.PilotInCommand)
		t.SecondInCommand += ParseHours(e.SecondInCommand)
		t.FlightInstructor += ParseHours(e.FlightInstructor)
		t.GroundTrainer += ParseCount(e.GroundTrainer)
		t.Day += ParseHours(e.Day)
		t.Night += ParseHours(e.Night)
		t.CrossCountry += ParseHours(e.CrossCountry)
		t.ActualInstrument += ParseHours(e.ActualInstrument)
		t.SimulatedInstrument += ParseHours(e.SimulatedInstrument)
		t.InstApp += ParseCount(e.InstApp)
		t.LDGDay += ParseCount(e.LDGDay)
		t.LDGNight += ParseCount(e.LDGNight)
		t.FlightDuration += ParseHours(e.FlightDuration)
	}
	return t
}
