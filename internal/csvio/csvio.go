// Package csvio converts flight entries to and from the standard 23-column
// logbook CSV layout. The same header row and cell formatting are reused by
// the spreadsheet mirror.
package csvio

import (
	"fmt"
	"strings"

	"github.com/jszwec/csvutil"

	"flightlog/internal/core"
)

// record maps a flight entry onto the CSV column set. Column order matters:
// it must match the published header exactly.
type record struct {
	Date            string `csv:"Date"`
	AircraftModel   string `csv:"Aircraft Make & Model"`
	AircraftID      string `csv:"Aircraft Identification Number"`
	From            string `csv:"From"`
	To              string `csv:"To"`
	SingleEngine    string `csv:"Single-Engine Land"`
	MultiEngine     string `csv:"Multi-Engine Land"`
	Helicopter      string `csv:"Helicopter"`
	DualReceived    string `csv:"Dual Received"`
	PilotInCommand  string `csv:"Pilot in Command"`
	SecondInCommand string `csv:"Second-in-command"`
	FlightInstr     string `csv:"Flight Instructor"`
	GroundTrainer   string `csv:"Ground Trainer"`
	Day             string `csv:"Day"`
	Night           string `csv:"Night"`
	CrossCountry    string `csv:"Cross-Country"`
	ActualInstr     string `csv:"Actual Instrument"`
	SimulatedInstr  string `csv:"Simulated Instrument"`
	InstApp         string `csv:"INST APP"`
	LDGDay          string `csv:"LDG Day"`
	LDGNight        string `csv:"LDG Night"`
	FlightDuration  string `csv:"Flight Duration"`
	Remarks         string `csv:"Remarks"`
}

// Headers returns the column names in export order.
func Headers() []string {
	h, err := csvutil.Header(record{}, "csv")
	if err != nil {
		panic(err) // static struct, cannot fail
	}
	return h
}

// Row renders one entry as export cells, in header order.
func Row(e core.FlightEntry) []string {
	r := toRecord(e)
	return []string{
		r.Date, r.AircraftModel, r.AircraftID, r.From, r.To,
		r.SingleEngine, r.MultiEngine, r.Helicopter, r.DualReceived,
		r.PilotInCommand, r.SecondInCommand, r.FlightInstr, r.GroundTrainer,
		r.Day, r.Night, r.CrossCountry, r.ActualInstr, r.SimulatedInstr,
		r.InstApp, r.LDGDay, r.LDGNight, r.FlightDuration, r.Remarks,
	}
}

// Export renders the full sequence as a CSV document with the header row.
// Dates become YYYY-MM-DD; entries without a well-formed date export as
// 0000-00-00 so the row count is preserved.
func Export(entries []core.FlightEntry) ([]byte, error) {
	records := make([]record, len(entries))
	for i, e := range entries {
		records[i] = toRecord(e)
	}
	out, err := csvutil.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("marshal entries: %w", err)
	}
	return out, nil
}

// Import parses a CSV document back into entries. Rows keep their file
// order. Dates in YYYY-MM-DD form are converted to the compact form; a
// six-digit value passes through verbatim; anything else becomes 000000.
func Import(data []byte) ([]core.FlightEntry, error) {
	var records []record
	if err := csvutil.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal entries: %w", err)
	}
	entries := make([]core.FlightEntry, len(records))
	for i, r := range records {
		entries[i] = fromRecord(r)
	}
	return entries, nil
}

func toRecord(e core.FlightEntry) record {
	return record{
		Date:            exportDate(e.Date),
		AircraftModel:   e.AircraftModel,
		AircraftID:      e.AircraftID,
		From:            e.From,
		To:              e.To,
		SingleEngine:    e.SingleEngine,
		MultiEngine:     e.MultiEngine,
		Helicopter:      e.Helicopter,
		DualReceived:    e.DualReceived,
		PilotInCommand:  e.PilotInCommand,
		SecondInCommand: e.SecondInCommand,
		FlightInstr:     e.FlightInstructor,
		GroundTrainer:   e.GroundTrainer,
		Day:             e.Day,
		Night:           e.Night,
		CrossCountry:    e.CrossCountry,
		ActualInstr:     e.ActualInstrument,
		SimulatedInstr:  e.SimulatedInstrument,
		InstApp:         e.InstApp,
		LDGDay:          e.LDGDay,
		LDGNight:        e.LDGNight,
		FlightDuration:  e.FlightDuration,
		Remarks:         e.Remarks,
	}
}

func fromRecord(r record) core.FlightEntry {
	return core.FlightEntry{
		Date:                importDate(r.Date),
		AircraftModel:       r.AircraftModel,
		AircraftID:          r.AircraftID,
		From:                r.From,
		To:                  r.To,
		SingleEngine:        r.SingleEngine,
		MultiEngine:         r.MultiEngine,
		Helicopter:          r.Helicopter,
		DualReceived:        r.DualReceived,
		PilotInCommand:      r.PilotInCommand,
		SecondInCommand:     r.SecondInCommand,
		FlightInstructor:    r.FlightInstr,
		GroundTrainer:       r.GroundTrainer,
		Day:                 r.Day,
		Night:               r.Night,
		CrossCountry:        r.CrossCountry,
		ActualInstrument:    r.ActualInstr,
		SimulatedInstrument: r.SimulatedInstr,
		InstApp:             r.InstApp,
		LDGDay:              r.LDGDay,
		LDGNight:            r.LDGNight,
		FlightDuration:      r.FlightDuration,
		Remarks:             r.Remarks,
	}
}

func exportDate(raw string) string {
	if !core.ValidDate(raw) {
		return "0000-00-00"
	}
	return core.FormatDate(raw)
}

func importDate(cell string) string {
	cell = strings.TrimSpace(cell)
	if core.ValidDate(cell) {
		return cell
	}
	// YYYY-MM-DD → YYMMDD
	if len(cell) == 10 && cell[4] == '-' && cell[7] == '-' {
		compact := cell[2:4] + cell[5:7] + cell[8:10]
		if core.ValidDate(compact) {
			return compact
		}
	}
	return "000000"
}
