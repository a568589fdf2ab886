package demo

import (
	"io"

	jsoniter "github.com/json-iterator/go"

	"simonwaldherr.de/go/themedemo/outcome"
	"simonwaldherr.de/go/themedemo/person"
)

// Report collects every value a run printed.
type Report struct {
	RunID    string         `json:"run_id"`
	Greeting string         `json:"greeting"`
	Scores   []int          `json:"scores"`
	Largest  int            `json:"largest"`
	Timeout  *int           `json:"timeout"`
	Division DivisionReport `json:"division"`
	Product  int            `json:"product"`
	Squared  []int          `json:"squared"`
	Display  string         `json:"display"`
	Final    person.Person  `json:"final"`
}

type DivisionReport struct {
	OK    bool    `json:"ok"`
	Value float64 `json:"value"`
	Error string  `json:"error,omitempty"`
}

func newDivisionReport(r outcome.Result[float64]) DivisionReport {
	return outcome.Match(r,
		func(v float64) DivisionReport { return DivisionReport{OK: true, Value: v} },
		func(err error) DivisionReport { return DivisionReport{Error: err.Error()} },
	)
}

// WriteReport encodes r as indented JSON.
func WriteReport(w io.Writer, r *Report) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
