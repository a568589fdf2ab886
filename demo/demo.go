// demo/demo.go
package demo

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"simonwaldherr.de/go/themedemo/config"
	"simonwaldherr.de/go/themedemo/outcome"
	"simonwaldherr.de/go/themedemo/person"
	"simonwaldherr.de/go/themedemo/seq"
	"simonwaldherr.de/go/themedemo/worker"
)

// Options parameterises a run. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	Name     string
	Age      uint32
	Scores   []int
	Extra    int
	Dividend float64
	Divisor  float64
	Settings *config.Settings
	Schedule worker.Schedule
}

func DefaultOptions() Options {
	return Options{
		Name:     "Alice",
		Age:      30,
		Scores:   []int{85, 92, 78, 96, 88},
		Extra:    95,
		Dividend: 10.0,
		Divisor:  2.0,
		Settings: config.Defaults(),
		Schedule: worker.DefaultSchedule(),
	}
}

// FromConfig returns DefaultOptions with the settings and schedule of cfg.
func FromConfig(cfg config.Config) Options {
	o := DefaultOptions()
	if cfg.Settings != nil {
		o.Settings = cfg.Settings
	}
	o.Schedule = cfg.Schedule
	return o
}

// Run plays the whole sequence, printing each step to w.
func Run(ctx context.Context, w io.Writer, opts Options, log *zap.Logger) (*Report, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Settings == nil {
		opts.Settings = config.NewSettings()
	}
	rep := &Report{RunID: uuid.NewString()}
	log = log.With(zap.String("run_id", rep.RunID))
	p := &printer{w: w}

	// Record and method call.
	alice := person.New(opts.Name, opts.Age)
	rep.Greeting = alice.Greet()
	p.println(rep.Greeting)

	// Slice growth.
	scores := append(append([]int(nil), opts.Scores...), opts.Extra)
	rep.Scores = scores
	p.printf("Scores: %s\n", FormatList(scores))

	largest, err := seq.Largest(scores)
	if err != nil {
		return rep, err
	}
	rep.Largest = largest
	p.printf("Largest score: %d\n", largest)

	// Keyed lookup with an explicit absent branch.
	if timeout, ok := opts.Settings.Lookup("timeout"); ok {
		rep.Timeout = &timeout
		p.printf("Timeout: %d\n", timeout)
	} else {
		p.println("Timeout not configured")
	}

	// Two-variant outcome.
	division := outcome.Divide(opts.Dividend, opts.Divisor)
	rep.Division = newDivisionReport(division)
	p.println(outcome.Match(division,
		func(v float64) string { return fmt.Sprintf("Division result: %.2f", v) },
		func(err error) string { return fmt.Sprintf("Error: %v", err) },
	))

	multiply := func(x, y int) int { return x * y }
	rep.Product = multiply(5, 6)
	p.printf("Multiplication result: %d\n", rep.Product)

	rep.Squared = seq.Square(scores)
	p.printf("Squared scores: %s\n", FormatList(rep.Squared))

	if p.err != nil {
		return rep, p.err
	}

	if err := ctx.Err(); err != nil {
		return rep, err
	}
	log.Debug("spawning worker")
	if err := worker.Interleave(ctx, w, opts.Schedule, log); err != nil {
		log.Warn("interleave aborted", zap.Error(err))
		return rep, err
	}

	rep.Display = alice.Display()
	p.printf("Person display: %s\n", rep.Display)

	alice.Deactivate()
	rep.Final = *alice
	p.printf("After deactivation: %s\n", alice)

	log.Info("demo complete", zap.Int("largest", rep.Largest), zap.Bool("division_ok", rep.Division.OK))
	return rep, p.err
}

// FormatList renders ints as [a, b, c].
func FormatList(list []int) string {
	parts := seq.Map(list, strconv.Itoa)
	return "[" + strings.Join(parts, ", ") + "]"
}

// printer remembers the first write error so the happy path stays linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) println(s string) { p.printf("%s\n", s) }
