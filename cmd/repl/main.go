package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"simonwaldherr.de/go/themedemo/config"
	"simonwaldherr.de/go/themedemo/demo"
	"simonwaldherr.de/go/themedemo/outcome"
	"simonwaldherr.de/go/themedemo/person"
	"simonwaldherr.de/go/themedemo/seq"
	"simonwaldherr.de/go/themedemo/worker"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

const helpText = `commands:
  greet                 greet as the current person
  deactivate            clear the active flag
  show                  display the current person
  status [NAME]         current status, or parse NAME as a status
  process TEXT...       upper-case TEXT on behalf of the person
  divide A B            divide, reporting division by zero
  largest N...          largest of the numbers
  square N...           square every number
  scale K N...          multiply every number by K
  sum N...              total of the numbers
  even N...             keep only the even numbers
  max A B               larger of two integers
  longer A B            longer of two words
  jobs N...             double every job on a pool of 3 workers
  multiply X Y          multiply two integers
  lookup KEY            look up a setting
  set KEY N             store a setting
  fib N                 N-th Fibonacci number
  help                  this text`

var errUnknown = errors.New("unknown command")

// session is the state that survives between lines.
type session struct {
	person   *person.Person
	settings *config.Settings
}

func newSession() *session {
	return &session{person: person.New("Alice", 30), settings: config.Defaults()}
}

func main() {
	fmt.Println("themedemo REPL — type help for commands. Ctrl-D to exit.")
	run(os.Stdin, os.Stdout, newSession())
}

func run(in io.Reader, out io.Writer, s *session) {
	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, promptStyle.Render("td>")+" ")
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line != "" {
			res, evalErr := s.eval(line)
			if evalErr != nil {
				fmt.Fprintln(out, errorStyle.Render("error: "+evalErr.Error()))
			} else if res != "" {
				fmt.Fprintln(out, res)
			}
		}
		if err != nil {
			fmt.Fprintln(out)
			return
		}
	}
}

func (s *session) eval(line string) (string, error) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		return helpText, nil
	case "greet":
		return s.person.Greet(), nil
	case "deactivate":
		s.person.Deactivate()
		return s.person.String(), nil
	case "show":
		return s.person.Display(), nil
	case "status":
		switch len(args) {
		case 0:
			return s.person.Status().String(), nil
		case 1:
			st, err := person.ParseStatus(args[0])
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s (%d)", st, int(st)), nil
		}
		return "", errors.New("usage: status [NAME]")
	case "process":
		return s.person.Process(strings.Join(args, " "))
	case "divide":
		nums, err := parseFloats(args, 2)
		if err != nil {
			return "", err
		}
		return outcome.Match(outcome.Divide(nums[0], nums[1]),
			func(v float64) string { return fmt.Sprintf("Division result: %.2f", v) },
			func(err error) string { return "Error: " + err.Error() },
		), nil
	case "largest":
		nums, err := parseInts(args, -1)
		if err != nil {
			return "", err
		}
		n, err := seq.Largest(nums)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(n), nil
	case "square":
		nums, err := parseInts(args, -1)
		if err != nil {
			return "", err
		}
		return demo.FormatList(seq.Square(nums)), nil
	case "scale":
		nums, err := parseInts(args, -1)
		if err != nil {
			return "", err
		}
		if len(nums) < 2 {
			return "", errors.New("usage: scale K N...")
		}
		return demo.FormatList(seq.Scale(nums[1:], nums[0])), nil
	case "sum":
		nums, err := parseInts(args, -1)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(seq.Sum(nums)), nil
	case "even":
		nums, err := parseInts(args, -1)
		if err != nil {
			return "", err
		}
		return demo.FormatList(seq.Filter(nums, func(n int) bool { return n%2 == 0 })), nil
	case "max":
		nums, err := parseInts(args, 2)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(seq.MaxValue(nums[0], nums[1])), nil
	case "longer":
		if len(args) != 2 {
			return "", errors.New("usage: longer A B")
		}
		return seq.LongerString(args[0], args[1]), nil
	case "jobs":
		nums, err := parseInts(args, -1)
		if err != nil {
			return "", err
		}
		doubled, err := worker.Pool(context.Background(), 3, nums, func(_ context.Context, _ int, job int) (int, error) {
			return job * 2, nil
		})
		if err != nil {
			return "", err
		}
		return demo.FormatList(doubled), nil
	case "multiply":
		nums, err := parseInts(args, 2)
		if err != nil {
			return "", err
		}
		multiply := func(x, y int) int { return x * y }
		return strconv.Itoa(multiply(nums[0], nums[1])), nil
	case "lookup":
		if len(args) != 1 {
			return "", errors.New("usage: lookup KEY")
		}
		return outcome.Match(s.lookup(args[0]),
			func(v int) string { return fmt.Sprintf("%s: %d", args[0], v) },
			func(err error) string { return err.Error() },
		), nil
	case "set":
		if len(args) != 2 {
			return "", errors.New("usage: set KEY N")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return "", fmt.Errorf("invalid number %q", args[1])
		}
		s.settings.Set(args[0], v)
		return "", nil
	case "fib":
		nums, err := parseInts(args, 1)
		if err != nil {
			return "", err
		}
		n, err := seq.Fibonacci(nums[0])
		v, err := outcome.From(n, err).Unwrap()
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(v, 10), nil
	}
	return "", fmt.Errorf("%w %q (try help)", errUnknown, cmd)
}

// lookup turns a settings miss into an explicit Err outcome.
func (s *session) lookup(key string) outcome.Result[int] {
	if v, ok := s.settings.Lookup(key); ok {
		return outcome.Ok(v)
	}
	return outcome.Err[int](key + " not configured")
}

// parseInts converts args to ints. A negative want means "one or more
// arguments"; otherwise exactly want arguments are required.
func parseInts(args []string, want int) ([]int, error) {
	if err := checkArity(args, want); err != nil {
		return nil, err
	}
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out[i] = n
	}
	return out, nil
}

func parseFloats(args []string, want int) ([]float64, error) {
	if err := checkArity(args, want); err != nil {
		return nil, err
	}
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out[i] = f
	}
	return out, nil
}

func checkArity(args []string, want int) error {
	switch {
	case want < 0 && len(args) == 0:
		return errors.New("expected at least one number")
	case want >= 0 && len(args) != want:
		return fmt.Errorf("expected %d arguments, got %d", want, len(args))
	}
	return nil
}
