// person/person.go
package person

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyData is returned by Process for empty input.
var ErrEmptyData = errors.New("empty data")

// Displayer is implemented by anything with a human-readable one-line form.
type Displayer interface {
	Display() string
}

// Person is a named, aged subject with an active flag.
type Person struct {
	Name   string `json:"name"`
	Age    uint32 `json:"age"`
	Active bool   `json:"active"`
}

// New returns an active Person.
func New(name string, age uint32) *Person {
	return &Person{Name: name, Age: age, Active: true}
}

func (p *Person) Greet() string {
	return fmt.Sprintf("Hello, my name is %s and I am %d years old", p.Name, p.Age)
}

// Deactivate clears the active flag. Calling it twice is harmless.
func (p *Person) Deactivate() { p.Active = false }

func (p *Person) Display() string {
	return fmt.Sprintf("%s (age: %d, active: %t)", p.Name, p.Age, p.Active)
}

// String renders the debug form, e.g. Person { name: "Alice", age: 30, active: true }.
func (p Person) String() string {
	return fmt.Sprintf("Person { name: %q, age: %d, active: %t }", p.Name, p.Age, p.Active)
}

func (p *Person) Status() Status {
	if p.Active {
		return StatusActive
	}
	return StatusInactive
}

// Process upper-cases data on behalf of the person.
func (p *Person) Process(data string) (string, error) {
	if data == "" {
		return "", ErrEmptyData
	}
	return strings.ToUpper(data), nil
}

var _ Displayer = (*Person)(nil)
