// Package person holds the sample data pushed through the streams.
package person

import (
	"fmt"

	"github.com/samber/lo"
)

// Person is an immutable first and last name pair.
type Person struct {
	FirstName string `json:"first_name" yaml:"first_name" validate:"required"`
	LastName  string `json:"last_name"  yaml:"last_name"  validate:"required"`
}

// New creates a Person.
func New(firstName, lastName string) Person {
	return Person{FirstName: firstName, LastName: lastName}
}

// SayMyName formats the full name as a sentence.
func (p Person) SayMyName() string {
	return sayMyName(p.FirstName, p.LastName)
}

// Command is a command-object view of a Person. It copies the fields at
// construction time and keeps no reference back to the Person.
type Command struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// NewCommand copies p into a Command.
func NewCommand(p Person) Command {
	return Command{FirstName: p.FirstName, LastName: p.LastName}
}

// SayMyName formats the full name as a sentence.
func (c Command) SayMyName() string {
	return sayMyName(c.FirstName, c.LastName)
}

// ToCommands converts a batch of people.
func ToCommands(people []Person) []Command {
	return lo.Map(people, func(p Person, _ int) Command {
		return NewCommand(p)
	})
}

func sayMyName(first, last string) string {
	return fmt.Sprintf("My Name is %s %s.", first, last)
}
