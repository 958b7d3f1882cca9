// Package core holds the domain of lineage: people, countries, actions and fixture events.
package core

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

// Person is a node of the family tree rendered by the demo.
// Children form a finite tree; cycles are not expected.
type Person struct {
	Name            string
	Surname         string
	Birthday        time.Time
	Street          string
	HouseNumber     string
	ApartmentNumber *string
	ZipCode         string
	City            string
	CountryID       *int
	Children        []Person
}

// Clone returns a deep copy of the person and all of its descendants.
func (p Person) Clone() Person {
	out := p
	if p.ApartmentNumber != nil {
		apartment := *p.ApartmentNumber
		out.ApartmentNumber = &apartment
	}
	if p.CountryID != nil {
		id := *p.CountryID
		out.CountryID = &id
	}
	if p.Children != nil {
		out.Children = make([]Person, len(p.Children))
		for i, child := range p.Children {
			out.Children[i] = child.Clone()
		}
	}
	return out
}

// Country is referenced by Person.CountryID.
type Country struct {
	ID   int
	Name string
}

// Directory indexes countries by ID.
type Directory map[int]Country

// NewDirectory builds a Directory from a static list. Later duplicates win.
func NewDirectory(countries []Country) Directory {
	return lo.KeyBy(countries, func(c Country) int { return c.ID })
}

// Lookup returns the country registered under id.
func (d Directory) Lookup(id int) (Country, bool) {
	c, ok := d[id]
	return c, ok
}

// ActionType tags an Action.
type ActionType string

const (
	ActionCreate ActionType = "create"
	ActionRead   ActionType = "read"
	ActionUpdate ActionType = "update"
	ActionDelete ActionType = "delete"
	ActionDebug  ActionType = "debug"
)

// Valid reports whether t is one of the known action types.
func (t ActionType) Valid() bool {
	switch t {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionDebug:
		return true
	}
	return false
}

// Action is dispatched through the event bus to every subscriber.
type Action struct {
	Type    ActionType
	Payload string
}

// String renders the action the way subscribers log it.
func (a Action) String() string {
	return fmt.Sprintf("Event type: %s, payload: %s", a.Type, a.Payload)
}

// EventType represents the type of change in the fixture directory.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change of a fixture file.
type Event struct {
	Type      EventType
	ID        string // fixture path relative to the fixture root
	Timestamp int64  // Unix timestamp
}

// String implements lifecycle.Event.
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}
