package seatmap

import (
	"errors"
	"fmt"
)

// BusType is the coach category of a bus.
type BusType string

const (
	BusTypeNoneAC  BusType = "NONE_AC_BUS"
	BusTypeAC      BusType = "AC_BUS"
	BusTypeSleeper BusType = "SLEEPER_BUS"
)

// Class is the service class offered on a bus.
type Class string

const (
	ClassEconomy    Class = "ECONOMY"
	ClassBusiness   Class = "BUSINESS"
	ClassFirstClass Class = "FIRSTCLASS"
)

// ErrUnsupportedCombination is returned when no layout exists for a
// busType and class pair.
var ErrUnsupportedCombination = errors.New("unsupported bus type and class combination")

// Seat pairs a seat number (1..N) with its printed label ("1A", "14C", ...).
type Seat struct {
	Number int    `json:"number"`
	Label  string `json:"label"`
}

// Layout is the ordered enumeration of every valid seat on a bus,
// sorted by seat number ascending.
type Layout []Seat

// MaxSeat returns the highest valid seat number in the layout.
func (l Layout) MaxSeat() int {
	if len(l) == 0 {
		return 0
	}
	return l[len(l)-1].Number
}

// Label returns the printed label for a seat number, and whether the
// number exists in the layout.
func (l Layout) Label(number int) (string, bool) {
	if number < 1 || number > len(l) {
		return "", false
	}
	return l[number-1].Label, true
}

// Contains reports whether the seat number exists in the layout.
func (l Layout) Contains(number int) bool {
	return number >= 1 && number <= len(l)
}

// Layouts are built once at startup and never mutated afterwards.
// For hands out copies so callers cannot corrupt the canonical tables.
var (
	noneACEconomyLayout = gridLayout(15, "ABCD")
	businessClassLayout = append(gridLayout(13, "ABC"), Seat{Number: 40, Label: "14A"})
	acFirstClassLayout  = gridLayout(15, "AB")
	sleeperFirstLayout  = gridLayout(10, "AB")
)

// gridLayout enumerates rows 1..rows with one seat per column letter,
// numbering seats row by row.
func gridLayout(rows int, columns string) Layout {
	layout := make(Layout, 0, rows*len(columns))
	number := 1
	for row := 1; row <= rows; row++ {
		for _, col := range columns {
			layout = append(layout, Seat{
				Number: number,
				Label:  fmt.Sprintf("%d%c", row, col),
			})
			number++
		}
	}
	return layout
}

// For returns the seat layout for a busType and class combination.
// Five combinations are supported:
//
//	NONE_AC_BUS x ECONOMY    60 seats
//	NONE_AC_BUS x BUSINESS   40 seats
//	AC_BUS      x BUSINESS   40 seats
//	AC_BUS      x FIRSTCLASS 30 seats
//	SLEEPER_BUS x FIRSTCLASS 20 seats
//
// Anything else returns ErrUnsupportedCombination. The returned slice
// is a copy and safe to retain.
func For(busType BusType, class Class) (Layout, error) {
	var canonical Layout

	switch {
	case busType == BusTypeNoneAC && class == ClassEconomy:
		canonical = noneACEconomyLayout
	case busType == BusTypeNoneAC && class == ClassBusiness:
		canonical = businessClassLayout
	case busType == BusTypeAC && class == ClassBusiness:
		canonical = businessClassLayout
	case busType == BusTypeAC && class == ClassFirstClass:
		canonical = acFirstClassLayout
	case busType == BusTypeSleeper && class == ClassFirstClass:
		canonical = sleeperFirstLayout
	default:
		return nil, fmt.Errorf("%w: %s/%s", ErrUnsupportedCombination, busType, class)
	}

	layout := make(Layout, len(canonical))
	copy(layout, canonical)
	return layout, nil
}

// ValidBusType reports whether the value is a known bus type.
func ValidBusType(v string) bool {
	switch BusType(v) {
	case BusTypeNoneAC, BusTypeAC, BusTypeSleeper:
		return true
	}
	return false
}

// ValidClass reports whether the value is a known service class.
func ValidClass(v string) bool {
	switch Class(v) {
	case ClassEconomy, ClassBusiness, ClassFirstClass:
		return true
	}
	return false
}
