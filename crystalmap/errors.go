package crystalmap

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when a map is built without points.
	ErrEmpty = errors.New("crystal map needs at least one point")
	// ErrNoShape is returned when a 2D accessor is used on a map without
	// scan-shape information.
	ErrNoShape = errors.New("crystal map has no scan shape")
)

// ErrColumnLength indicates a column whose length differs from the
// rotation column.
type ErrColumnLength struct {
	Column string
	Got    int
	Want   int
}

func (e *ErrColumnLength) Error() string {
	return fmt.Sprintf("column %q has %d entries, want %d", e.Column, e.Got, e.Want)
}

// ErrUnknownPhaseID indicates a phase ID with no entry in the attached
// phase list.
type ErrUnknownPhaseID struct {
	ID int
}

func (e *ErrUnknownPhaseID) Error() string {
	return fmt.Sprintf("phase ID %d not present in phase list", e.ID)
}

// ErrUnknownProperty indicates a property column that does not exist.
type ErrUnknownProperty struct {
	Name string
}

func (e *ErrUnknownProperty) Error() string {
	return fmt.Sprintf("unknown property column %q", e.Name)
}

// ErrBadShape indicates scan-shape dimensions inconsistent with the
// number of points.
type ErrBadShape struct {
	Rows, Cols, Points int
}

func (e *ErrBadShape) Error() string {
	return fmt.Sprintf("scan shape %dx%d does not cover %d points", e.Rows, e.Cols, e.Points)
}
