package kernel

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Coordinate is one axis of a grid cell.
type Coordinate int

const (
	LocationMinX Coordinate = 1
	LocationMinY Coordinate = 1
	LocationMaxX Coordinate = 10
	LocationMaxY Coordinate = 10
)

var (
	// ErrLocationIsNotConstructed is returned when a zero-value Location reaches an operation.
	ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location")
	// ErrRandomSourceIsRequired is returned by NewRandomLocation when no generator is supplied.
	ErrRandomSourceIsRequired = errs.NewValueIsRequiredError("rng")
	// ErrStepBudgetIsNegative is returned by StepToward for a budget below zero.
	ErrStepBudgetIsNegative = errs.NewValueIsInvalidErrorWithCause("budget", errors.New("must not be negative"))
)

// Location is a cell on the delivery grid. Both coordinates lie in
// [LocationMinX..LocationMaxX] and [LocationMinY..LocationMaxY].
//
// The zero value is not a location; it fails Validate and every method that
// takes another Location rejects it.
//
// Example:
//
//	loc, err := kernel.NewLocation(5, 7)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(loc) // Location(5,7)
type Location struct { //nolint:recvcheck // pointer receivers only on private setters
	x     Coordinate
	y     Coordinate
	guard guard.ConstructorGuard
}

// NewLocation validates both coordinates and returns the joined range errors
// when either is off the grid.
//
// Parameters:
//   - x: horizontal coordinate in [LocationMinX..LocationMaxX]
//   - y: vertical coordinate in [LocationMinY..LocationMaxY]
//
// Returns:
//   - Location: the constructed value
//   - error: *errs.ValueIsOutOfRangeError for each offending axis
func NewLocation(x Coordinate, y Coordinate) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setX(x), loc.setY(y)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// NewRandomLocation draws x and y independently and uniformly from the grid using rng.
// The generator is always supplied by the caller so that tests and simulations can
// seed it; callers sharing one generator across goroutines must serialize access.
//
// Example:
//
//	rng := rand.New(rand.NewPCG(42, 1024))
//	loc, err := kernel.NewRandomLocation(rng)
func NewRandomLocation(rng *rand.Rand) (Location, error) {
	if rng == nil {
		return Location{}, ErrRandomSourceIsRequired
	}

	x := LocationMinX + Coordinate(rng.IntN(int(LocationMaxX-LocationMinX+1)))
	y := LocationMinY + Coordinate(rng.IntN(int(LocationMaxY-LocationMinY+1)))
	return NewLocation(x, y)
}

// MinLocation returns the top-left cell of the grid.
func MinLocation() Location {
	return Location{x: LocationMinX, y: LocationMinY, guard: guard.NewConstructorGuard()}
}

// MaxLocation returns the bottom-right cell of the grid.
func MaxLocation() Location {
	return Location{x: LocationMaxX, y: LocationMaxY, guard: guard.NewConstructorGuard()}
}

func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) X() Coordinate {
	return l.x
}

func (l Location) Y() Coordinate {
	return l.y
}

// String implements fmt.Stringer as "Location(x,y)".
func (l Location) String() string {
	return fmt.Sprintf("Location(%d,%d)", l.x, l.y)
}

// IsEqual reports whether both locations point at the same cell.
// It fails when either side is a zero value.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.x == other.x && l.y == other.y, nil
}

// Distance returns the Manhattan distance |x1-x2| + |y1-y2|.
// It is symmetric, zero only for equal cells, and fails when either side is absent.
//
// Example:
//
//	a, _ := kernel.NewLocation(1, 1)
//	b, _ := kernel.NewLocation(4, 5)
//	d, _ := a.Distance(b) // 7
func (l Location) Distance(other Location) (int, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	return int(abs(l.x-other.x) + abs(l.y-other.y)), nil
}

// StepToward moves from l toward target spending at most budget unit steps.
// The x axis is walked first; whatever budget is left after x goes to y.
// The result never passes the target, so it stays on the grid.
//
// Parameters:
//   - target: destination cell
//   - budget: maximum number of unit steps, usually a courier's speed
//
// Returns:
//   - Location: the cell reached
//   - error: validation error when either location is absent or budget is negative
//
// Example:
//
//	from, _ := kernel.NewLocation(1, 1)
//	to, _ := kernel.NewLocation(5, 5)
//	next, _ := from.StepToward(to, 2) // Location(3,1)
func (l Location) StepToward(target Location, budget int) (Location, error) {
	if err := errors.Join(l.Validate(), target.Validate()); err != nil {
		return Location{}, err
	}
	if budget < 0 {
		return Location{}, ErrStepBudgetIsNegative
	}

	dx := clamp(target.x-l.x, Coordinate(budget))
	remaining := Coordinate(budget) - abs(dx)
	dy := clamp(target.y-l.y, remaining)

	return NewLocation(l.x+dx, l.y+dy)
}

// Translate returns the location shifted by (dx, dy).
// It fails with a range error if the result would leave the grid.
func (l Location) Translate(dx, dy Coordinate) (Location, error) {
	if err := l.Validate(); err != nil {
		return Location{}, err
	}

	return NewLocation(l.x+dx, l.y+dy)
}

func (l *Location) setX(x Coordinate) error {
	if x < LocationMinX || x > LocationMaxX {
		return errs.NewValueIsOutOfRangeError("x", x, LocationMinX, LocationMaxX)
	}

	l.x = x
	return nil
}

func (l *Location) setY(y Coordinate) error {
	if y < LocationMinY || y > LocationMaxY {
		return errs.NewValueIsOutOfRangeError("y", y, LocationMinY, LocationMaxY)
	}

	l.y = y
	return nil
}

// clamp limits delta to [-limit, limit].
func clamp(delta, limit Coordinate) Coordinate {
	switch {
	case delta > limit:
		return limit
	case delta < -limit:
		return -limit
	default:
		return delta
	}
}

func abs(x Coordinate) Coordinate {
	if x < 0 {
		return -x
	}
	return x
}
