package kernel_test

import (
	"math/rand/v2"
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLocation(t *testing.T, x, y kernel.Coordinate) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(x, y)
	require.NoError(t, err)
	return loc
}

func TestNewLocation(t *testing.T) {
	tests := []struct {
		name    string
		x       kernel.Coordinate
		y       kernel.Coordinate
		wantErr bool
	}{
		{name: "inside the grid", x: 5, y: 5},
		{name: "min corner", x: kernel.LocationMinX, y: kernel.LocationMinY},
		{name: "max corner", x: kernel.LocationMaxX, y: kernel.LocationMaxY},
		{name: "x below range", x: 0, y: 5, wantErr: true},
		{name: "x above range", x: 11, y: 5, wantErr: true},
		{name: "y below range", x: 5, y: 0, wantErr: true},
		{name: "y above range", x: 5, y: 11, wantErr: true},
		{name: "both off the grid", x: -3, y: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := kernel.NewLocation(tt.x, tt.y)

			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				assert.Equal(t, kernel.Location{}, loc)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.x, loc.X())
			assert.Equal(t, tt.y, loc.Y())
			assert.NoError(t, loc.Validate())
		})
	}

	t.Run("reports both axes when both are invalid", func(t *testing.T) {
		_, err := kernel.NewLocation(0, 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "x is 0")
		assert.Contains(t, err.Error(), "y is 0")
	})
}

func TestNewRandomLocation(t *testing.T) {
	t.Run("should fail without a generator", func(t *testing.T) {
		_, err := kernel.NewRandomLocation(nil)

		require.ErrorIs(t, err, kernel.ErrRandomSourceIsRequired)
	})

	t.Run("should stay on the grid and cover every value", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(1, 2))
		seenX := map[kernel.Coordinate]bool{}
		seenY := map[kernel.Coordinate]bool{}

		for range 2000 {
			loc, err := kernel.NewRandomLocation(rng)
			require.NoError(t, err)
			require.GreaterOrEqual(t, loc.X(), kernel.LocationMinX)
			require.LessOrEqual(t, loc.X(), kernel.LocationMaxX)
			require.GreaterOrEqual(t, loc.Y(), kernel.LocationMinY)
			require.LessOrEqual(t, loc.Y(), kernel.LocationMaxY)
			seenX[loc.X()] = true
			seenY[loc.Y()] = true
		}

		assert.Len(t, seenX, 10)
		assert.Len(t, seenY, 10)
	})

	t.Run("should be reproducible for the same seed", func(t *testing.T) {
		a := rand.New(rand.NewPCG(7, 7))
		b := rand.New(rand.NewPCG(7, 7))

		for range 20 {
			la, err := kernel.NewRandomLocation(a)
			require.NoError(t, err)
			lb, err := kernel.NewRandomLocation(b)
			require.NoError(t, err)
			assert.Equal(t, la.String(), lb.String())
		}
	})
}

func TestLocation_Validate(t *testing.T) {
	var zero kernel.Location

	require.ErrorIs(t, zero.Validate(), kernel.ErrLocationIsNotConstructed)
	require.NoError(t, kernel.MinLocation().Validate())
	require.NoError(t, kernel.MaxLocation().Validate())
}

func TestLocation_String(t *testing.T) {
	assert.Equal(t, "Location(3,9)", mustLocation(t, 3, 9).String())
}

func TestLocation_IsEqual(t *testing.T) {
	a := mustLocation(t, 2, 3)

	t.Run("same cell", func(t *testing.T) {
		eq, err := a.IsEqual(mustLocation(t, 2, 3))
		require.NoError(t, err)
		assert.True(t, eq)
	})

	t.Run("different cell", func(t *testing.T) {
		eq, err := a.IsEqual(mustLocation(t, 3, 2))
		require.NoError(t, err)
		assert.False(t, eq)
	})

	t.Run("zero value is rejected", func(t *testing.T) {
		_, err := a.IsEqual(kernel.Location{})
		require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
	})
}

func TestLocation_Distance(t *testing.T) {
	tests := []struct {
		name     string
		from, to [2]kernel.Coordinate
		want     int
	}{
		{name: "same cell", from: [2]kernel.Coordinate{4, 4}, to: [2]kernel.Coordinate{4, 4}, want: 0},
		{name: "horizontal", from: [2]kernel.Coordinate{1, 5}, to: [2]kernel.Coordinate{7, 5}, want: 6},
		{name: "vertical", from: [2]kernel.Coordinate{5, 9}, to: [2]kernel.Coordinate{5, 2}, want: 7},
		{name: "diagonal", from: [2]kernel.Coordinate{1, 1}, to: [2]kernel.Coordinate{4, 5}, want: 7},
		{name: "opposite corners", from: [2]kernel.Coordinate{1, 1}, to: [2]kernel.Coordinate{10, 10}, want: 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustLocation(t, tt.from[0], tt.from[1])
			b := mustLocation(t, tt.to[0], tt.to[1])

			ab, err := a.Distance(b)
			require.NoError(t, err)
			ba, err := b.Distance(a)
			require.NoError(t, err)

			assert.Equal(t, tt.want, ab)
			assert.Equal(t, ab, ba)
		})
	}

	t.Run("zero value target is rejected", func(t *testing.T) {
		_, err := mustLocation(t, 1, 1).Distance(kernel.Location{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestLocation_StepToward(t *testing.T) {
	tests := []struct {
		name   string
		from   [2]kernel.Coordinate
		to     [2]kernel.Coordinate
		budget int
		want   [2]kernel.Coordinate
	}{
		{name: "x is walked first", from: [2]kernel.Coordinate{1, 1}, to: [2]kernel.Coordinate{5, 5}, budget: 2, want: [2]kernel.Coordinate{3, 1}},
		{name: "leftover budget goes to y", from: [2]kernel.Coordinate{1, 1}, to: [2]kernel.Coordinate{2, 5}, budget: 3, want: [2]kernel.Coordinate{2, 3}},
		{name: "negative directions", from: [2]kernel.Coordinate{9, 9}, to: [2]kernel.Coordinate{7, 1}, budget: 4, want: [2]kernel.Coordinate{7, 7}},
		{name: "does not overshoot", from: [2]kernel.Coordinate{1, 1}, to: [2]kernel.Coordinate{2, 2}, budget: 10, want: [2]kernel.Coordinate{2, 2}},
		{name: "zero budget stays put", from: [2]kernel.Coordinate{3, 3}, to: [2]kernel.Coordinate{8, 8}, budget: 0, want: [2]kernel.Coordinate{3, 3}},
		{name: "already there", from: [2]kernel.Coordinate{6, 6}, to: [2]kernel.Coordinate{6, 6}, budget: 3, want: [2]kernel.Coordinate{6, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from := mustLocation(t, tt.from[0], tt.from[1])
			to := mustLocation(t, tt.to[0], tt.to[1])

			got, err := from.StepToward(to, tt.budget)

			require.NoError(t, err)
			assert.Equal(t, tt.want[0], got.X())
			assert.Equal(t, tt.want[1], got.Y())
		})
	}

	t.Run("never spends more than the budget and always gets closer", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(3, 5))
		for range 500 {
			from, err := kernel.NewRandomLocation(rng)
			require.NoError(t, err)
			to, err := kernel.NewRandomLocation(rng)
			require.NoError(t, err)
			budget := rng.IntN(6)

			next, err := from.StepToward(to, budget)
			require.NoError(t, err)

			before, _ := from.Distance(to)
			after, _ := next.Distance(to)
			spent, _ := from.Distance(next)
			assert.LessOrEqual(t, spent, budget)
			assert.Equal(t, before-spent, after)
		}
	})

	t.Run("rejects a negative budget", func(t *testing.T) {
		_, err := kernel.MinLocation().StepToward(kernel.MaxLocation(), -1)
		require.ErrorIs(t, err, kernel.ErrStepBudgetIsNegative)
	})

	t.Run("rejects a zero value target", func(t *testing.T) {
		_, err := kernel.MinLocation().StepToward(kernel.Location{}, 1)
		require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
	})
}

func TestLocation_Translate(t *testing.T) {
	t.Run("moves relative to the current cell", func(t *testing.T) {
		got, err := mustLocation(t, 4, 4).Translate(2, -3)

		require.NoError(t, err)
		assert.Equal(t, "Location(6,1)", got.String())
	})

	t.Run("rejects leaving the grid", func(t *testing.T) {
		_, err := kernel.MaxLocation().Translate(1, 0)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
