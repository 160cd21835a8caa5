// SPDX-License-Identifier: MIT
// Package: optmath/balance
//
// balance_test.go - postcondition tests for every strategy.

package balance_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/optsuite/OptMATH/balance"
	"github.com/optsuite/OptMATH/config"
)

func TestPartition_Postconditions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		total int64
		parts int
		min   int64
	}{
		{"wide", 1000, 3, 1},
		{"tight", 10, 10, 1},
		{"single", 42, 1, 1},
		{"zero min", 7, 4, 0},
		{"exact fit", 30, 3, 10},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewSource(42))
			got, err := balance.Partition(r, tc.total, tc.parts, tc.min)
			require.NoError(t, err)
			require.Len(t, got, tc.parts)
			var sum int64
			for i, v := range got {
				require.GreaterOrEqual(t, v, tc.min, "part %d below min", i)
				sum += v
			}
			require.Equal(t, tc.total, sum)
		})
	}
}

func TestPartition_InsufficientTotal(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewSource(1))
	_, err := balance.Partition(r, 2, 3, 1)
	require.ErrorIs(t, err, config.ErrConfiguration)
	require.Contains(t, err.Error(), "total=2")
}

func TestPartition_Deterministic(t *testing.T) {
	t.Parallel()

	a, err := balance.Partition(rand.New(rand.NewSource(42)), 1000, 3, 1)
	require.NoError(t, err)
	b, err := balance.Partition(rand.New(rand.NewSource(42)), 1000, 3, 1)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestEqualize(t *testing.T) {
	t.Parallel()

	sum := func(xs []int64) int64 {
		var s int64
		for _, v := range xs {
			s += v
		}
		return s
	}

	t.Run("surplus shrinks front to back", func(t *testing.T) {
		t.Parallel()
		adjust := []int64{50, 40, 30}
		target := []int64{10, 10, 10}
		require.NoError(t, balance.Equalize(adjust, target))
		require.Equal(t, sum(target), sum(adjust))
		require.Equal(t, []int64{0, 0, 30}, adjust) // 90 cut: 50 then 40
	})

	t.Run("deficit lands on first element", func(t *testing.T) {
		t.Parallel()
		adjust := []int64{5, 5}
		target := []int64{20, 20}
		require.NoError(t, balance.Equalize(adjust, target))
		require.Equal(t, []int64{35, 5}, adjust)
	})

	t.Run("already equal is a no-op", func(t *testing.T) {
		t.Parallel()
		adjust := []int64{7, 3}
		require.NoError(t, balance.Equalize(adjust, []int64{4, 6}))
		require.Equal(t, []int64{7, 3}, adjust)
	})

	t.Run("empty adjustable side fails", func(t *testing.T) {
		t.Parallel()
		err := balance.Equalize(nil, []int64{1})
		require.ErrorIs(t, err, config.ErrConfiguration)
	})
}

func TestRaiseTotal(t *testing.T) {
	t.Parallel()

	t.Run("even spread with remainder low", func(t *testing.T) {
		t.Parallel()
		xs := []int64{10, 10, 10}
		require.NoError(t, balance.RaiseTotal(xs, 41))
		require.Equal(t, []int64{14, 14, 13}, xs) // deficit 11 = 4+4+3
	})

	t.Run("sufficient sum untouched", func(t *testing.T) {
		t.Parallel()
		xs := []int64{30, 30}
		require.NoError(t, balance.RaiseTotal(xs, 50))
		require.Equal(t, []int64{30, 30}, xs)
	})

	t.Run("empty with positive target fails", func(t *testing.T) {
		t.Parallel()
		err := balance.RaiseTotal(nil, 1)
		require.ErrorIs(t, err, config.ErrConfiguration)
	})
}

func TestFloors(t *testing.T) {
	t.Parallel()

	require.Equal(t, int64(10), balance.AtLeast(7, 10))
	require.Equal(t, int64(12), balance.AtLeast(12, 10))
	require.Equal(t, 0.5, balance.AtLeastFloat(0.2, 0.5))
	require.Equal(t, 0.9, balance.AtLeastFloat(0.9, 0.5))

	xs := []float64{0.06, 0.09, 0.07}
	balance.RaiseMax(xs, 0.10)
	require.Equal(t, []float64{0.06, 0.10, 0.07}, xs)
	balance.RaiseMax(xs, 0.08) // max already above, untouched
	require.Equal(t, []float64{0.06, 0.10, 0.07}, xs)
}

func TestBigM(t *testing.T) {
	t.Parallel()

	require.Equal(t, 150.0, balance.BigM(150, 1))
	require.Equal(t, 300.0, balance.BigM(150, 2))
	require.Equal(t, 0.0, balance.BigM(-3, 1))
	require.Panics(t, func() { balance.BigM(10, 0.5) })
}
