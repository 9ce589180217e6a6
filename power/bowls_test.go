package power

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustNew(t *testing.T, b1, b2, b3 int) Bowls {
	t.Helper()
	b, err := New(b1, b2, b3)
	require.NoError(t, err)
	return b
}

func TestGain(t *testing.T) {
	t.Run("fills bowl II from bowl I before bowl III", func(t *testing.T) {
		b := mustNew(t, 2, 0, 0)

		require.NoError(t, b.Gain(5))

		require.Equal(t, State{I: 0, II: 0, III: 2}, b.State(), "Only two tokens exist, so both end in bowl III")
	})

	t.Run("gain of five moves two from I and three from II", func(t *testing.T) {
		b := mustNew(t, 2, 3, 0)

		require.NoError(t, b.Gain(5))

		require.Equal(t, State{I: 0, II: 2, III: 3}, b.State())
	})

	t.Run("excess gain is dropped", func(t *testing.T) {
		b := mustNew(t, 1, 1, 10)

		require.NoError(t, b.Gain(100))

		require.Equal(t, State{I: 0, II: 0, III: 12}, b.State())
		require.Equal(t, 12, b.Total())
	})

	t.Run("tokens in bowl III are untouched", func(t *testing.T) {
		b := mustNew(t, 5, 0, 7)

		require.NoError(t, b.Gain(3))

		require.Equal(t, State{I: 2, II: 3, III: 7}, b.State())
	})

	t.Run("negative gain is rejected", func(t *testing.T) {
		b := mustNew(t, 5, 7, 0)

		require.ErrorIs(t, b.Gain(-1), ErrNegativeAmount)
		require.Equal(t, State{I: 5, II: 7}, b.State(), "Rejected gain should not move tokens")
	})
}

func TestSpend(t *testing.T) {
	t.Run("moves tokens back to bowl I", func(t *testing.T) {
		b := mustNew(t, 0, 4, 8)

		require.NoError(t, b.Spend(5))

		require.Equal(t, State{I: 5, II: 4, III: 3}, b.State())
		require.Equal(t, 3, b.Available())
	})

	t.Run("fails when bowl III is short", func(t *testing.T) {
		b := mustNew(t, 4, 6, 2)

		err := b.Spend(3)

		require.ErrorIs(t, err, ErrInsufficientPower)
		require.Equal(t, State{I: 4, II: 6, III: 2}, b.State())
	})
}

func TestSacrifice(t *testing.T) {
	t.Run("burns tokens and moves as many to bowl III", func(t *testing.T) {
		b := mustNew(t, 2, 8, 2)

		require.NoError(t, b.Sacrifice(3))

		require.Equal(t, State{I: 2, II: 2, III: 5}, b.State())
		require.Equal(t, 9, b.Total(), "Sacrifice should shrink the total by exactly the amount")
		require.NoError(t, b.Check())
	})

	t.Run("requires twice the amount in bowl II", func(t *testing.T) {
		b := mustNew(t, 7, 5, 0)

		require.ErrorIs(t, b.Sacrifice(3), ErrInsufficientTokens)
		require.Equal(t, 12, b.Total())
		require.True(t, b.CanSacrifice(2))
		require.False(t, b.CanSacrifice(3))
		require.Equal(t, []int{1, 2}, b.SacrificeOptions())
	})
}

func TestConservation(t *testing.T) {
	b, err := Standard(5, 7)
	require.NoError(t, err)

	for i, step := range []struct {
		gain  int
		spend int
	}{
		{gain: 3}, {gain: 9}, {spend: 4}, {gain: 1}, {gain: 12}, {spend: 12}, {gain: 0}, {gain: 2}, {spend: 1},
	} {
		if step.gain > 0 {
			require.NoError(t, b.Gain(step.gain))
		}
		if step.spend > 0 && step.spend <= b.Available() {
			require.NoError(t, b.Spend(step.spend))
		}
		require.Equal(t, Tokens, b.State().Sum(), "Token count should be conserved at step %d", i)
		require.NoError(t, b.Check())
	}
}

func TestSimulate(t *testing.T) {
	b := mustNew(t, 3, 4, 1)

	got := b.Simulate(6)

	require.Equal(t, State{I: 0, II: 4, III: 4}, got)
	require.Equal(t, Tokens, got.Sum())
	require.Equal(t, State{I: 3, II: 4, III: 1}, b.State(), "Simulation should not mutate the bowls")
	require.Equal(t, 10, b.MaxUsefulGain())
}

func TestConstructors(t *testing.T) {
	_, err := New(-1, 3, 0)
	require.ErrorIs(t, err, ErrNegativeAmount)

	_, err = Standard(5, 6)
	require.ErrorIs(t, err, ErrInvariant)

	var zero Bowls
	require.NoError(t, zero.Check())
	require.Equal(t, "0/0/0", zero.String())
}
