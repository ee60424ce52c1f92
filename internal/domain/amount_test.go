package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	maxInt128String = "170141183460469231731687303715884105727"
	minInt128String = "-170141183460469231731687303715884105728"
)

func TestAmount_Arithmetic(t *testing.T) {
	t.Run("Add", func(t *testing.T) {
		sum, err := NewAmount(1000).Add(NewAmount(100))
		require.NoError(t, err)
		assert.Equal(t, "1100", sum.String())
	})

	t.Run("Sub", func(t *testing.T) {
		diff, err := NewAmount(1000).Sub(NewAmount(300))
		require.NoError(t, err)
		assert.Equal(t, "700", diff.String())
	})

	t.Run("Mul", func(t *testing.T) {
		product, err := NewAmount(10).Mul(NewAmount(1000))
		require.NoError(t, err)
		assert.Equal(t, "10000", product.String())
	})

	t.Run("Div truncates toward zero", func(t *testing.T) {
		q, err := NewAmount(7).Div(NewAmount(2))
		require.NoError(t, err)
		assert.Equal(t, "3", q.String())

		q, err = NewAmount(-7).Div(NewAmount(2))
		require.NoError(t, err)
		assert.Equal(t, "-3", q.String())
	})

	t.Run("Div by zero", func(t *testing.T) {
		_, err := NewAmount(1).Div(NewAmount(0))
		assert.ErrorIs(t, err, ErrMathOverflow)
	})
}

func TestAmount_Overflow(t *testing.T) {
	max, err := ParseAmount(maxInt128String)
	require.NoError(t, err)
	min, err := ParseAmount(minInt128String)
	require.NoError(t, err)

	t.Run("Add past max", func(t *testing.T) {
		_, err := max.Add(NewAmount(1))
		assert.ErrorIs(t, err, ErrMathOverflow)
	})

	t.Run("Sub past min", func(t *testing.T) {
		_, err := min.Sub(NewAmount(1))
		assert.ErrorIs(t, err, ErrMathOverflow)
	})

	t.Run("Mul past max", func(t *testing.T) {
		_, err := max.Mul(NewAmount(2))
		assert.ErrorIs(t, err, ErrMathOverflow)
	})

	t.Run("At the bounds succeeds", func(t *testing.T) {
		sum, err := max.Add(NewAmount(0))
		require.NoError(t, err)
		assert.True(t, sum.Equal(max))

		diff, err := min.Sub(NewAmount(0))
		require.NoError(t, err)
		assert.True(t, diff.Equal(min))
	})
}

func TestParseAmount(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		a, err := ParseAmount("4500")
		require.NoError(t, err)
		assert.Equal(t, "4500", a.String())
	})

	t.Run("Negative", func(t *testing.T) {
		a, err := ParseAmount("-1")
		require.NoError(t, err)
		assert.True(t, a.Sign() < 0)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := ParseAmount("not-a-number")
		assert.Error(t, err)
	})

	t.Run("Out of range", func(t *testing.T) {
		_, err := ParseAmount("170141183460469231731687303715884105728")
		assert.ErrorIs(t, err, ErrMathOverflow)
	})
}

func TestAmount_Comparisons(t *testing.T) {
	a := NewAmount(100)
	b := NewAmount(200)

	assert.True(t, a.LessThan(b))
	assert.True(t, b.GreaterThan(a))
	assert.True(t, a.Equal(NewAmount(100)))
	assert.True(t, NewAmount(0).IsZero())
	assert.True(t, a.IsPositive())
	assert.False(t, NewAmount(-5).IsPositive())
}

func TestAmount_ZeroValue(t *testing.T) {
	// The zero Amount must behave as 0 so uninitialized counters are safe.
	var a Amount
	assert.True(t, a.IsZero())
	assert.Equal(t, "0", a.String())

	sum, err := a.Add(NewAmount(7))
	require.NoError(t, err)
	assert.Equal(t, "7", sum.String())
}

func TestAmount_JSON(t *testing.T) {
	t.Run("Marshal as string", func(t *testing.T) {
		data, err := json.Marshal(NewAmount(1100))
		require.NoError(t, err)
		assert.Equal(t, `"1100"`, string(data))
	})

	t.Run("Unmarshal string", func(t *testing.T) {
		var a Amount
		require.NoError(t, json.Unmarshal([]byte(`"4500"`), &a))
		assert.Equal(t, "4500", a.String())
	})

	t.Run("Unmarshal bare number", func(t *testing.T) {
		var a Amount
		require.NoError(t, json.Unmarshal([]byte(`4500`), &a))
		assert.Equal(t, "4500", a.String())
	})

	t.Run("Round trip at max", func(t *testing.T) {
		max, err := ParseAmount(maxInt128String)
		require.NoError(t, err)
		data, err := json.Marshal(max)
		require.NoError(t, err)
		var back Amount
		require.NoError(t, json.Unmarshal(data, &back))
		assert.True(t, back.Equal(max))
	})
}

func TestAmount_SQL(t *testing.T) {
	t.Run("Value", func(t *testing.T) {
		v, err := NewAmount(42).Value()
		require.NoError(t, err)
		assert.Equal(t, "42", v)
	})

	t.Run("Scan", func(t *testing.T) {
		var a Amount
		require.NoError(t, a.Scan([]byte("1100")))
		assert.Equal(t, "1100", a.String())

		require.NoError(t, a.Scan(int64(-7)))
		assert.Equal(t, "-7", a.String())

		require.NoError(t, a.Scan(nil))
		assert.True(t, a.IsZero())

		assert.Error(t, a.Scan(3.14))
	})
}
