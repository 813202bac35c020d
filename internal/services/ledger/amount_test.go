package ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckedAdd(t *testing.T) {
	t.Parallel()

	got, err := checkedAdd(1_000, 250)
	require.NoError(t, err)
	assert.Equal(t, int64(1_250), got)

	got, err = checkedAdd(math.MaxInt64-1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), got)

	_, err = checkedAdd(math.MaxInt64, 1)
	assert.ErrorIs(t, err, ErrArithmeticOverflow)

	_, err = checkedAdd(math.MaxInt64-10, 11)
	assert.ErrorIs(t, err, ErrArithmeticOverflow)
}

func TestCheckedSub(t *testing.T) {
	t.Parallel()

	got, err := checkedSub(1_000, 250)
	require.NoError(t, err)
	assert.Equal(t, int64(750), got)

	got, err = checkedSub(300, 300)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)

	_, err = checkedSub(200, 300)
	assert.ErrorIs(t, err, ErrArithmeticUnderflow)
}
