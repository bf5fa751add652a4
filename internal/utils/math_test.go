package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/questledger/internal/domain"
)

func TestCheckedAdd(t *testing.T) {
	sum, err := CheckedAdd(100, 80)
	require.NoError(t, err)
	assert.Equal(t, uint64(180), sum)

	sum, err = CheckedAdd(math.MaxUint64-1, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), sum)

	_, err = CheckedAdd(math.MaxUint64, 1)
	assert.ErrorIs(t, err, domain.ErrArithmeticOverflow)
}

func TestCheckedSub(t *testing.T) {
	diff, err := CheckedSub(1000, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(900), diff)

	_, err = CheckedSub(1, 2)
	assert.ErrorIs(t, err, domain.ErrArithmeticOverflow)
}

func TestMulDivFloor(t *testing.T) {
	tests := []struct {
		name        string
		a, b, denom uint64
		expected    uint64
	}{
		{"budget from pool", 1000, 1000, 10000, 100},
		{"equal shares", 10000, 10000, 20000, 5000},
		{"rounds down", 10000, 10000, 33000, 3030},
		{"zero numerator", 0, 12345, 7, 0},
		{"wide intermediate", math.MaxUint64, 3000, 10000, 5534023222112865484},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MulDivFloor(tt.a, tt.b, tt.denom)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMulDivFloor_Overflow(t *testing.T) {
	_, err := MulDivFloor(math.MaxUint64, 2, 1)
	assert.ErrorIs(t, err, domain.ErrArithmeticOverflow)

	_, err = MulDivFloor(1, 1, 0)
	assert.ErrorIs(t, err, domain.ErrArithmeticOverflow)
}

func TestBasisPointsOf(t *testing.T) {
	fee, err := BasisPointsOf(250, 500)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), fee)
}
