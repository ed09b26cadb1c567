package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestValidateTiers(t *testing.T) {
	valid := []RangeTier{
		{MinCount: 0, MaxCount: intPtr(5), Amount: 180_000},
		{MinCount: 6, MaxCount: intPtr(10), Amount: 220_000},
		{MinCount: 11, MaxCount: nil, Amount: 260_000},
	}
	require.NoError(t, ValidateTiers(valid))

	assert.ErrorIs(t, ValidateTiers(nil), ErrNoTiers)

	inverted := []RangeTier{{MinCount: 10, MaxCount: intPtr(5)}}
	assert.ErrorIs(t, ValidateTiers(inverted), ErrUnorderedTiers)

	overlapping := []RangeTier{
		{MinCount: 0, MaxCount: intPtr(6)},
		{MinCount: 6, MaxCount: intPtr(10)},
	}
	assert.ErrorIs(t, ValidateTiers(overlapping), ErrOverlappingTiers)

	openNotLast := []RangeTier{
		{MinCount: 0, MaxCount: nil},
		{MinCount: 11, MaxCount: intPtr(20)},
	}
	assert.ErrorIs(t, ValidateTiers(openNotLast), ErrOverlappingTiers)
}

func TestTierFor(t *testing.T) {
	tiers := []RangeTier{
		{MinCount: 0, MaxCount: intPtr(5), Amount: 180_000},
		{MinCount: 6, MaxCount: intPtr(10), Amount: 220_000},
		{MinCount: 11, MaxCount: nil, Amount: 260_000},
	}

	cases := []struct {
		count  int
		amount int64
	}{
		{0, 180_000},
		{5, 180_000},
		{6, 220_000},
		{10, 220_000},
		{11, 260_000},
		{500, 260_000},
	}
	for _, tc := range cases {
		tier := TierFor(tiers, tc.count)
		require.NotNil(t, tier, "count %d", tc.count)
		assert.Equal(t, tc.amount, tier.Amount, "count %d", tc.count)
	}

	// A gap in the partition resolves to no tier.
	gapped := []RangeTier{
		{MinCount: 5, MaxCount: intPtr(10), Amount: 220_000},
	}
	assert.Nil(t, TierFor(gapped, 3))
}
