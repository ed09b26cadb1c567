package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to ContractStatus
		ok       bool
	}{
		{StatusDraft, StatusPaid, true},
		{StatusDraft, StatusCancelled, true},
		{StatusDraft, StatusDebt, false},
		{StatusPaid, StatusDebt, true},
		{StatusPaid, StatusCancelled, true},
		{StatusPaid, StatusDraft, false},
		{StatusDebt, StatusCancelled, true},
		{StatusDebt, StatusPaid, false},
		{StatusCancelled, StatusDraft, false},
		{StatusCancelled, StatusPaid, false},
		{StatusPaid, StatusPaid, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestSessionGrant(t *testing.T) {
	c := &Contract{}
	err := c.SetLineItems([]LineItem{
		{Kind: ItemCourse, Name: "48-session bundle", Quantity: 48, UnitPrice: 150_000, FinalPrice: 7_200_000},
		{Kind: ItemProduct, Name: "Textbook", Quantity: 2, UnitPrice: 120_000, FinalPrice: 240_000},
		{Kind: ItemCourse, Name: "Extra sessions", Quantity: 4, UnitPrice: 150_000, FinalPrice: 600_000},
	})
	require.NoError(t, err)

	grant, err := c.SessionGrant()
	require.NoError(t, err)
	assert.Equal(t, 52, grant, "product quantities must not count as sessions")
}

func TestSessionGrantMaterialOnly(t *testing.T) {
	c := &Contract{}
	err := c.SetLineItems([]LineItem{
		{Kind: ItemProduct, Name: "Uniform", Quantity: 1, UnitPrice: 350_000, FinalPrice: 350_000},
	})
	require.NoError(t, err)

	grant, err := c.SessionGrant()
	require.NoError(t, err)
	assert.Zero(t, grant)
}

func TestLineItemsEmpty(t *testing.T) {
	c := &Contract{}
	items, err := c.LineItems()
	require.NoError(t, err)
	assert.Nil(t, items)
}
