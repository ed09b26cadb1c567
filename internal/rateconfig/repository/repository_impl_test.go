package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	ratedomain "github.com/edupointlabs/edupoint/internal/rateconfig/domain"
	wsdomain "github.com/edupointlabs/edupoint/internal/worksession/domain"
)

func intPtr(v int) *int { return &v }

func newTestRepo(t *testing.T) (ratedomain.Repository, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ratedomain.SalaryRule{}, &ratedomain.RangeTier{}))

	node, err := snowflake.NewNode(7)
	require.NoError(t, err)
	return NewRepository(db), node
}

func TestFindRulePicksLatestEffective(t *testing.T) {
	repo, node := newTestRepo(t)
	ctx := context.Background()

	staffID, classID := node.Generate(), node.Generate()

	old := &ratedomain.SalaryRule{
		ID:            node.Generate(),
		StaffID:       staffID,
		ClassID:       classID,
		WorkType:      wsdomain.TypeMainTeaching,
		RateUnit:      ratedomain.UnitShift,
		BaseRate:      200_000,
		EffectiveDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.InsertRule(ctx, old))

	raised := &ratedomain.SalaryRule{
		ID:            node.Generate(),
		StaffID:       staffID,
		ClassID:       classID,
		WorkType:      wsdomain.TypeMainTeaching,
		RateUnit:      ratedomain.UnitShift,
		BaseRate:      250_000,
		EffectiveDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.InsertRule(ctx, raised))

	got, err := repo.FindRule(ctx, staffID, classID, wsdomain.TypeMainTeaching)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, raised.ID, got.ID)
	assert.Equal(t, int64(250_000), got.BaseRate)

	// Different work type: no rule at all.
	got, err = repo.FindRule(ctx, staffID, classID, wsdomain.TypeAssistant)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReplaceTiers(t *testing.T) {
	repo, node := newTestRepo(t)
	ctx := context.Background()

	first := []ratedomain.RangeTier{
		{ID: node.Generate(), MinCount: 1, MaxCount: intPtr(10), Amount: 180_000},
		{ID: node.Generate(), MinCount: 11, Amount: 220_000},
	}
	require.NoError(t, repo.ReplaceTiers(ctx, ratedomain.RangeTeaching, first))

	// The swap is whole-table per range type.
	second := []ratedomain.RangeTier{
		{ID: node.Generate(), MinCount: 1, Amount: 200_000},
	}
	require.NoError(t, repo.ReplaceTiers(ctx, ratedomain.RangeTeaching, second))

	got, err := repo.ListTiers(ctx, ratedomain.RangeTeaching)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(200_000), got[0].Amount)

	// Invalid partitions never touch the stored table.
	bad := []ratedomain.RangeTier{
		{ID: node.Generate(), MinCount: 1, MaxCount: intPtr(10), Amount: 100_000},
		{ID: node.Generate(), MinCount: 5, Amount: 120_000},
	}
	err = repo.ReplaceTiers(ctx, ratedomain.RangeTeaching, bad)
	assert.ErrorIs(t, err, ratedomain.ErrOverlappingTiers)

	got, err = repo.ListTiers(ctx, ratedomain.RangeTeaching)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(200_000), got[0].Amount)

	// Other range types are untouched by the swap.
	other, err := repo.ListTiers(ctx, ratedomain.RangeAssistantFeedback)
	require.NoError(t, err)
	assert.Empty(t, other)
}
