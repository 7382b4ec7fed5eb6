package app_test

import (
	"context"
	"testing"

	"go-hrm/internal/app"
	"go-hrm/internal/events"
	"go-hrm/internal/fives"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestKeysFor(t *testing.T) {
	assert.Equal(t, []string{"employees:options"}, app.KeysFor(events.ChangeEvent{Collection: events.CollectionEmployees}))
	assert.Equal(t,
		[]string{"departments:all", "employees:options"},
		app.KeysFor(events.ChangeEvent{Collection: events.CollectionDepartments, Action: events.ActionUpdated}),
	)
	assert.Empty(t, app.KeysFor(events.ChangeEvent{Collection: events.CollectionInspections, Month: "2024-06"}))
	assert.Empty(t, app.KeysFor(events.ChangeEvent{Collection: events.CollectionHealthRecords}))
}

func TestRetiresRankings(t *testing.T) {
	assert.True(t, app.RetiresRankings(events.ChangeEvent{Collection: events.CollectionInspections}))
	assert.True(t, app.RetiresRankings(events.ChangeEvent{Collection: events.CollectionDepartments}))
	assert.False(t, app.RetiresRankings(events.ChangeEvent{Collection: events.CollectionEmployees}))
	assert.False(t, app.RetiresRankings(events.ChangeEvent{Collection: events.CollectionAttendance}))
}

func TestCacheInvalidator_Invalidate(t *testing.T) {
	ctx := context.Background()

	t.Run("inspection change retires every ranking", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectIncr(fives.RankingVersionKey).SetVal(5)

		err := app.NewCacheInvalidator(rdb).Invalidate(ctx, events.ChangeEvent{
			Collection: events.CollectionInspections,
			Month:      "2024-06",
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("department rename drops lists and rankings", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectDel("departments:all", "employees:options").SetVal(2)
		mock.ExpectIncr(fives.RankingVersionKey).SetVal(6)

		err := app.NewCacheInvalidator(rdb).Invalidate(ctx, events.ChangeEvent{
			Collection: events.CollectionDepartments,
			Action:     events.ActionUpdated,
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("collections without cache are a no-op", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()

		err := app.NewCacheInvalidator(rdb).Invalidate(ctx, events.ChangeEvent{Collection: events.CollectionAttendance})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestModels_CoverEveryTable(t *testing.T) {
	assert.Len(t, app.Models(), 12)
}
