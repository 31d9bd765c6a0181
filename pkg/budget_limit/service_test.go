package budget_limit

import (
	"context"
	"testing"

	"github.com/klokku/budgettracker/internal/event_bus"
	"github.com/klokku/budgettracker/internal/utils"
	"github.com/klokku/budgettracker/pkg/entry"
	"github.com/klokku/budgettracker/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithId(context.Background(), "owner-1")
var limitRepoStub = NewRepositoryStub()
var entryRepoStub = entry.NewRepositoryStub()

func setup(t *testing.T) (*ServiceImpl, func()) {
	entryService := entry.NewService(entryRepoStub, catalog, event_bus.NewEventBus())
	for _, e := range ledger {
		_, err := entryService.Store(ctx, e)
		require.NoError(t, err)
	}
	service := NewService(limitRepoStub, entryService, &utils.MockClock{FixedNow: june})
	return service, func() {
		t.Log("Teardown after test")
		limitRepoStub.Cleanup()
		entryRepoStub.Cleanup()
	}
}

func TestServiceImpl_SaveConfig(t *testing.T) {
	t.Run("should store and return config", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// when
		_, err := service.SaveConfig(ctx, limits())
		require.NoError(t, err)
		stored, err := service.GetConfig(ctx)

		// then
		require.NoError(t, err)
		assert.True(t, d("200").Equal(stored.Categories["courses"]))
		assert.True(t, d("1000").Equal(stored.LongTerm.Epargne))
	})

	t.Run("should fill missing sections", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		saved, err := service.SaveConfig(ctx, Config{})

		require.NoError(t, err)
		assert.NotNil(t, saved.Categories)
		assert.NotNil(t, saved.Epargne)
		assert.NotNil(t, saved.Investissements)
	})

	t.Run("should reject invalid config", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		cfg := limits()
		cfg.Epargne["pea"] = d("10")
		_, err := service.SaveConfig(ctx, cfg)

		assert.ErrorIs(t, err, entry.ErrValidation)
	})

	t.Run("should require user", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		_, err := service.SaveConfig(context.Background(), limits())

		assert.ErrorIs(t, err, user.ErrNoUser)
	})
}

func TestServiceImpl_Overview(t *testing.T) {
	t.Run("should compute progress for current month", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// given
		_, err := service.SaveConfig(ctx, limits())
		require.NoError(t, err)

		// when
		overview, err := service.Overview(ctx)

		// then
		require.NoError(t, err)
		assert.Equal(t, entry.NewDate(2025, 6, 1), overview.Month)
		require.Len(t, overview.Categories, 4)
		assert.True(t, overview.Categories[1].OverBudget)
		assert.True(t, overview.Epargne.Configured)
		assert.False(t, overview.Investissements.Configured)
	})

	t.Run("should degrade to no limits when store is unavailable", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// given
		_, err := service.SaveConfig(ctx, limits())
		require.NoError(t, err)
		limitRepoStub.SetUnavailable(true)

		// when
		overview, err := service.Overview(ctx)

		// then
		require.NoError(t, err)
		assert.Empty(t, overview.Categories)
		assert.False(t, overview.Epargne.Configured)
		assert.True(t, d("500").Equal(overview.Epargne.Spent))
	})
}
