package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/parts-be/internal/core/domain"
	"github.com/ammerola/parts-be/internal/core/services"
	"github.com/ammerola/parts-be/test/helpers"
	"github.com/ammerola/parts-be/test/mocks"
)

func storeWithQuantities(quantities ...int) *helpers.PartStore {
	parts := make([]*domain.Part, len(quantities))
	for i, q := range quantities {
		q := q
		parts[i] = helpers.CreateTestPart(func(p *domain.Part) {
			p.Name = "Part " + string(rune('A'+i))
			p.Quantity = q
		})
	}
	return helpers.NewPartStore(parts...)
}

func quantities(store *helpers.PartStore) []int {
	var out []int
	for _, p := range store.Snapshot() {
		out = append(out, p.Quantity)
	}
	return out
}

func TestStockReplenisher_Replenish(t *testing.T) {
	tests := []struct {
		name           string
		quantities     []int
		minimum        int
		wantUpdated    int
		wantQuantities []int
	}{
		{
			name:           "raises_parts_below_floor",
			quantities:     []int{2, 0, 15},
			minimum:        10,
			wantUpdated:    2,
			wantQuantities: []int{10, 10, 15},
		},
		{
			name:           "part_at_floor_is_untouched",
			quantities:     []int{10, 9, 11},
			minimum:        10,
			wantUpdated:    1,
			wantQuantities: []int{10, 10, 11},
		},
		{
			name:           "zero_minimum_changes_nothing",
			quantities:     []int{0, 3},
			minimum:        0,
			wantUpdated:    0,
			wantQuantities: []int{0, 3},
		},
		{
			name:           "custom_floor",
			quantities:     []int{4, 24, 25, 26},
			minimum:        25,
			wantUpdated:    2,
			wantQuantities: []int{25, 25, 25, 26},
		},
		{
			name:        "empty_repository",
			minimum:     10,
			wantUpdated: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storeWithQuantities(tt.quantities...)
			replenisher := services.NewStockReplenisher(store, nil, helpers.TestLogger())

			result, err := replenisher.Replenish(context.Background(), tt.minimum)
			require.NoError(t, err)

			assert.Equal(t, tt.wantUpdated, result.UpdatedCount)
			assert.Equal(t, tt.minimum, result.Minimum)
			assert.Equal(t, tt.wantQuantities, quantities(store))
		})
	}
}

func TestStockReplenisher_ReplenishTwiceIsIdempotent(t *testing.T) {
	store := storeWithQuantities(1, 5, 30)
	replenisher := services.NewStockReplenisher(store, nil, helpers.TestLogger())

	first, err := replenisher.Replenish(context.Background(), domain.DefaultReplenishMinimum)
	require.NoError(t, err)
	assert.Equal(t, 2, first.UpdatedCount)

	second, err := replenisher.Replenish(context.Background(), domain.DefaultReplenishMinimum)
	require.NoError(t, err)
	assert.Equal(t, 0, second.UpdatedCount)
	assert.Equal(t, []int{10, 10, 30}, quantities(store))
}

func TestStockReplenisher_ReplenishWithMocks(t *testing.T) {
	tests := []struct {
		name          string
		minimum       int
		setupMocks    func(repo *mocks.MockPartRepository, cache *mocks.MockCacheRepository)
		expectedError bool
		errorIs       error
		wantUpdated   int
	}{
		{
			name:    "invalidates_cache_when_rows_change",
			minimum: 10,
			setupMocks: func(repo *mocks.MockPartRepository, cache *mocks.MockCacheRepository) {
				repo.EXPECT().RaiseQuantityFloor(gomock.Any(), 10).Return(int64(3), nil)
				cache.EXPECT().DeletePattern(gomock.Any(), gomock.Any()).Return(nil).Times(2)
			},
			wantUpdated: 3,
		},
		{
			name:    "no_changes_keep_cache",
			minimum: 10,
			setupMocks: func(repo *mocks.MockPartRepository, cache *mocks.MockCacheRepository) {
				repo.EXPECT().RaiseQuantityFloor(gomock.Any(), 10).Return(int64(0), nil)
			},
			wantUpdated: 0,
		},
		{
			name:    "repository_error",
			minimum: 10,
			setupMocks: func(repo *mocks.MockPartRepository, cache *mocks.MockCacheRepository) {
				repo.EXPECT().RaiseQuantityFloor(gomock.Any(), 10).Return(int64(0), errors.New("deadlock detected"))
			},
			expectedError: true,
		},
		{
			name:          "negative_minimum_rejected",
			minimum:       -1,
			setupMocks:    func(repo *mocks.MockPartRepository, cache *mocks.MockCacheRepository) {},
			expectedError: true,
			errorIs:       domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockPartRepository(ctrl)
			cache := mocks.NewMockCacheRepository(ctrl)
			tt.setupMocks(repo, cache)

			replenisher := services.NewStockReplenisher(repo, cache, helpers.TestLogger())
			result, err := replenisher.Replenish(context.Background(), tt.minimum)

			if tt.expectedError {
				require.Error(t, err)
				assert.Nil(t, result)
				if tt.errorIs != nil {
					assert.ErrorIs(t, err, tt.errorIs)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUpdated, result.UpdatedCount)
		})
	}
}
