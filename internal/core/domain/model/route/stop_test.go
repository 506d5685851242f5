package route_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/core/domain/model/route"
)

func intPtr(v int) *int {
	return &v
}

func newTestStop(t *testing.T, deliveryPosition int) *route.Stop {
	t.Helper()
	s, err := route.NewOptimizedStop(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		deliveryPosition, intPtr(deliveryPosition),
	)
	require.NoError(t, err)
	return s
}

func TestNewOptimizedStop(t *testing.T) {
	t.Run("aligns_custom_with_optimized_position", func(t *testing.T) {
		// When
		s := newTestStop(t, 3)

		// Then
		require.NotNil(t, s.OptimizedPosition())
		assert.Equal(t, 3, *s.OptimizedPosition())
		assert.Equal(t, 3, s.CustomPosition())
		require.NotNil(t, s.PickupPosition())
		assert.Equal(t, 3, *s.PickupPosition())
		assert.True(t, s.IsOptimized())
	})

	t.Run("pickup_position_may_be_nil", func(t *testing.T) {
		s, err := route.NewOptimizedStop(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 1, nil,
		)

		require.NoError(t, err)
		assert.Nil(t, s.PickupPosition())
	})

	t.Run("zero_value_ids_fail", func(t *testing.T) {
		_, err := route.NewOptimizedStop(
			kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(), 1, nil,
		)

		require.Error(t, err)
	})
}

func TestStop_ApplyOptimizedPosition(t *testing.T) {
	// Given: a stop previously parked after the optimized ones
	s := newTestStop(t, 5)
	require.NoError(t, s.PlaceAfterOptimized(7))

	// When
	err := s.ApplyOptimizedPosition(2, intPtr(1))

	// Then
	require.NoError(t, err)
	require.NotNil(t, s.OptimizedPosition())
	assert.Equal(t, 2, *s.OptimizedPosition())
	assert.Equal(t, 2, s.CustomPosition())
	require.NotNil(t, s.PickupPosition())
	assert.Equal(t, 1, *s.PickupPosition())
	assert.True(t, s.IsOptimized())
}

func TestStop_PlaceAfterOptimized(t *testing.T) {
	// Given
	s := newTestStop(t, 2)

	// When
	err := s.PlaceAfterOptimized(6)

	// Then: optimizer data cleared, manual placement recorded
	require.NoError(t, err)
	assert.Nil(t, s.OptimizedPosition())
	assert.Nil(t, s.PickupPosition())
	assert.Equal(t, 6, s.CustomPosition())
	assert.False(t, s.IsOptimized())
}

func TestStop_MoveTo(t *testing.T) {
	// Given
	s := newTestStop(t, 1)

	// When
	err := s.MoveTo(4)

	// Then: optimized position survives a manual move, ordering flag does not
	require.NoError(t, err)
	assert.Equal(t, 4, s.CustomPosition())
	assert.False(t, s.IsOptimized())
	require.NotNil(t, s.OptimizedPosition())
	assert.Equal(t, 1, *s.OptimizedPosition())
}

func TestValidatePositions(t *testing.T) {
	routeID := kernel.NewUUID()

	makeStop := func(t *testing.T, position int) *route.Stop {
		t.Helper()
		s, err := route.RestoreStop(
			kernel.NewUUID(), routeID, kernel.NewUUID(),
			nil, position, nil, false,
		)
		require.NoError(t, err)
		return s
	}

	t.Run("contiguous_range_passes", func(t *testing.T) {
		stops := []*route.Stop{makeStop(t, 2), makeStop(t, 1), makeStop(t, 3)}
		require.NoError(t, route.ValidatePositions(stops))
	})

	t.Run("empty_slice_passes", func(t *testing.T) {
		require.NoError(t, route.ValidatePositions(nil))
	})

	t.Run("duplicate_positions_fail", func(t *testing.T) {
		stops := []*route.Stop{makeStop(t, 1), makeStop(t, 1), makeStop(t, 2)}
		require.ErrorIs(t, route.ValidatePositions(stops), route.ErrStopPositionsNotContiguous)
	})

	t.Run("gap_in_positions_fails", func(t *testing.T) {
		stops := []*route.Stop{makeStop(t, 1), makeStop(t, 3)}
		require.ErrorIs(t, route.ValidatePositions(stops), route.ErrStopPositionsNotContiguous)
	})

	t.Run("positions_not_starting_at_one_fail", func(t *testing.T) {
		stops := []*route.Stop{makeStop(t, 2), makeStop(t, 3)}
		require.ErrorIs(t, route.ValidatePositions(stops), route.ErrStopPositionsNotContiguous)
	})
}
