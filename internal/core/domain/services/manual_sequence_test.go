package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/core/domain/services"
)

func newIDs(n int) []kernel.UUID {
	ids := make([]kernel.UUID, n)
	for i := range ids {
		ids[i] = kernel.NewUUID()
	}
	return ids
}

func TestManualSequenceCalculator_ComputeOrder(t *testing.T) {
	calculator := services.NewManualSequenceCalculator()

	t.Run("empty_input_returns_empty", func(t *testing.T) {
		result, err := calculator.ComputeOrder(nil, nil)

		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("no_explicit_positions_keeps_original_order", func(t *testing.T) {
		// Given
		ids := newIDs(4)

		// When
		result, err := calculator.ComputeOrder(ids, nil)

		// Then: positions 1..4 in original order
		require.NoError(t, err)
		require.Len(t, result, 4)
		for i, item := range result {
			assert.True(t, item.ID.IsEqual(ids[i]))
			assert.Equal(t, i+1, item.Position)
		}
	})

	t.Run("moving_last_item_to_front_shifts_the_rest", func(t *testing.T) {
		// Given: [A,B,C,D] with D explicitly moved to position 1
		ids := newIDs(4)
		a, b, c, d := ids[0], ids[1], ids[2], ids[3]

		// When
		result, err := calculator.ComputeOrder(ids, map[kernel.UUID]int{d: 1})

		// Then: [(D,1),(A,2),(B,3),(C,4)]
		require.NoError(t, err)
		require.Len(t, result, 4)
		assert.True(t, result[0].ID.IsEqual(d))
		assert.Equal(t, 1, result[0].Position)
		assert.True(t, result[1].ID.IsEqual(a))
		assert.Equal(t, 2, result[1].Position)
		assert.True(t, result[2].ID.IsEqual(b))
		assert.Equal(t, 3, result[2].Position)
		assert.True(t, result[3].ID.IsEqual(c))
		assert.Equal(t, 4, result[3].Position)
	})

	t.Run("explicit_position_beyond_range_is_tolerated", func(t *testing.T) {
		// Given: [A,B,C] with A moved to position 5
		ids := newIDs(3)
		a, b, c := ids[0], ids[1], ids[2]

		// When
		result, err := calculator.ComputeOrder(ids, map[kernel.UUID]int{a: 5})

		// Then: [(B,1),(C,2),(A,5)]
		require.NoError(t, err)
		require.Len(t, result, 3)
		assert.True(t, result[0].ID.IsEqual(b))
		assert.Equal(t, 1, result[0].Position)
		assert.True(t, result[1].ID.IsEqual(c))
		assert.Equal(t, 2, result[1].Position)
		assert.True(t, result[2].ID.IsEqual(a))
		assert.Equal(t, 5, result[2].Position)
	})

	t.Run("duplicate_explicit_position_fails_without_result", func(t *testing.T) {
		// Given: two items both requesting position 5
		ids := newIDs(3)

		// When
		result, err := calculator.ComputeOrder(ids, map[kernel.UUID]int{
			ids[0]: 5,
			ids[1]: 5,
		})

		// Then
		require.ErrorIs(t, err, services.ErrDuplicateExplicitPosition)
		assert.Nil(t, result)

		var dup *services.DuplicateExplicitPositionError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, 5, dup.Position)
	})

	t.Run("stale_explicit_id_can_exhaust_free_positions", func(t *testing.T) {
		// Given: an explicit entry for an id that is not in the sequence,
		// claiming an in-range position
		ids := newIDs(3)
		stale := kernel.NewUUID()

		// When
		result, err := calculator.ComputeOrder(ids, map[kernel.UUID]int{stale: 2})

		// Then
		require.ErrorIs(t, err, services.ErrInsufficientFreePositions)
		assert.Nil(t, result)
	})

	t.Run("result_is_a_bijection_onto_used_positions", func(t *testing.T) {
		// Given
		ids := newIDs(6)
		explicit := map[kernel.UUID]int{
			ids[5]: 1,
			ids[0]: 9,
			ids[3]: 4,
		}

		// When
		result, err := calculator.ComputeOrder(ids, explicit)

		// Then: every item exactly once, no duplicate positions
		require.NoError(t, err)
		require.Len(t, result, len(ids))

		seenIDs := make(map[kernel.UUID]bool)
		seenPositions := make(map[int]bool)
		for _, item := range result {
			assert.False(t, seenIDs[item.ID], "item appears twice")
			assert.False(t, seenPositions[item.Position], "position %d appears twice", item.Position)
			seenIDs[item.ID] = true
			seenPositions[item.Position] = true
		}

		// sorted ascending by position
		for i := 1; i < len(result); i++ {
			assert.Less(t, result[i-1].Position, result[i].Position)
		}
	})
}

func TestManualSequenceCalculatorFrom(t *testing.T) {
	t.Run("honors_custom_base_position", func(t *testing.T) {
		// Given
		calculator := services.NewManualSequenceCalculatorFrom(10)
		ids := newIDs(3)

		// When
		result, err := calculator.ComputeOrder(ids, nil)

		// Then: positions 10..12
		require.NoError(t, err)
		require.Len(t, result, 3)
		assert.Equal(t, 10, result[0].Position)
		assert.Equal(t, 11, result[1].Position)
		assert.Equal(t, 12, result[2].Position)
	})
}
