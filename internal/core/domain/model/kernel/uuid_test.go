package kernel_test

import (
	"testing"

	"medrush/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewUUIDProducesDistinctValidValues(t *testing.T) {
	first := kernel.NewUUID()
	second := kernel.NewUUID()

	require.NoError(t, first.Validate())
	require.NoError(t, second.Validate())
	assert.False(t, first.IsEqual(second))
}

func Test_UUIDFromString(t *testing.T) {
	t.Run("canonical form round-trips", func(t *testing.T) {
		const raw = "550e8400-e29b-41d4-a716-446655440000"

		id, err := kernel.UUIDFromString(raw)

		require.NoError(t, err)
		assert.Equal(t, raw, id.String())
	})

	t.Run("malformed input is rejected", func(t *testing.T) {
		for _, raw := range []string{"", "not-a-uuid", "550e8400-e29b-41d4-a716"} {
			_, err := kernel.UUIDFromString(raw)
			assert.Error(t, err, raw)
		}
	})
}

func Test_UUIDFromBytes(t *testing.T) {
	t.Run("persistence bytes round-trip", func(t *testing.T) {
		source := kernel.NewUUID()
		stored := source.Bytes()

		restored, err := kernel.UUIDFromBytes(stored[:])

		require.NoError(t, err)
		assert.True(t, source.IsEqual(restored))
	})

	t.Run("wrong length is rejected", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x01, 0x02, 0x03})
		assert.Error(t, err)
	})

	t.Run("nil uuid bytes fail validation", func(t *testing.T) {
		var zero uuid.UUID
		_, err := kernel.UUIDFromBytes(zero[:])
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func Test_UUIDZeroValueIsInvalid(t *testing.T) {
	var id kernel.UUID
	assert.ErrorIs(t, id.Validate(), kernel.ErrUUIDIsNotConstructed)
}

func Test_UUIDIsEqual(t *testing.T) {
	id := kernel.NewUUID()
	same, err := kernel.UUIDFromString(id.String())
	require.NoError(t, err)

	assert.True(t, id.IsEqual(same))
	assert.False(t, id.IsEqual(kernel.NewUUID()))
}
