package kernel_test

import (
	"testing"

	"flowershop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const roseBouquetID = "550e8400-e29b-41d4-a716-446655440000"

func TestNewUUID(t *testing.T) {
	t.Run("should create a valid identifier", func(t *testing.T) {
		orderID := kernel.NewUUID()

		assert.NoError(t, orderID.Validate())
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", orderID.String())
	})

	t.Run("should not collide across aggregates", func(t *testing.T) {
		orderID := kernel.NewUUID()
		productID := kernel.NewUUID()

		assert.False(t, orderID.IsEqual(productID))
		assert.NotEqual(t, orderID.String(), productID.String())
	})
}

func TestUUIDFromString(t *testing.T) {
	t.Run("should parse a canonical identifier", func(t *testing.T) {
		productID, err := kernel.UUIDFromString(roseBouquetID)

		require.NoError(t, err)
		assert.Equal(t, roseBouquetID, productID.String())
		assert.NoError(t, productID.Validate())
	})

	t.Run("should accept the other standard forms", func(t *testing.T) {
		for _, input := range []string{
			"{550e8400-e29b-41d4-a716-446655440000}",
			"urn:uuid:550e8400-e29b-41d4-a716-446655440000",
			"550e8400e29b41d4a716446655440000",
		} {
			productID, err := kernel.UUIDFromString(input)

			require.NoError(t, err, "input: %s", input)
			assert.Equal(t, roseBouquetID, productID.String())
		}
	})

	t.Run("should reject malformed identifiers", func(t *testing.T) {
		for _, input := range []string{
			"",
			"rose-bouquet",
			"550e8400-e29b-41d4-a716",
			"550e8400-e29b-41d4-a716-446655440000-extra",
			"zzze8400-e29b-41d4-a716-446655440000",
		} {
			_, err := kernel.UUIDFromString(input)

			require.Error(t, err, "input: %s", input)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should round-trip through binary form", func(t *testing.T) {
		productID, err := kernel.UUIDFromString(roseBouquetID)
		require.NoError(t, err)

		raw := productID.Bytes()
		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, productID.IsEqual(restored))
	})

	t.Run("should reject short byte slices", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x55, 0x0e, 0x84})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("should reject the nil identifier", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		require.Error(t, err)
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUID_String(t *testing.T) {
	t.Run("should render the canonical form", func(t *testing.T) {
		orderID := kernel.NewUUID()

		assert.Regexp(t,
			`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`,
			orderID.String())
	})
}

func TestUUID_Bytes(t *testing.T) {
	t.Run("should expose the underlying uuid value", func(t *testing.T) {
		orderID := kernel.NewUUID()
		raw := orderID.Bytes()

		assert.IsType(t, uuid.UUID{}, raw)
		assert.Equal(t, orderID.String(), raw.String())
	})

	t.Run("should copy, leaving the identifier immutable", func(t *testing.T) {
		orderID := kernel.NewUUID()
		before := orderID.String()

		raw := orderID.Bytes()
		for i := range raw {
			raw[i] = 0xFF
		}

		assert.Equal(t, before, orderID.String())
		assert.NoError(t, orderID.Validate())
	})
}

func TestUUID_IsEqual(t *testing.T) {
	t.Run("should match identifiers parsed from the same string", func(t *testing.T) {
		first, err := kernel.UUIDFromString(roseBouquetID)
		require.NoError(t, err)
		second, err := kernel.UUIDFromString(roseBouquetID)
		require.NoError(t, err)

		assert.True(t, first.IsEqual(second))
		assert.True(t, second.IsEqual(first))
	})

	t.Run("should treat zero values as equal to each other only", func(t *testing.T) {
		var left, right kernel.UUID

		assert.True(t, left.IsEqual(right))
		assert.False(t, left.IsEqual(kernel.NewUUID()))
	})
}

func TestUUID_Validate(t *testing.T) {
	t.Run("should accept constructed identifiers", func(t *testing.T) {
		assert.NoError(t, kernel.NewUUID().Validate())
	})

	t.Run("should reject the zero value", func(t *testing.T) {
		var orderID kernel.UUID

		err := orderID.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})

	t.Run("should reject the parsed nil identifier", func(t *testing.T) {
		orderID, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")
		require.NoError(t, err)

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, orderID.Validate())
	})
}
