package queries_test

import (
	"testing"

	"flowershop/internal/core/application/usecases/queries"
	"flowershop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetCustomerOrdersQuery_Success(t *testing.T) {
	userID := kernel.NewUUID()

	query, err := queries.NewGetCustomerOrdersQuery(userID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, userID, query.UserID())
}

func TestNewGetCustomerOrdersQuery_EmptyUserID(t *testing.T) {
	_, err := queries.NewGetCustomerOrdersQuery(kernel.UUID{})

	require.Error(t, err)
}

func TestGetCustomerOrdersQuery_Validate_NotConstructed(t *testing.T) {
	err := queries.GetCustomerOrdersQuery{}.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetCustomerOrdersQueryIsNotConstructed)
}

func TestNewGetUncompletedOrdersQuery_Success(t *testing.T) {
	query := queries.NewGetUncompletedOrdersQuery()

	require.NoError(t, query.Validate())
}

func TestGetUncompletedOrdersQuery_Validate_NotConstructed(t *testing.T) {
	err := queries.GetUncompletedOrdersQuery{}.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be created via NewGetUncompletedOrdersQuery constructor")
}

func TestNewGetNotificationsQuery_Success(t *testing.T) {
	query, err := queries.NewGetNotificationsQuery(kernel.NewUUID())

	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestNewGetNotificationsQuery_EmptyUserID(t *testing.T) {
	_, err := queries.NewGetNotificationsQuery(kernel.UUID{})

	require.Error(t, err)
}

func TestNewGetPendingImagesQuery_Success(t *testing.T) {
	query := queries.NewGetPendingImagesQuery()

	require.NoError(t, query.Validate())
}

func TestGetPendingImagesQuery_Validate_NotConstructed(t *testing.T) {
	err := queries.GetPendingImagesQuery{}.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetPendingImagesQueryIsNotConstructed)
}
