package queries_test

import (
	"testing"

	"medrush/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetPendingOrdersQuery_Valid(t *testing.T) {
	query, err := queries.NewGetPendingOrdersQuery("warsaw")
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "warsaw", query.Region())
}

func TestNewGetPendingOrdersQuery_EmptyRegion(t *testing.T) {
	_, err := queries.NewGetPendingOrdersQuery("")
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrQueryRegionIsRequired)
}

func TestGetPendingOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetPendingOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetPendingOrdersQueryIsNotConstructed)
}
