package commands_test

import (
	"testing"
	"time"

	"medrush/internal/core/application/usecases/commands"
	"medrush/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReorderRouteStopsCommand_ValidInput(t *testing.T) {
	routeID := kernel.NewUUID()
	stopID := kernel.NewUUID()

	cmd, err := commands.NewReorderRouteStopsCommand(routeID, map[kernel.UUID]int{stopID: 3})
	require.NoError(t, err)
	assert.Equal(t, routeID, cmd.RouteID())
	assert.Equal(t, 3, cmd.Positions()[stopID])
}

func TestNewReorderRouteStopsCommand_EmptyPositions(t *testing.T) {
	_, err := commands.NewReorderRouteStopsCommand(kernel.NewUUID(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrPositionsAreRequired)
}

func TestNewReorderRouteStopsCommand_InvalidRouteID(t *testing.T) {
	_, err := commands.NewReorderRouteStopsCommand(kernel.UUID{}, map[kernel.UUID]int{kernel.NewUUID(): 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewReoptimizeRouteCommand_ValidInput(t *testing.T) {
	routeID := kernel.NewUUID()
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	cmd, err := commands.NewReoptimizeRouteCommand(routeID, start, start.Add(4*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, routeID, cmd.RouteID())
	assert.Equal(t, start, cmd.WindowStart())
}

func TestNewReoptimizeRouteCommand_InvalidWindow(t *testing.T) {
	start := time.Now()
	_, err := commands.NewReoptimizeRouteCommand(kernel.NewUUID(), start, start.Add(-time.Hour))
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrWindowIsInvalid)
}
