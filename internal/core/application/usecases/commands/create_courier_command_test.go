package commands_test

import (
	"testing"

	"medrush/internal/core/application/usecases/commands"
	"medrush/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateCourierCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateCourierCommand(id, "Anna Nowak", "warsaw")
	require.NoError(t, err)
	assert.Equal(t, id, cmd.CourierID())
	assert.Equal(t, "Anna Nowak", cmd.Name())
	assert.Equal(t, "warsaw", cmd.Region())
}

func TestNewCreateCourierCommand_EmptyName(t *testing.T) {
	_, err := commands.NewCreateCourierCommand(kernel.NewUUID(), "", "warsaw")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrNameIsRequired)
}

func TestNewCreateCourierCommand_EmptyRegion(t *testing.T) {
	_, err := commands.NewCreateCourierCommand(kernel.NewUUID(), "Anna Nowak", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrRegionIsRequired)
}
