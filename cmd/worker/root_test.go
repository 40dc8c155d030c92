package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigflow/gigflow-backend/internal/maintenance"
)

func TestRootCommands(t *testing.T) {
	for _, name := range []string{"migrate", "purge", "schedule"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestMigrateDownCommand(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"migrate", "down"})
	require.NoError(t, err)
	assert.Equal(t, "down", cmd.Name())

	f := cmd.Flags().Lookup("steps")
	require.NotNil(t, f)
	assert.Equal(t, "1", f.DefValue)
}

func TestFlagDefaults(t *testing.T) {
	f := purgeCmd.Flags().Lookup("older-than")
	require.NotNil(t, f)
	assert.Equal(t, "0s", f.DefValue)

	f = scheduleCmd.Flags().Lookup("cron")
	require.NotNil(t, f)
	assert.Equal(t, maintenance.NightlySpec, f.DefValue)
}
