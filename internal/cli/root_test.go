package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "golf-carts", cmd.Use)
	assert.Contains(t, cmd.Long, "fleet")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"serve", "status", "report", "users", "migrate"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)
}

func TestReportCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	reportCmd, _, err := cmd.Find([]string{"report"})
	require.NoError(t, err)

	outFlag := reportCmd.Flags().Lookup("out")
	require.NotNil(t, outFlag)
	assert.Equal(t, "fleet-status.pdf", outFlag.DefValue)
}

func TestMigrateCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	migrateCmd, _, err := cmd.Find([]string{"migrate"})
	require.NoError(t, err)

	dbFlag := migrateCmd.Flags().Lookup("db")
	require.NotNil(t, dbFlag)
	// --db is required, so default is empty
	assert.Equal(t, "", dbFlag.DefValue)
}

func TestUsersSubcommands(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"add", "remove", "list", "passwd", "role"} {
		subCmd, _, err := cmd.Find([]string{"users", name})
		require.NoError(t, err, "users %s should exist", name)
		assert.Equal(t, name, subCmd.Name())
	}
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "invalid", "status"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

// TestStatusCommand runs the status command over a fresh data directory:
// every cart sits at the seeded status.
func TestStatusCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
storage:
  dir: `+filepath.Join(dir, "data")+`
fleet:
  count: 3
auth:
  enabled: false
`), 0o644))

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", cfgPath, "status"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Ready for Walk up")
	assert.Contains(t, out.String(), "3")
}
