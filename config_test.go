package mintprice

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitwit/mintprice/types"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mintprice.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
defaultTimeout: 10s
logLevel: warn
chains:
  8453:
    rpcUrl: http://127.0.0.1:8545
    requestsPerSecond: 20
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, config.DefaultTimeout)
	assert.Equal(t, "warn", config.LogLevel)
	assert.Equal(t, 20.0, config.Chains[8453].RequestsPerSecond)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, types.HasCode(err, types.ErrConfig))

	_, err = LoadConfig(writeConfig(t, "chains: [1, 2"))
	assert.True(t, types.HasCode(err, types.ErrConfig))
}

func TestNewFromFile(t *testing.T) {
	s, err := NewFromFile(writeConfig(t, `
chains:
  84532:
    rpcUrl: http://127.0.0.1:8545
`))
	require.NoError(t, err)
	defer s.Close()

	assert.True(t, s.IsChainSupported(84532))
	assert.Equal(t, defaultTimeout, s.timeout)
}
