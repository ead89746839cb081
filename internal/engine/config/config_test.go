package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[log]
output = "stdout"
level = "DEBUG"

[http]
host = "127.0.0.1"
port = 8080
bodyLimit = 8

[http.auth]
secretKey = "from-file"

[database]
type = "sqlite"

[database.sqlite]
path = "edo-test.db"

[invitation]
ttlHours = 48
`

func writeConf(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	conf, err := LoadConfigFile(writeConf(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", conf.Log.Level)
	assert.Equal(t, "127.0.0.1", conf.Http.Host)
	assert.Equal(t, 8, conf.Http.BodyLimit)
	assert.Equal(t, "from-file", conf.Http.Auth.SecretKey)
	assert.Equal(t, "sqlite", conf.Database.Type)
	assert.Equal(t, "edo-test.db", conf.Database.SQLite.Path)
	assert.Equal(t, 48, conf.Invitation.TTLHours)

	// defaults
	assert.Equal(t, 2*time.Hour, conf.Http.Auth.AccessExpire)
	assert.Equal(t, 60, conf.Http.ReadTimeout)
}

func TestLoadConfigFile_EnvOverride(t *testing.T) {
	t.Setenv("EDO_HTTP_PORT", "9191")
	t.Setenv("EDO_HTTP_AUTH_SECRETKEY", "from-env")

	conf, err := LoadConfigFile(writeConf(t, sample))
	require.NoError(t, err)
	assert.Equal(t, 9191, conf.Http.Port)
	assert.Equal(t, "from-env", conf.Http.Auth.SecretKey)
}

func TestLoadConfigFile_DotEnv(t *testing.T) {
	path := writeConf(t, sample)
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), ".env"), []byte("EDO_HTTP_HOST=10.0.0.1\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("EDO_HTTP_HOST") })

	conf, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", conf.Http.Host)
}

func TestLoadConfigFile_Missing(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestProvideInvitationOptions(t *testing.T) {
	conf := &AppConfig{}
	conf.SetDefaults()
	opts := ProvideInvitationOptions(conf)
	assert.Equal(t, 7*24*time.Hour, opts.TTL)
	assert.Equal(t, conf.Notify.FrontendURL, opts.FrontendURL)
}
