package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 8080

[database]
host = "localhost"
user = "turnos"
password = "file-secret"
dbname = "turnos"

[auth]
jwt_secret = "file-jwt"
superadmin_emails = ["root@maxturnos.com"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsAndFileValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 5, cfg.Redis.TTLMinutes)
	assert.Equal(t, 2, cfg.Workers.ArchiveHour)
	assert.Equal(t, DefaultAPIURL, cfg.Client.APIURL)
	assert.Equal(t, []string{"root@maxturnos.com"}, cfg.Auth.SuperAdminEmails)
	assert.Contains(t, cfg.Database.DSN(), "password=file-secret")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "env-secret")
	t.Setenv("JWT_SECRET", "env-jwt")
	t.Setenv("REACT_APP_API_URL", "https://turnos.example.com/")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Database.Password)
	assert.Equal(t, "env-jwt", cfg.Auth.JWTSecret)
	assert.Equal(t, "https://turnos.example.com/api", cfg.Client.APIURL)
}

func TestLoad_ValidationFails(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load(writeConfig(t, "[server]\nhttp_port = 8080\n"))
	assert.Error(t, err)
}

func TestNormalizeAPIURL(t *testing.T) {
	assert.Equal(t, "http://localhost:5000/api", NormalizeAPIURL("http://localhost:5000"))
	assert.Equal(t, "http://localhost:5000/api", NormalizeAPIURL("http://localhost:5000/api/"))
	assert.Equal(t, DefaultAPIURL, NormalizeAPIURL(""))
}

func TestLoadClient_FileValuesAndMissingFile(t *testing.T) {
	t.Setenv("REACT_APP_API_URL", "")

	cfg, err := LoadClient(writeConfig(t, "[client]\napi_url = \"http://turnos.local:9000/api\"\ntimeout = 7\n"))
	require.NoError(t, err)
	assert.Equal(t, "http://turnos.local:9000/api", cfg.APIURL)
	assert.Equal(t, 7, cfg.Timeout)

	cfg, err = LoadClient(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
}

func TestLoadClient_MalformedFile(t *testing.T) {
	_, err := LoadClient(writeConfig(t, "[client\napi_url = "))
	assert.Error(t, err)
}
