package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test-signing-key-0123456789abcdef"

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "appsettings.json"), []byte(content), 0o600))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, EnvironmentProduction, cfg.Environment)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "AuthToken", cfg.JWT.CookieName)
	assert.Zero(t, cfg.JWT.ClockSkew)
	assert.Equal(t, []string{"http://localhost:3000", "https://resume-management-system.vercel.app"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "info-logs.txt", cfg.Logging.InfoFile)
	assert.Equal(t, "error-logs.txt", cfg.Logging.ErrorFile)
	assert.ErrorIs(t, cfg.Validate(), ErrSignKeyMissing)
}

func TestLoad_File(t *testing.T) {
	dir := writeSettings(t, `{
		"Environment": "Development",
		"JwtSettings": {
			"Issuer": "api.example",
			"Audience": "web.example",
			"SignKey": "`+testKey+`",
			"ClockSkew": "30s"
		},
		"Http": {"Port": 5000},
		"Cors": {"AllowedOrigins": ["https://app.example"]}
	}`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "api.example", cfg.JWT.Issuer)
	assert.Equal(t, "web.example", cfg.JWT.Audience)
	assert.Equal(t, testKey, cfg.JWT.SignKey)
	assert.Equal(t, 30*time.Second, cfg.JWT.ClockSkew)
	assert.Equal(t, 5000, cfg.HTTP.Port)
	assert.Equal(t, []string{"https://app.example"}, cfg.CORS.AllowedOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	dir := writeSettings(t, `{"JwtSettings": {"Issuer": "from-file", "Audience": "web.example"}}`)
	t.Setenv("JWTSETTINGS_ISSUER", "api.example")
	t.Setenv("JWTSETTINGS_SIGNKEY", testKey)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CORS_ALLOWEDORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "api.example", cfg.JWT.Issuer)
	assert.Equal(t, testKey, cfg.JWT.SignKey)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_BrokenFile(t *testing.T) {
	_, err := Load(writeSettings(t, `{"JwtSettings": `))
	assert.ErrorContains(t, err, "reading appsettings")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			HTTP: HTTP{Port: 8080},
			JWT:  JWTSettings{Issuer: "api.example", Audience: "web.example", SignKey: testKey},
		}
	}

	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing key", mutate: func(c *Config) { c.JWT.SignKey = "" }, wantErr: ErrSignKeyMissing},
		{name: "short key", mutate: func(c *Config) { c.JWT.SignKey = strings.Repeat("k", 31) }, wantErr: ErrSignKeyTooShort},
		{name: "missing issuer", mutate: func(c *Config) { c.JWT.Issuer = "" }, wantErr: ErrIssuerMissing},
		{name: "missing audience", mutate: func(c *Config) { c.JWT.Audience = "" }, wantErr: ErrAudienceMissing},
		{name: "bad port", mutate: func(c *Config) { c.HTTP.Port = 70000 }, wantErr: ErrInvalidPort},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			cfg := valid()
			testCase.mutate(cfg)
			err := cfg.Validate()
			if testCase.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, testCase.wantErr)
		})
	}
}
