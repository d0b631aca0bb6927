// Package config loads the web API settings from appsettings.json and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvironmentDevelopment = "Development"
	EnvironmentProduction  = "Production"
)

// MinSignKeyLength matches validator.MinSigningKeyLength.
const MinSignKeyLength = 32

var (
	ErrSignKeyMissing  = errors.New("JwtSettings:SignKey is required")
	ErrSignKeyTooShort = fmt.Errorf("JwtSettings:SignKey must be at least %d bytes", MinSignKeyLength)
	ErrIssuerMissing   = errors.New("JwtSettings:Issuer is required")
	ErrAudienceMissing = errors.New("JwtSettings:Audience is required")
	ErrInvalidPort     = errors.New("HTTP:Port must be between 1 and 65535")
)

type (
	Config struct {
		Environment string
		HTTP
		JWT JWTSettings
		CORS
		Logging
	}

	HTTP struct {
		Host            string
		Port            int
		ShutdownTimeout time.Duration
	}
	JWTSettings struct {
		Issuer     string
		Audience   string
		SignKey    string
		CookieName string
		ClockSkew  time.Duration
	}
	CORS struct {
		AllowedOrigins []string
	}
	Logging struct {
		Level     string
		InfoFile  string // receives Info and above
		ErrorFile string // receives Error and above
	}
)

// Addr returns host:port for net/http.
func (h HTTP) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// IsDevelopment reports whether the service runs in the Development environment.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, EnvironmentDevelopment)
}

// Load reads appsettings.json from the given directories (the working
// directory and $CONFIG_DIR when none are given) and applies environment
// overrides such as JWTSETTINGS_SIGNKEY or HTTP_PORT. A missing file is not
// an error; a file that cannot be parsed is.
func Load(configDirs ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("appsettings")
	v.SetConfigType("json")
	if len(configDirs) == 0 {
		configDirs = []string{"."}
		if dir := os.Getenv("CONFIG_DIR"); dir != "" {
			configDirs = append(configDirs, dir)
		}
	}
	for _, dir := range configDirs {
		v.AddConfigPath(dir)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading appsettings: %w", err)
		}
	}

	return &Config{
		Environment: v.GetString("environment"),
		HTTP: HTTP{
			Host:            v.GetString("http.host"),
			Port:            v.GetInt("http.port"),
			ShutdownTimeout: v.GetDuration("http.shutdowntimeout"),
		},
		JWT: JWTSettings{
			Issuer:     v.GetString("jwtsettings.issuer"),
			Audience:   v.GetString("jwtsettings.audience"),
			SignKey:    v.GetString("jwtsettings.signkey"),
			CookieName: v.GetString("jwtsettings.cookiename"),
			ClockSkew:  v.GetDuration("jwtsettings.clockskew"),
		},
		CORS: CORS{
			AllowedOrigins: splitList(v.GetStringSlice("cors.allowedorigins")),
		},
		Logging: Logging{
			Level:     v.GetString("logging.level"),
			InfoFile:  v.GetString("logging.infofile"),
			ErrorFile: v.GetString("logging.errorfile"),
		},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", EnvironmentProduction)
	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.shutdowntimeout", 5*time.Second)
	v.SetDefault("jwtsettings.cookiename", "AuthToken")
	v.SetDefault("jwtsettings.clockskew", time.Duration(0))
	v.SetDefault("cors.allowedorigins", []string{
		"http://localhost:3000",
		"https://resume-management-system.vercel.app",
	})
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.infofile", "info-logs.txt")
	v.SetDefault("logging.errorfile", "error-logs.txt")
}

// splitList accepts both JSON arrays and comma separated env values.
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

// Validate reports the first setting that would keep the service from
// authenticating requests.
func (c *Config) Validate() error {
	switch {
	case c.JWT.SignKey == "":
		return ErrSignKeyMissing
	case len(c.JWT.SignKey) < MinSignKeyLength:
		return ErrSignKeyTooShort
	case c.JWT.Issuer == "":
		return ErrIssuerMissing
	case c.JWT.Audience == "":
		return ErrAudienceMissing
	case c.HTTP.Port < 1 || c.HTTP.Port > 65535:
		return ErrInvalidPort
	}
	return nil
}
