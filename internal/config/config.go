package config

import (
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	DefaultAuthorizeURL  = "https://www.strava.com/oauth/authorize"
	DefaultTokenURL      = "https://www.strava.com/oauth/token"
	DefaultActivitiesURL = "https://www.strava.com/api/v3/athlete/activities"
	DefaultSessionMaxAge = 24 * time.Hour

	minSessionSecretLength = 32
)

type Config struct {
	ListenAddr string
	// BaseURL is optional; when empty the OAuth redirect URI is derived from the request.
	BaseURL string

	Strava struct {
		ClientID      string
		ClientSecret  string
		AuthorizeURL  string
		TokenURL      string
		ActivitiesURL string
	}

	Session struct {
		Secret string
		MaxAge time.Duration
	}

	Log struct {
		Level  string
		Format string
	}

	PrometheusEnabled bool
	TrustedProxies    []string
}

// Load reads configuration from the environment. A .env file named by
// APP_ENV_FILE (or ./.env) is loaded first when present.
func Load() (*Config, error) {
	envFile := os.Getenv("APP_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, errors.Wrapf(err, "load env file %s", envFile)
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app_listen_addr", ":8080")
	v.SetDefault("app_base_url", "")
	v.SetDefault("strava_oauth_authorize", DefaultAuthorizeURL)
	v.SetDefault("strava_oauth_token", DefaultTokenURL)
	v.SetDefault("strava_activities_url", DefaultActivitiesURL)
	v.SetDefault("session_max_age", int(DefaultSessionMaxAge/time.Second))
	v.SetDefault("app_prometheus_endpoint_enabled", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	cfg.ListenAddr = v.GetString("app_listen_addr")
	cfg.BaseURL = strings.TrimRight(v.GetString("app_base_url"), "/")

	cfg.Strava.ClientID = v.GetString("strava_client_id")
	cfg.Strava.ClientSecret = v.GetString("strava_client_secret")
	cfg.Strava.AuthorizeURL = v.GetString("strava_oauth_authorize")
	cfg.Strava.TokenURL = v.GetString("strava_oauth_token")
	cfg.Strava.ActivitiesURL = v.GetString("strava_activities_url")

	cfg.Session.Secret = v.GetString("session_secret_key")
	cfg.Session.MaxAge = time.Duration(v.GetInt("session_max_age")) * time.Second

	cfg.Log.Level = v.GetString("log_level")
	cfg.Log.Format = strings.ToLower(v.GetString("log_format"))

	cfg.PrometheusEnabled = v.GetBool("app_prometheus_endpoint_enabled")
	cfg.TrustedProxies = splitList(v.GetString("app_trusted_proxies"))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.Strava.ClientID == "" {
		missing = append(missing, "STRAVA_CLIENT_ID")
	}
	if c.Strava.ClientSecret == "" {
		missing = append(missing, "STRAVA_CLIENT_SECRET")
	}
	if c.Session.Secret == "" {
		missing = append(missing, "SESSION_SECRET_KEY")
	}
	if len(missing) > 0 {
		return errors.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if len(c.Session.Secret) < minSessionSecretLength {
		return errors.Errorf("SESSION_SECRET_KEY must be at least %d characters long (got %d)", minSessionSecretLength, len(c.Session.Secret))
	}
	if c.Session.MaxAge <= 0 {
		return errors.New("SESSION_MAX_AGE must be positive")
	}

	for name, raw := range map[string]string{
		"STRAVA_OAUTH_AUTHORIZE": c.Strava.AuthorizeURL,
		"STRAVA_OAUTH_TOKEN":     c.Strava.TokenURL,
		"STRAVA_ACTIVITIES_URL":  c.Strava.ActivitiesURL,
	} {
		if err := checkAbsoluteURL(raw); err != nil {
			return errors.Wrapf(err, "%s", name)
		}
	}
	if c.BaseURL != "" {
		if err := checkAbsoluteURL(c.BaseURL); err != nil {
			return errors.Wrap(err, "APP_BASE_URL")
		}
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.Errorf("LOG_FORMAT must be text or json (got %q)", c.Log.Format)
	}
	return nil
}

// SecureCookies reports whether cookies should carry the Secure flag.
func (c *Config) SecureCookies() bool {
	if c.BaseURL == "" {
		return false
	}
	base, err := url.Parse(c.BaseURL)
	return err == nil && base.Scheme == "https"
}

func checkAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return errors.Errorf("%q is not an absolute URL", raw)
	}
	return nil
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var result []string
	for _, item := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
