package strava

import (
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/oauth2"

	"github.com/jw6ventures/stravaview/internal/config"
)

const (
	// Scope requested on authorization; read_all includes private activities.
	Scope = "activity:read_all"

	// ActivitiesPerPage is how many recent activities are listed.
	ActivitiesPerPage = 10

	defaultTimeout = 10 * time.Second
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client talks to the Strava OAuth and activities endpoints.
type Client struct {
	oauth         *oauth2.Config
	activitiesURL string
	httpClient    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the transport used for every Strava call.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(cfg *config.Config, opts ...Option) *Client {
	c := &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.Strava.ClientID,
			ClientSecret: cfg.Strava.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.Strava.AuthorizeURL,
				TokenURL:  cfg.Strava.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
			Scopes: []string{Scope},
		},
		activitiesURL: cfg.Strava.ActivitiesURL,
		httpClient:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AuthCodeURL returns the Strava authorization URL that redirects back to redirectURI.
func (c *Client) AuthCodeURL(redirectURI string) string {
	return c.oauth.AuthCodeURL("", oauth2.SetAuthURLParam("redirect_uri", redirectURI))
}

// withHTTPClient makes oauth2 use our transport for the call.
func (c *Client) withHTTPClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}
