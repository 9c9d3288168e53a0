package strava

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/jw6ventures/stravaview/internal/metrics"
)

// Athlete is the subset of the Strava athlete summary returned with a token.
type Athlete struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Profile   string `json:"profile"`
}

func (a Athlete) FullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", a.FirstName, a.LastName))
}

// TokenBundle is what a successful code exchange yields and what the session stores.
type TokenBundle struct {
	TokenType    string  `json:"token_type"`
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	ExpiresAt    int64   `json:"expires_at"`
	Athlete      Athlete `json:"athlete"`
}

// Expiry returns ExpiresAt as a UTC time.
func (b *TokenBundle) Expiry() time.Time {
	return time.Unix(b.ExpiresAt, 0).UTC()
}

// Exchange trades a single-use authorization code for a token bundle.
func (c *Client) Exchange(ctx context.Context, code string) (*TokenBundle, error) {
	if code == "" {
		return nil, ErrMissingCode
	}

	start := time.Now()
	tok, err := c.oauth.Exchange(c.withHTTPClient(ctx), code)
	if err != nil {
		err = classifyExchangeError(err)
		metrics.ObserveUpstream(ctx, "strava.token_exchange", start, err)
		return nil, err
	}

	bundle, err := bundleFromToken(tok)
	metrics.ObserveUpstream(ctx, "strava.token_exchange", start, err)
	if err != nil {
		return nil, err
	}
	return bundle, nil
}

// classifyExchangeError separates refusals and transport failures from 2xx
// token responses the oauth2 package could not use.
func classifyExchangeError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		if retrieveErr.Response != nil {
			return &UpstreamAuthError{StatusCode: retrieveErr.Response.StatusCode, Err: err}
		}
		return &UpstreamAuthError{Err: err}
	}
	var transportErr *url.Error
	if errors.As(err, &transportErr) {
		return &UpstreamAuthError{Err: err}
	}
	return &MalformedResponseError{Operation: "token", Reason: err.Error()}
}

func bundleFromToken(tok *oauth2.Token) (*TokenBundle, error) {
	bundle := &TokenBundle{
		TokenType:    tok.TokenType,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
	}

	switch v := tok.Extra("expires_at").(type) {
	case float64:
		bundle.ExpiresAt = int64(v)
	default:
		if tok.Expiry.IsZero() {
			return nil, &MalformedResponseError{Operation: "token", Reason: "missing expires_at"}
		}
		bundle.ExpiresAt = tok.Expiry.Unix()
	}

	raw := tok.Extra("athlete")
	if raw == nil {
		return nil, &MalformedResponseError{Operation: "token", Reason: "missing athlete"}
	}
	// Extra yields generic JSON values; round-trip to get the typed athlete.
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.Wrap(err, "encode athlete")
	}
	if err := json.Unmarshal(data, &bundle.Athlete); err != nil {
		return nil, &MalformedResponseError{Operation: "token", Reason: "athlete: " + err.Error()}
	}
	if bundle.Athlete.ID == 0 {
		return nil, &MalformedResponseError{Operation: "token", Reason: "missing athlete.id"}
	}

	return bundle, nil
}
