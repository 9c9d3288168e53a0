package strava

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/jw6ventures/stravaview/internal/metrics"
)

// RawActivity is one activity summary as returned by Strava, validated at decode time.
type RawActivity struct {
	ID          int64
	Name        string
	Distance    float64 // meters
	StartDate   time.Time
	ElapsedTime int64 // seconds
	MovingTime  int64 // seconds
	SportType   string
}

// wireActivity mirrors the JSON payload; pointers let us tell missing from zero.
type wireActivity struct {
	ID          *int64     `json:"id"`
	Name        *string    `json:"name"`
	Distance    *float64   `json:"distance"`
	StartDate   *time.Time `json:"start_date"`
	ElapsedTime *int64     `json:"elapsed_time"`
	MovingTime  *int64     `json:"moving_time"`
	SportType   string     `json:"sport_type"`
}

func (w wireActivity) validate() (RawActivity, error) {
	var missing string
	switch {
	case w.ID == nil:
		missing = "id"
	case w.Name == nil:
		missing = "name"
	case w.Distance == nil:
		missing = "distance"
	case w.StartDate == nil:
		missing = "start_date"
	case w.ElapsedTime == nil:
		missing = "elapsed_time"
	case w.MovingTime == nil:
		missing = "moving_time"
	}
	if missing != "" {
		return RawActivity{}, fmt.Errorf("missing %s", missing)
	}
	if *w.Distance < 0 || *w.ElapsedTime < 0 || *w.MovingTime < 0 {
		return RawActivity{}, fmt.Errorf("activity %d has negative measurements", *w.ID)
	}
	return RawActivity{
		ID:          *w.ID,
		Name:        *w.Name,
		Distance:    *w.Distance,
		StartDate:   *w.StartDate,
		ElapsedTime: *w.ElapsedTime,
		MovingTime:  *w.MovingTime,
		SportType:   w.SportType,
	}, nil
}

// Activities returns the athlete's most recent activities, newest first.
func (c *Client) Activities(ctx context.Context, accessToken string) ([]RawActivity, error) {
	start := time.Now()
	activities, err := c.activities(ctx, accessToken)
	metrics.ObserveUpstream(ctx, "strava.activities", start, err)
	return activities, err
}

func (c *Client) activities(ctx context.Context, accessToken string) ([]RawActivity, error) {
	u, err := url.Parse(c.activitiesURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse activities url")
	}
	q := u.Query()
	q.Set("per_page", strconv.Itoa(ActivitiesPerPage))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build activities request")
	}
	req.Header.Set("Accept", "application/json")

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	resp, err := oauth2.NewClient(c.withHTTPClient(ctx), src).Do(req)
	if err != nil {
		return nil, &UpstreamFetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &UpstreamFetchError{StatusCode: resp.StatusCode, Err: errors.Errorf("strava error: %v", resp.Status)}
	}

	var payload []wireActivity
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &MalformedResponseError{Operation: "activities", Reason: err.Error()}
	}

	activities := make([]RawActivity, 0, len(payload))
	for i, w := range payload {
		a, err := w.validate()
		if err != nil {
			return nil, &MalformedResponseError{Operation: "activities", Reason: fmt.Sprintf("item %d: %v", i, err)}
		}
		activities = append(activities, a)
	}
	return activities, nil
}
