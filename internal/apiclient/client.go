// Package apiclient wraps the TravelMate backend's REST endpoints in typed
// methods. Every call is a single request/response exchange: no retries, no
// backoff. Failures come back as structured *errors.AppError values so
// callers can decide whether to queue the mutation for offline replay.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/travelmate-app/travelmate-client/errors"
	"github.com/travelmate-app/travelmate-client/logger"
	"github.com/travelmate-app/travelmate-client/types"
)

// TokenSource supplies the bearer token attached to authenticated requests.
// An empty token means the request is sent unauthenticated and the backend
// decides the outcome.
type TokenSource interface {
	Token() string
}

// Client represents a typed client for the TravelMate backend API.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout on the underlying HTTP client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new API client. tokens may be nil for a client used
// only for register/login.
func NewClient(baseURL string, tokens TokenSource, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// do executes a single request and decodes the response into out (when
// non-nil). Network-level failures classify as connectivity errors; non-2xx
// responses carry whatever detail the body provides.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, errors.ValidationError, "failed to encode request body")
		}
		reqBody = bytes.NewReader(data)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return errors.Wrap(err, errors.ValidationError, "failed to build request")
	}

	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.GetLogger().Warnw("Request failed",
			"method", method,
			"path", path,
			"error", err)
		return errors.ConnectionFailed(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.remoteError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, errors.ServerError, "failed to decode response")
		}
	}
	return nil
}

// remoteError extracts the structured error message from a non-2xx response
// body, falling back to "HTTP <status>" when the body is not parseable.
func (c *Client) remoteError(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized {
		return errors.AuthenticationFailed("Authentication failed. Please login again.")
	}

	detail := ""
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(raw) > 0 {
		var body struct {
			Detail string `json:"detail"`
		}
		if jsonErr := json.Unmarshal(raw, &body); jsonErr == nil && body.Detail != "" {
			detail = body.Detail
		} else if jsonErr != nil {
			detail = strings.TrimSpace(string(raw))
		}
	}

	if resp.StatusCode == http.StatusNotFound {
		if detail == "" {
			detail = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return errors.New(errors.NotFoundError, detail, "")
	}
	return errors.RemoteError(resp.StatusCode, detail)
}

// --- Auth ---

// Register creates a new account and returns the issued token.
func (c *Client) Register(ctx context.Context, req types.RegisterRequest) (*types.AuthResponse, error) {
	var resp types.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, req types.LoginRequest) (*types.AuthResponse, error) {
	var resp types.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CurrentUser fetches the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context) (*types.User, error) {
	var user types.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial user update.
func (c *Client) UpdateProfile(ctx context.Context, update types.ProfileUpdate) (*types.User, error) {
	var user types.User
	if err := c.do(ctx, http.MethodPut, "/auth/profile", nil, update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword changes the current user's password.
func (c *Client) ChangePassword(ctx context.Context, change types.PasswordChange) error {
	if change.CurrentPassword == "" || change.NewPassword == "" {
		return errors.ValidationFailed("invalid password change", "both current and new password are required")
	}
	return c.do(ctx, http.MethodPut, "/auth/change-password", nil, change, nil)
}

// --- Trips ---

// ListTrips returns all trips the user owns or participates in.
func (c *Client) ListTrips(ctx context.Context) ([]types.Trip, error) {
	var trips []types.Trip
	if err := c.do(ctx, http.MethodGet, "/trips/", nil, nil, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// CreateTrip creates a new trip. The payload is validated locally first so
// a malformed trip never reaches the wire.
func (c *Client) CreateTrip(ctx context.Context, trip types.TripCreate) (*types.Trip, error) {
	if err := trip.Validate(); err != nil {
		return nil, err
	}
	var created types.Trip
	if err := c.do(ctx, http.MethodPost, "/trips/", nil, trip, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetTrip fetches a single trip by id.
func (c *Client) GetTrip(ctx context.Context, tripID string) (*types.Trip, error) {
	var trip types.Trip
	if err := c.do(ctx, http.MethodGet, "/trips/"+url.PathEscape(tripID), nil, nil, &trip); err != nil {
		if errors.IsType(err, errors.NotFoundError) {
			return nil, errors.TripNotFound(tripID)
		}
		return nil, err
	}
	return &trip, nil
}

// UpdateTrip replaces a trip's editable fields.
func (c *Client) UpdateTrip(ctx context.Context, tripID string, trip types.TripCreate) (*types.Trip, error) {
	if err := trip.Validate(); err != nil {
		return nil, err
	}
	var updated types.Trip
	if err := c.do(ctx, http.MethodPut, "/trips/"+url.PathEscape(tripID), nil, trip, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTrip deletes a trip. Owner-only; the backend enforces it.
func (c *Client) DeleteTrip(ctx context.Context, tripID string) error {
	return c.do(ctx, http.MethodDelete, "/trips/"+url.PathEscape(tripID), nil, nil, nil)
}

// JoinTrip joins an existing trip using its share id.
func (c *Client) JoinTrip(ctx context.Context, tripID string) (*types.Trip, error) {
	var trip types.Trip
	if err := c.do(ctx, http.MethodPost, "/trips/join/"+url.PathEscape(tripID), nil, nil, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

// --- Activities ---

// ListActivities returns a trip's itinerary entries.
func (c *Client) ListActivities(ctx context.Context, tripID string) ([]types.Activity, error) {
	var activities []types.Activity
	if err := c.do(ctx, http.MethodGet, "/activities/"+url.PathEscape(tripID), nil, nil, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// CreateActivity adds an itinerary entry to a trip.
func (c *Client) CreateActivity(ctx context.Context, tripID string, activity types.Activity) (*types.Activity, error) {
	var created types.Activity
	if err := c.do(ctx, http.MethodPost, "/activities/"+url.PathEscape(tripID), nil, activity, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateActivity updates an itinerary entry.
func (c *Client) UpdateActivity(ctx context.Context, tripID, activityID string, activity types.Activity) (*types.Activity, error) {
	var updated types.Activity
	path := "/activities/" + url.PathEscape(tripID) + "/" + url.PathEscape(activityID)
	if err := c.do(ctx, http.MethodPut, path, nil, activity, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteActivity removes an itinerary entry.
func (c *Client) DeleteActivity(ctx context.Context, tripID, activityID string) error {
	path := "/activities/" + url.PathEscape(tripID) + "/" + url.PathEscape(activityID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// --- Expenses ---

// ListExpenses returns a trip's expenses.
func (c *Client) ListExpenses(ctx context.Context, tripID string) ([]types.Expense, error) {
	var expenses []types.Expense
	if err := c.do(ctx, http.MethodGet, "/expenses/"+url.PathEscape(tripID), nil, nil, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// CreateExpense records a new expense against a trip.
func (c *Client) CreateExpense(ctx context.Context, tripID string, expense types.Expense) (*types.Expense, error) {
	if err := expense.Validate(); err != nil {
		return nil, err
	}
	var created types.Expense
	if err := c.do(ctx, http.MethodPost, "/expenses/"+url.PathEscape(tripID), nil, expense, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateExpense updates an expense.
func (c *Client) UpdateExpense(ctx context.Context, tripID, expenseID string, expense types.Expense) (*types.Expense, error) {
	var updated types.Expense
	path := "/expenses/" + url.PathEscape(tripID) + "/" + url.PathEscape(expenseID)
	if err := c.do(ctx, http.MethodPut, path, nil, expense, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteExpense removes an expense.
func (c *Client) DeleteExpense(ctx context.Context, tripID, expenseID string) error {
	path := "/expenses/" + url.PathEscape(tripID) + "/" + url.PathEscape(expenseID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// ExpenseSummary fetches the server-side aggregate for a trip's budget.
func (c *Client) ExpenseSummary(ctx context.Context, tripID string) (*types.ExpenseSummary, error) {
	var summary types.ExpenseSummary
	if err := c.do(ctx, http.MethodGet, "/expenses/"+url.PathEscape(tripID)+"/summary", nil, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// --- Packing ---

// ListPackingItems returns a trip's packing checklist.
func (c *Client) ListPackingItems(ctx context.Context, tripID string) ([]types.PackingItem, error) {
	var items []types.PackingItem
	if err := c.do(ctx, http.MethodGet, "/packing/"+url.PathEscape(tripID), nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreatePackingItem adds a checklist entry.
func (c *Client) CreatePackingItem(ctx context.Context, tripID string, item types.PackingItem) (*types.PackingItem, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	var created types.PackingItem
	if err := c.do(ctx, http.MethodPost, "/packing/"+url.PathEscape(tripID), nil, item, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// TogglePackingItem flips an item's packed flag server-side and returns the
// new state.
func (c *Client) TogglePackingItem(ctx context.Context, tripID, itemID string) (*types.PackingItem, error) {
	var toggled types.PackingItem
	path := "/packing/" + url.PathEscape(tripID) + "/" + url.PathEscape(itemID) + "/toggle"
	if err := c.do(ctx, http.MethodPut, path, nil, nil, &toggled); err != nil {
		return nil, err
	}
	return &toggled, nil
}

// UpdatePackingItem updates a checklist entry.
func (c *Client) UpdatePackingItem(ctx context.Context, tripID, itemID string, item types.PackingItem) (*types.PackingItem, error) {
	var updated types.PackingItem
	path := "/packing/" + url.PathEscape(tripID) + "/" + url.PathEscape(itemID)
	if err := c.do(ctx, http.MethodPut, path, nil, item, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeletePackingItem removes a checklist entry.
func (c *Client) DeletePackingItem(ctx context.Context, tripID, itemID string) error {
	path := "/packing/" + url.PathEscape(tripID) + "/" + url.PathEscape(itemID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// --- Weather ---

// WeatherForecast fetches the forecast summary for a destination over the
// trip's date range.
func (c *Client) WeatherForecast(ctx context.Context, city string, startDate, endDate time.Time) (*types.WeatherForecast, error) {
	query := url.Values{}
	query.Set("start_date", startDate.UTC().Format(time.RFC3339))
	query.Set("end_date", endDate.UTC().Format(time.RFC3339))

	var forecast types.WeatherForecast
	if err := c.do(ctx, http.MethodGet, "/weather/"+url.PathEscape(city), query, nil, &forecast); err != nil {
		return nil, err
	}
	return &forecast, nil
}
