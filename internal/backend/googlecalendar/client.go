// Package googlecalendar implements service.Notifier using Google Calendar:
// each reminder is a short event carrying a popup alert at its start time.
package googlecalendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"timemgr/internal/config"
	"timemgr/internal/service"
)

const (
	// PrimaryCalendar is the calendar id of the user's main calendar.
	PrimaryCalendar = "primary"

	// APITimeout is the timeout for API calls.
	APITimeout = 10 * time.Second

	// EventDuration is the length of the event created for a reminder.
	EventDuration = 15 * time.Minute

	notificationProperty = "timemgr_notification_id"
	taskProperty         = "timemgr_task_id"
)

// Scopes are the OAuth scopes needed to manage reminder events.
var Scopes = []string{
	calendar.CalendarEventsScope,
	calendar.CalendarReadonlyScope,
}

// Calendar is an entry of the user's calendar list.
type Calendar struct {
	ID      string
	Summary string
	Primary bool
}

// Client implements service.Notifier on a single calendar.
type Client struct {
	svc        *calendar.Service
	calendarID string
}

// New creates a client from the stored OAuth credentials and resolves the
// configured calendar. Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	httpClient, err := HTTPClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	c := &Client{svc: svc, calendarID: PrimaryCalendar}
	if cfg.Calendar != "" && cfg.Calendar != PrimaryCalendar {
		id, err := c.ResolveCalendar(ctx, cfg.Calendar)
		if err != nil {
			return nil, err
		}
		c.calendarID = id
	}
	return c, nil
}

// HTTPClient builds an auto-refreshing HTTP client from oauth_client.json
// and token.json.
func HTTPClient(ctx context.Context, cfg *config.Config) (*http.Client, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}

	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}

	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}

	return oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, &token)), nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, calendarID string, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc, calendarID: calendarID}, nil
}

// CalendarID returns the id of the calendar reminders are written to.
func (c *Client) CalendarID() string {
	return c.calendarID
}

// ListCalendars returns the user's calendars in API order.
func (c *Client) ListCalendars(ctx context.Context) ([]Calendar, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var result []Calendar
	err := c.svc.CalendarList.List().Pages(ctx, func(resp *calendar.CalendarList) error {
		for _, item := range resp.Items {
			result = append(result, Calendar{ID: item.Id, Summary: item.Summary, Primary: item.Primary})
		}
		return nil
	})
	if err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

// ResolveCalendar finds a calendar id by its summary.
func (c *Client) ResolveCalendar(ctx context.Context, summary string) (string, error) {
	calendars, err := c.ListCalendars(ctx)
	if err != nil {
		return "", err
	}
	for _, cal := range calendars {
		if cal.Summary == summary {
			return cal.ID, nil
		}
	}
	return "", fmt.Errorf("calendar not found: %s", summary)
}

// Schedule implements service.Notifier.
func (c *Client) Schedule(ctx context.Context, n service.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	_, err := c.svc.Events.Insert(c.calendarID, reminderEvent(n)).Context(ctx).Do()
	if err != nil {
		return wrapError(err)
	}
	return nil
}

func reminderEvent(n service.Notification) *calendar.Event {
	return &calendar.Event{
		Summary:     n.Title,
		Description: n.Body,
		Start:       &calendar.EventDateTime{DateTime: n.At.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: n.At.Add(EventDuration).Format(time.RFC3339)},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: 0, ForceSendFields: []string{"Minutes"}},
			},
			ForceSendFields: []string{"UseDefault"},
		},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				notificationProperty: strconv.Itoa(n.ID),
				taskProperty:         n.TaskID,
			},
		},
	}
}

// Cancel implements service.Notifier. Events already gone are ignored.
func (c *Client) Cancel(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	events, err := c.svc.Events.List(c.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%d", notificationProperty, id)).
		Context(ctx).
		Do()
	if err != nil {
		return wrapError(err)
	}

	for _, event := range events.Items {
		err := c.svc.Events.Delete(c.calendarID, event.Id).Context(ctx).Do()
		if err != nil && !isGone(err) {
			return wrapError(err)
		}
	}
	return nil
}

func isGone(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone
	}
	return false
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("token expired or revoked (run: timemgr login)")
		case http.StatusNotFound:
			return fmt.Errorf("not found")
		}
	}

	return err
}

var _ service.Notifier = (*Client)(nil)
