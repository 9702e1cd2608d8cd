package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/aquilahq/aquila/internal/domain"
)

// Config holds the connection settings for the Aquila backend API.
type Config struct {
	BaseURL    string
	Token      string
	TimeoutMs  int
	MaxRetries int
}

// SubtaskSuggestion is one entry from the suggestion endpoint, in wire
// form: the backend reports minutes as estimated_time.
type SubtaskSuggestion struct {
	Title         string `json:"title"`
	EstimatedTime int    `json:"estimated_time"`
}

// EventWrite is one calendar event in the commit payload, matching the
// backend's study-schedule sync contract.
type EventWrite struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

// Client provides access to the Aquila backend API.
type Client interface {
	// SuggestSubtasks asks the backend to break a task into estimated
	// subtasks, given its course context.
	SuggestSubtasks(ctx context.Context, taskName, courseName string) ([]SubtaskSuggestion, error)

	// DayEvents fetches the user's calendar events for one day through
	// the backend's Google Calendar proxy. Items missing a start or end
	// instant are skipped; the skip count is returned alongside.
	DayEvents(ctx context.Context, day time.Time) ([]domain.Event, int, error)

	// SyncPlan writes confirmed assignments back to the calendar.
	// Returns the number of events the backend created.
	SyncPlan(ctx context.Context, calendarID string, events []EventWrite) (int, error)
}

// httpClient implements Client over the backend's REST API.
type httpClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewClient creates a Client that talks to the Aquila backend.
func NewClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

type suggestRequest struct {
	TaskName   string `json:"task_name"`
	CourseName string `json:"course_name"`
}

// eventsResponse mirrors the Google Calendar list shape the backend
// proxies through: nested dateTime holders that may be absent.
type eventsResponse struct {
	Items []struct {
		Summary string `json:"summary"`
		Start   struct {
			DateTime string `json:"dateTime"`
		} `json:"start"`
		End struct {
			DateTime string `json:"dateTime"`
		} `json:"end"`
	} `json:"items"`
}

type syncRequest struct {
	CalendarID string       `json:"calendar_id"`
	Events     []EventWrite `json:"events"`
}

type syncResponse struct {
	Created []json.RawMessage `json:"created"`
}

func (c *httpClient) SuggestSubtasks(ctx context.Context, taskName, courseName string) ([]SubtaskSuggestion, error) {
	var out []SubtaskSuggestion
	err := c.call(ctx, OpSuggest, http.MethodPost, "/subtask/", nil,
		suggestRequest{TaskName: taskName, CourseName: courseName}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *httpClient) DayEvents(ctx context.Context, day time.Time) ([]domain.Event, int, error) {
	query := "date=" + day.Format("2006-01-02")

	var resp eventsResponse
	if err := c.call(ctx, OpEvents, http.MethodGet, "/auth/google/events/", []string{query}, nil, &resp); err != nil {
		return nil, 0, err
	}

	var events []domain.Event
	skipped := 0
	for _, item := range resp.Items {
		start, errStart := time.Parse(time.RFC3339, item.Start.DateTime)
		end, errEnd := time.Parse(time.RFC3339, item.End.DateTime)
		if errStart != nil || errEnd != nil || !end.After(start) {
			skipped++
			continue
		}
		events = append(events, domain.Event{Summary: item.Summary, Start: start, End: end})
	}
	return events, skipped, nil
}

func (c *httpClient) SyncPlan(ctx context.Context, calendarID string, events []EventWrite) (int, error) {
	var resp syncResponse
	err := c.call(ctx, OpSync, http.MethodPost, "/auth/google/events/sync", nil,
		syncRequest{CalendarID: calendarID, Events: events}, &resp)
	if err != nil {
		return 0, err
	}
	return len(resp.Created), nil
}

// call performs one API operation with timeout, bounded retries and
// observer reporting. body and out may be nil.
func (c *httpClient) call(ctx context.Context, op Op, method, path string, query []string, body, out interface{}) error {
	start := time.Now()

	timeout := time.Duration(c.cfg.TimeoutMs) * time.Millisecond
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		err := c.doRequest(ctx, method, path, query, body, out)
		if err == nil {
			c.observer.OnCallComplete(CallEvent{
				Op:        op,
				LatencyMs: time.Since(start).Milliseconds(),
				Success:   true,
			})
			return nil
		}
		lastErr = err

		// Auth failures and context expiry do not improve on retry.
		if errors.Is(err, ErrUnauthorized) || ctx.Err() != nil {
			break
		}
	}

	c.observer.OnCallComplete(CallEvent{
		Op:        op,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: errorCode(ctx, lastErr),
	})

	switch {
	case ctx.Err() != nil:
		return ErrTimeout
	case errors.Is(lastErr, ErrUnauthorized):
		return ErrUnauthorized
	case isConnectionError(lastErr):
		return ErrUnavailable
	default:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
	}
}

func (c *httpClient) doRequest(ctx context.Context, method, path string, query []string, body, out interface{}) error {
	url := c.cfg.BaseURL + path
	for i, q := range query {
		if i == 0 {
			url += "?" + q
		} else {
			url += "&" + q
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	switch {
	case httpResp.StatusCode == http.StatusUnauthorized || httpResp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case httpResp.StatusCode != http.StatusOK:
		return fmt.Errorf("backend returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(ctx context.Context, err error) string {
	switch {
	case err == nil:
		return ""
	case ctx.Err() != nil:
		return "TIMEOUT"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case isConnectionError(err):
		return "UNAVAILABLE"
	default:
		return "UNKNOWN"
	}
}
