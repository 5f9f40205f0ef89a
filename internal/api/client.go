// Package api wraps the backend REST collaborator. Each resource gets a thin
// gateway that issues CRUD calls and returns decoded collections; errors are
// always returned as values and carry the backend's error payload when one
// was provided.
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mssd/mssd-console/internal/model"
	"github.com/mssd/mssd-console/pkg/config"
	"github.com/mssd/mssd-console/pkg/logger"
)

// Client provides unified access to every backend resource gateway.
type Client struct {
	http     *resty.Client
	baseURL  string
	filesURL string

	blogs                *BlogService
	formations           *Resource[model.Formation]
	themes               *Resource[model.Theme]
	portfolio            *Resource[model.Portfolio]
	calendar             *Resource[model.CalendarEvent]
	reservations         *Resource[model.Reservation]
	calendarReservations *Resource[model.CalendarReservation]
	customRequests       *Resource[model.CustomRequest]
	annexRequests        *Resource[model.AnnexRequest]
	contacts             *Resource[model.Contact]
	reviews              *Resource[model.Review]
	newsletter           *Resource[model.Newsletter]
	highlights           *Resource[model.Highlight]
	files                *FileService
}

// NewClient creates a client for the configured backend.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	baseURL, err := validateBaseURL(cfg.API.BaseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		http:     buildHTTPClient(cfg, baseURL),
		baseURL:  baseURL,
		filesURL: cfg.FilesBaseURL(),
	}
	c.blogs = &BlogService{Resource: newResource[model.Blog](c, "/blog"), client: c}
	c.formations = newResource[model.Formation](c, "/formations")
	c.themes = newResource[model.Theme](c, "/themes")
	c.portfolio = newResource[model.Portfolio](c, "/portfolio")
	c.calendar = newResource[model.CalendarEvent](c, "/calendar")
	c.reservations = newResource[model.Reservation](c, "/reservations")
	c.calendarReservations = newResource[model.CalendarReservation](c, "/calendar-reservations")
	c.customRequests = newResource[model.CustomRequest](c, "/custom-requests")
	c.annexRequests = newResource[model.AnnexRequest](c, "/annex-requests")
	c.contacts = newResource[model.Contact](c, "/contact")
	c.reviews = newResource[model.Review](c, "/reviews")
	c.newsletter = newResource[model.Newsletter](c, "/newsletter")
	c.highlights = newResource[model.Highlight](c, "/highlights")
	c.files = &FileService{client: c}
	return c, nil
}

func validateBaseURL(baseURL string) (string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return "", fmt.Errorf("base URL must be absolute with a host, got: %s", baseURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("base URL scheme must be http or https, got: %s", parsed.Scheme)
	}
	return baseURL, nil
}

func buildHTTPClient(cfg *config.Config, baseURL string) *resty.Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.API.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(cfg.API.Retries).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second)
	if token := cfg.API.Token.Value(); token != "" {
		client.SetHeader("Authorization", "Bearer "+token)
	}
	client.AddRetryCondition(retryCondition)
	if cfg.CLI.LogLevel == "debug" {
		client.SetDebug(true)
	}
	return client
}

// retryCondition retries network failures and transient server statuses.
// Mutating verbs are excluded so a create is never replayed after an
// ambiguous failure.
func retryCondition(r *resty.Response, err error) bool {
	if r != nil && r.Request != nil {
		switch r.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
			return false
		}
	}
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	return code >= 500 || code == 429 || code == 408
}

// Blogs returns the blog gateway.
func (c *Client) Blogs() *BlogService { return c.blogs }

// Formations returns the formations gateway.
func (c *Client) Formations() *Resource[model.Formation] { return c.formations }

// Themes returns the themes gateway.
func (c *Client) Themes() *Resource[model.Theme] { return c.themes }

// Portfolio returns the portfolio gateway.
func (c *Client) Portfolio() *Resource[model.Portfolio] { return c.portfolio }

// Calendar returns the calendar-events gateway.
func (c *Client) Calendar() *Resource[model.CalendarEvent] { return c.calendar }

// Reservations returns the event-reservations gateway.
func (c *Client) Reservations() *Resource[model.Reservation] { return c.reservations }

// CalendarReservations returns the private-session reservations gateway.
func (c *Client) CalendarReservations() *Resource[model.CalendarReservation] {
	return c.calendarReservations
}

// CustomRequests returns the custom-requests gateway.
func (c *Client) CustomRequests() *Resource[model.CustomRequest] { return c.customRequests }

// AnnexRequests returns the annex-requests gateway.
func (c *Client) AnnexRequests() *Resource[model.AnnexRequest] { return c.annexRequests }

// Contacts returns the contact-messages gateway.
func (c *Client) Contacts() *Resource[model.Contact] { return c.contacts }

// Reviews returns the reviews gateway.
func (c *Client) Reviews() *Resource[model.Review] { return c.reviews }

// Newsletter returns the newsletter gateway.
func (c *Client) Newsletter() *Resource[model.Newsletter] { return c.newsletter }

// Highlights returns the homepage-highlights gateway.
func (c *Client) Highlights() *Resource[model.Highlight] { return c.highlights }

// Files returns the upload gateway.
func (c *Client) Files() *FileService { return c.files }

// doRequest performs a request with context cancellation support.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	log := logger.FromContext(ctx)

	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}
	req.SetError(&APIError{})

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if err := handleResponse(resp); err != nil {
		return err
	}

	log.Debug("API request completed", "method", method, "path", path, "status", resp.StatusCode())
	return nil
}

func handleResponse(resp *resty.Response) error {
	if resp.StatusCode() < 400 {
		return nil
	}
	if apiErr, ok := resp.Error().(*APIError); ok && apiErr != nil {
		apiErr.Status = resp.StatusCode()
		return apiErr
	}
	return &APIError{Status: resp.StatusCode(), Message: resp.String()}
}
