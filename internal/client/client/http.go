package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"

	"github.com/dmitrijs2005/helpdesk/internal/client/models"
	"github.com/dmitrijs2005/helpdesk/internal/common"
	"github.com/dmitrijs2005/helpdesk/internal/logging"
)

// maxErrorBody bounds how much of a non-2xx body is read for its message.
const maxErrorBody = 64 << 10

type validator interface {
	Validate() error
}

// HTTPClient talks to the helpdesk REST API. The session cookie set by the
// auth endpoints is kept in a cookie jar and replayed on every request.
type HTTPClient struct {
	baseURL    *url.URL
	timeout    time.Duration
	httpClient *http.Client
	log        logging.Logger
	newID      func() string
}

type Option func(*HTTPClient)

// WithLogger makes the client log each request at debug level.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) { c.httpClient.Transport = rt }
}

func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse api url: unsupported scheme %q", u.Scheme)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	c := &HTTPClient{
		baseURL:    u,
		timeout:    timeout,
		httpClient: &http.Client{Jar: jar},
		log:        logging.Discard(),
		newID:      uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *HTTPClient) Signup(ctx context.Context, role models.Role, creds models.Credentials) (*models.Identity, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	var resp models.AuthResponse
	if err := c.do(ctx, signupEndpoint(role), creds, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *HTTPClient) Login(ctx context.Context, role models.Role, creds models.Credentials) (*models.Identity, error) {
	creds.Name = ""
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	var resp models.AuthResponse
	if err := c.do(ctx, loginEndpoint(role), creds, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, logoutEndpoint, nil, nil)
}

func (c *HTTPClient) AuthCheck(ctx context.Context) (*models.Identity, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, authCheckEndpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *HTTPClient) fetchTickets(ctx context.Context, e Endpoint) ([]models.Ticket, error) {
	var resp models.TicketsResponse
	if err := c.do(ctx, e, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Tickets == nil {
		return []models.Ticket{}, nil
	}
	return resp.Tickets, nil
}

func (c *HTTPClient) FetchAllTickets(ctx context.Context) ([]models.Ticket, error) {
	return c.fetchTickets(ctx, allTicketsEndpoint)
}

func (c *HTTPClient) FetchUserTickets(ctx context.Context) ([]models.Ticket, error) {
	return c.fetchTickets(ctx, userTicketsEndpoint)
}

func (c *HTTPClient) FetchAssignedTickets(ctx context.Context) ([]models.Ticket, error) {
	return c.fetchTickets(ctx, assignedTicketsEndpoint)
}

func (c *HTTPClient) CreateTicket(ctx context.Context, t models.NewTicket) (*models.Ticket, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	var resp models.TicketResponse
	if err := c.do(ctx, createTicketEndpoint, t, &resp); err != nil {
		return nil, err
	}
	return resp.Ticket, nil
}

func (c *HTTPClient) AddComment(ctx context.Context, ticketID string, n models.NewComment) (*models.Comment, error) {
	if err := requireID(ticketID); err != nil {
		return nil, err
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	var resp models.CommentResponse
	if err := c.do(ctx, addCommentEndpoint(ticketID), n, &resp); err != nil {
		return nil, err
	}
	return resp.Comment, nil
}

func (c *HTTPClient) UpdateStatus(ctx context.Context, ticketID string, u models.StatusUpdate) (*models.TicketPatch, error) {
	if err := requireID(ticketID); err != nil {
		return nil, err
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	var patch models.TicketPatch
	if err := c.do(ctx, updateStatusEndpoint(ticketID), u, &patch); err != nil {
		return nil, err
	}
	return &patch, nil
}

func (c *HTTPClient) UpdatePriority(ctx context.Context, ticketID string, u models.PriorityUpdate) (*models.TicketPatch, error) {
	if err := requireID(ticketID); err != nil {
		return nil, err
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	var resp models.PatchResponse
	if err := c.do(ctx, updatePriorityEndpoint(ticketID), u, &resp); err != nil {
		return nil, err
	}
	return resp.Ticket, nil
}

func (c *HTTPClient) AssignTicket(ctx context.Context, a models.AssignRequest) (*models.UserRef, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	var resp models.AssignResponse
	if err := c.do(ctx, assignTicketEndpoint, a, &resp); err != nil {
		return nil, err
	}
	return resp.AssignedTo, nil
}

func (c *HTTPClient) DeleteTicket(ctx context.Context, ticketID string) error {
	if err := requireID(ticketID); err != nil {
		return err
	}
	return c.do(ctx, deleteTicketEndpoint(ticketID), nil, nil)
}

func (c *HTTPClient) RemoveTicket(ctx context.Context, ticketID string) error {
	if err := requireID(ticketID); err != nil {
		return err
	}
	return c.do(ctx, removeTicketEndpoint(ticketID), nil, nil)
}

func (c *HTTPClient) Cookies() []*http.Cookie {
	return c.httpClient.Jar.Cookies(c.baseURL)
}

func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return models.ErrTicketIDRequired
	}
	return nil
}

// do sends one request and decodes a 2xx body into out, which is then
// validated when it knows how. A nil out discards the body.
func (c *HTTPClient) do(ctx context.Context, e Endpoint, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, e.Method, c.baseURL.String()+e.Path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := c.newID()
	req.Header.Set(common.RequestIDHeaderName, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", e.Method, "path", e.Path, "request_id", requestID, "error", err)
		return c.mapError(err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request done",
		"method", e.Method, "path", e.Path, "request_id", requestID,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp, requestID)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrMalformedResponse, e.Method, e.Path, err)
	}
	if v, ok := out.(validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%w: %s %s: %v", ErrMalformedResponse, e.Method, e.Path, err)
		}
	}
	return nil
}

func (c *HTTPClient) mapError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}

func apiError(resp *http.Response, requestID string) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, RequestID: requestID}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}
	var body models.ErrorResponse
	if json.Unmarshal(b, &body) == nil {
		apiErr.Message = body.Message
	}
	return apiErr
}
