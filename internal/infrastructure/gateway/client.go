// Package gateway is the single point of HTTP access to the MeetMate backend.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	apperrors "github.com/johnquangdev/meetmate/errors"
	"github.com/johnquangdev/meetmate/pkg/jwt"
)

const (
	// DefaultTimeout applies when Options.Timeout is zero
	DefaultTimeout = 15 * time.Second

	// HeaderRequestID correlates client logs with backend logs
	HeaderRequestID = "X-Request-ID"

	maxResponseBytes = 16 << 20
)

// Options configures a Client
type Options struct {
	BaseURL   string
	Token     string
	Timeout   time.Duration
	Transport http.RoundTripper
	Logger    *zap.Logger
}

// Client issues JSON requests against the backend.
// It holds no state between calls besides its configuration.
type Client struct {
	baseURL string
	timeout time.Duration
	authed  *http.Client
	public  *http.Client
	logger  *zap.Logger
}

// New creates a gateway client
func New(opts Options) (*Client, error) {
	u, err := url.Parse(opts.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", opts.BaseURL)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	public := &http.Client{Transport: base}
	authed := public
	if opts.Token != "" {
		authed = &http.Client{
			Transport: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token, TokenType: "Bearer"}),
				Base:   base,
			},
		}
		// Opaque tokens are allowed; only JWTs are inspected
		if info, err := jwt.Inspect(opts.Token); err == nil && info.Expired(time.Now()) {
			logger.Warn("gateway.token.expired",
				zap.String("subject", info.Subject),
				zap.Time("expires_at", *info.ExpiresAt),
			)
		}
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		timeout: timeout,
		authed:  authed,
		public:  public,
		logger:  logger,
	}, nil
}

// RequestOption tweaks a single request
type RequestOption func(*requestOptions)

type requestOptions struct {
	skipAuth bool
}

// WithSkipAuth sends the request without the Authorization header
func WithSkipAuth() RequestOption {
	return func(o *requestOptions) {
		o.skipAuth = true
	}
}

// Get issues a GET and decodes the JSON response into out
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}, opts ...RequestOption) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out, opts)
}

// Post issues a POST with a JSON body
func (c *Client) Post(ctx context.Context, path string, body, out interface{}, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out, opts)
}

// Put issues a PUT with a JSON body
func (c *Client) Put(ctx context.Context, path string, body, out interface{}, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out, opts)
}

// Patch issues a PATCH with a JSON body
func (c *Client) Patch(ctx context.Context, path string, body, out interface{}, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodPatch, path, body, out, opts)
}

// Delete issues a DELETE; out may be nil
func (c *Client) Delete(ctx context.Context, path string, out interface{}, opts ...RequestOption) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", out, opts)
}

// File is an upload attachment
type File struct {
	Field   string
	Name    string
	Content io.Reader
}

// Upload issues a multipart POST with form fields and one file
func (c *Client) Upload(ctx context.Context, path string, fields map[string]string, file File, out interface{}, opts ...RequestOption) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return apperrors.ErrValidation(err)
		}
	}
	field := file.Field
	if field == "" {
		field = "file"
	}
	part, err := w.CreateFormFile(field, file.Name)
	if err != nil {
		return apperrors.ErrValidation(err)
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return apperrors.ErrValidation(fmt.Errorf("read upload content: %w", err))
	}
	if err := w.Close(); err != nil {
		return apperrors.ErrValidation(err)
	}
	return c.do(ctx, http.MethodPost, path, nil, &buf, w.FormDataContentType(), out, opts)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}, opts []RequestOption) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return apperrors.ErrValidation(fmt.Errorf("encode request body: %w", err))
		}
		reader = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, nil, reader, contentType, out, opts)
}

func (c *Client) do(
	ctx context.Context,
	method, path string,
	query url.Values,
	body io.Reader,
	contentType string,
	out interface{},
	opts []RequestOption,
) error {
	var ro requestOptions
	for _, opt := range opts {
		opt(&ro)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return apperrors.ErrValidation(fmt.Errorf("build request: %w", err))
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	client := c.authed
	if ro.skipAuth {
		client = c.public
	}

	start := time.Now()
	c.logger.Debug("gateway.request",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
		zap.Bool("skip_auth", ro.skipAuth),
	)

	resp, err := client.Do(req)
	if err != nil {
		appErr := apperrors.ErrNetwork(method, path, err)
		c.logger.Warn("gateway.error",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("path", path),
			zap.String("code", appErr.Code.String()),
			zap.Error(err),
		)
		return appErr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return apperrors.ErrNetwork(method, path, err)
	}

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		appErr := apperrors.ErrHTTP(resp.StatusCode, ExtractDetail(data), data)
		fields = append(fields, zap.String("detail", appErr.Message))
		if apperrors.IsClientError(appErr) {
			c.logger.Warn("gateway.response.error", fields...)
		} else {
			c.logger.Error("gateway.response.error", fields...)
		}
		return appErr
	}
	c.logger.Debug("gateway.response", fields...)

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Warn("gateway.decode.error", append(fields, zap.Error(err))...)
		return apperrors.ErrDecode(err, data)
	}
	return nil
}

// ExtractDetail pulls the human message out of a backend error body.
// The backend sends {"detail": "..."} or {"detail": [{"msg": "..."}]}.
func ExtractDetail(data []byte) string {
	var body struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return strings.TrimSpace(string(data[:min(len(data), 512)]))
	}

	if len(body.Detail) > 0 {
		var s string
		if err := json.Unmarshal(body.Detail, &s); err == nil {
			return s
		}
		var entries []struct {
			Msg string        `json:"msg"`
			Loc []interface{} `json:"loc"`
		}
		if err := json.Unmarshal(body.Detail, &entries); err == nil && len(entries) > 0 {
			msgs := make([]string, 0, len(entries))
			for _, e := range entries {
				if len(e.Loc) > 0 {
					msgs = append(msgs, fmt.Sprintf("%v: %s", e.Loc[len(e.Loc)-1], e.Msg))
				} else {
					msgs = append(msgs, e.Msg)
				}
			}
			return strings.Join(msgs, "; ")
		}
		return string(body.Detail)
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
