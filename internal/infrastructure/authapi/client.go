package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"go.uber.org/zap"

	"freelance-match/internal/domain/marketplace"
	applog "freelance-match/internal/logger"
)

const (
	MessageLoginFailed        = "Login failed"
	MessageRegistrationFailed = "Registration failed"
	MessageUploadFailed       = "Upload failed"
	MessageUnreachable        = "Server not reachable"
)

var ErrUnreachable = errors.New("auth server not reachable")

// APIError is a non-2xx answer from the backend. Message is the body's
// "error" field, or a fallback when the body has none.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("auth api: status=%d: %s", e.StatusCode, e.Message)
}

// Client talks to a remote backend exposing /api/auth and /api/files.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger = applog.OrNop(logger)
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string               `json:"name"`
	Email    string               `json:"email"`
	Password string               `json:"password"`
	UserType marketplace.UserType `json:"userType"`
}

type errorBody struct {
	Error string `json:"error"`
}

type uploadResponse struct {
	URL string `json:"url"`
}

func (c *Client) Login(ctx context.Context, email, password string) (marketplace.User, error) {
	var out marketplace.User
	err := c.postJSON(ctx, "/api/auth/login", loginRequest{Email: email, Password: password}, &out, MessageLoginFailed)
	if err != nil {
		return marketplace.User{}, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string, userType marketplace.UserType) (marketplace.User, error) {
	body := registerRequest{Name: name, Email: email, Password: password, UserType: userType}

	var out marketplace.User
	if err := c.postJSON(ctx, "/api/auth/register", body, &out, MessageRegistrationFailed); err != nil {
		return marketplace.User{}, err
	}
	return out, nil
}

// UploadAvatar sends r as the multipart "file" field and returns the URL
// the backend reports, usually relative ("/uploads/<name>").
func (c *Client) UploadAvatar(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	var out uploadResponse
	if err := c.do(ctx, "/api/files/avatar", mw.FormDataContentType(), &buf, &out, MessageUploadFailed); err != nil {
		return "", err
	}
	return out.URL, nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any, fallback string) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return c.do(ctx, path, "application/json", bytes.NewReader(b), out, fallback)
}

func (c *Client) do(ctx context.Context, path, contentType string, body io.Reader, out any, fallback string) error {
	if c == nil || c.client == nil {
		return errors.New("nil auth api client")
	}
	endpoint := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("auth api request failed", zap.String("endpoint", endpoint), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := fallback
		var eb errorBody
		if json.Unmarshal(rb, &eb) == nil && strings.TrimSpace(eb.Error) != "" {
			msg = eb.Error
		}
		c.logger.Debug("auth api rejected request",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("body", strings.TrimSpace(string(rb))),
		)
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: fallback}
	}
	return nil
}
