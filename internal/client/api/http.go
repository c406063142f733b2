package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskdesk/internal/client/models"
	"github.com/dmitrijs2005/taskdesk/internal/common"
	"github.com/dmitrijs2005/taskdesk/internal/logging"
	"github.com/google/uuid"
)

const (
	pathLogin  = "/api/auth/login"
	pathSignup = "/api/auth/signup"
	pathMe     = "/api/auth/me"
	pathTasks  = "/api/task"

	contentTypeJSON = "application/json"

	// cap on error bodies read for the "message" field
	maxErrorBody = 64 << 10
)

// HTTPClient talks to the task API over HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

// NewHTTPClient returns a client for the API rooted at baseURL. A zero
// timeout leaves requests bounded only by their context.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

func taskPath(id string, rest ...string) string {
	p := pathTasks + "/" + url.PathEscape(id)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, pathLogin, false, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Signup(ctx context.Context, reg models.Registration) error {
	return c.doJSON(ctx, http.MethodPost, pathSignup, false, reg, nil)
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.doJSON(ctx, http.MethodGet, pathMe, true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateMe(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	body, contentType, err := encodeProfile(update)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}

	var out models.User
	if err := c.do(ctx, http.MethodPut, pathMe, true, body, contentType, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListTasks(ctx context.Context) ([]models.Task, error) {
	var out []models.Task
	if err := c.doJSON(ctx, http.MethodGet, pathTasks, true, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Task{}
	}
	return out, nil
}

func (c *HTTPClient) CreateTask(ctx context.Context, draft models.TaskDraft) error {
	return c.doJSON(ctx, http.MethodPost, pathTasks, true, draft, nil)
}

func (c *HTTPClient) UpdateTask(ctx context.Context, id string, edit models.TaskEdit) error {
	return c.doJSON(ctx, http.MethodPut, taskPath(id), true, edit, nil)
}

func (c *HTTPClient) ChangeStatus(ctx context.Context, id string, status models.TaskStatus) error {
	return c.doJSON(ctx, http.MethodPatch, taskPath(id, "status"), true, models.StatusChange{Status: status}, nil)
}

func (c *HTTPClient) DeleteTask(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, taskPath(id), true, nil, nil)
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, auth bool, in, out any) error {
	if in == nil {
		return c.do(ctx, method, path, auth, nil, "", out)
	}

	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s %s request: %w", method, path, err)
	}
	return c.do(ctx, method, path, auth, bytes.NewReader(b), contentTypeJSON, out)
}

// do performs a single request. out may be nil when the response body is
// not needed.
func (c *HTTPClient) do(ctx context.Context, method, path string, auth bool, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set("Accept", contentTypeJSON)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth && c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}

	log := c.log.With("method", method, "path", path, "request_id", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug(ctx, "request failed", logging.Err(err))
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request done", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s response: %v", ErrUnavailable, method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(b) == 0 {
		return apiErr
	}

	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(b, &payload) == nil {
		apiErr.Message = payload.Message
	}
	return apiErr
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeProfile builds the multipart form for a profile update. The avatar
// part is present only when a file was staged.
func encodeProfile(update models.ProfileUpdate) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("name", update.Name); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("email", update.Email); err != nil {
		return nil, "", err
	}

	if a := update.Avatar; a != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="avatar"; filename="%s"`, quoteEscaper.Replace(a.FileName)))
		ct := a.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(a.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
