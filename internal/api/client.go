// Package api is the HTTP client for the review backend. Every call carries
// the session cookie from the client's jar; no credential is ever placed in
// a header or body.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"

	"github.com/jonathan/resume-review-dashboard/internal/schemas"
	"github.com/jonathan/resume-review-dashboard/internal/types"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "ReviewDashboard/1.0"

// Backend routes.
const (
	PathMe          = "/api/oauth/me"
	PathAuthorize   = "/api/oauth/authorize"
	PathLogout      = "/api/oauth/logout"
	PathDriveFiles  = "/api/oauth/drive-files"
	PathJobs        = "/api/query/get-jobs"
	PathJobResumes  = "/api/query/get-resumes"
	PathResume      = "/api/query/get-resume"
	PathStartJob    = "/api/job/start-job"
	RequestIDHeader = "X-Request-ID"
)

// folderMimeType marks drive entries that are folders.
const folderMimeType = "application/vnd.google-apps.folder"

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 4 << 10

// Options configures the client.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	Logger     *log.Logger
	Verbose    bool
	Transport  http.RoundTripper
	CookieName string
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() *Options {
	return &Options{
		Timeout:    DefaultTimeout,
		UserAgent:  DefaultUserAgent,
		CookieName: "access_token",
	}
}

// Client talks to the review backend.
type Client struct {
	base       *url.URL
	http       *http.Client
	userAgent  string
	cookieName string
	logger     *log.Logger
	verbose    bool
}

// New creates a client for the backend at baseURL with its own cookie jar.
func New(baseURL string, opts *Options) (*Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, &Error{Method: "-", Path: baseURL, Message: "invalid base URL", Cause: err}
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	cookieName := opts.CookieName
	if cookieName == "" {
		cookieName = "access_token"
	}

	return &Client{
		base: base,
		http: &http.Client{
			Timeout:   opts.Timeout,
			Jar:       jar,
			Transport: opts.Transport,
		},
		userAgent:  userAgent,
		cookieName: cookieName,
		logger:     logger,
		verbose:    opts.Verbose,
	}, nil
}

// BaseURL returns the backend origin.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// AuthorizeURL is where a browser must be sent to log in.
func (c *Client) AuthorizeURL() string {
	return c.endpoint(PathAuthorize, nil).String()
}

// SetSessionToken stores the session cookie in the jar, as the OAuth
// callback would have done in a browser. An empty token clears it.
func (c *Client) SetSessionToken(token string) {
	cookie := &http.Cookie{Name: c.cookieName, Value: token, Path: "/"}
	if token == "" {
		cookie.MaxAge = -1
	}
	c.http.Jar.SetCookies(c.base, []*http.Cookie{cookie})
}

// SessionToken returns the session cookie currently held in the jar.
func (c *Client) SessionToken() string {
	for _, cookie := range c.http.Jar.Cookies(c.base) {
		if cookie.Name == c.cookieName {
			return cookie.Value
		}
	}
	return ""
}

// Me probes the current session.
func (c *Client) Me(ctx context.Context) (*types.User, error) {
	var user types.User
	if err := c.do(ctx, http.MethodGet, PathMe, nil, nil, schemas.User, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout asks the backend to clear the session cookie.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, PathLogout, nil, nil, "", nil)
}

// Jobs lists the review jobs of the logged-in account.
func (c *Client) Jobs(ctx context.Context) ([]types.Job, error) {
	var jobs []types.Job
	if err := c.do(ctx, http.MethodGet, PathJobs, nil, nil, schemas.Jobs, &jobs); err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []types.Job{}
	}
	return jobs, nil
}

// JobResumes loads a job's resumes and score statistics.
func (c *Client) JobResumes(ctx context.Context, jobID types.ID) (*types.JobResumes, error) {
	q := url.Values{"job_id": {jobID.String()}}
	var out types.JobResumes
	if err := c.do(ctx, http.MethodGet, PathJobResumes, q, nil, schemas.JobResumes, &out); err != nil {
		return nil, err
	}
	for i := range out.Resumes {
		out.Resumes[i].Normalize()
	}
	if out.Resumes == nil {
		out.Resumes = []types.Resume{}
	}
	return &out, nil
}

// Resume loads one resume.
func (c *Client) Resume(ctx context.Context, resumeID types.ID) (*types.Resume, error) {
	q := url.Values{"resume_id": {resumeID.String()}}
	var r types.Resume
	if err := c.do(ctx, http.MethodGet, PathResume, q, nil, schemas.Resume, &r); err != nil {
		return nil, err
	}
	r.Normalize()
	return &r, nil
}

// driveEntry is one item of the drive listing, which may be a bare folder
// record or a raw drive file resource.
type driveEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FileCount *int   `json:"file_count"`
	MimeType  string `json:"mimeType"`
}

// DriveFolders lists the folders offered for a new job. The backend answers
// either with an array or with a drive file list object; non-folder drive
// entries are dropped.
func (c *Client) DriveFolders(ctx context.Context) ([]types.DriveFolder, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, PathDriveFiles, nil, nil, schemas.DriveFolders, &raw); err != nil {
		return nil, err
	}

	var entries []driveEntry
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, &Error{Method: http.MethodGet, Path: PathDriveFiles, StatusCode: http.StatusOK, Message: "failed to decode folders", Cause: err}
		}
	} else {
		var list struct {
			Files []driveEntry `json:"files"`
		}
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, &Error{Method: http.MethodGet, Path: PathDriveFiles, StatusCode: http.StatusOK, Message: "failed to decode folders", Cause: err}
		}
		entries = list.Files
	}

	folders := make([]types.DriveFolder, 0, len(entries))
	for _, e := range entries {
		if e.MimeType != "" && e.MimeType != folderMimeType {
			continue
		}
		folders = append(folders, types.DriveFolder{ID: e.ID, Name: e.Name, FileCount: e.FileCount})
	}
	return folders, nil
}

// StartJob asks the backend to create a review job over a folder.
func (c *Client) StartJob(ctx context.Context, req types.CreateJobRequest) error {
	return c.do(ctx, http.MethodPost, PathStartJob, nil, req, "", nil)
}

func (c *Client) endpoint(path string, query url.Values) *url.URL {
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	} else {
		u.RawQuery = ""
	}
	return &u
}

// do performs one request. A non-2xx status, a transport failure, a schema
// violation or a decode failure all come back as *Error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, entity schemas.Entity, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Method: method, Path: path, Message: "failed to encode request", Cause: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query).String(), reader)
	if err != nil {
		return &Error{Method: method, Path: path, Message: "failed to create request", Cause: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if c.verbose {
			c.logger.Printf("[api] %s %s failed after %v (req=%s): %v", method, path, time.Since(start), requestID, err)
		}
		return &Error{Method: method, Path: path, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if c.verbose {
		c.logger.Printf("[api] %s %s %d in %v (req=%s)", method, path, resp.StatusCode, time.Since(start), requestID)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &Error{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, data),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Method: method, Path: path, StatusCode: resp.StatusCode, Message: "failed to read response body", Cause: err}
	}

	if entity != "" {
		if err := schemas.Validate(entity, data); err != nil {
			return &Error{Method: method, Path: path, StatusCode: resp.StatusCode, Message: "response does not match schema", Cause: err}
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Method: method, Path: path, StatusCode: resp.StatusCode, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// errorMessage extracts the backend's "detail" or "error" field, falling
// back to the bare status.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Detail any    `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if s, ok := payload.Detail.(string); ok && s != "" {
			return fmt.Sprintf("HTTP status %d: %s", status, s)
		}
		if payload.Error != "" {
			return fmt.Sprintf("HTTP status %d: %s", status, payload.Error)
		}
	}
	return fmt.Sprintf("HTTP status %d", status)
}
