package curseforge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/packwiz/serverpack/core"
	"golang.org/x/net/http/httpproxy"
)

// Option configures a Client
type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithBaseURL overrides the API endpoint, e.g. to point at a mirror
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

func WithGameID(id int) Option {
	return func(c *Client) {
		c.gameID = id
	}
}

func WithSectionID(id int) Option {
	return func(c *Client) {
		c.sectionID = id
	}
}

// WithHTTPClient makes the Client use hc as-is; the timeout and proxy settings are not applied to it
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithConfig applies the endpoint, ids and timeout from cfg
func WithConfig(cfg core.Config) Option {
	return func(c *Client) {
		c.baseURL = cfg.APIURL
		c.gameID = cfg.GameID
		c.sectionID = cfg.SectionID
		c.timeout = cfg.Timeout
	}
}

// Client talks to the legacy CurseForge addon API
type Client struct {
	httpClient *http.Client
	baseURL    string
	gameID     int
	sectionID  int
	timeout    time.Duration
	logger     *slog.Logger
}

// NewClient builds a Client. The transport is set up once here and reused for every request.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:   core.DefaultAPIURL,
		gameID:    core.DefaultGameID,
		sectionID: core.DefaultSectionID,
		timeout:   core.DefaultTimeout,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.timeout < 0 {
		return nil, fmt.Errorf("failed to initialise http client: %w: negative timeout %v", core.ErrTransportInit, c.timeout)
	}
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise http client: %w: %w", core.ErrTransportInit, err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("failed to initialise http client: %w: invalid api url `%s`", core.ErrTransportInit, c.baseURL)
	}
	c.baseURL = strings.TrimSuffix(c.baseURL, "/")

	if c.httpClient == nil {
		proxyFunc := httpproxy.FromEnvironment().ProxyFunc()
		proxy, err := proxyFunc(base)
		if err != nil {
			return nil, fmt.Errorf("failed to initialise http client: %w: invalid proxy configuration: %w", core.ErrTransportInit, err)
		}
		if proxy != nil && proxy.Scheme != "http" && proxy.Scheme != "https" && proxy.Scheme != "socks5" {
			return nil, fmt.Errorf("failed to initialise http client: %w: unsupported proxy scheme in `%s`", core.ErrTransportInit, proxy.Redacted())
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.Proxy = func(req *http.Request) (*url.URL, error) {
			return proxyFunc(req.URL)
		}
		c.httpClient = &http.Client{Transport: transport, Timeout: c.timeout}
	}
	return c, nil
}

// HTTPClient returns the underlying client, so downloads share its transport and timeout
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

func (c *Client) makeGet(ctx context.Context, endpoint string, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", core.UserAgent)
	req.Header.Set("Accept", accept)

	c.logger.Debug("api request", slog.String("url", req.URL.String()))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != 200 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("invalid response status: %v", resp.Status)
	}
	return resp, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	resp, err := c.makeGet(ctx, endpoint, "application/json")
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", core.ErrDecodeFailed, err)
	}
	return nil
}

// Search returns at most pageSize modpacks matching term, in the order the API ranks them.
// No matches is an empty slice, not an error.
func (c *Client) Search(ctx context.Context, term string, pageSize int) ([]Project, error) {
	if pageSize < 1 {
		pageSize = 1
	}

	q := url.Values{}
	q.Set("gameId", strconv.Itoa(c.gameID))
	q.Set("sectionId", strconv.Itoa(c.sectionID))
	q.Set("pageSize", strconv.Itoa(pageSize))
	q.Set("searchFilter", term)

	var results []Project
	if err := c.getJSON(ctx, "/addon/search?"+q.Encode(), &results); err != nil {
		return nil, fmt.Errorf("failed to retrieve search results: %w", err)
	}
	if results == nil {
		results = []Project{}
	}
	if len(results) > pageSize {
		results = results[:pageSize]
	}
	return results, nil
}

func (c *Client) GetProject(ctx context.Context, projectID int64) (Project, error) {
	var project Project
	if err := c.getJSON(ctx, "/addon/"+strconv.FormatInt(projectID, 10), &project); err != nil {
		return Project{}, fmt.Errorf("failed to request project data for ID %d: %w", projectID, err)
	}
	return project, nil
}

func (c *Client) GetFileDetail(ctx context.Context, projectID int64, fileID int64) (FileDetail, error) {
	var file FileDetail
	endpoint := "/addon/" + strconv.FormatInt(projectID, 10) + "/file/" + strconv.FormatInt(fileID, 10)
	if err := c.getJSON(ctx, endpoint, &file); err != nil {
		return FileDetail{}, fmt.Errorf("failed to request file data for project ID %d, file ID %d: %w", projectID, fileID, err)
	}
	return file, nil
}

// ResolveDownloadURL asks the API where a file can be downloaded from. The URL is returned as sent, only trimmed.
func (c *Client) ResolveDownloadURL(ctx context.Context, projectID int64, fileID int64) (string, error) {
	endpoint := "/addon/" + strconv.FormatInt(projectID, 10) + "/file/" + strconv.FormatInt(fileID, 10) + "/download-url"
	resp, err := c.makeGet(ctx, endpoint, "text/plain")
	if err != nil {
		return "", fmt.Errorf("failed to get download url for project ID %d, file ID %d: %w: %w", projectID, fileID, core.ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to get download url for project ID %d, file ID %d: %w: %w", projectID, fileID, core.ErrRequestFailed, err)
	}
	return strings.TrimSpace(string(body)), nil
}
