package kaggle

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"kagglefetch/pkg/config"
	"kagglefetch/pkg/logger"
	"kagglefetch/pkg/ratelimit"
	"kagglefetch/pkg/retry"
)

// Client talks to the Kaggle public API. All requests pass through the rate
// limiter; transient failures are retried with exponential backoff.
type Client struct {
	httpClient *http.Client
	baseURL    string
	username   string
	key        string
	userAgent  string
	pageSize   int
	limiter    ratelimit.Limiter
	retryCfg   *retry.Config
	logger     logger.Logger
}

// NewClient creates a new Kaggle API client from configuration
func NewClient(cfg *config.Config, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	baseURL := cfg.Kaggle.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	// One initial attempt plus MaxRetries retries
	retryCfg := &retry.Config{
		MaxAttempts: cfg.RateLimit.MaxRetries + 1,
		Backoff: &retry.ExponentialBackoff{
			BaseDelay:    cfg.RateLimit.RetryDelay,
			MaxDelay:     60 * time.Second,
			Multiplier:   2.0,
			JitterFactor: 0.1,
		},
		RetryIf: IsRetryable,
		Logger:  log,
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Harvest.RequestTimeout,
		},
		baseURL:   baseURL,
		username:  cfg.Kaggle.Username,
		key:       cfg.Kaggle.Key,
		userAgent: cfg.Kaggle.UserAgent,
		pageSize:  cfg.Harvest.PageSize,
		limiter:   ratelimit.NewTokenBucket(cfg.RateLimit.RequestsPerMinute, time.Minute),
		retryCfg:  retryCfg,
		logger:    log,
	}
}

// SetCredentials overrides the API credentials, e.g. with an account resolved
// from the credential manager.
func (c *Client) SetCredentials(username, key string) {
	c.username = username
	c.key = key
}

// getJSON performs a rate-limited GET with retries and decodes the JSON response
func (c *Client) getJSON(url string, target interface{}) error {
	return retry.Do(func() error {
		return c.fetchJSON(url, target)
	}, c.retryCfg)
}

// fetchJSON performs a single rate-limited GET and decodes the JSON response
func (c *Client) fetchJSON(url string, target interface{}) error {
	c.limiter.Wait()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return &Error{
			Type:    ErrorTypeUnknown,
			Message: fmt.Sprintf("failed to create request: %v", err),
			Code:    0,
		}
	}

	req.SetBasicAuth(c.username, c.key)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      req.URL.String(),
			"error":    err.Error(),
			"duration": duration,
		})
		return &Error{
			Type:    ErrorTypeNetwork,
			Message: fmt.Sprintf("network error: %v", err),
			Code:    0,
		}
	}
	defer resp.Body.Close()

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"method":   req.Method,
		"url":      req.URL.String(),
		"status":   resp.StatusCode,
		"duration": duration,
	})

	if err := c.checkResponseStatus(resp); err != nil {
		return err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{
			Type:    ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Code:    resp.StatusCode,
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}

		c.logger.ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"url":          url,
			"status":       resp.StatusCode,
			"error":        err.Error(),
			"body_preview": bodyPreview,
		})
		return &Error{
			Type:    ErrorTypeParsing,
			Message: fmt.Sprintf("failed to parse JSON: %v", err),
			Code:    resp.StatusCode,
		}
	}

	return nil
}

// checkResponseStatus maps HTTP statuses onto the error taxonomy
func (c *Client) checkResponseStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		c.logger.WarnWithFields("authentication error", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    resp.Request.URL.String(),
		})
		return &Error{
			Type:    ErrorTypeAuth,
			Message: "authentication required",
			Code:    resp.StatusCode,
		}
	case http.StatusForbidden:
		return &Error{
			Type:    ErrorTypeForbidden,
			Message: "access forbidden",
			Code:    resp.StatusCode,
		}
	case http.StatusNotFound:
		return &Error{
			Type:    ErrorTypeNotFound,
			Message: "resource not found",
			Code:    resp.StatusCode,
		}
	case http.StatusTooManyRequests:
		c.logger.WarnWithFields("rate limit exceeded", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    resp.Request.URL.String(),
		})
		return &Error{
			Type:    ErrorTypeRateLimit,
			Message: "rate limit exceeded",
			Code:    resp.StatusCode,
		}
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		c.logger.ErrorWithFields("server error", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    resp.Request.URL.String(),
		})
		return &Error{
			Type:    ErrorTypeServerError,
			Message: "server error",
			Code:    resp.StatusCode,
		}
	default:
		if resp.StatusCode >= 400 {
			return &Error{
				Type:    ErrorTypeUnknown,
				Message: fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
				Code:    resp.StatusCode,
			}
		}
		return nil
	}
}

// FetchCompetitionRefs fetches the refs of all listed competitions, walking
// the paginated listing until an empty page comes back.
func (c *Client) FetchCompetitionRefs() ([]string, error) {
	var refs []string

	for page := 1; ; page++ {
		url := CompetitionsListURL(c.baseURL, page)

		var competitions []Competition
		if err := c.getJSON(url, &competitions); err != nil {
			return nil, err
		}

		if len(competitions) == 0 {
			break
		}

		for _, competition := range competitions {
			refs = append(refs, SanitizeRef(competition.Ref))
		}

		c.logger.DebugWithFields("fetched competitions page", map[string]interface{}{
			"page":  page,
			"count": len(competitions),
			"total": len(refs),
		})
	}

	return refs, nil
}

// FetchKernelRefs fetches the refs of all kernels submitted to a competition
func (c *Client) FetchKernelRefs(competitionRef string) ([]string, error) {
	var refs []string

	for page := 1; ; page++ {
		url := KernelsListURL(c.baseURL, competitionRef, page, c.pageSize)

		var kernels []Kernel
		if err := c.getJSON(url, &kernels); err != nil {
			return nil, err
		}

		if len(kernels) == 0 {
			break
		}

		for _, kernel := range kernels {
			refs = append(refs, SanitizeRef(kernel.Ref))
		}
	}

	c.logger.DebugWithFields("fetched kernel listing", map[string]interface{}{
		"competition": competitionRef,
		"count":       len(refs),
	})

	return refs, nil
}

// FetchNotebook pulls one kernel's metadata record and source blob
func (c *Client) FetchNotebook(kernelRef string) (*PullResponse, error) {
	url, err := KernelPullURL(c.baseURL, kernelRef)
	if err != nil {
		return nil, &Error{
			Type:    ErrorTypeUnknown,
			Message: err.Error(),
			Code:    0,
		}
	}

	var response PullResponse
	if err := c.getJSON(url, &response); err != nil {
		return nil, err
	}

	return &response, nil
}
