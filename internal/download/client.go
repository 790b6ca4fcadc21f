package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/ytget/img2png/internal/model"
)

// Request defaults
const (
	DefaultTimeout   = 30 * time.Second
	DefaultMaxBytes  = 50 << 20
	DefaultUserAgent = "img2png/dev"
)

// ErrBodyTooLarge is returned when a response exceeds the configured size limit.
var ErrBodyTooLarge = errors.New("response body exceeds size limit")

// Response is a fully read HTTP response body
type Response struct {
	URL         string // final URL after redirects
	StatusCode  int
	ContentType string
	Body        []byte
}

// IsImage reports whether the declared content type is image/*
func (r *Response) IsImage() bool {
	return IsImageContentType(r.ContentType)
}

// Options configures a Client
type Options struct {
	Timeout   time.Duration
	MaxBytes  int64
	UserAgent string
	// HTTPClient overrides the default client; its Timeout is left untouched.
	HTTPClient *http.Client
	Logger     *logrus.Entry
}

// Client handles HTTP retrieval
type Client struct {
	http      *http.Client
	maxBytes  int64
	userAgent string
	log       *logrus.Entry
}

// NewClient creates a client with defaults applied
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Logger == nil {
		opts.Logger = logrus.NewEntry(logrus.StandardLogger())
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		http:      httpClient,
		maxBytes:  opts.MaxBytes,
		userAgent: opts.UserAgent,
		log:       opts.Logger,
	}
}

// Fetch performs a GET request and reads the whole body.
// Transport errors, timeouts and non-2xx statuses yield a NetworkError; an
// oversized body yields a ProcessingError wrapping ErrBodyTooLarge.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, model.NewItemError(model.FailureNetwork, rawURL, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, model.NewItemError(model.FailureNetwork, rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain a little so the connection can be reused
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, model.NewItemError(model.FailureNetwork, rawURL,
			fmt.Errorf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, model.NewItemError(model.FailureNetwork, rawURL, fmt.Errorf("reading body: %w", err))
	}
	if int64(len(body)) > c.maxBytes {
		return nil, model.NewItemError(model.FailureProcessing, rawURL,
			fmt.Errorf("%w (%s)", ErrBodyTooLarge, humanize.IBytes(uint64(c.maxBytes))))
	}

	c.log.WithFields(logrus.Fields{
		"url":          rawURL,
		"status":       resp.StatusCode,
		"content_type": resp.Header.Get("Content-Type"),
		"size":         humanize.Bytes(uint64(len(body))),
	}).Debug("Fetched resource")

	return &Response{
		URL:         resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// IsImageContentType reports whether a Content-Type header names an image type
func IsImageContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.HasPrefix(mediaType, "image/")
}
