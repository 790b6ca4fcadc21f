package model

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Queue errors
var (
	ErrInvalidURL   = errors.New("not a valid HTTP or HTTPS URL")
	ErrDuplicateURL = errors.New("URL already in queue")
	ErrEmptyURL     = errors.New("empty URL")
)

// QueueItem is a URL waiting to be converted, with its latest known state
type QueueItem struct {
	ID         string     `json:"id"`
	URL        string     `json:"url"`
	Status     TaskStatus `json:"status"`
	OutputPath string     `json:"output_path,omitempty"`
	Error      string     `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Queue is the ordered, de-duplicated list of URLs collected before a run.
// It is safe for concurrent use.
type Queue struct {
	mu    sync.RWMutex
	items []*QueueItem
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{items: make([]*QueueItem, 0)}
}

// ValidateURL checks that raw is an absolute http(s) URL with a host
func ValidateURL(raw string) error {
	if raw == "" {
		return ErrEmptyURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}

// Add validates and appends a URL. Duplicates are rejected.
func (q *Queue) Add(raw string) (*QueueItem, error) {
	raw = strings.TrimSpace(raw)
	if err := ValidateURL(raw); err != nil {
		return nil, err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	for _, item := range q.items {
		if item.URL == raw {
			return nil, ErrDuplicateURL
		}
	}

	now := time.Now()
	item := &QueueItem{
		ID:        uuid.NewString(),
		URL:       raw,
		Status:    TaskStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	q.items = append(q.items, item)
	return item, nil
}

// Remove removes an item by ID
func (q *Queue) Remove(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, item := range q.items {
		if item.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

// Clear removes every item
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = q.items[:0]
}

// Len returns the number of queued items
func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.items)
}

// URLs returns a copy of the queued URLs in insertion order
func (q *Queue) URLs() []string {
	q.mu.RLock()
	defer q.mu.RUnlock()

	urls := make([]string, len(q.items))
	for i, item := range q.items {
		urls[i] = item.URL
	}
	return urls
}

// Items returns copies of the queued items in insertion order
func (q *Queue) Items() []QueueItem {
	q.mu.RLock()
	defer q.mu.RUnlock()

	items := make([]QueueItem, len(q.items))
	for i, item := range q.items {
		items[i] = *item
	}
	return items
}

// SetStatus updates the status of the item at index
func (q *Queue) SetStatus(index int, status TaskStatus) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if index < 0 || index >= len(q.items) {
		return
	}
	q.items[index].Status = status
	q.items[index].UpdatedAt = time.Now()
}

// ApplyOutcome stores the terminal state of the item the outcome refers to
func (q *Queue) ApplyOutcome(o ItemOutcome) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if o.Index < 0 || o.Index >= len(q.items) || q.items[o.Index].URL != o.URL {
		return
	}
	item := q.items[o.Index]
	item.Status = o.Status()
	item.OutputPath = o.OutputPath
	item.Error = ""
	if o.Err != nil {
		item.Error = o.Err.Error()
	}
	item.UpdatedAt = time.Now()
}

// ParseURLList splits pasted or file text into trimmed, non-empty lines.
// Lines starting with '#' are comments.
func ParseURLList(text string) []string {
	var urls []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls
}
