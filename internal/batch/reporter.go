package batch

import (
	"github.com/ytget/img2png/internal/model"
)

// Reporter receives the events of a run. Calls are made from one goroutine,
// in order; OnCompletion is the last call of every run.
type Reporter interface {
	OnStatus(text string)
	OnProgress(current, total int, url string)
	OnCompletion(success bool, message string, failures []string)
}

// ItemReporter is optionally implemented by a Reporter that tracks per-item state.
type ItemReporter interface {
	OnItemStatus(index int, status model.TaskStatus)
	OnItemDone(outcome model.ItemOutcome)
}

// Callbacks adapts plain functions to Reporter and ItemReporter. Nil fields are skipped.
type Callbacks struct {
	Status     func(text string)
	Progress   func(current, total int, url string)
	Completion func(success bool, message string, failures []string)
	ItemStatus func(index int, status model.TaskStatus)
	ItemDone   func(outcome model.ItemOutcome)
}

func (c Callbacks) OnStatus(text string) {
	if c.Status != nil {
		c.Status(text)
	}
}

func (c Callbacks) OnProgress(current, total int, url string) {
	if c.Progress != nil {
		c.Progress(current, total, url)
	}
}

func (c Callbacks) OnCompletion(success bool, message string, failures []string) {
	if c.Completion != nil {
		c.Completion(success, message, failures)
	}
}

func (c Callbacks) OnItemStatus(index int, status model.TaskStatus) {
	if c.ItemStatus != nil {
		c.ItemStatus(index, status)
	}
}

func (c Callbacks) OnItemDone(outcome model.ItemOutcome) {
	if c.ItemDone != nil {
		c.ItemDone(outcome)
	}
}
