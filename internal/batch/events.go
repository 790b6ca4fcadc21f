package batch

import (
	"github.com/sirupsen/logrus"

	"github.com/ytget/img2png/internal/model"
)

// DefaultEventBuffer is the capacity of the event channel
const DefaultEventBuffer = 64

type eventKind int

const (
	eventStatus eventKind = iota
	eventProgress
	eventItemStatus
	eventItemDone
	eventCompletion
)

type event struct {
	kind eventKind

	text     string
	current  int
	total    int
	url      string
	index    int
	status   model.TaskStatus
	outcome  model.ItemOutcome
	success  bool
	failures []string
}

// dispatcher serializes events onto a single delivery goroutine.
type dispatcher struct {
	ch       chan event
	done     chan struct{}
	reporter Reporter
	items    ItemReporter
	log      *logrus.Entry
}

func newDispatcher(r Reporter, buffer int, log *logrus.Entry) *dispatcher {
	if r == nil {
		r = Callbacks{}
	}
	if buffer <= 0 {
		buffer = DefaultEventBuffer
	}
	d := &dispatcher{
		ch:       make(chan event, buffer),
		done:     make(chan struct{}),
		reporter: r,
		log:      log,
	}
	d.items, _ = r.(ItemReporter)

	go d.loop()
	return d
}

func (d *dispatcher) loop() {
	defer close(d.done)
	for ev := range d.ch {
		d.deliver(ev)
	}
}

func (d *dispatcher) deliver(ev event) {
	defer func() {
		if r := recover(); r != nil {
			d.log.WithField("panic_info", r).Error("Reporter panicked, event dropped")
		}
	}()

	switch ev.kind {
	case eventStatus:
		d.reporter.OnStatus(ev.text)
	case eventProgress:
		d.reporter.OnProgress(ev.current, ev.total, ev.url)
	case eventItemStatus:
		if d.items != nil {
			d.items.OnItemStatus(ev.index, ev.status)
		}
	case eventItemDone:
		if d.items != nil {
			d.items.OnItemDone(ev.outcome)
		}
	case eventCompletion:
		d.reporter.OnCompletion(ev.success, ev.text, ev.failures)
	}
}

func (d *dispatcher) status(text string) {
	d.ch <- event{kind: eventStatus, text: text}
}

func (d *dispatcher) progress(current, total int, url string) {
	d.ch <- event{kind: eventProgress, current: current, total: total, url: url}
}

func (d *dispatcher) itemStatus(index int, status model.TaskStatus) {
	d.ch <- event{kind: eventItemStatus, index: index, status: status}
}

func (d *dispatcher) itemDone(outcome model.ItemOutcome) {
	d.ch <- event{kind: eventItemDone, outcome: outcome}
}

// complete queues the completion event and waits until everything queued
// so far has been delivered. The dispatcher must not be used afterwards.
func (d *dispatcher) complete(success bool, message string, failures []string) {
	d.ch <- event{kind: eventCompletion, success: success, text: message, failures: failures}
	close(d.ch)
	<-d.done
}
