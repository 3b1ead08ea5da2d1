// Package events carries structured records of what the link engine did.
//
// The engine never writes to a process-wide logger. Every operation emits
// Event values to an Observer that the caller injects, so the command layer
// decides where records go (zerolog, a test recorder, or nowhere).
package events

import (
	"sync"

	"github.com/rs/zerolog"
)

// Kind identifies what happened
type Kind string

const (
	KindCanonicalized    Kind = "canonicalized"
	KindLeaf             Kind = "leaf"
	KindRepoUnit         Kind = "repo_unit"
	KindIgnored          Kind = "ignored"
	KindMoved            Kind = "moved"
	KindAlreadyLinked    Kind = "already_linked"
	KindLinked           Kind = "linked"
	KindCopied           Kind = "copied"
	KindRemovedLink      Kind = "removed_link"
	KindDisplaced        Kind = "displaced"
	KindPartiallyApplied Kind = "partially_applied"
	KindScratchCreated   Kind = "scratch_created"
	KindScratchRemoved   Kind = "scratch_removed"
	KindScratchKept      Kind = "scratch_kept"
	KindSkipped          Kind = "skipped"
)

// Event is one record emitted by an engine operation
type Event struct {
	Kind    Kind
	Level   zerolog.Level
	Message string
	// Path is the primary path involved (usually the original location)
	Path string
	// Target is the other side, such as the store path or link target
	Target string
	Err    error
}

// Observer receives events
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(Event)

// Observe calls f(e)
func (f ObserverFunc) Observe(e Event) { f(e) }

// Nop discards every event
var Nop Observer = ObserverFunc(func(Event) {})

// OrNop returns o, or Nop when o is nil
func OrNop(o Observer) Observer {
	if o == nil {
		return Nop
	}
	return o
}

// LogObserver forwards events to a zerolog logger
type LogObserver struct {
	logger zerolog.Logger
}

// NewLogObserver creates an observer that logs each event at its level
func NewLogObserver(logger zerolog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

// Observe implements Observer
func (l *LogObserver) Observe(e Event) {
	ev := l.logger.WithLevel(e.Level).Str("event", string(e.Kind))
	if e.Path != "" {
		ev = ev.Str("path", e.Path)
	}
	if e.Target != "" {
		ev = ev.Str("target", e.Target)
	}
	if e.Err != nil {
		ev = ev.Err(e.Err)
	}
	ev.Msg(e.Message)
}

// Recorder keeps every event it sees, in order
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Observe implements Observer
func (r *Recorder) Observe(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Kinds returns the kinds of the recorded events, in order
func (r *Recorder) Kinds() []Kind {
	evs := r.Events()
	kinds := make([]Kind, 0, len(evs))
	for _, e := range evs {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

// Has reports whether an event of the given kind was recorded
func (r *Recorder) Has(kind Kind) bool {
	for _, k := range r.Kinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// Fanout sends each event to every observer
func Fanout(observers ...Observer) Observer {
	return ObserverFunc(func(e Event) {
		for _, o := range observers {
			if o != nil {
				o.Observe(e)
			}
		}
	})
}
