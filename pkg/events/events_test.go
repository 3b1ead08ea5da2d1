package events_test

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/dotty/pkg/events"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := events.NewLogObserver(zerolog.New(&buf))

	obs.Observe(events.Event{
		Kind:    events.KindPartiallyApplied,
		Level:   zerolog.ErrorLevel,
		Message: "moved into store but link creation failed",
		Path:    "/home/u/.vimrc",
		Target:  "/home/u/.dotty/.vimrc",
		Err:     stderrors.New("permission denied"),
	})

	out := buf.String()
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, `"event":"partially_applied"`)
	assert.Contains(t, out, `"path":"/home/u/.vimrc"`)
	assert.Contains(t, out, `"target":"/home/u/.dotty/.vimrc"`)
	assert.Contains(t, out, "permission denied")
}

func TestRecorder(t *testing.T) {
	rec := &events.Recorder{}
	rec.Observe(events.Event{Kind: events.KindMoved})
	rec.Observe(events.Event{Kind: events.KindLinked})

	assert.Equal(t, []events.Kind{events.KindMoved, events.KindLinked}, rec.Kinds())
	assert.True(t, rec.Has(events.KindLinked))
	assert.False(t, rec.Has(events.KindDisplaced))
}

func TestFanoutAndOrNop(t *testing.T) {
	a, b := &events.Recorder{}, &events.Recorder{}
	events.Fanout(a, nil, b).Observe(events.Event{Kind: events.KindCopied})

	assert.Len(t, a.Events(), 1)
	assert.Len(t, b.Events(), 1)

	assert.NotNil(t, events.OrNop(nil))
	assert.Same(t, a, events.OrNop(a))
}
