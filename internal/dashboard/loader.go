package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/chybatronik/goMetricsDashboard/pkg/metricsapi"
)

// ErrSuperseded is returned to a load that was cancelled because a newer
// load for the same session and section started.
var ErrSuperseded = errors.New("dashboard: load superseded by a newer request")

type loadKey struct {
	session string
	section Section
}

type inflight struct {
	id     uint64
	cancel context.CancelCauseFunc
}

// Loader serializes section loads per session: a new load for the same
// (session, section) cancels the one in flight, so the last request issued
// wins. Loads without a session are independent.
type Loader struct {
	sections SectionLoader

	mu       sync.Mutex
	seq      uint64
	inflight map[loadKey]inflight
}

// NewLoader wraps sections with per-session supersession
func NewLoader(sections SectionLoader) *Loader {
	return &Loader{
		sections: sections,
		inflight: make(map[loadKey]inflight),
	}
}

// Load loads section for r on behalf of session
func (l *Loader) Load(ctx context.Context, session string, section Section, r metricsapi.DateRange) (any, error) {
	if session == "" {
		return l.sections.Load(ctx, section, r)
	}

	key := loadKey{session: session, section: section}
	ctx, cancel := context.WithCancelCause(ctx)
	id := l.register(key, cancel)
	defer l.release(key, id, cancel)

	data, err := l.sections.Load(ctx, section, r)
	if errors.Is(context.Cause(ctx), ErrSuperseded) {
		return nil, ErrSuperseded
	}
	return data, err
}

func (l *Loader) register(key loadKey, cancel context.CancelCauseFunc) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	if prev, ok := l.inflight[key]; ok {
		prev.cancel(ErrSuperseded)
	}
	l.seq++
	l.inflight[key] = inflight{id: l.seq, cancel: cancel}
	return l.seq
}

func (l *Loader) release(key loadKey, id uint64, cancel context.CancelCauseFunc) {
	l.mu.Lock()
	if cur, ok := l.inflight[key]; ok && cur.id == id {
		delete(l.inflight, key)
	}
	l.mu.Unlock()
	cancel(nil)
}

// InFlight returns the number of session-bound loads currently running
func (l *Loader) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.inflight)
}
