package audit

import (
	"sync"

	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
)

const queueSize = 100

type Event struct {
	BarbershopID string
	UserID       *string
	Action       string
	Entity       string
	EntityID     *string
	Metadata     any
}

// Dispatcher writes audit events from a single background worker. Dispatch
// never blocks: when the queue is full the event is dropped.
type Dispatcher struct {
	store  *Logger
	log    *logger.Logger
	queue  chan Event
	done   chan struct{}
	closed bool
	mu     sync.RWMutex
}

func NewDispatcher(store *Logger, log *logger.Logger) *Dispatcher {
	d := &Dispatcher{
		store: store,
		log:   log,
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.store.Log(ev); err != nil {
			d.log.Error().
				Err(err).
				Str("action", ev.Action).
				Str("barbershop_id", ev.BarbershopID).
				Msg("audit write failed")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits until the queued ones are written.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}
