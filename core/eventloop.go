package orchestration

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vnrtumu/VenkyAI/core/events"
)

const eventQueueCapacity = 64

type eventQueueItem struct {
	event    events.Event
	queuedAt time.Time
}

// eventLoop is the single ingress for asynchronous signals. One
// goroutine drains the queue and delivers each event to its handler,
// so handlers never interleave and the components they mutate need no
// cross-handler coordination.
type eventLoop struct {
	queue   chan eventQueueItem
	closeCh chan struct{}
	done    chan struct{}

	startOnce sync.Once
	endOnce   sync.Once

	started atomic.Bool
}

func newEventLoop() *eventLoop {
	return &eventLoop{
		queue:   make(chan eventQueueItem, eventQueueCapacity),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (loop *eventLoop) CanIngest() bool {
	if loop == nil {
		return false
	}

	select {
	case <-loop.closeCh:
		return false
	default:
		return true
	}
}

// Start spins up the delivery goroutine. It runs at most once per loop
// instance; later calls are no-ops.
func (loop *eventLoop) Start(baseCtx context.Context, handle func(context.Context, events.Event)) (started bool) {
	if loop == nil || handle == nil || !loop.CanIngest() {
		return false
	}

	loop.startOnce.Do(func() {
		if !loop.CanIngest() {
			return
		}

		started = true
		loop.started.Store(true)
		go func() {
			defer close(loop.done)

			for {
				select {
				case <-loop.closeCh:
					return
				case queuedEvent := <-loop.queue:
					if !loop.CanIngest() {
						return
					}
					loop.deliver(baseCtx, queuedEvent, handle)
				}
			}
		}()
	})

	return started
}

func (loop *eventLoop) deliver(baseCtx context.Context, queuedEvent eventQueueItem, handle func(context.Context, events.Event)) {
	ctx, span := tracer.Start(baseCtx, "deliver event")
	defer span.End()

	queuedTime := time.Since(queuedEvent.queuedAt).Seconds()
	span.SetAttributes(
		attribute.String("event.kind", string(queuedEvent.event.Kind())),
		attribute.Float64("event.queued_time", queuedTime),
	)
	span.AddEvent("taken out of queue", trace.WithAttributes(attribute.Float64("event.queued_time", queuedTime)))

	handle(ctx, queuedEvent.event)
}

// Stop closes the ingress. No handler fires after Stop begins, beyond
// the one already in flight.
func (loop *eventLoop) Stop() {
	if loop == nil {
		return
	}

	loop.endOnce.Do(func() { close(loop.closeCh) })
}

func (loop *eventLoop) AwaitDone() {
	if loop == nil {
		return
	}

	if loop.started.Load() {
		<-loop.done
	}
}

// Ingest enqueues an event for delivery, reporting whether it was
// accepted. Events offered after Stop are dropped.
func (loop *eventLoop) Ingest(event events.Event) bool {
	if loop == nil || !loop.CanIngest() {
		return false
	}

	queueItem := eventQueueItem{event: event, queuedAt: time.Now()}
	select {
	case <-loop.closeCh:
		return false
	case loop.queue <- queueItem:
		return true
	}
}

func (loop *eventLoop) queuedEventCount() int {
	if loop == nil {
		return 0
	}

	return len(loop.queue)
}
