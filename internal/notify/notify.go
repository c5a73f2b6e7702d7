// Package notify fans convergence events out to execution infrastructure.
// Delivery is fire-and-forget: subscriber errors are logged and never affect
// the committed mutation that produced the event.
package notify

import (
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/halyard-cloud/halyard/core/state/app"
	"github.com/halyard-cloud/halyard/internal/metrics"
)

type Kind string

const (
	KindUpdated       Kind = "updated"
	KindDeleted       Kind = "deleted"
	KindRoutesChanged Kind = "routes_changed"
)

// ConvergenceEvent tells downstream infrastructure that a process's desired
// state changed in a way worth reconverging on. Process is a snapshot taken
// after commit; subscribers must not mutate it.
type ConvergenceEvent struct {
	Kind    Kind
	Process *app.Process
}

type Subscriber interface {
	Name() string
	ConsumeEvent(*ConvergenceEvent) error
}

// Publisher delivers each event to every subscriber concurrently.
type Publisher struct {
	subscribers []Subscriber
	log         zerolog.Logger
}

func NewPublisher(log zerolog.Logger, subscribers ...Subscriber) *Publisher {
	return &Publisher{
		subscribers: subscribers,
		log:         log,
	}
}

func (p *Publisher) AddSubscriber(s Subscriber) {
	p.subscribers = append(p.subscribers, s)
}

func (p *Publisher) Updated(proc *app.Process) {
	p.publish(&ConvergenceEvent{Kind: KindUpdated, Process: proc})
}

func (p *Publisher) Deleted(proc *app.Process) {
	p.publish(&ConvergenceEvent{Kind: KindDeleted, Process: proc})
}

func (p *Publisher) RoutesChanged(proc *app.Process) {
	p.publish(&ConvergenceEvent{Kind: KindRoutesChanged, Process: proc})
}

func (p *Publisher) publish(e *ConvergenceEvent) {
	metrics.CountNotification(string(e.Kind))
	var eg errgroup.Group
	for _, s := range p.subscribers {
		s := s
		eg.Go(func() error {
			if err := s.ConsumeEvent(e); err != nil {
				p.log.Warn().
					Err(err).
					Str("subscriber", s.Name()).
					Str("kind", string(e.Kind)).
					Str("process", e.Process.GUID).
					Msg("convergence notification failed")
			}
			// Failures never propagate; the state change is already durable.
			return nil
		})
	}
	_ = eg.Wait()
}
