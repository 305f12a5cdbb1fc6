package audit

import "github.com/sirupsen/logrus"

// Dispatcher decouples audit writes from the request path: events are queued
// and written by a single goroutine. A full queue drops the event; the API
// never fails because of auditing.
type Dispatcher struct {
	logger *Logger
	log    *logrus.Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger, log *logrus.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(ev); err != nil {
			d.log.WithError(err).WithField("action", ev.Action).Warn("audit write failed")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.WithField("action", ev.Action).Warn("audit queue full, dropping event")
	}
}
