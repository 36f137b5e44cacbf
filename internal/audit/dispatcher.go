package audit

import "go.uber.org/zap"

type Event struct {
	UserEmail string
	Action    string
	Entity    string
	EntityID  string
	Metadata  any
}

// Sink recebe eventos de auditoria; o Logger gorm é a implementação
// de produção. A interface existe para o façade ser testável sem
// banco relacional.
type Sink interface {
	Dispatch(ev Event)
}

type Dispatcher struct {
	logger *Logger
	log    *zap.Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100), // buffer seguro
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.UserEmail,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.log.Warn("audit write failed", zap.Error(err))
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar a API)
		d.log.Warn("audit queue full, dropping event",
			zap.String("action", ev.Action))
	}
}
