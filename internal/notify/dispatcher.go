package notify

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/comedor/comedor/internal/domain/model"
	"github.com/comedor/comedor/internal/domain/repository"
)

const defaultQueueSize = 256

type jobKind int

const (
	jobTransition jobKind = iota
	jobAssignment
)

type job struct {
	kind         jobKind
	order        model.Order
	customerName string
}

// Dispatcher fans lifecycle events out to topic subscribers. Enqueueing never
// blocks the triggering request; a single worker drains the queue so emission
// order per topic matches transition issue order. Publish failures are logged
// and never retried.
type Dispatcher struct {
	sinks  []Publisher
	staff  repository.StaffRepository
	logger *slog.Logger

	queue  chan job
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewDispatcher constructs a dispatcher publishing to all provided sinks.
func NewDispatcher(sinks []Publisher, staff repository.StaffRepository, queueSize int, logger *slog.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Dispatcher{
		sinks:  sinks,
		staff:  staff,
		logger: logger,
		queue:  make(chan job, queueSize),
	}
}

// Start launches the background emission worker.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	d.wg.Add(1)
	go d.run(runCtx)
}

// Stop drains in-flight work and waits for the worker to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// OrderChanged announces a committed state transition (order creation
// included). The order value must be a post-commit snapshot.
func (d *Dispatcher) OrderChanged(order model.Order, customerName string) {
	d.enqueue(job{kind: jobTransition, order: order, customerName: customerName})
}

// CourierAssigned announces a manual courier (re)assignment to the customer.
func (d *Dispatcher) CourierAssigned(order model.Order, customerName string) {
	d.enqueue(job{kind: jobAssignment, order: order, customerName: customerName})
}

func (d *Dispatcher) enqueue(j job) {
	select {
	case d.queue <- j:
	default:
		d.logger.Error("notification queue full, event lost",
			slog.String("order", j.order.Code),
			slog.String("state", string(j.order.State)),
		)
	}
}

func (d *Dispatcher) run(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-d.queue:
			d.process(ctx, j)
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, j job) {
	order := j.order

	d.publish(ctx, CustomerTopic(order.CustomerID), Event{
		Type: EventOrderUpdated,
		Payload: map[string]string{
			"order_id": formatID(order.ID),
			"code":     order.Code,
			"state":    string(order.State),
		},
	})

	if j.kind == jobAssignment {
		return
	}

	d.publish(ctx, TopicKitchen, Event{
		Type: EventOrderStatusChange,
		Payload: map[string]string{
			"order_id": formatID(order.ID),
			"code":     order.Code,
			"state":    string(order.State),
			"customer": j.customerName,
		},
	})

	switch order.State {
	case model.StateReadyForPickup:
		d.publish(ctx, TopicCouriers, Event{
			Type: EventReadyForDelivery,
			Payload: map[string]string{
				"order_id": formatID(order.ID),
				"code":     order.Code,
			},
		})
	case model.StateDelivered:
		d.announceSale(ctx, order)
	}
}

func (d *Dispatcher) announceSale(ctx context.Context, order model.Order) {
	courier := CourierNone
	if order.CourierID != nil {
		if s, err := d.staff.GetByID(ctx, *order.CourierID); err == nil {
			courier = s.Name
		} else {
			d.logger.Warn("courier lookup failed for sale event",
				slog.String("order", order.Code),
				slog.String("error", err.Error()),
			)
		}
	}

	recipients, err := d.staff.ListByRoles(ctx, model.RoleCashier, model.RoleAdmin)
	if err != nil {
		d.logger.Error("sales recipients lookup failed",
			slog.String("order", order.Code),
			slog.String("error", err.Error()),
		)
		return
	}

	for _, staff := range recipients {
		d.publish(ctx, SalesTopic(staff.ID), Event{
			Type: EventSaleCompleted,
			Payload: map[string]string{
				"order_id": formatID(order.ID),
				"code":     order.Code,
				"total":    order.Total.StringFixed(2),
				"courier":  courier,
			},
		})
	}
}

func (d *Dispatcher) publish(ctx context.Context, topic string, ev Event) {
	for _, sink := range d.sinks {
		if err := sink.Publish(ctx, topic, ev); err != nil {
			d.logger.Warn("event publish failed",
				slog.String("topic", topic),
				slog.String("event", ev.Type),
				slog.String("error", err.Error()),
			)
		}
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
