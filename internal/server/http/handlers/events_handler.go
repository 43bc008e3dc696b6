package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/comedor/comedor/internal/domain/model"
	"github.com/comedor/comedor/internal/notify"
)

// EventStream hands out topic subscriptions for server-sent event delivery.
type EventStream interface {
	Subscribe(topics ...string) *notify.Subscription
}

// EventsHandler streams order notifications over SSE.
type EventsHandler struct {
	stream EventStream
}

// NewEventsHandler constructs EventsHandler.
func NewEventsHandler(stream EventStream) *EventsHandler {
	return &EventsHandler{stream: stream}
}

// CustomerEvents handles GET /api/events. The customer receives updates for
// their own orders only.
func (h *EventsHandler) CustomerEvents(c *gin.Context) {
	principal := CurrentPrincipal(c)
	h.serve(c, notify.CustomerTopic(principal.ID))
}

// StaffEvents handles GET /api/staff/events. The subscribed topics follow
// from the staff member's role.
func (h *EventsHandler) StaffEvents(c *gin.Context) {
	actor := CurrentStaff(c)
	h.serve(c, staffTopics(actor)...)
}

func (h *EventsHandler) serve(c *gin.Context, topics ...string) {
	sub := h.stream.Subscribe(topics...)
	defer sub.Close()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				return false
			}
			c.SSEvent(ev.Type, ev.Payload)
			return true
		case <-ctx.Done():
			return false
		}
	})
}

func staffTopics(actor model.Staff) []string {
	switch actor.Role {
	case model.RoleKitchen:
		return []string{notify.TopicKitchen}
	case model.RoleCourier:
		return []string{notify.TopicCouriers, notify.TopicKitchen}
	default:
		return []string{notify.TopicKitchen, notify.SalesTopic(actor.ID)}
	}
}
