// Package lifecycle encodes the order state machine and its role-gating
// policy as a transition table. It performs no I/O; the storage layer is
// responsible for serialising concurrent transitions per order.
package lifecycle

import (
	domainErrors "github.com/comedor/comedor/internal/domain/errors"
	"github.com/comedor/comedor/internal/domain/model"
)

type edge struct {
	from model.OrderState
	to   model.OrderState
}

type rule struct {
	role model.Role
	// assignActor records the acting courier on the order when taking the edge.
	assignActor bool
	// requireActor rejects the edge unless the order is assigned to the actor.
	requireActor bool
}

// transitions is the sole source of truth for non-admin moves. Any
// (from, to) pair absent from the table is illegal regardless of role.
var transitions = map[edge]rule{
	{model.StateReceived, model.StateInPreparation}:       {role: model.RoleKitchen},
	{model.StateInPreparation, model.StateReadyForPickup}: {role: model.RoleKitchen},
	{model.StateReadyForPickup, model.StateEnRoute}:       {role: model.RoleCourier, assignActor: true},
	{model.StateEnRoute, model.StateDelivered}:            {role: model.RoleCourier, requireActor: true},
	{model.StateEnRoute, model.StateNotDelivered}:         {role: model.RoleCourier, requireActor: true},
}

// Effect tells the caller which side mutations accompany an allowed move.
type Effect struct {
	// AssignCourier sets the acting staff member as the order's courier.
	AssignCourier bool
	// StampDelivery records the delivery timestamp. Write-once: it is only
	// set when the order has no delivery timestamp yet.
	StampDelivery bool
}

// Decide checks whether actor may move order into target and returns the
// accompanying effects. The order is left untouched.
func Decide(order *model.Order, actor model.Staff, target model.OrderState) (Effect, error) {
	if !target.Valid() {
		return Effect{}, domainErrors.ErrUnknownState
	}

	if actor.Role == model.RoleAdmin {
		return effectFor(order, target), nil
	}

	r, ok := transitions[edge{order.State, target}]
	if !ok {
		return Effect{}, denial(actor.Role)
	}
	if r.role != actor.Role {
		return Effect{}, denial(actor.Role)
	}
	if r.requireActor {
		if order.CourierID == nil || *order.CourierID != actor.ID {
			return Effect{}, domainErrors.ErrUnauthorized
		}
	}

	eff := effectFor(order, target)
	eff.AssignCourier = r.assignActor
	return eff, nil
}

// denial picks the error the rejected role observes: the kitchen sees every
// disallowed move as an illegal transition, other roles as lack of authority.
func denial(role model.Role) error {
	if role == model.RoleKitchen {
		return domainErrors.ErrIllegalTransition
	}
	return domainErrors.ErrUnauthorized
}

func effectFor(order *model.Order, target model.OrderState) Effect {
	return Effect{
		StampDelivery: target.Terminal() && order.DeliveredAt == nil,
	}
}
