package usecase

import "github.com/comedor/comedor/internal/domain/model"

// Notifier receives committed order mutations for asynchronous fan-out.
// Implementations must never block the caller; delivery is advisory.
type Notifier interface {
	OrderChanged(order model.Order, customerName string)
	CourierAssigned(order model.Order, customerName string)
}
