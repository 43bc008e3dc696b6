package notify

import "fmt"

// Event is a plain key/value record pushed to topic subscribers.
type Event struct {
	Type    string            `json:"type"`
	Payload map[string]string `json:"payload"`
}

const (
	EventOrderUpdated      = "order.updated"
	EventOrderStatusChange = "order.status_changed"
	EventReadyForDelivery  = "order.ready_for_delivery"
	EventSaleCompleted     = "sale.completed"
)

const (
	// TopicKitchen receives every order status change, creation included.
	TopicKitchen = "kitchen"
	// TopicCouriers receives orders that became ready for pickup.
	TopicCouriers = "couriers"
)

// CourierNone is the payload sentinel used when no courier is assigned.
const CourierNone = "N/A"

// CustomerTopic is the personal topic a customer listens on for own orders.
func CustomerTopic(customerID int64) string {
	return fmt.Sprintf("order-updates:%d", customerID)
}

// SalesTopic is the personal topic a cashier or admin listens on for
// completed sales.
func SalesTopic(staffID int64) string {
	return fmt.Sprintf("sales:%d", staffID)
}
