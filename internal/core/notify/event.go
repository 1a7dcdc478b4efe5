package notify

import "fmt"

// Event names delivered to subscribers. NewOrderReceived and DashboardUpdated
// address admin observers; OrderStatusChanged addresses the order's owner.
const (
	EventNewOrderReceived   = "NewOrderReceived"
	EventOrderStatusChanged = "OrderStatusChanged"
	EventDashboardUpdated   = "DashboardUpdated"
)

// Event is one best-effort notification. Data is marshalled to JSON at the
// transport edge (SSE stream, Redis bridge).
type Event struct {
	Name string
	Data any
}

// NewOrderData is the payload for EventNewOrderReceived.
type NewOrderData struct {
	OrderID int64 `json:"orderId"`
}

// StatusChangedData is the payload for EventOrderStatusChanged and
// EventDashboardUpdated.
type StatusChangedData struct {
	OrderID int64  `json:"orderId"`
	Status  string `json:"status"`
}

// GroupAdmins addresses every connected administrative observer.
const GroupAdmins = "role:admin"

// GroupUser addresses the connected sessions of one user.
func GroupUser(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}
