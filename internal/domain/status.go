package domain

// ItemStatus tracks the lifecycle of wishlist and cart rows. Rows are never
// hard-deleted: "removed" keeps the record as a negative signal.
type ItemStatus string

const (
	ItemStatusActive    ItemStatus = "active"
	ItemStatusRemoved   ItemStatus = "removed"
	ItemStatusPurchased ItemStatus = "purchased"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PurchaseStatuses are the order states counted as purchases when excluding
// already-bought products and widening the interest vocabulary.
var PurchaseStatuses = []OrderStatus{
	OrderStatusCompleted,
	OrderStatusProcessing,
	OrderStatusShipped,
}
