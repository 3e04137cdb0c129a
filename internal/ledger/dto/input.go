package dto

// CheckoutItem references a live product; name and price are resolved and
// frozen into the order at checkout time.
type CheckoutItem struct {
	ProductID string
	Quantity  int
}

type CheckoutInput struct {
	Items []CheckoutItem
}
