package alpaca

import "fmt"

// Side is the direction of an order.
type Side string

// Side is the direction of an order.
const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Order describes a stock order for the place_stock_order tool. Zero values for
// OrderType and TimeInForce fall back to a market order good for the day.
type Order struct {
	Symbol      string
	Side        Side
	Quantity    int
	OrderType   string
	TimeInForce string
}

// arguments renders the order as the argument map the tool expects.
func (o Order) arguments() map[string]any {
	orderType := o.OrderType
	if orderType == "" {
		orderType = "market"
	}
	tif := o.TimeInForce
	if tif == "" {
		tif = "day"
	}
	return map[string]any{
		"symbol":        o.Symbol,
		"side":          string(o.Side),
		"quantity":      o.Quantity,
		"order_type":    orderType,
		"time_in_force": tif,
	}
}

// validate checks the fields the server cannot default.
func (o Order) validate() error {
	if o.Symbol == "" {
		return fmt.Errorf("order symbol is required")
	}
	if o.Side != SideBuy && o.Side != SideSell {
		return fmt.Errorf("invalid order side: %q", o.Side)
	}
	if o.Quantity <= 0 {
		return fmt.Errorf("order quantity must be positive, got %d", o.Quantity)
	}
	return nil
}
