package ordering

import "errors"

var (
	// ErrSelection is returned when no valid dish is selected or the quantity is below one
	ErrSelection = errors.New("selection error")
	// ErrEmptyOrder is returned when placing or checking out an empty order
	ErrEmptyOrder = errors.New("no order")
	// ErrCancellationWindowExpired is returned when no order line can be cancelled
	ErrCancellationWindowExpired = errors.New("cancellation window expired")
)

// Kind returns a short stable name for the ordering error wrapped in err,
// or "unknown" when err is not one of the ordering errors.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrSelection):
		return "selection"
	case errors.Is(err, ErrEmptyOrder):
		return "empty_order"
	case errors.Is(err, ErrCancellationWindowExpired):
		return "cancel_expired"
	default:
		return "unknown"
	}
}
