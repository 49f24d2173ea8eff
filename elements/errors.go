package elements

import "errors"

var (
	// ErrUnsupportedDerivative is returned when the basis has no closed form for the requested order.
	// It is distinct from a derivative that exists and happens to be zero.
	ErrUnsupportedDerivative = errors.New("elements: derivative order not implemented for this basis")

	// ErrInvalidDerivativeOrder is returned for orders outside 0..4
	ErrInvalidDerivativeOrder = errors.New("elements: invalid derivative order")

	// ErrUnknownElement is returned by the registry for element names it does not hold
	ErrUnknownElement = errors.New("elements: unknown element type")
)
