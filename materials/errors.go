package materials

import "errors"

var (
	// ErrParameterDomain is returned by setters and constructors for physically inadmissible values.
	// The law keeps its previous state.
	ErrParameterDomain = errors.New("materials: parameter out of domain")

	// ErrShapeMismatch covers wrong matrix shapes, wrong vector sizes and incompatible field lengths
	ErrShapeMismatch = errors.New("materials: shape mismatch")

	// ErrAsymmetric is returned when a stiffness matrix supplied by the caller is not symmetric
	ErrAsymmetric = errors.New("materials: matrix is not symmetric")

	// ErrGeometry is returned for material axes that are degenerate or not orthogonal
	ErrGeometry = errors.New("materials: inconsistent material axes")

	// ErrSelfCheck signals an internal consistency check failure, not a user error
	ErrSelfCheck = errors.New("materials: internal consistency check failed")

	// ErrSingular is returned when a stiffness or compliance matrix cannot be inverted
	ErrSingular = errors.New("materials: singular matrix")

	// ErrUnsupported is returned for operations a law does not provide
	ErrUnsupported = errors.New("materials: not supported for this law")
)

// Tolerance used by every consistency check in the package
const Tolerance = 1.e-12
