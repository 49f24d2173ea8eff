package materials

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/gofea/utils"
)

// Field is a material parameter: one value for a uniform material, or one value per point
type Field []float64

func Uniform(val float64) Field { return Field{val} }

func (f Field) Len() int { return len(f) }

// At broadcasts a uniform field to every point
func (f Field) At(k int) float64 {
	if len(f) == 1 {
		return f[0]
	}
	return f[k]
}

func (f Field) Copy() Field { return append(Field(nil), f...) }

func (f Field) IsUniform() bool { return len(f) == 1 }

func (f Field) String() string {
	if len(f) == 1 {
		return fmt.Sprintf("%.4g", f[0])
	}
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range f {
		if i != 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%.4g", val)
	}
	sb.WriteString("]")
	return sb.String()
}

// NewField evaluates f at every point of a batch of size n
func NewField(n int, f func(k int) float64) (R Field) {
	R = Field(utils.ConstArray(n, 0))
	for k := range R {
		R[k] = f(k)
	}
	return
}

// batchSize returns the common length of the fields, uniform fields broadcast
func batchSize(fields ...Field) (n int, err error) {
	n = 1
	for _, f := range fields {
		switch {
		case len(f) == 0:
			err = fmt.Errorf("%w: empty parameter field", ErrShapeMismatch)
			return
		case len(f) == 1 || len(f) == n:
		case n == 1:
			n = len(f)
		default:
			err = fmt.Errorf("%w: parameter fields of length %d and %d", ErrShapeMismatch, n, len(f))
			return
		}
	}
	return
}

func checkPositive(name string, f Field) error {
	if len(f) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrShapeMismatch, name)
	}
	for _, val := range f {
		if !(val > 0) || math.IsInf(val, 1) {
			return fmt.Errorf("%w: %s = %v must be > 0", ErrParameterDomain, name, val)
		}
	}
	return nil
}

// checkInterval enforces low < val <= up
func checkInterval(name string, f Field, low, up float64) error {
	if len(f) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrShapeMismatch, name)
	}
	for _, val := range f {
		if !(val > low && val <= up) {
			return fmt.Errorf("%w: %s = %v must be in ]%g, %g]", ErrParameterDomain, name, val, low, up)
		}
	}
	return nil
}
