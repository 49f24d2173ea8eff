package elements

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
)

// KroneckerResidual sums |N_i(node_j) - delta_ij| over all nodes
func KroneckerResidual(ss ShapeFunctionSet) (errS float64) {
	for j, node := range ss.ReferenceNodes() {
		N := ss.Evaluate(node[0], node[1], node[2])
		for i, val := range N {
			if i == j {
				errS += math.Abs(val - 1)
			} else {
				errS += math.Abs(val)
			}
		}
	}
	return
}

// PartitionResidual returns |sum(N) - 1| at (r,s,t)
func PartitionResidual(ss ShapeFunctionSet, r, s, t float64) float64 {
	var sum float64
	for _, val := range ss.Evaluate(r, s, t) {
		sum += val
	}
	return math.Abs(sum - 1)
}

// GradientResidual compares the analytic gradient with a central difference of Evaluate
// and returns the largest error scaled by max(1, |dN|)
func GradientResidual(ss ShapeFunctionSet, r, s, t float64) (maxErr float64) {
	var (
		dN       = ss.EvaluateGradient(r, s, t)
		x        = []float64{r, s, t}
		grad     = make([]float64, 3)
		settings = &fd.Settings{Formula: fd.Central, Step: 1e-5}
	)
	for i := 0; i < ss.NodeCount(); i++ {
		f := func(y []float64) float64 { return ss.Evaluate(y[0], y[1], y[2])[i] }
		fd.Gradient(grad, f, x, settings)
		for j := 0; j < 3; j++ {
			maxErr = math.Max(maxErr, scaledError(dN.At(i, j), grad[j]))
		}
	}
	return
}

// SecondDerivativeResidual compares the pure second partials with a central difference of
// the analytic gradient. Bases without second derivatives return the underlying error.
func SecondDerivativeResidual(ss ShapeFunctionSet, r, s, t float64) (maxErr float64, err error) {
	ddN, err := ss.EvaluateSecondDerivative(r, s, t)
	if err != nil {
		return
	}
	settings := &fd.Settings{Formula: fd.Central, Step: 1e-5}
	for j := 0; j < 3; j++ {
		for i := 0; i < ss.NodeCount(); i++ {
			f := func(x float64) float64 {
				y := [3]float64{r, s, t}
				y[j] = x
				return ss.EvaluateGradient(y[0], y[1], y[2]).At(i, j)
			}
			x := [3]float64{r, s, t}[j]
			maxErr = math.Max(maxErr, scaledError(ddN.At(i, j), fd.Derivative(f, x, settings)))
		}
	}
	return
}

func scaledError(exact, approx float64) float64 {
	return math.Abs(exact-approx) / math.Max(1, math.Abs(exact))
}
