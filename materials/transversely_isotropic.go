package materials

import (
	"fmt"
	"math"

	"github.com/notargets/gofea/utils"
)

// TransverselyIsotropicLaw is isotropic in the plane normal to axisL, as for fibers or wood
type TransverselyIsotropicLaw struct {
	elasticBase
	el, et, gl, vl, vt Field
	axisL, axisT       [3]float64
}

func NewTransverselyIsotropicLaw(dim int, El, Et, Gl, vl, vt Field, axisL, axisT []float64,
	planeStress bool, thickness float64) (ti *TransverselyIsotropicLaw, err error) {
	var eb elasticBase
	if eb, err = newElasticBase(dim, planeStress, thickness); err != nil {
		return
	}
	ti = &TransverselyIsotropicLaw{elasticBase: eb}
	if err = ti.SetAxes(axisL, axisT); err != nil {
		return nil, err
	}
	for _, p := range []struct {
		name string
		f    Field
	}{{"El", El}, {"Et", Et}, {"Gl", Gl}} {
		if err = checkPositive(p.name, p.f); err != nil {
			return nil, err
		}
	}
	if err = checkInterval("vl", vl, -1, 1); err != nil {
		return nil, err
	}
	if err = checkInterval("vt", vt, -1, 0.5); err != nil {
		return nil, err
	}
	if _, err = batchSize(El, Et, Gl, vl, vt); err != nil {
		return nil, err
	}
	ti.el, ti.et, ti.gl, ti.vl, ti.vt = El.Copy(), Et.Copy(), Gl.Copy(), vl.Copy(), vt.Copy()
	ti.update = ti.recompute
	return
}

func (ti *TransverselyIsotropicLaw) Kind() LawKind { return TransverselyIsotropic }

func (ti *TransverselyIsotropicLaw) Len() int {
	n, _ := batchSize(ti.el, ti.et, ti.gl, ti.vl, ti.vt)
	return n
}

func (ti *TransverselyIsotropicLaw) IsHeterogeneous() bool { return ti.Len() > 1 }

func (ti *TransverselyIsotropicLaw) El() Field { return ti.el.Copy() }
func (ti *TransverselyIsotropicLaw) Et() Field { return ti.et.Copy() }
func (ti *TransverselyIsotropicLaw) Gl() Field { return ti.gl.Copy() }
func (ti *TransverselyIsotropicLaw) Vl() Field { return ti.vl.Copy() }
func (ti *TransverselyIsotropicLaw) Vt() Field { return ti.vt.Copy() }

func (ti *TransverselyIsotropicLaw) AxisL() [3]float64 { return ti.axisL }
func (ti *TransverselyIsotropicLaw) AxisT() [3]float64 { return ti.axisT }

// Gt is the transverse shear modulus Et / (2(1+vt))
func (ti *TransverselyIsotropicLaw) Gt() Field {
	return NewField(ti.Len(), func(k int) float64 {
		return ti.et.At(k) / (2 * (1 + ti.vt.At(k)))
	})
}

// Kt is the transverse plane strain bulk modulus, Torquato 2002 13.3.2 (iii)
func (ti *TransverselyIsotropicLaw) Kt() Field {
	return NewField(ti.Len(), func(k int) float64 {
		El, Et, vt, vl := ti.el.At(k), ti.et.At(k), ti.vt.At(k), ti.vl.At(k)
		return El * Et / (2*(1-vt)*El - 4*vl*vl*Et)
	})
}

func (ti *TransverselyIsotropicLaw) setModulus(name string, dst *Field, f Field) (err error) {
	if err = checkPositive(name, f); err != nil {
		return
	}
	return ti.setField(dst, f)
}

// setField swaps f into dst only if every field still shares a batch size
func (ti *TransverselyIsotropicLaw) setField(dst *Field, f Field) (err error) {
	fields := []Field{ti.el, ti.et, ti.gl, ti.vl, ti.vt}
	for i, g := range []*Field{&ti.el, &ti.et, &ti.gl, &ti.vl, &ti.vt} {
		if g == dst {
			fields[i] = f
		}
	}
	if _, err = batchSize(fields...); err != nil {
		return
	}
	*dst = f.Copy()
	ti.markDirty()
	return
}

func (ti *TransverselyIsotropicLaw) SetEl(El Field) error { return ti.setModulus("El", &ti.el, El) }
func (ti *TransverselyIsotropicLaw) SetEt(Et Field) error { return ti.setModulus("Et", &ti.et, Et) }
func (ti *TransverselyIsotropicLaw) SetGl(Gl Field) error { return ti.setModulus("Gl", &ti.gl, Gl) }

func (ti *TransverselyIsotropicLaw) SetVl(vl Field) (err error) {
	if err = checkInterval("vl", vl, -1, 1); err != nil {
		return
	}
	return ti.setField(&ti.vl, vl)
}

func (ti *TransverselyIsotropicLaw) SetVt(vt Field) (err error) {
	if err = checkInterval("vt", vt, -1, 0.5); err != nil {
		return
	}
	return ti.setField(&ti.vt, vt)
}

// SetAxes normalizes the longitudinal and transverse axes, which must be perpendicular
func (ti *TransverselyIsotropicLaw) SetAxes(axisL, axisT []float64) (err error) {
	var a1, a2 [3]float64
	if a1, a2, err = materialAxes(axisL, axisT); err != nil {
		return
	}
	ti.axisL, ti.axisT = a1, a2
	ti.markDirty()
	return
}

// materialFrame builds S and C in the [axisL, axisT, axisL x axisT] frame
func (ti *TransverselyIsotropicLaw) materialFrame() (S, C Batch) {
	var (
		n  = ti.Len()
		gt = ti.Gt()
		kt = ti.Kt()
	)
	S = newBatch(n, 6, func(k int, M utils.Matrix) {
		El, Et, Gl, vl, vt, Gt := ti.el.At(k), ti.et.At(k), ti.gl.At(k), ti.vl.At(k), ti.vt.At(k), gt[k]
		M.SetRow(0, []float64{1 / El, -vl / El, -vl / El, 0, 0, 0})
		M.SetRow(1, []float64{-vl / El, 1 / Et, -vt / Et, 0, 0, 0})
		M.SetRow(2, []float64{-vl / El, -vt / Et, 1 / Et, 0, 0, 0})
		M.Set(3, 3, 1/(2*Gt))
		M.Set(4, 4, 1/(2*Gl))
		M.Set(5, 5, 1/(2*Gl))
	})
	C = newBatch(n, 6, func(k int, M utils.Matrix) {
		El, Gl, vl, Gt, Kt := ti.el.At(k), ti.gl.At(k), ti.vl.At(k), gt[k], kt[k]
		M.SetRow(0, []float64{El + 4*vl*vl*Kt, 2 * Kt * vl, 2 * Kt * vl, 0, 0, 0})
		M.SetRow(1, []float64{2 * Kt * vl, Kt + Gt, Kt - Gt, 0, 0, 0})
		M.SetRow(2, []float64{2 * Kt * vl, Kt - Gt, Kt + Gt, 0, 0, 0})
		M.Set(3, 3, 2*Gt)
		M.Set(4, 4, 2*Gl)
		M.Set(5, 5, 2*Gl)
	})
	return
}

// behavior returns the global frame C and S of dimension dim
func (ti *TransverselyIsotropicLaw) behavior(dim int) (C, S Batch, err error) {
	var (
		materialS, materialC = ti.materialFrame()
		P                    = rotationOperator(ti.axisL, ti.axisT)
	)
	if !ti.IsHeterogeneous() {
		if err = checkInverse(materialS, materialC); err != nil {
			return
		}
	}
	S, C = applyRotationBatch(P, materialS), applyRotationBatch(P, materialC)
	if isDefaultFrame(ti.axisL, ti.axisT) {
		dC, dS := C.MaxRelativeDifference(materialC), S.MaxRelativeDifference(materialS)
		if !(dC < Tolerance && dS < Tolerance) {
			err = fmt.Errorf("%w: rotation by the default frame changed the law, |dC| = %.3e, |dS| = %.3e",
				ErrSelfCheck, dC, dS)
			return
		}
	}
	if dim == 2 {
		// Plane stress keeps the in-plane compliance, plane strain the in-plane stiffness
		if ti.planeStress {
			S = S.SubMatrix(planeIndex)
			C, err = S.Inverse()
		} else {
			C = C.SubMatrix(planeIndex)
			S, err = C.Inverse()
		}
	}
	return
}

// checkInverse verifies S = C^-1 and C = S^-1 in the relative Frobenius norm
func checkInverse(S, C Batch) (err error) {
	var invC, invS Batch
	if invC, err = C.Inverse(); err != nil {
		return
	}
	if invS, err = S.Inverse(); err != nil {
		return
	}
	if d := invC.MaxRelativeDifference(S); !(d < Tolerance) {
		return fmt.Errorf("%w: |S - C^-1| / |S| = %.3e", ErrSelfCheck, d)
	}
	if d := invS.MaxRelativeDifference(C); !(d < Tolerance) {
		return fmt.Errorf("%w: |C - S^-1| / |C| = %.3e", ErrSelfCheck, d)
	}
	return
}

func (ti *TransverselyIsotropicLaw) recompute() (C, S Batch, err error) {
	return ti.behavior(ti.dim)
}

// transverseBases returns the Walpole bases of a transversely isotropic tensor with fiber direction n
func transverseBases(n [3]float64) (E []utils.Matrix) {
	var (
		p     = Outer(n)
		q     = Identity2().Sub(p)
		sqrt2 = math.Sqrt2
	)
	scale := func(a float64, T Tensor4) utils.Matrix {
		return ProjectKelvin(T).Scale(a)
	}
	E1 := ProjectKelvin(TensorProduct(p, p))
	E2 := scale(0.5, TensorProduct(q, q))
	E3 := scale(1/sqrt2, TensorProduct(p, q))
	E4 := scale(1/sqrt2, TensorProduct(q, p))
	E5 := ProjectKelvin(SymmetricTensorProduct(q, q)).AddScaled(-0.5, ProjectKelvin(TensorProduct(q, q)))
	I := ProjectKelvin(SymmetricTensorProduct(Identity2(), Identity2()))
	E6 := I.Subtract(E1).Subtract(E2).Subtract(E5)
	return []utils.Matrix{E1, E2, E3.Add(E4), E5, E6}
}

// WalpoleDecomposition returns 5 coefficients [El+4vl^2kt, 2kt, 2sqrt(2)kt vl, 2Gt, 2Gl] on the
// bases built from p = n(x)n and q = I - p, n = axisL
func (ti *TransverselyIsotropicLaw) WalpoleDecomposition() (w Walpole, err error) {
	var (
		n  = ti.Len()
		kt = ti.Kt()
		gt = ti.Gt()
	)
	w = Walpole{
		Coefficients: []Field{
			NewField(n, func(k int) float64 { vl := ti.vl.At(k); return ti.el.At(k) + 4*vl*vl*kt[k] }),
			NewField(n, func(k int) float64 { return 2 * kt[k] }),
			NewField(n, func(k int) float64 { return 2 * math.Sqrt2 * kt[k] * ti.vl.At(k) }),
			NewField(n, func(k int) float64 { return 2 * gt[k] }),
			NewField(n, func(k int) float64 { return 2 * ti.gl.At(k) }),
		},
		Bases: transverseBases(ti.axisL),
	}
	if err = w.finite(); err != nil {
		return Walpole{}, err
	}
	if !ti.IsHeterogeneous() {
		var C Batch
		if C, _, err = ti.behavior(3); err != nil {
			return Walpole{}, err
		}
		if err = w.verify(C[0]); err != nil {
			return Walpole{}, err
		}
	}
	return
}

func (ti *TransverselyIsotropicLaw) String() string {
	return fmt.Sprintf("TransverselyIsotropicLaw:\nEl = %v, Et = %v, Gl = %v\nvl = %v, vt = %v\naxis_l = %.3f\naxis_t = %.3f",
		ti.el, ti.et, ti.gl, ti.vl, ti.vt, ti.axisL, ti.axisT) + ti.baseString()
}
