package materials

import (
	"fmt"

	"github.com/notargets/gofea/utils"
)

type IsotropicLaw struct {
	elasticBase
	e, v Field
}

// NewIsotropicLaw builds an isotropic law from Young's modulus E > 0 and Poisson's ratio v in ]-1, 0.5].
// planeStress is ignored in 3D, thickness is only checked in 2D.
func NewIsotropicLaw(dim int, E, v Field, planeStress bool, thickness float64) (il *IsotropicLaw, err error) {
	var eb elasticBase
	if eb, err = newElasticBase(dim, planeStress, thickness); err != nil {
		return
	}
	if err = checkPositive("E", E); err != nil {
		return
	}
	if err = checkInterval("v", v, -1, 0.5); err != nil {
		return
	}
	if _, err = batchSize(E, v); err != nil {
		return
	}
	il = &IsotropicLaw{
		elasticBase: eb,
		e:           E.Copy(),
		v:           v.Copy(),
	}
	il.update = il.recompute
	return
}

func (il *IsotropicLaw) Kind() LawKind { return Isotropic }

func (il *IsotropicLaw) Len() int {
	n, _ := batchSize(il.e, il.v)
	return n
}

func (il *IsotropicLaw) IsHeterogeneous() bool { return il.Len() > 1 }

func (il *IsotropicLaw) E() Field { return il.e.Copy() }
func (il *IsotropicLaw) V() Field { return il.v.Copy() }

func (il *IsotropicLaw) SetE(E Field) (err error) {
	if err = checkPositive("E", E); err != nil {
		return
	}
	if _, err = batchSize(E, il.v); err != nil {
		return
	}
	il.e = E.Copy()
	il.markDirty()
	return
}

func (il *IsotropicLaw) SetV(v Field) (err error) {
	if err = checkInterval("v", v, -1, 0.5); err != nil {
		return
	}
	if _, err = batchSize(il.e, v); err != nil {
		return
	}
	il.v = v.Copy()
	il.markDirty()
	return
}

// Mu is the shear modulus E / (2(1+v))
func (il *IsotropicLaw) Mu() Field {
	return NewField(il.Len(), func(k int) float64 {
		return il.e.At(k) / (2 * (1 + il.v.At(k)))
	})
}

// Lambda is the Lame parameter of the current simplification, Ev/(1-v^2) under plane stress
func (il *IsotropicLaw) Lambda() Field {
	return il.lambda(il.dim, il.planeStress)
}

// Bulk is lambda + 2 mu / dim
func (il *IsotropicLaw) Bulk() Field {
	return il.bulk(il.dim, il.planeStress)
}

func (il *IsotropicLaw) lambda(dim int, planeStress bool) Field {
	return NewField(il.Len(), func(k int) float64 {
		E, v := il.e.At(k), il.v.At(k)
		if dim == 2 && planeStress {
			return E * v / (1 - v*v)
		}
		return E * v / ((1 + v) * (1 - 2*v))
	})
}

func (il *IsotropicLaw) bulk(dim int, planeStress bool) Field {
	var (
		lambda = il.lambda(dim, planeStress)
		mu     = il.Mu()
	)
	return NewField(il.Len(), func(k int) float64 {
		return lambda[k] + 2*mu[k]/float64(dim)
	})
}

func (il *IsotropicLaw) recompute() (C, S Batch, err error) {
	C = il.behavior(il.dim, il.planeStress)
	if S, err = C.Inverse(); err != nil {
		return
	}
	return
}

// behavior assembles the Kelvin-Mandel stiffness of dimension dim
func (il *IsotropicLaw) behavior(dim int, planeStress bool) (C Batch) {
	var (
		lambda = il.lambda(dim, planeStress)
		mu     = il.Mu()
		size   = matrixSize(dim)
	)
	return newBatch(il.Len(), size, func(k int, M utils.Matrix) {
		l, m := lambda[k], mu[k]
		// Normal block
		for i := 0; i < dim; i++ {
			for j := 0; j < dim; j++ {
				M.Set(i, j, l)
			}
			M.Set(i, i, l+2*m)
		}
		// Shear diagonal, Voigt mu scaled by sqrt(2)*sqrt(2)
		for i := dim; i < size; i++ {
			M.Set(i, i, 2*m)
		}
	})
}

// isotropicBases returns 3*E1 and 2*E2 with E1 = I(x)I/3 and E2 = Id - E1 in Kelvin-Mandel 6-space
func isotropicBases() (E1, E2 utils.Matrix) {
	Ivect := ProjectKelvinVector(3, Identity2())
	E1 = utils.NewMatrix(6, 6)
	for i := range Ivect {
		for j := range Ivect {
			E1.Set(i, j, Ivect[i]*Ivect[j]/3)
		}
	}
	E2 = utils.NewIdentity(6).Subtract(E1)
	return
}

// WalpoleDecomposition returns C = bulk * (3 E1) + mu * (2 E2), taken on the 3D law
func (il *IsotropicLaw) WalpoleDecomposition() (w Walpole, err error) {
	E1, E2 := isotropicBases()
	w = Walpole{
		Coefficients: []Field{il.bulk(3, false), il.Mu()},
		Bases:        []utils.Matrix{E1.Scale(3), E2.Scale(2)},
	}
	if err = w.finite(); err != nil {
		return Walpole{}, err
	}
	if !il.IsHeterogeneous() {
		if err = w.verify(il.behavior(3, false)[0]); err != nil {
			return Walpole{}, err
		}
	}
	return
}

func (il *IsotropicLaw) String() string {
	return fmt.Sprintf("IsotropicLaw:\nE = %v, v = %v", il.e, il.v) + il.baseString()
}
