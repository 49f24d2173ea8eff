package materials

import (
	"fmt"
	"strings"

	"github.com/notargets/gofea/utils"
)

/*
AnisotropicLaw takes an empirical stiffness given in the material frame [axis1, axis2, axis1 x axis2].
2D input is ordered [xx, yy, xy] and is rotated as the xx, yy, xy slots of the 3D law.
SetStiffness recomputes eagerly, plane stress does not apply.
*/
type AnisotropicLaw struct {
	elasticBase
	axis1, axis2 [3]float64
}

func NewAnisotropicLaw(dim int, C Batch, useVoigt bool, axis1, axis2 []float64,
	thickness float64) (al *AnisotropicLaw, err error) {
	var eb elasticBase
	if eb, err = newElasticBase(dim, false, thickness); err != nil {
		return
	}
	al = &AnisotropicLaw{elasticBase: eb}
	if al.axis1, al.axis2, err = materialAxes(axis1, axis2); err != nil {
		return nil, err
	}
	al.update = al.invertStiffness
	if err = al.SetStiffness(C, useVoigt, true); err != nil {
		return nil, err
	}
	return
}

func (al *AnisotropicLaw) Kind() LawKind { return Anisotropic }

func (al *AnisotropicLaw) Len() int { return len(al.c) }

func (al *AnisotropicLaw) IsHeterogeneous() bool { return al.Len() > 1 }

func (al *AnisotropicLaw) Axis1() [3]float64 { return al.axis1 }
func (al *AnisotropicLaw) Axis2() [3]float64 { return al.axis2 }

func (al *AnisotropicLaw) SetPlaneStress(planeStress bool) error {
	if planeStress {
		return fmt.Errorf("%w: an anisotropic law has no plane stress simplification", ErrParameterDomain)
	}
	return nil
}

/*
SetStiffness replaces C, given in the material frame, and recomputes the global C at once.
With updateS false the compliance is left Dirty and inverted on the next read of S or C.
On error the previous law is kept.
*/
func (al *AnisotropicLaw) SetStiffness(C Batch, useVoigt, updateS bool) (err error) {
	var (
		size = matrixSize(al.dim)
		km   Batch
	)
	if err = C.checkSquare(size); err != nil {
		return
	}
	for k, M := range C {
		if !utils.AllFinite(M.Data()) {
			return fmt.Errorf("%w: entry %d of the stiffness is not finite", ErrParameterDomain, k)
		}
		if d := M.Asymmetry(); !(d <= Tolerance) {
			return fmt.Errorf("%w: entry %d, |C^T - C| / |C| = %.3e", ErrAsymmetric, k, d)
		}
	}
	if useVoigt {
		if km, err = kelvinMandelBatch(al.dim, C); err != nil {
			return
		}
	} else {
		km = C.Copy()
	}
	global := al.behavior(km)
	if !updateS {
		al.c, al.s = global, nil
		al.markDirty()
		return
	}
	var S Batch
	if S, err = global.Inverse(); err != nil {
		return
	}
	return al.store(global, S)
}

// behavior rotates a Kelvin-Mandel stiffness from the material to the global frame
func (al *AnisotropicLaw) behavior(C Batch) (R Batch) {
	P := rotationOperator(al.axis1, al.axis2)
	if al.dim == 3 {
		return applyRotationBatch(P, C)
	}
	R = make(Batch, len(C))
	for k, M := range C {
		R[k] = ApplyRotation(P, embedPlane(M)).SubMatrix(planeIndex)
	}
	return
}

// invertStiffness completes a SetStiffness that skipped S
func (al *AnisotropicLaw) invertStiffness() (C, S Batch, err error) {
	C = al.c
	S, err = C.Inverse()
	return
}

func (al *AnisotropicLaw) WalpoleDecomposition() (Walpole, error) {
	return Walpole{}, fmt.Errorf("%w: Walpole decomposition of an anisotropic law", ErrUnsupported)
}

func (al *AnisotropicLaw) String() string {
	var sb strings.Builder
	sb.WriteString("AnisotropicLaw:\n")
	for k, M := range al.c {
		if al.IsHeterogeneous() {
			fmt.Fprintf(&sb, "point %d\n", k)
		}
		sb.WriteString(M.String())
	}
	fmt.Fprintf(&sb, "axis1 = %.3f\naxis2 = %.3f", al.axis1, al.axis2)
	sb.WriteString(al.baseString())
	return sb.String()
}
