package materials

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/notargets/gofea/utils"
)

type LawKind uint8

const (
	Isotropic LawKind = iota
	TransverselyIsotropic
	Anisotropic
)

func (k LawKind) String() string {
	switch k {
	case Isotropic:
		return "Isotropic"
	case TransverselyIsotropic:
		return "TransverselyIsotropic"
	case Anisotropic:
		return "Anisotropic"
	}
	return fmt.Sprintf("LawKind(%d)", uint8(k))
}

func AvailableLaws() []LawKind {
	return []LawKind{Isotropic, TransverselyIsotropic, Anisotropic}
}

// ParseLawKind matches a law name case insensitively
func ParseLawKind(name string) (LawKind, error) {
	name = strings.TrimSpace(name)
	for _, k := range AvailableLaws() {
		if strings.EqualFold(k.String(), name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown elastic law %q", ErrUnsupported, name)
}

// CacheState tracks whether the stored C and S reflect the current parameters
type CacheState uint8

const (
	Dirty CacheState = iota
	Clean
)

func (cs CacheState) String() string {
	if cs == Clean {
		return "Clean"
	}
	return "Dirty"
}

/*
ElasticLaw is a linear elastic constitutive law in Kelvin-Mandel notation:

	3D: sigma = C eps with [xx, yy, zz, sqrt(2)*yz, sqrt(2)*xz, sqrt(2)*xy]
	2D: sigma = C eps with [xx, yy, sqrt(2)*xy]

S = C^-1. The variant set is closed, switch on Kind() to reach the concrete type.
A law is not safe for concurrent use, reading C or S may fill the cache.
*/
type ElasticLaw interface {
	Kind() LawKind
	Dim() int
	Thickness() float64
	PlaneStress() bool
	Simplification() string
	Coef() float64
	Len() int
	IsHeterogeneous() bool
	State() CacheState
	C() (Batch, error)
	S() (Batch, error)
	SetPlaneStress(planeStress bool) error
	SetThickness(thickness float64) error
	WalpoleDecomposition() (Walpole, error)
	String() string
	law()
}

type elasticBase struct {
	dim         int
	thickness   float64
	planeStress bool
	state       CacheState
	c, s        Batch
	update      func() (C, S Batch, err error)
}

func newElasticBase(dim int, planeStress bool, thickness float64) (eb elasticBase, err error) {
	if dim != 2 && dim != 3 {
		err = fmt.Errorf("%w: dim must be 2 or 3, have %d", ErrShapeMismatch, dim)
		return
	}
	if dim == 2 && !(thickness > 0) {
		err = fmt.Errorf("%w: thickness = %v must be > 0", ErrParameterDomain, thickness)
		return
	}
	eb = elasticBase{
		dim:         dim,
		thickness:   thickness,
		planeStress: planeStress && dim == 2,
		state:       Dirty,
	}
	return
}

func (eb *elasticBase) law() {}

func (eb *elasticBase) Dim() int { return eb.dim }

// Thickness is 1 for 3D laws
func (eb *elasticBase) Thickness() float64 {
	if eb.dim == 2 {
		return eb.thickness
	}
	return 1
}

func (eb *elasticBase) PlaneStress() bool { return eb.planeStress }

func (eb *elasticBase) Simplification() string {
	if eb.dim == 2 {
		if eb.planeStress {
			return "Plane Stress"
		}
		return "Plane Strain"
	}
	return "3D"
}

// Coef is the Kelvin-Mandel shear scaling sqrt(2)
func (eb *elasticBase) Coef() float64 { return Coef }

func (eb *elasticBase) State() CacheState { return eb.state }

func (eb *elasticBase) markDirty() { eb.state = Dirty }

func (eb *elasticBase) SetPlaneStress(planeStress bool) error {
	if eb.dim != 2 && planeStress {
		return fmt.Errorf("%w: plane stress is a 2D simplification", ErrParameterDomain)
	}
	if eb.planeStress != planeStress {
		eb.planeStress = planeStress
		eb.markDirty()
	}
	return nil
}

func (eb *elasticBase) SetThickness(thickness float64) error {
	if eb.dim != 2 {
		return fmt.Errorf("%w: thickness applies to 2D laws only", ErrParameterDomain)
	}
	if !(thickness > 0) {
		return fmt.Errorf("%w: thickness = %v must be > 0", ErrParameterDomain, thickness)
	}
	eb.thickness = thickness
	return nil
}

// C returns a copy of the stiffness, recomputing it when the parameters changed
func (eb *elasticBase) C() (C Batch, err error) {
	if err = eb.refresh(); err != nil {
		return
	}
	return eb.c.Copy(), nil
}

// S returns a copy of the compliance, recomputing it when the parameters changed
func (eb *elasticBase) S() (S Batch, err error) {
	if err = eb.refresh(); err != nil {
		return
	}
	return eb.s.Copy(), nil
}

func (eb *elasticBase) refresh() (err error) {
	if eb.state == Clean {
		return
	}
	var C, S Batch
	if C, S, err = eb.update(); err != nil {
		return
	}
	if err = eb.store(C, S); err != nil {
		return
	}
	slog.Debug("elastic law recomputed",
		slog.String("simplification", eb.Simplification()),
		slog.Int("points", len(C)))
	return
}

// store validates shapes and finiteness, then marks the cache Clean
func (eb *elasticBase) store(C, S Batch) (err error) {
	size := matrixSize(eb.dim)
	if err = C.checkSquare(size); err != nil {
		return
	}
	if err = S.checkSquare(size); err != nil {
		return
	}
	for k := range C {
		if !utils.AllFinite(C[k].Data()) || !utils.AllFinite(S[k].Data()) {
			return fmt.Errorf("%w: non finite constitutive matrix at point %d", ErrSingular, k)
		}
	}
	eb.c, eb.s = C, S
	eb.state = Clean
	return
}

func (eb *elasticBase) baseString() string {
	if eb.dim == 2 {
		return fmt.Sprintf("\nplaneStress = %v\nthickness = %.2e", eb.planeStress, eb.thickness)
	}
	return ""
}

// Walpole holds C = sum_i Coefficients[i] * Bases[i], the bases are fixed 6x6 Kelvin-Mandel tensors
type Walpole struct {
	Coefficients []Field
	Bases        []utils.Matrix
}

// Reconstruct sums the decomposition at point k
func (w Walpole) Reconstruct(k int) (C utils.Matrix) {
	C = utils.NewMatrix(6, 6)
	for i, E := range w.Bases {
		C.AddScaled(w.Coefficients[i].At(k), E)
	}
	return
}

// finite rejects decompositions of laws without a bounded stiffness, e.g. v = 0.5 in 3D
func (w Walpole) finite() error {
	for i, c := range w.Coefficients {
		if !utils.AllFinite(c) {
			return fmt.Errorf("%w: Walpole coefficient %d = %v", ErrSingular, i, c)
		}
	}
	return nil
}

// verify compares the reconstruction with the uniform 3D stiffness C
func (w Walpole) verify(C utils.Matrix) error {
	if d := w.Reconstruct(0).RelativeDifference(C); !(d <= Tolerance) {
		return fmt.Errorf("%w: Walpole reconstruction differs from C by %.3e", ErrSelfCheck, d)
	}
	return nil
}
