package InputParameters

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ghodss/yaml"

	"github.com/notargets/gofea/materials"
	"github.com/notargets/gofea/utils"
)

var ErrInput = errors.New("invalid material input")

// Values accepts a scalar or a list, one value per material point
type Values []float64

func (v *Values) UnmarshalJSON(data []byte) (err error) {
	var x float64
	if err = json.Unmarshal(data, &x); err == nil {
		*v = Values{x}
		return
	}
	var xs []float64
	if err = json.Unmarshal(data, &xs); err != nil {
		return fmt.Errorf("%w: expected a number or a list of numbers: %v", ErrInput, err)
	}
	*v = xs
	return
}

func (v Values) Field() materials.Field { return materials.Field(v) }

// Parameters obtained from the YAML material file
type MaterialInput struct {
	Title       string      `json:"Title"`
	Law         string      `json:"Law"` // Isotropic, TransverselyIsotropic or Anisotropic
	Dim         int         `json:"Dim"`
	PlaneStress bool        `json:"PlaneStress"`
	Thickness   float64     `json:"Thickness"`
	E           Values      `json:"E"`
	V           Values      `json:"V"`
	El          Values      `json:"El"`
	Et          Values      `json:"Et"`
	Gl          Values      `json:"Gl"`
	Vl          Values      `json:"Vl"`
	Vt          Values      `json:"Vt"`
	AxisL       []float64   `json:"AxisL"`
	AxisT       []float64   `json:"AxisT"`
	Stiffness   [][]float64 `json:"Stiffness"` // Rows, 2D order is [xx, yy, xy]
	UseVoigt    bool        `json:"UseVoigt"`
	Axis1       []float64   `json:"Axis1"`
	Axis2       []float64   `json:"Axis2"`
}

func (ip *MaterialInput) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *MaterialInput) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "[%s]\t\t= Law\n", ip.Law)
	fmt.Fprintf(w, "[%d]\t\t\t= Dimension\n", ip.Dim)
	if ip.Dim == 2 {
		fmt.Fprintf(w, "[%v]\t\t\t= Plane Stress\n", ip.PlaneStress)
		fmt.Fprintf(w, "%8.5f\t\t= Thickness\n", ip.Thickness)
	}
	for _, p := range []struct {
		name string
		v    Values
	}{{"E", ip.E}, {"V", ip.V}, {"El", ip.El}, {"Et", ip.Et}, {"Gl", ip.Gl}, {"Vl", ip.Vl}, {"Vt", ip.Vt}} {
		if len(p.v) != 0 {
			fmt.Fprintf(w, "%v\t\t= %s\n", []float64(p.v), p.name)
		}
	}
}

func (ip *MaterialInput) setDefaults() {
	if ip.Dim == 0 {
		ip.Dim = 3
	}
	if ip.Thickness == 0 {
		ip.Thickness = 1
	}
	defaultAxes := func(a1, a2 *[]float64) {
		if len(*a1) == 0 {
			*a1 = []float64{1, 0, 0}
		}
		if len(*a2) == 0 {
			*a2 = []float64{0, 1, 0}
		}
	}
	defaultAxes(&ip.AxisL, &ip.AxisT)
	defaultAxes(&ip.Axis1, &ip.Axis2)
}

func (ip *MaterialInput) require(names ...string) error {
	values := map[string]Values{"E": ip.E, "V": ip.V, "El": ip.El, "Et": ip.Et, "Gl": ip.Gl, "Vl": ip.Vl, "Vt": ip.Vt}
	for _, name := range names {
		if len(values[name]) == 0 {
			return fmt.Errorf("%w: %s law needs %s", ErrInput, ip.Law, name)
		}
	}
	return nil
}

// BuildLaw constructs the elastic law described by the input
func (ip *MaterialInput) BuildLaw() (law materials.ElasticLaw, err error) {
	var kind materials.LawKind
	if kind, err = materials.ParseLawKind(ip.Law); err != nil {
		return
	}
	ip.setDefaults()
	switch kind {
	case materials.Isotropic:
		if err = ip.require("E", "V"); err != nil {
			return
		}
		var il *materials.IsotropicLaw
		if il, err = materials.NewIsotropicLaw(ip.Dim, ip.E.Field(), ip.V.Field(), ip.PlaneStress, ip.Thickness); err != nil {
			return nil, err
		}
		return il, nil
	case materials.TransverselyIsotropic:
		if err = ip.require("El", "Et", "Gl", "Vl", "Vt"); err != nil {
			return
		}
		var ti *materials.TransverselyIsotropicLaw
		if ti, err = materials.NewTransverselyIsotropicLaw(ip.Dim, ip.El.Field(), ip.Et.Field(), ip.Gl.Field(),
			ip.Vl.Field(), ip.Vt.Field(), ip.AxisL, ip.AxisT, ip.PlaneStress, ip.Thickness); err != nil {
			return nil, err
		}
		return ti, nil
	case materials.Anisotropic:
		if len(ip.Stiffness) == 0 {
			return nil, fmt.Errorf("%w: Anisotropic law needs Stiffness", ErrInput)
		}
		var C utils.Matrix
		if C, err = matrixFromRows(ip.Stiffness); err != nil {
			return
		}
		var al *materials.AnisotropicLaw
		if al, err = materials.NewAnisotropicLaw(ip.Dim, materials.Batch{C}, ip.UseVoigt, ip.Axis1, ip.Axis2, ip.Thickness); err != nil {
			return nil, err
		}
		return al, nil
	}
	return nil, fmt.Errorf("%w: law %s", ErrInput, kind)
}

func matrixFromRows(rows [][]float64) (M utils.Matrix, err error) {
	for i, row := range rows {
		if len(row) != len(rows) {
			err = fmt.Errorf("%w: Stiffness row %d has %d entries, expected %d", ErrInput, i, len(row), len(rows))
			return
		}
	}
	M = utils.NewMatrixFromRows(rows)
	return
}
