package InputParameters

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gofea/materials"
)

func TestParseIsotropic(t *testing.T) {
	fileInput := []byte(`
Title: Steel plate
Law: isotropic
Dim: 2
PlaneStress: true
Thickness: 0.01
E: 210000
V: [0.3]
`)
	var input MaterialInput
	require.NoError(t, input.Parse(fileInput))
	assert.Equal(t, Values{210000}, input.E)
	assert.Equal(t, Values{0.3}, input.V)
	assert.Equal(t, 0.01, input.Thickness)

	var buf bytes.Buffer
	input.Print(&buf)
	assert.Contains(t, buf.String(), "Steel plate")
	assert.Contains(t, buf.String(), "= Plane Stress")

	law, err := input.BuildLaw()
	require.NoError(t, err)
	assert.Equal(t, materials.Isotropic, law.Kind())
	assert.Equal(t, "Plane Stress", law.Simplification())
	assert.Equal(t, 0.01, law.Thickness())
	il, ok := law.(*materials.IsotropicLaw)
	require.True(t, ok)
	assert.InDelta(t, 69230.77, il.Lambda()[0], 0.01)
}

func TestParseTransverselyIsotropic(t *testing.T) {
	fileInput := []byte(`
Title: Wood
Law: TransverselyIsotropic
El: [15716.16, 12000]
Et: 232.6
Gl: 557.5
Vl: 0.02
Vt: 0.44
AxisL: [0, 1, 0]
AxisT: [1, 0, 0]
`)
	var input MaterialInput
	require.NoError(t, input.Parse(fileInput))
	law, err := input.BuildLaw()
	require.NoError(t, err)
	assert.Equal(t, 3, law.Dim())
	assert.True(t, law.IsHeterogeneous())
	C, err := law.C()
	require.NoError(t, err)
	assert.Len(t, C, 2)
	assert.Greater(t, C[0].At(1, 1), C[1].At(1, 1))
}

func TestParseAnisotropic(t *testing.T) {
	fileInput := []byte(`
Law: Anisotropic
Dim: 2
UseVoigt: true
Stiffness:
  - [100, 20, 0]
  - [20, 40, 0]
  - [0, 0, 15]
Axis1: [0, 1]
Axis2: [-1, 0]
`)
	var input MaterialInput
	require.NoError(t, input.Parse(fileInput))
	law, err := input.BuildLaw()
	require.NoError(t, err)
	C, err := law.C()
	require.NoError(t, err)
	assert.InDelta(t, 40, C[0].At(0, 0), 1.e-12)
	assert.InDelta(t, 30, C[0].At(2, 2), 1.e-12)
	_, err = law.WalpoleDecomposition()
	assert.ErrorIs(t, err, materials.ErrUnsupported)
}

func TestInputErrors(t *testing.T) {
	var input MaterialInput
	assert.Error(t, input.Parse([]byte("E: [a, b]\n")))

	input = MaterialInput{Law: "Isotropic", E: Values{1}}
	_, err := input.BuildLaw()
	assert.ErrorIs(t, err, ErrInput)

	input = MaterialInput{Law: "Hyperelastic"}
	_, err = input.BuildLaw()
	assert.ErrorIs(t, err, materials.ErrUnsupported)

	input = MaterialInput{Law: "Anisotropic", Stiffness: [][]float64{{1, 0}, {0}}}
	_, err = input.BuildLaw()
	assert.ErrorIs(t, err, ErrInput)

	input = MaterialInput{Law: "Isotropic", E: Values{1}, V: Values{0.7}}
	_, err = input.BuildLaw()
	assert.ErrorIs(t, err, materials.ErrParameterDomain)
}
