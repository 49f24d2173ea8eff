package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/notargets/gofea/InputParameters"
	"github.com/notargets/gofea/materials"
)

type MaterialRun struct {
	InputFile string
	Block     bool
}

const exampleMaterialFile = `
########################################
Title: "Steel"
Law: Isotropic # Can be TransverselyIsotropic or Anisotropic
Dim: 3
E: 210000
V: 0.3
########################################
`

// MaterialCmd represents the material command
var MaterialCmd = &cobra.Command{
	Use:   "material",
	Short: "Build an elastic law from a YAML file and print its stiffness and compliance",
	Long: `
Reads a YAML material description, builds the elastic law and prints C, S and,
when the law supports it, the Walpole decomposition coefficients.

gofea material -I material.yaml`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		mr := &MaterialRun{}
		if mr.InputFile, err = cmd.Flags().GetString("inputFile"); err != nil {
			return
		}
		mr.Block, _ = cmd.Flags().GetBool("block")
		if len(mr.InputFile) == 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Example File:%s\n", exampleMaterialFile)
			return fmt.Errorf("must supply a material file (-I, --inputFile) in YAML format")
		}
		return RunMaterial(cmd.OutOrStdout(), mr)
	},
}

func init() {
	rootCmd.AddCommand(MaterialCmd)
	MaterialCmd.Flags().StringP("inputFile", "I", "", "YAML file describing the material law")
	MaterialCmd.Flags().BoolP("block", "b", false, "assemble the per point stiffness as a sparse block diagonal operator")
}

func RunMaterial(w io.Writer, mr *MaterialRun) (err error) {
	var (
		data  []byte
		ip    = &InputParameters.MaterialInput{}
		law   materials.ElasticLaw
		start = time.Now()
	)
	if data, err = os.ReadFile(mr.InputFile); err != nil {
		return
	}
	if err = ip.Parse(data); err != nil {
		return
	}
	if law, err = ip.BuildLaw(); err != nil {
		return
	}
	ip.Print(w)
	fmt.Fprintf(w, "%s\n[%s]\t\t= Simplification\n", law.String(), law.Simplification())
	var C, S materials.Batch
	if C, err = law.C(); err != nil {
		return
	}
	if S, err = law.S(); err != nil {
		return
	}
	for k := range C {
		if law.IsHeterogeneous() {
			fmt.Fprintf(w, "Point %d\n", k)
		}
		fmt.Fprintf(w, "C =\n%sS =\n%s", C[k].String(), S[k].String())
	}
	wp, err := law.WalpoleDecomposition()
	switch {
	case err == nil:
		fmt.Fprintf(w, "Walpole coefficients = %v\n", wp.Coefficients)
	case law.Kind() == materials.Anisotropic:
		fmt.Fprintf(w, "Walpole decomposition not available for %s\n", law.Kind())
		err = nil
	default:
		return
	}
	if mr.Block {
		B := C.BlockDiagonal()
		nr, nc := B.Dims()
		fmt.Fprintf(w, "Block diagonal stiffness: %d x %d, %d non zeros\n", nr, nc, B.NNZ())
	}
	slog.Debug("material built", slog.String("law", law.Kind().String()),
		slog.Int("points", law.Len()), slog.Duration("elapsed", time.Since(start)))
	return
}
