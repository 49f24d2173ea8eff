package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gofea/elements"
)

type ShapeRun struct {
	Element string
	Point   []float64
	Order   int
	Check   bool
	Tol     float64
}

// ShapeCmd represents the shape command
var ShapeCmd = &cobra.Command{
	Use:   "shape",
	Short: "Evaluate prism shape functions and their derivatives at a reference point",
	Long: `
Evaluates the shape functions of a prism element at (r,s,t) and prints N and the
requested derivative matrix, one row per node and one column per reference direction.

gofea shape -e PRISM15 -p 0.2,0.3,0.5 --order 2 --check`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		sr := &ShapeRun{}
		if sr.Element, err = cmd.Flags().GetString("element"); err != nil {
			return
		}
		if sr.Point, err = cmd.Flags().GetFloat64Slice("point"); err != nil {
			return
		}
		sr.Order, _ = cmd.Flags().GetInt("order")
		sr.Check, _ = cmd.Flags().GetBool("check")
		sr.Tol = viper.GetFloat64("check-tolerance")
		return RunShape(cmd.OutOrStdout(), sr)
	},
}

func init() {
	rootCmd.AddCommand(ShapeCmd)
	ShapeCmd.Flags().StringP("element", "e", elements.PRISM6.String(), "element type: PRISM6 or PRISM15")
	ShapeCmd.Flags().Float64SliceP("point", "p", []float64{0, 0, -1}, "reference coordinates r,s,t")
	ShapeCmd.Flags().IntP("order", "o", 1, "derivative order to print, 1 to 4, 0 prints only N")
	ShapeCmd.Flags().BoolP("check", "c", false, "compare the derivatives with finite differences")
	ShapeCmd.Flags().Float64("tol", 1.e-6, "residual above which --check fails")
	if err := viper.BindPFlag("check-tolerance", ShapeCmd.Flags().Lookup("tol")); err != nil {
		panic(err)
	}
}

func RunShape(w io.Writer, sr *ShapeRun) (err error) {
	var ss elements.ShapeFunctionSet
	if ss, err = elements.GetByName(sr.Element); err != nil {
		return
	}
	if len(sr.Point) != 3 {
		return fmt.Errorf("a reference point needs 3 coordinates r,s,t, have %d", len(sr.Point))
	}
	r, s, t := sr.Point[0], sr.Point[1], sr.Point[2]
	start := time.Now()
	fmt.Fprintf(w, "%s at (r,s,t) = (%g, %g, %g)\n", ss.Type(), r, s, t)
	fmt.Fprintf(w, "N = %v\n", ss.Evaluate(r, s, t))
	if sr.Order != 0 {
		D, err := ss.Derivative(sr.Order, r, s, t)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Derivative order %d:\n%s", sr.Order, D.String())
	}
	if sr.Check {
		gradRes := elements.GradientResidual(ss, r, s, t)
		fmt.Fprintf(w, "Gradient residual = %8.3e\n", gradRes)
		secondRes, err := elements.SecondDerivativeResidual(ss, r, s, t)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Second derivative residual = %8.3e\n", secondRes)
		if gradRes > sr.Tol || secondRes > sr.Tol {
			return fmt.Errorf("finite difference check failed, tolerance %g", sr.Tol)
		}
	}
	slog.Debug("shape evaluated", slog.String("element", ss.Type().String()), slog.Duration("elapsed", time.Since(start)))
	return
}
