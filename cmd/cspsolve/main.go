// Command cspsolve is a flag-driven demo front-end for pkg/solve: it builds
// one of a few small built-in CSP instances, compiles and solves it, and
// prints the result. Puzzle-specific input formats are out of scope (see
// SPEC_FULL.md Non-goals); this exists to exercise Config's CLI wiring and
// give the compiler a runnable entry point.
package main

import (
	"fmt"
	"io/ioutil"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/semiexp/cspuz-core-sub001/pkg/arith"
	"github.com/semiexp/cspuz-core-sub001/pkg/config"
	"github.com/semiexp/cspuz-core-sub001/pkg/csp"
	"github.com/semiexp/cspuz-core-sub001/pkg/solve"
)

var configFile string
var demoName string

func main() {
	cfg := config.InitialDefault()

	rootCmd := &cobra.Command{
		Use:   "cspsolve",
		Short: "cspsolve",
		Long:  `A demo front-end for the CSP-to-SAT compiler.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	reconcile := cfg.BindFlags(rootCmd.Flags())
	rootCmd.Flags().StringVar(&configFile, "config", "", "path to a YAML file overriding Config fields")
	rootCmd.Flags().StringVar(&demoName, "demo", "nqueens", "built-in demo instance: nqueens, alldifferent")

	rootCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if err := reconcile(); err != nil {
			return err
		}
		if configFile != "" {
			if err := loadConfigFile(configFile, &cfg); err != nil {
				return err
			}
		}
		if cfg.Verbose {
			log.SetLevel(log.DebugLevel)
		}
		return nil
	}

	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("cspsolve failed")
		os.Exit(1)
	}
}

// loadConfigFile overlays YAML fields from path onto cfg. Only exported
// fields present in the file are touched; everything else keeps the
// current value (including whatever the CLI flags already set).
func loadConfigFile(path string, cfg *config.Config) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

func run(cfg config.Config) error {
	var c *csp.CSP
	var vars []csp.IntVar

	switch demoName {
	case "nqueens":
		c, vars = buildNQueens(8)
	case "alldifferent":
		c, vars = buildAllDifferentDemo(5)
	default:
		return fmt.Errorf("unknown demo %q", demoName)
	}

	log.WithFields(log.Fields{
		"demo":     demoName,
		"boolVars": c.NumBoolVars(),
		"intVars":  c.NumIntVars(),
	}).Info("compiling instance")

	model, ok, err := solve.Solve(c, cfg)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("UNSATISFIABLE")
		return nil
	}

	for i, v := range vars {
		fmt.Printf("x%d = %d\n", i, model.Int(v))
	}
	return nil
}

// buildNQueens returns the classic n-queens instance: one IntVar per row
// holding the queen's column, all different, and the two diagonals
// non-colliding.
func buildNQueens(n int) (*csp.CSP, []csp.IntVar) {
	c := csp.New()
	cols := make([]csp.IntVar, n)
	for i := range cols {
		cols[i] = c.NewIntVar(arith.NewDomainRange(0, int32(n-1)))
	}

	exprs := make([]csp.IntExpr, n)
	for i, v := range cols {
		exprs[i] = v.Expr()
	}
	c.AddConstraint(csp.AllDifferent{Exprs: exprs})

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := int32(j - i)
			diff := csp.Linear{{Expr: cols[j].Expr(), Coef: 1}, {Expr: cols[i].Expr(), Coef: -1}}
			c.AddConstraint(csp.Expr{E: csp.Not{X: csp.Cmp{Op: csp.Eq, L: diff, R: csp.IntConst(d)}}})
			c.AddConstraint(csp.Expr{E: csp.Not{X: csp.Cmp{Op: csp.Eq, L: diff, R: csp.IntConst(-d)}}})
		}
	}

	return c, cols
}

func buildAllDifferentDemo(n int) (*csp.CSP, []csp.IntVar) {
	c := csp.New()
	vs := make([]csp.IntVar, n)
	exprs := make([]csp.IntExpr, n)
	for i := range vs {
		vs[i] = c.NewIntVar(arith.NewDomainRange(0, int32(n-1)))
		exprs[i] = vs[i].Expr()
	}
	c.AddConstraint(csp.AllDifferent{Exprs: exprs})
	return c, vs
}
