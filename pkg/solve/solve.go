// Package solve ties pkg/normalizer, pkg/encoder, pkg/satbackend and
// pkg/decoder together into the entry points spec.md describes at its top
// level: finding one model of a CSP, and computing irrefutable facts over a
// set of Boolean or integer answer variables.
package solve

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/semiexp/cspuz-core-sub001/pkg/config"
	"github.com/semiexp/cspuz-core-sub001/pkg/csp"
	"github.com/semiexp/cspuz-core-sub001/pkg/decoder"
	"github.com/semiexp/cspuz-core-sub001/pkg/encoder"
	"github.com/semiexp/cspuz-core-sub001/pkg/normalizer"
	"github.com/semiexp/cspuz-core-sub001/pkg/satbackend"
)

// compile runs the normalizer and encoder, picking a concrete backend from
// cfg.Backend. Only BackendGini is implemented; the other two named values
// exist purely so Config/CLI wiring has somewhere to point (see
// pkg/config's Backend doc comment) and are rejected here with a plain
// fmt.Errorf error. Validation, normalization and encoding failures are
// wrapped with errors.Wrap. All of these are structural (an unsupported
// build configuration or malformed input), never a feasibility outcome.
func compile(c *csp.CSP, cfg config.Config) (*encoder.Result, error) {
	log.WithField("backend", cfg.Backend).Debug("solve: compile start")

	if cfg.Backend != config.BackendGini {
		return nil, fmt.Errorf("solve: backend %s is not available in this build", cfg.Backend)
	}

	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "solve: validate")
	}

	norm, err := normalizer.Normalize(c, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "solve: normalize")
	}

	res, err := encoder.Encode(norm, cfg, satbackend.NewGiniBackend())
	if err != nil {
		return nil, errors.Wrap(err, "solve: encode")
	}
	return res, nil
}

// Solve finds one satisfying assignment of c, running the CEGAR loop over
// every lazily-checked structural constraint (Circuit, ActiveVertices
// Connected, GraphDivision, CustomConstraint) until either a model survives
// every check or the backend reports unsatisfiable.
func Solve(c *csp.CSP, cfg config.Config) (*decoder.Model, bool, error) {
	res, err := compile(c, cfg)
	if err != nil {
		log.WithError(err).Error("solve: compile failed")
		return nil, false, err
	}

	model, ok := decoder.SolveWithLazy(res)
	if !ok {
		log.Info("solve: unsatisfiable")
		return nil, false, nil
	}
	log.Info("solve: satisfying model found")
	return decoder.Decode(c, res, model), true, nil
}

// IrrefutableFacts compiles c once and determines, for every variable in
// answerVars, whether all satisfying assignments agree on its value.
// Variables absent from the returned map are not forced.
func IrrefutableFacts(c *csp.CSP, cfg config.Config, answerVars []csp.BoolVar) (map[csp.BoolVar]bool, error) {
	res, err := compile(c, cfg)
	if err != nil {
		return nil, err
	}
	return decoder.IrrefutableFacts(res, answerVars)
}

// IrrefutableIntFacts is IrrefutableFacts' integer-variable counterpart
// (spec.md §4.5, §8 scenario S1): compiles c once and determines, for every
// variable in answerVars, whether all satisfying assignments agree on its
// value.
func IrrefutableIntFacts(c *csp.CSP, cfg config.Config, answerVars []csp.IntVar) (map[csp.IntVar]int32, error) {
	res, err := compile(c, cfg)
	if err != nil {
		return nil, err
	}
	return decoder.IrrefutableIntFacts(res, answerVars)
}
