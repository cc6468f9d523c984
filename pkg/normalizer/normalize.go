// Package normalizer lowers a pkg/csp.CSP into a pkg/normcsp.NormCSP:
// folding and propagating constants, Tseitin-transforming the Boolean
// expression trees into clauses over plain SAT-level literals, translating
// each structural Stmt into its normcsp counterpart, and optionally merging
// equivalent variables or refining domains from unit linear facts — exactly
// the passes catalogued in SPEC_FULL.md's Normalizer module.
package normalizer

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/semiexp/cspuz-core-sub001/pkg/arith"
	"github.com/semiexp/cspuz-core-sub001/pkg/config"
	"github.com/semiexp/cspuz-core-sub001/pkg/csp"
	"github.com/semiexp/cspuz-core-sub001/pkg/normcsp"
)

// normalizer carries the working state of a single Normalize call: the
// config deciding which passes run, the NormCSP under construction, the
// mapping from original to normalized variables, and memo tables that give
// repeated subexpressions a single aux variable instead of one each.
type normalizer struct {
	cfg  config.Config
	norm *normcsp.NormCSP

	boolVars  map[csp.BoolVar]normcsp.NBoolVar
	intVars   map[csp.IntVar]normcsp.NIntVar
	intDomain map[csp.IntVar]arith.Domain

	intMemo map[string]normcsp.NIntVar
	trueVar *normcsp.NBoolVar

	uf *boolEquivUF
}

// Normalize lowers c into a fresh NormCSP under cfg. It never mutates c.
func Normalize(c *csp.CSP, cfg config.Config) (*normcsp.NormCSP, error) {
	log.WithFields(log.Fields{
		"boolVars": c.NumBoolVars(),
		"intVars":  c.NumIntVars(),
		"stmts":    len(c.Stmts()),
	}).Debug("normalize: start")

	nz := &normalizer{
		cfg:       cfg,
		norm:      normcsp.New(),
		boolVars:  make(map[csp.BoolVar]normcsp.NBoolVar, c.NumBoolVars()),
		intVars:   make(map[csp.IntVar]normcsp.NIntVar, c.NumIntVars()),
		intDomain: make(map[csp.IntVar]arith.Domain, c.NumIntVars()),
		intMemo:   make(map[string]normcsp.NIntVar),
		uf:        newBoolEquivUF(0),
	}

	for i := 0; i < c.NumBoolVars(); i++ {
		nz.boolVars[csp.BoolVar(i)] = nz.norm.NewBoolVar()
	}
	for i := 0; i < c.NumIntVars(); i++ {
		v := csp.IntVar(i)
		d := c.DomainOf(v)
		nz.intDomain[v] = d
		nz.intVars[v] = nz.norm.NewIntVar(normcsp.DomainRepresentation{Domain: d})
	}

	stmts := c.Stmts()
	if cfg.UseConstantFolding || cfg.UseConstantPropagation {
		env := newConstEnv()
		if cfg.UseConstantPropagation {
			env.learn(stmts)
			// Folding substitutes the learned facts away, so assert each one
			// directly on its variable.
			for i := 0; i < c.NumBoolVars(); i++ {
				if val, ok := env.boolConst[csp.BoolVar(i)]; ok {
					lit := normcsp.Lit(nz.boolVars[csp.BoolVar(i)])
					if !val {
						lit = lit.Not()
					}
					nz.norm.AddClause(normcsp.NewClause().AddBoolLit(lit))
				}
			}
			for i := 0; i < c.NumIntVars(); i++ {
				if val, ok := env.intConst[csp.IntVar(i)]; ok {
					sum := normcsp.SingleVar(nz.intVars[csp.IntVar(i)]).Sub(normcsp.ConstSum(val))
					nz.norm.AddClause(normcsp.NewClause().AddLinearLit(normcsp.LinearLit{Sum: sum, Op: normcsp.Eq}))
				}
			}
		}
		folded := make([]csp.Stmt, len(stmts))
		for i, s := range stmts {
			folded[i] = env.foldStmt(s)
		}
		stmts = folded
	}

	for _, s := range stmts {
		if err := nz.normalizeStmt(s); err != nil {
			return nil, err
		}
	}

	if cfg.MergeEquivalentVariables {
		nz.uf.grow(nz.norm.NumBoolVars())
		nz.norm.RewriteBoolLits(nz.uf.canonical)
	}
	if cfg.UseNormDomainRefinement {
		nz.refineDomains()
	}

	log.WithFields(log.Fields{
		"boolVars": nz.norm.NumBoolVars(),
		"clauses":  len(nz.norm.Clauses()),
	}).Debug("normalize: done")

	return nz.norm, nil
}

func (nz *normalizer) normalizeStmt(s csp.Stmt) error {
	switch t := s.(type) {
	case csp.Expr:
		if c, ok := t.E.(csp.BoolConst); ok {
			if !bool(c) {
				nz.norm.AddClause(normcsp.NewClause())
			}
			return nil
		}
		nz.norm.AddClause(addLitToClause(normcsp.NewClause(), nz.normalizeBool(t.E)))

	case csp.AllDifferent:
		vars := make([]normcsp.NIntVar, len(t.Exprs))
		for i, e := range t.Exprs {
			vars[i] = nz.normalizeInt(e)
		}
		nz.norm.AddAllDifferent(normcsp.AllDifferentConstraint{Vars: vars})

	case csp.Circuit:
		vars := make([]normcsp.NIntVar, len(t.Exprs))
		for i, e := range t.Exprs {
			vars[i] = nz.normalizeInt(e)
		}
		nz.norm.AddCircuit(normcsp.CircuitConstraint{Vars: vars})

	case csp.ActiveVerticesConnected:
		active := make([]normcsp.BoolLit, len(t.Vertices))
		for i, e := range t.Vertices {
			active[i] = nz.reify(nz.normalizeBool(e))
		}
		edges := make([]normcsp.Edge, len(t.Edges))
		for i, e := range t.Edges {
			edges[i] = normcsp.Edge{U: e.U, V: e.V}
		}
		nz.norm.AddActiveVerticesConnected(normcsp.ActiveVerticesConnectedConstraint{Active: active, Edges: edges})

	case csp.ExtensionSupports:
		vars := make([]normcsp.NIntVar, len(t.Exprs))
		for i, e := range t.Exprs {
			vars[i] = nz.normalizeInt(e)
		}
		nz.norm.AddExtensionSupports(normcsp.ExtensionSupportsConstraint{Vars: vars, Supports: t.Supports})

	case csp.GraphDivision:
		sizes := make([]normcsp.NIntVar, len(t.Sizes))
		for i := range t.Sizes {
			if t.SizesSet[i] {
				sizes[i] = nz.normalizeInt(t.Sizes[i])
			} else {
				sizes[i] = -1
			}
		}
		edges := make([]normcsp.Edge, len(t.Edges))
		for i, e := range t.Edges {
			edges[i] = normcsp.Edge{U: e.U, V: e.V}
		}
		edgeLits := make([]normcsp.BoolLit, len(t.EdgeLits))
		for i, e := range t.EdgeLits {
			edgeLits[i] = nz.reify(nz.normalizeBool(e))
		}
		nz.norm.AddGraphDivision(normcsp.GraphDivisionConstraint{
			Sizes:            sizes,
			SizesSet:         t.SizesSet,
			Edges:            edges,
			EdgeLits:         edgeLits,
			AllowBlankRegion: t.Opts.AllowBlankRegion,
			RequireTree:      t.Opts.RequireTree,
		})

	case csp.CustomConstraint:
		inputs := make([]normcsp.BoolLit, len(t.Inputs))
		for i, e := range t.Inputs {
			inputs[i] = nz.reify(nz.normalizeBool(e))
		}
		prop := t.Gen.Generate(t.Inputs)
		nz.norm.AddCustomConstraint(normcsp.CustomConstraint{Inputs: inputs, Propagator: prop})

	default:
		return fmt.Errorf("normalizer: unknown statement type %T", s)
	}
	return nil
}

// refineDomains tightens a DomainRepresentation variable's domain whenever a
// unit clause asserts a single-term linear fact about it directly (e.g. a
// top-level `x >= 3` that folding left as its own clause rather than
// absorbing into a bigger one).
func (nz *normalizer) refineDomains() {
	for _, c := range nz.norm.Clauses() {
		if len(c.BoolLits) != 0 || len(c.LinearLits) != 1 {
			continue
		}
		ll := c.LinearLits[0]
		if ll.Sum.NumTerms() != 1 {
			continue
		}
		term := ll.Sum.Terms()[0]
		if term.Coef != 1 {
			continue
		}
		if _, ok := nz.norm.IntVarInfo(term.Var).Repr.(normcsp.DomainRepresentation); !ok {
			continue
		}
		k := -ll.Sum.Constant
		cur := nz.norm.DomainOf(term.Var)
		switch ll.Op {
		case normcsp.Eq:
			nz.norm.RefineDomain(term.Var, arith.NewDomainValues([]int32{k}))
		case normcsp.Ge:
			nz.norm.RefineDomain(term.Var, cur.RefineLowerBound(k))
		case normcsp.Le:
			nz.norm.RefineDomain(term.Var, cur.RefineUpperBound(k))
		case normcsp.Gt:
			nz.norm.RefineDomain(term.Var, cur.RefineLowerBound(k+1))
		case normcsp.Lt:
			nz.norm.RefineDomain(term.Var, cur.RefineUpperBound(k-1))
		}
	}
}
