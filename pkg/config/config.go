// Package config holds the compiler-wide Config knob bundle (spec.md §6.2),
// a process-wide default cell, and the pflag wiring that exposes most
// fields to a CLI front-end (see BindFlags). It mirrors cspuz_core::config::Config field for
// field; the thread_local! default cell of the Rust source becomes a
// mutex-guarded package-level variable, since Go has no implicit
// thread-local storage and the spec only promises "not synchronized across
// concurrent solves" — callers that need isolation pass a Config explicitly.
package config

import (
	"fmt"
	"sync"

	"github.com/spf13/pflag"
)

// Backend selects which SAT backend implementation a solve session talks
// to. This Go port ships only Glucose-equivalent (gini); External and
// CaDiCaL are kept as named values so Config wiring and CLI flags have
// somewhere to point, matching the three-way Backend enum of the original
// source, but selecting them is a structural (caller) error (spec.md §7,
// "Backend unavailability").
type Backend int

const (
	BackendGini Backend = iota
	BackendExternal
	BackendCaDiCaL
)

func (b Backend) String() string {
	switch b {
	case BackendGini:
		return "gini"
	case BackendExternal:
		return "external"
	case BackendCaDiCaL:
		return "cadical"
	}
	return "unknown"
}

// OrderEncodingLinearMode selects among the three equivalent
// implementations of the native order-encoding linear propagator mentioned
// in spec.md §9 ("Native linear propagator — modes"). This port has no
// native linear propagator: the mode is parsed and stored, and no encoding
// step depends on it.
type OrderEncodingLinearMode int

const (
	OrderEncodingLinearCpp OrderEncodingLinearMode = iota
	OrderEncodingLinearRust
	OrderEncodingLinearRustOptimized
)

// GraphDivisionMode is a separate type with the same value names as
// csp.GraphDivisionMode, declared here so that Config does not import
// pkg/csp just for an enum.
type GraphDivisionMode int

const (
	GraphDivisionModeCpp GraphDivisionMode = iota
	GraphDivisionModeRust
)

// Config bundles every tunable of spec.md §6.2.
type Config struct {
	UseConstantFolding       bool
	UseConstantPropagation   bool
	UseNormDomainRefinement  bool
	DomainProductThreshold   int

	NativeLinearEncodingTerms                    int
	NativeLinearEncodingDomainProductThreshold    int

	UseDirectEncoding            bool
	UseLogEncoding               bool
	ForceUseLogEncoding          bool
	UseNativeExtensionSupports   bool
	DirectEncodingForBinaryVars  bool
	MergeEquivalentVariables     bool
	AlldifferentBijectionConstraints bool

	GlucoseRandomSeed   *float64
	GlucoseRndInitAct   bool
	DumpAnalysisInfo    bool

	Backend                  Backend
	OrderEncodingLinearMode  OrderEncodingLinearMode
	GraphDivisionMode        GraphDivisionMode

	OptimizePolarity bool
	Verbose          bool
}

// InitialDefault returns the hard-coded factory defaults (spec.md §6.2
// table).
func InitialDefault() Config {
	return Config{
		UseConstantFolding:      true,
		UseConstantPropagation:  true,
		UseNormDomainRefinement: true,
		DomainProductThreshold:  1000,

		NativeLinearEncodingTerms:                 4,
		NativeLinearEncodingDomainProductThreshold: 20,

		UseDirectEncoding:           true,
		UseLogEncoding:              true,
		ForceUseLogEncoding:         false,
		UseNativeExtensionSupports:  false,
		DirectEncodingForBinaryVars: false,
		MergeEquivalentVariables:    false,
		AlldifferentBijectionConstraints: false,

		GlucoseRandomSeed: nil,
		GlucoseRndInitAct: false,
		DumpAnalysisInfo:  false,

		Backend:                 BackendGini,
		OrderEncodingLinearMode: OrderEncodingLinearCpp,
		GraphDivisionMode:       GraphDivisionModeCpp,

		OptimizePolarity: false,
		Verbose:          false,
	}
}

var (
	defaultMu  sync.RWMutex
	defaultCfg = InitialDefault()
)

// Default returns a copy of the current process-wide default Config. Reads
// and writes are serialized by defaultMu, but — exactly as spec.md §5
// documents for the Rust thread_local! cell — callers that need several
// distinct configurations live at once must not rely on this cell and
// should instead thread a Config explicitly through each solve.
func Default() Config {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultCfg
}

// SetDefault replaces the process-wide default Config. Must not be called
// concurrently with an in-flight solve that reads Default().
func SetDefault(c Config) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultCfg = c
}

// boolFlag is one (pointer, flag-name, description) triple bound as a pair
// of --enable-X/--disable-X boolean flags, mirroring Config::parse_from_args'
// getopts-based enable/disable pairing in the original Rust source exactly.
type boolFlag struct {
	ptr  *bool
	name string
	desc string
}

// BindFlags registers Config fields on fs as flags (DirectEncodingForBinaryVars,
// GlucoseRandomSeed, GlucoseRndInitAct, GraphDivisionMode and
// OptimizePolarity get no flag) and returns a
// closure that must be called after fs.Parse to reconcile the
// --enable-X/--disable-X pairs (pflag has no native "mutually exclusive,
// last-wins-if-neither-given" pairing, so we bind two flags per boolean and
// resolve them by hand, exactly as the original's getopts-based parser
// does with opt_present).
func (c *Config) BindFlags(fs *pflag.FlagSet) func() error {
	flags := []boolFlag{
		{&c.UseConstantFolding, "constant-folding", "constant folding"},
		{&c.UseConstantPropagation, "constant-propagation", "constant propagation"},
		{&c.UseNormDomainRefinement, "norm-domain-refinement", "domain refinement in normalized CSP"},
		{&c.UseDirectEncoding, "direct-encoding", "use direct encoding if applicable"},
		{&c.UseLogEncoding, "log-encoding", "use log encoding if applicable"},
		{&c.ForceUseLogEncoding, "force-log-encoding", "use log encoding for all int variables"},
		{&c.UseNativeExtensionSupports, "use-native-extension-supports", "use native propagator for extension (supports) constraints"},
		{&c.MergeEquivalentVariables, "merge-equivalent-variables", "merge equivalent variables (e.g. caused by (iff x y))"},
		{&c.AlldifferentBijectionConstraints, "alldifferent-bijection-constraints", "auxiliary constraints for bijective alldifferent constraints (accepted; the encoder still emits only pairwise inequalities)"},
		{&c.DumpAnalysisInfo, "dump-analysis-info", "dump analysis info in the SAT backend"},
		{&c.Verbose, "verbose", "show verbose outputs"},
	}

	enabled := make([]*bool, len(flags))
	disabled := make([]*bool, len(flags))
	for i, f := range flags {
		def := *f.ptr
		enabled[i] = fs.Bool("enable-"+f.name, def, "Enable "+f.desc+".")
		disabled[i] = fs.Bool("disable-"+f.name, !def, "Disable "+f.desc+".")
	}

	fs.IntVar(&c.DomainProductThreshold, "domain-product-threshold", c.DomainProductThreshold,
		"threshold of domain product for introducing an auxiliary variable by Tseitin transformation")
	fs.IntVar(&c.NativeLinearEncodingTerms, "native-linear-encoding-terms", c.NativeLinearEncodingTerms,
		"maximum number of terms in a linear sum encoded by the native linear constraint (0 disables it)")
	fs.IntVar(&c.NativeLinearEncodingDomainProductThreshold, "native-linear-encoding-domain-product", c.NativeLinearEncodingDomainProductThreshold,
		"minimum domain product of linear sums encoded by the native linear constraint")

	backendStr := fs.String("backend", c.Backend.String(), "SAT backend: gini, external, cadical")
	modeStr := fs.String("order-encoding-linear-mode", "cpp", "native linear constraint implementation: cpp, rust, rust-optimized")

	return func() error {
		for i, f := range flags {
			switch {
			case fs.Changed("enable-"+f.name) && fs.Changed("disable-"+f.name):
				return fmt.Errorf("conflicting options enable-%s and disable-%s specified at the same time", f.name, f.name)
			case fs.Changed("enable-" + f.name):
				*f.ptr = *enabled[i]
			case fs.Changed("disable-" + f.name):
				*f.ptr = !*disabled[i]
			}
		}
		switch *backendStr {
		case "gini", "glucose":
			c.Backend = BackendGini
		case "external":
			c.Backend = BackendExternal
		case "cadical":
			c.Backend = BackendCaDiCaL
		default:
			return fmt.Errorf("unknown backend: %s", *backendStr)
		}
		switch *modeStr {
		case "cpp":
			c.OrderEncodingLinearMode = OrderEncodingLinearCpp
		case "rust":
			c.OrderEncodingLinearMode = OrderEncodingLinearRust
		case "rust-optimized":
			c.OrderEncodingLinearMode = OrderEncodingLinearRustOptimized
		default:
			return fmt.Errorf("unknown order-encoding-linear-mode: %s", *modeStr)
		}
		return nil
	}
}
