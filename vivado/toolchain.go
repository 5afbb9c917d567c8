// Package vivado generates the constraint file and multi-stage build script
// of a Vivado build and drives the tool on the result.
package vivado

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/hdltools/fbt/design"
	"github.com/hdltools/fbt/util"
)

// Design is the finalized-design view the toolchain consumes. The
// elaboration step producing it is an external collaborator;
// design.Platform is the canonical implementation.
type Design interface {
	// Finalize resolves the one-time net list. It is called exactly once
	// per build.
	Finalize() error
	// Device returns the target device identifier.
	Device() string
	// Sources returns the ordered source list.
	Sources() []design.Source
	// AddSource appends a source file produced during the build.
	AddSource(filename, language, library string)
	// EDIFNetlists returns the pre-synthesized netlist files.
	EDIFNetlists() []string
	// IPCores returns the IP core descriptor files.
	IPCores() []design.IPCore
	// IncludePaths returns the verilog include paths.
	IncludePaths() []string
	// AddConstraint appends a free-form design constraint fragment.
	AddConstraint(fragment string)
	// Resolve returns the per-signal and free-form constraints of the
	// finalized design.
	Resolve() ([]design.NamedSignal, []string, error)
	// Render produces the HDL output of the design, or ok == false when the
	// design has no generated HDL.
	Render(name string) (out design.HDLOutput, ok bool, err error)
}

// Toolchain owns one Vivado build: the timing registry, the per-stage
// directives, and the user command hooks. A Toolchain must not be shared
// between concurrent builds; each build needs its own instance.
type Toolchain struct {
	PreSynthesisCommands []Hook
	PrePlacementCommands []Hook
	PreRoutingCommands   []Hook
	BitstreamCommands    []Hook
	AdditionalCommands   []Hook

	// Incremental reads back the routed checkpoint of the previous build
	// before placement.
	Incremental bool

	SynthDirective string
	OptDirective   string
	PlaceDirective string
	// PostPlacePhysOptDirective enables physical optimization after
	// placement when non-empty.
	PostPlacePhysOptDirective string
	RouteDirective            string
	PostRoutePhysOptDirective string

	Timing *TimingConstraints
}

// NewToolchain creates a toolchain with default directives and an open
// timing registry.
func NewToolchain() *Toolchain {
	return &Toolchain{
		SynthDirective:            "default",
		OptDirective:              "default",
		PlaceDirective:            "default",
		RouteDirective:            "default",
		PostRoutePhysOptDirective: "default",
		Timing:                    NewTimingConstraints(),
	}
}

// BuildConfig holds the per-call settings of one build.
type BuildConfig struct {
	// BuildDir is the directory all build artifacts are written to.
	// Defaults to "build".
	BuildDir string
	// BuildName names the build and all generated files. Defaults to "top".
	BuildName string
	// Run executes the generated script after writing the artifacts.
	Run bool
	// SynthMode selects the synthesis mode. Defaults to SynthModeVivado.
	SynthMode string
	// EnableXPM enables the Xilinx Parameterized Macros libraries.
	EnableXPM bool
}

// Build runs the end-to-end build: it creates the build directory, finalizes
// the design, drains the timing registry into the design constraints, writes
// the HDL output, the constraint file and the build script, and optionally
// runs the tool on the result. All file writes happen under cfg.BuildDir; the
// working directory of the process is never changed.
func (t *Toolchain) Build(d Design, cfg BuildConfig) error {
	if cfg.BuildDir == "" {
		cfg.BuildDir = "build"
	}
	if cfg.BuildName == "" {
		cfg.BuildName = "top"
	}
	if cfg.SynthMode == "" {
		cfg.SynthMode = SynthModeVivado
	}
	if !validSynthMode(cfg.SynthMode) {
		return &ConfigurationError{Reason: fmt.Sprintf("unknown synthesis mode %q", cfg.SynthMode)}
	}

	// Create build directory
	if err := os.MkdirAll(cfg.BuildDir, util.DirMode); err != nil {
		return err
	}

	// Finalize design
	if err := d.Finalize(); err != nil {
		return err
	}

	// Generate timing constraints
	fragments, err := t.Timing.Drain()
	if err != nil {
		return err
	}
	for _, fragment := range fragments {
		d.AddConstraint(fragment)
	}

	// Generate HDL output
	out, ok, err := d.Render(cfg.BuildName)
	if err != nil {
		return err
	}
	if ok {
		hdlFile := cfg.BuildName + out.Extension
		if err := util.WriteFile(path.Join(cfg.BuildDir, hdlFile), out.Content); err != nil {
			return err
		}
		d.AddSource(hdlFile, out.Language, "")
	}

	// Generate design constraints (.xdc)
	signals, constraints, err := d.Resolve()
	if err != nil {
		return err
	}
	xdc, err := BuildXDC(signals, constraints)
	if err != nil {
		return err
	}
	if err := util.WriteFile(path.Join(cfg.BuildDir, cfg.BuildName+".xdc"), xdc); err != nil {
		return err
	}

	// Generate build script (.tcl)
	script, err := t.BuildScript(d, cfg.BuildName, cfg.SynthMode, cfg.EnableXPM)
	if err != nil {
		return err
	}
	if err := util.WriteFile(path.Join(cfg.BuildDir, cfg.BuildName+".tcl"), strings.Join(script, "\n")); err != nil {
		return err
	}

	// Run
	if !cfg.Run {
		return nil
	}
	if cfg.SynthMode == SynthModeYosys {
		if err := runYosys(cfg.BuildDir, cfg.BuildName, d); err != nil {
			return err
		}
	}
	wrapper, err := writeWrapperScript(cfg.BuildDir, cfg.BuildName)
	if err != nil {
		return err
	}
	return runWrapperScript(cfg.BuildDir, wrapper)
}
