package design

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// BuildFile is the YAML description of one build: the target device, the
// source inventory, the resolved I/O constraints, and the toolchain settings.
type BuildFile struct {
	Name         string           `yaml:"name"`
	Device       string           `yaml:"device"`
	Sources      []SourceEntry    `yaml:"sources"`
	EDIFs        []string         `yaml:"edifs"`
	IPs          []IPEntry        `yaml:"ips"`
	IncludePaths []string         `yaml:"include_paths"`
	IO           []IOEntry        `yaml:"io"`
	Constraints  []string         `yaml:"constraints"`
	Clocks       []ClockEntry     `yaml:"clocks"`
	FalsePaths   []FalsePathEntry `yaml:"false_paths"`
	Directives   DirectiveEntry   `yaml:"directives"`
	Hooks        HookEntry        `yaml:"hooks"`
	Incremental  bool             `yaml:"incremental"`
}

// SourceEntry describes one source file of the design.
type SourceEntry struct {
	File     string `yaml:"file"`
	Language string `yaml:"language"`
	Library  string `yaml:"library"`
}

// IPEntry describes one IP core descriptor file.
type IPEntry struct {
	File               string `yaml:"file"`
	DisableConstraints bool   `yaml:"disable_constraints"`
}

// IOEntry describes the resolved constraints of one I/O signal. Attributes
// are free-form KEY or KEY=VALUE properties.
type IOEntry struct {
	Signal     string   `yaml:"signal"`
	Sites      []string `yaml:"sites"`
	IOStandard string   `yaml:"iostandard"`
	Drive      int      `yaml:"drive"`
	Inverted   bool     `yaml:"inverted"`
	Attributes []string `yaml:"attributes"`
	Group      string   `yaml:"group"`
	Index      int      `yaml:"index"`
	Sub        string   `yaml:"sub"`
}

// ClockEntry constrains the period of one clock signal in nanoseconds.
type ClockEntry struct {
	Signal string  `yaml:"signal"`
	Period float64 `yaml:"period"`
}

// FalsePathEntry declares two clock domains as asynchronous to each other.
type FalsePathEntry struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// DirectiveEntry holds the per-stage optimization directives. Empty values
// fall back to the toolchain defaults.
type DirectiveEntry struct {
	Synth            string `yaml:"synth"`
	Opt              string `yaml:"opt"`
	Place            string `yaml:"place"`
	PostPlacePhysOpt string `yaml:"post_place_phys_opt"`
	Route            string `yaml:"route"`
	PostRoutePhysOpt string `yaml:"post_route_phys_opt"`
}

// HookEntry holds the user command hooks emitted into the build script.
type HookEntry struct {
	PreSynthesis []string `yaml:"pre_synthesis"`
	PrePlacement []string `yaml:"pre_placement"`
	PreRouting   []string `yaml:"pre_routing"`
	Bitstream    []string `yaml:"bitstream"`
	Additional   []string `yaml:"additional"`
}

// Load reads and parses a build description file.
func Load(path string) (*BuildFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses a build description.
func Parse(data []byte) (*BuildFile, error) {
	var file BuildFile
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse build description: %s", err)
	}
	if file.Device == "" {
		return nil, fmt.Errorf("build description is missing the target device")
	}
	for _, src := range file.Sources {
		switch src.Language {
		case LanguageVerilog, LanguageSystemVerilog, LanguageVHDL, "":
		default:
			return nil, fmt.Errorf("unknown source language %q for %s", src.Language, src.File)
		}
	}
	return &file, nil
}

// Platform converts the build description into a finalizable platform.
func (f *BuildFile) Platform() (*Platform, error) {
	p := NewPlatform(f.Device)
	for _, src := range f.Sources {
		p.AddSource(src.File, src.Language, src.Library)
	}
	for _, edif := range f.EDIFs {
		p.AddEDIFNetlist(edif)
	}
	for _, ip := range f.IPs {
		p.AddIPCore(ip.File, ip.DisableConstraints)
	}
	for _, path := range f.IncludePaths {
		p.AddIncludePath(path)
	}
	for _, io := range f.IO {
		sig, err := io.namedSignal()
		if err != nil {
			return nil, err
		}
		p.AddNamedSignal(sig)
	}
	for _, c := range f.Constraints {
		p.AddConstraint(c)
	}
	return p, nil
}

func (e IOEntry) namedSignal() (NamedSignal, error) {
	if e.Signal == "" {
		return NamedSignal{}, fmt.Errorf("io entry is missing the signal name")
	}
	var others []Constraint
	if e.IOStandard != "" {
		others = append(others, IOStandard{Name: e.IOStandard})
	}
	if e.Drive != 0 {
		others = append(others, Drive{Strength: e.Drive})
	}
	for _, attr := range e.Attributes {
		key, value, _ := strings.Cut(attr, "=")
		if key == "" {
			return NamedSignal{}, fmt.Errorf("empty attribute on signal %s", e.Signal)
		}
		others = append(others, Attribute{Key: key, Value: value})
	}
	if e.Inverted {
		others = append(others, Inverted{Invert: true})
	}
	group := e.Group
	if group == "" {
		group = e.Signal
	}
	return NamedSignal{
		Name:     e.Signal,
		Sites:    e.Sites,
		Others:   others,
		Resource: ResourceName{Group: group, Index: e.Index, Sub: e.Sub},
	}, nil
}
