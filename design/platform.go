package design

import (
	"fmt"
)

// Source languages understood by the build-script assembler. Files in any
// other language are added to the project without a language-specific read
// command.
const (
	LanguageVerilog       = "verilog"
	LanguageSystemVerilog = "systemverilog"
	LanguageVHDL          = "vhdl"
)

// Source is one entry of the ordered source list of a design.
type Source struct {
	Filename string
	Language string
	Library  string
}

// IPCore is an IP core descriptor file consumed by the build script.
type IPCore struct {
	Filename           string
	DisableConstraints bool
}

// HDLOutput is the rendered hardware description of a design.
type HDLOutput struct {
	Content   string
	Extension string
	Language  string
}

// Renderer produces the HDL output of an elaborated design.
type Renderer interface {
	Render(name string) (HDLOutput, error)
}

// Platform is the canonical finalized-design implementation consumed by the
// toolchain. A Platform serves exactly one build; it holds no locks and must
// not be shared between concurrent builds.
type Platform struct {
	device       string
	includePaths []string

	sources     []Source
	edifs       []string
	ips         []IPCore
	signals     []NamedSignal
	constraints []string

	renderer  Renderer
	finalized bool
}

// NewPlatform creates a platform targeting the given device.
func NewPlatform(device string) *Platform {
	return &Platform{device: device}
}

// Device returns the target device identifier.
func (p *Platform) Device() string {
	return p.device
}

// AddSource appends a source file to the ordered source list.
func (p *Platform) AddSource(filename, language, library string) {
	p.sources = append(p.sources, Source{Filename: filename, Language: language, Library: library})
}

// Sources returns the ordered source list.
func (p *Platform) Sources() []Source {
	return p.sources
}

// AddEDIFNetlist appends a pre-synthesized netlist file.
func (p *Platform) AddEDIFNetlist(filename string) {
	p.edifs = append(p.edifs, filename)
}

// EDIFNetlists returns the pre-synthesized netlist files.
func (p *Platform) EDIFNetlists() []string {
	return p.edifs
}

// AddIPCore appends an IP core descriptor file.
func (p *Platform) AddIPCore(filename string, disableConstraints bool) {
	p.ips = append(p.ips, IPCore{Filename: filename, DisableConstraints: disableConstraints})
}

// IPCores returns the IP core descriptor files.
func (p *Platform) IPCores() []IPCore {
	return p.ips
}

// AddIncludePath appends a verilog include path.
func (p *Platform) AddIncludePath(path string) {
	p.includePaths = append(p.includePaths, path)
}

// IncludePaths returns the verilog include paths.
func (p *Platform) IncludePaths() []string {
	return p.includePaths
}

// AddNamedSignal appends a resolved per-signal constraint set.
func (p *Platform) AddNamedSignal(sig NamedSignal) {
	p.signals = append(p.signals, sig)
}

// AddConstraint appends a free-form design constraint fragment.
func (p *Platform) AddConstraint(fragment string) {
	p.constraints = append(p.constraints, fragment)
}

// SetRenderer attaches the HDL renderer of the design. Platforms without a
// renderer describe designs whose HDL comes entirely from source files.
func (p *Platform) SetRenderer(r Renderer) {
	p.renderer = r
}

// Finalize resolves the one-time net list of the design. It must be called
// exactly once per build.
func (p *Platform) Finalize() error {
	if p.finalized {
		return fmt.Errorf("design already finalized")
	}
	p.finalized = true
	return nil
}

// Resolve returns the per-signal constraints and free-form design constraints
// of the finalized design.
func (p *Platform) Resolve() ([]NamedSignal, []string, error) {
	if !p.finalized {
		return nil, nil, fmt.Errorf("design not finalized")
	}
	return p.signals, p.constraints, nil
}

// Render produces the HDL output of the design. A design without a renderer
// reports ok == false.
func (p *Platform) Render(name string) (HDLOutput, bool, error) {
	if p.renderer == nil {
		return HDLOutput{}, false, nil
	}
	out, err := p.renderer.Render(name)
	if err != nil {
		return HDLOutput{}, false, err
	}
	return out, true, nil
}
