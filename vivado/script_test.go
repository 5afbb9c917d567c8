package vivado

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdltools/fbt/design"
)

func fullPlatform() *design.Platform {
	p := design.NewPlatform("xc7a35ticsg324-1L")
	p.AddSource("top.v", design.LanguageVerilog, "")
	p.AddSource("soc.sv", design.LanguageSystemVerilog, "")
	p.AddSource("pll.vhd", design.LanguageVHDL, "work")
	p.AddEDIFNetlist("mac.edif")
	p.AddIPCore("cores/ddr.xci", true)
	p.AddIncludePath("include")
	return p
}

func fullToolchain() *Toolchain {
	t := NewToolchain()
	t.Incremental = true
	t.PostPlacePhysOptDirective = "Explore"
	t.PreSynthesisCommands = Hooks([]string{
		"set_property strategy Flow_PerfOptimized_high [get_runs synth_1]",
	})
	t.PrePlacementCommands = Hooks([]string{
		"report_timing_summary -file {{.BuildName}}_pre_place_timing.rpt",
	})
	t.BitstreamCommands = Hooks([]string{
		"write_cfgmem -force -format bin -interface spix4 -size 16 -loadbit {up 0x0 {{.BuildName}}.bit} -file {{.BuildName}}.bin",
	})
	t.AdditionalCommands = Hooks([]string{
		"write_debug_probes -force {{.BuildName}}.ltx",
	})
	return t
}

func TestBuildScriptGolden(t *testing.T) {
	tcl, err := fullToolchain().BuildScript(fullPlatform(), "top", SynthModeVivado, true)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "script", []byte(strings.Join(tcl, "\n")))
}

func TestBuildScriptStageOrder(t *testing.T) {
	tcl, err := fullToolchain().BuildScript(fullPlatform(), "top", SynthModeVivado, true)
	require.NoError(t, err)
	script := strings.Join(tcl, "\n")

	stages := []string{
		"# Create Project",
		"# Enable Xilinx Parameterized Macros",
		"# Add Sources",
		"# Add EDIFs",
		"# Add IPs",
		"# Add constraints",
		"# Add pre-synthesis commands",
		"# Synthesis",
		"# Synthesis report",
		"# Optimize design",
		"# Read design checkpoint",
		"# Add pre-placement commands",
		"# Placement",
		"# Placement report",
		"# Add pre-routing commands",
		"# Routing",
		"# Routing report",
		"# Bitstream generation",
		"# End",
	}
	last := -1
	for _, stage := range stages {
		idx := strings.Index(script, "\n"+stage+"\n")
		require.NotEqual(t, -1, idx, "stage %q not found", stage)
		assert.Greater(t, idx, last, "stage %q out of order", stage)
		last = idx
	}
}

func TestBuildScriptSourceDispatch(t *testing.T) {
	tcl, err := NewToolchain().BuildScript(fullPlatform(), "top", SynthModeVivado, false)
	require.NoError(t, err)
	script := strings.Join(tcl, "\n")

	assert.Contains(t, script, "read_verilog {top.v}")
	assert.Contains(t, script, "read_verilog -v {soc.sv}")
	assert.Contains(t, script, "set_property file_type SystemVerilog [get_files {soc.sv}]")
	assert.Contains(t, script, "read_vhdl -vhdl2008 {pll.vhd}")
	assert.Contains(t, script, "set_property library work [get_files {pll.vhd}]")
}

func TestBuildScriptOtherLanguage(t *testing.T) {
	p := design.NewPlatform("xc7a100t")
	p.AddSource("rom.mem", "", "")
	tcl, err := NewToolchain().BuildScript(p, "top", SynthModeVivado, false)
	require.NoError(t, err)
	assert.Contains(t, tcl, "add_files {rom.mem}")
}

func TestBuildScriptYosysMode(t *testing.T) {
	tcl, err := NewToolchain().BuildScript(fullPlatform(), "top", SynthModeYosys, false)
	require.NoError(t, err)
	script := strings.Join(tcl, "\n")

	// Sources are pre-synthesized externally: no source stage, no synth_design.
	assert.NotContains(t, script, "# Add Sources")
	assert.NotContains(t, script, "synth_design")
	assert.Contains(t, script, "read_edif top.edif")
	assert.Contains(t, script, "link_design -top top -part xc7a35ticsg324-1L")
}

func TestBuildScriptUnknownSynthMode(t *testing.T) {
	tcl, err := NewToolchain().BuildScript(fullPlatform(), "top", "quartus", false)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Nil(t, tcl)
}

func TestBuildScriptDefaultDirectives(t *testing.T) {
	p := design.NewPlatform("xc7a100t")
	tcl, err := NewToolchain().BuildScript(p, "top", SynthModeVivado, false)
	require.NoError(t, err)
	script := strings.Join(tcl, "\n")

	assert.Contains(t, script, "opt_design -directive default")
	assert.Contains(t, script, "place_design -directive default")
	assert.Contains(t, script, "route_design -directive default")
	// Post-placement physical optimization is disabled by default, the
	// post-routing pass is mandatory.
	assert.Equal(t, 1, strings.Count(script, "phys_opt_design"))
	assert.NotContains(t, script, "read_checkpoint")
}

func TestBuildScriptIncludePaths(t *testing.T) {
	p := design.NewPlatform("xc7a100t")
	p.AddIncludePath("include")
	p.AddIncludePath("third_party/include")
	tcl, err := NewToolchain().BuildScript(p, "top", SynthModeVivado, false)
	require.NoError(t, err)
	assert.Contains(t, tcl,
		"synth_design -directive default -top top -part xc7a100t -include_dirs {include third_party/include}")
}

func TestBuildScriptDisableIPConstraints(t *testing.T) {
	p := design.NewPlatform("xc7a100t")
	p.AddIPCore("cores/fifo.xci", false)
	p.AddIPCore("cores/ddr.xci", true)
	tcl, err := NewToolchain().BuildScript(p, "top", SynthModeVivado, false)
	require.NoError(t, err)
	script := strings.Join(tcl, "\n")

	assert.Contains(t, script, "synth_ip [get_ips fifo] -force")
	assert.Equal(t, 1, strings.Count(script, "set_property is_enabled false"))
	assert.Contains(t, script,
		"set_property is_enabled false [get_files -of_objects [get_files {cores/ddr.xci}] -filter {FILE_TYPE == XDC}]")
}

func TestBuildScriptEndsWithQuit(t *testing.T) {
	tcl, err := NewToolchain().BuildScript(fullPlatform(), "top", SynthModeVivado, false)
	require.NoError(t, err)
	assert.Equal(t, "quit", tcl[len(tcl)-1])
}
