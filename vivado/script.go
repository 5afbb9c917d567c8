package vivado

import (
	"fmt"
	"path"
	"strings"

	"github.com/hdltools/fbt/design"
)

// Synthesis modes accepted by the toolchain.
const (
	// SynthModeVivado synthesizes the sources with Vivado itself.
	SynthModeVivado = "vivado"
	// SynthModeYosys links a netlist produced by an external Yosys pre-pass.
	SynthModeYosys = "yosys"
)

func validSynthMode(mode string) bool {
	return mode == SynthModeVivado || mode == SynthModeYosys
}

// tclName wraps a filename in braces so that Tcl treats it as one word.
func tclName(filename string) string {
	return "{" + filename + "}"
}

// BuildScript assembles the ordered command lines of the build script, from
// project creation through bitstream generation. No line is ever reordered
// after a stage emitted it.
func (t *Toolchain) BuildScript(d Design, buildName, synthMode string, enableXPM bool) ([]string, error) {
	if !validSynthMode(synthMode) {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("unknown synthesis mode %q", synthMode)}
	}
	var tcl []string

	// Create project
	tcl = append(tcl, "\n# Create Project\n")
	tcl = append(tcl, fmt.Sprintf("create_project -force -name %s -part %s", buildName, d.Device()))
	tcl = append(tcl, "set_msg_config -id {Common 17-55} -new_severity {Warning}")

	// Enable Xilinx Parameterized Macros
	if enableXPM {
		tcl = append(tcl, "\n# Enable Xilinx Parameterized Macros\n")
		tcl = append(tcl, "set_property XPM_LIBRARIES {XPM_CDC XPM_MEMORY} [current_project]")
	}

	// Add sources (when Vivado used for synthesis)
	if synthMode == SynthModeVivado {
		tcl = append(tcl, "\n# Add Sources\n")
		for _, src := range d.Sources() {
			filename := tclName(src.Filename)
			switch src.Language {
			case design.LanguageSystemVerilog:
				tcl = append(tcl, "read_verilog -v "+filename)
				tcl = append(tcl, fmt.Sprintf("set_property file_type SystemVerilog [get_files %s]", filename))
			case design.LanguageVerilog:
				tcl = append(tcl, "read_verilog "+filename)
			case design.LanguageVHDL:
				tcl = append(tcl, "read_vhdl -vhdl2008 "+filename)
				tcl = append(tcl, fmt.Sprintf("set_property library %s [get_files %s]", src.Library, filename))
			default:
				tcl = append(tcl, "add_files "+filename)
			}
		}
	}

	// Add EDIFs
	tcl = append(tcl, "\n# Add EDIFs\n")
	for _, filename := range d.EDIFNetlists() {
		tcl = append(tcl, "read_edif "+tclName(filename))
	}

	// Add IPs
	tcl = append(tcl, "\n# Add IPs\n")
	for _, ip := range d.IPCores() {
		filename := tclName(ip.Filename)
		name := strings.TrimSuffix(path.Base(ip.Filename), path.Ext(ip.Filename))
		tcl = append(tcl, "read_ip "+filename)
		tcl = append(tcl, fmt.Sprintf("upgrade_ip [get_ips %s]", name))
		tcl = append(tcl, fmt.Sprintf("generate_target all [get_ips %s]", name))
		tcl = append(tcl, fmt.Sprintf("synth_ip [get_ips %s] -force", name))
		tcl = append(tcl, fmt.Sprintf("get_files -all -of_objects [get_files %s]", filename))
		if ip.DisableConstraints {
			tcl = append(tcl, fmt.Sprintf("set_property is_enabled false [get_files -of_objects [get_files %s] -filter {FILE_TYPE == XDC}]", filename))
		}
	}

	// Add constraints
	tcl = append(tcl, "\n# Add constraints\n")
	tcl = append(tcl, fmt.Sprintf("read_xdc %s.xdc", buildName))
	tcl = append(tcl, fmt.Sprintf("set_property PROCESSING_ORDER EARLY [get_files %s.xdc]", buildName))

	// Add pre-synthesis commands
	tcl = append(tcl, "\n# Add pre-synthesis commands\n")
	lines, err := renderHooks(t.PreSynthesisCommands, buildName)
	if err != nil {
		return nil, err
	}
	tcl = append(tcl, lines...)

	// Synthesis
	if synthMode == SynthModeVivado {
		tcl = append(tcl, "\n# Synthesis\n")
		synthCmd := fmt.Sprintf("synth_design -directive %s -top %s -part %s",
			t.SynthDirective, buildName, d.Device())
		if incPaths := d.IncludePaths(); len(incPaths) > 0 {
			synthCmd += fmt.Sprintf(" -include_dirs {%s}", strings.Join(incPaths, " "))
		}
		tcl = append(tcl, synthCmd)
	} else {
		tcl = append(tcl, "\n# Read Yosys EDIF\n")
		tcl = append(tcl, fmt.Sprintf("read_edif %s.edif", buildName))
		tcl = append(tcl, fmt.Sprintf("link_design -top %s -part %s", buildName, d.Device()))
	}
	tcl = append(tcl, "\n# Synthesis report\n")
	tcl = append(tcl, fmt.Sprintf("report_timing_summary -file %s_timing_synth.rpt", buildName))
	tcl = append(tcl, fmt.Sprintf("report_utilization -hierarchical -file %s_utilization_hierarchical_synth.rpt", buildName))
	tcl = append(tcl, fmt.Sprintf("report_utilization -file %s_utilization_synth.rpt", buildName))

	// Optimize
	tcl = append(tcl, "\n# Optimize design\n")
	tcl = append(tcl, fmt.Sprintf("opt_design -directive %s", t.OptDirective))

	// Incremental implementation
	if t.Incremental {
		tcl = append(tcl, "\n# Read design checkpoint\n")
		tcl = append(tcl, fmt.Sprintf("read_checkpoint -incremental %s_route.dcp", buildName))
	}

	// Add pre-placement commands
	tcl = append(tcl, "\n# Add pre-placement commands\n")
	lines, err = renderHooks(t.PrePlacementCommands, buildName)
	if err != nil {
		return nil, err
	}
	tcl = append(tcl, lines...)

	// Placement
	tcl = append(tcl, "\n# Placement\n")
	tcl = append(tcl, fmt.Sprintf("place_design -directive %s", t.PlaceDirective))
	if t.PostPlacePhysOptDirective != "" {
		tcl = append(tcl, fmt.Sprintf("phys_opt_design -directive %s", t.PostPlacePhysOptDirective))
	}
	tcl = append(tcl, "\n# Placement report\n")
	tcl = append(tcl, fmt.Sprintf("report_utilization -hierarchical -file %s_utilization_hierarchical_place.rpt", buildName))
	tcl = append(tcl, fmt.Sprintf("report_utilization -file %s_utilization_place.rpt", buildName))
	tcl = append(tcl, fmt.Sprintf("report_io -file %s_io.rpt", buildName))
	tcl = append(tcl, fmt.Sprintf("report_control_sets -verbose -file %s_control_sets.rpt", buildName))
	tcl = append(tcl, fmt.Sprintf("report_clock_utilization -file %s_clock_utilization.rpt", buildName))

	// Add pre-routing commands
	tcl = append(tcl, "\n# Add pre-routing commands\n")
	lines, err = renderHooks(t.PreRoutingCommands, buildName)
	if err != nil {
		return nil, err
	}
	tcl = append(tcl, lines...)

	// Routing
	tcl = append(tcl, "\n# Routing\n")
	tcl = append(tcl, fmt.Sprintf("route_design -directive %s", t.RouteDirective))
	tcl = append(tcl, fmt.Sprintf("phys_opt_design -directive %s", t.PostRoutePhysOptDirective))
	tcl = append(tcl, fmt.Sprintf("write_checkpoint -force %s_route.dcp", buildName))
	tcl = append(tcl, "\n# Routing report\n")
	tcl = append(tcl, "report_timing_summary -no_header -no_detailed_paths")
	tcl = append(tcl, fmt.Sprintf("report_route_status -file %s_route_status.rpt", buildName))
	tcl = append(tcl, fmt.Sprintf("report_drc -file %s_drc.rpt", buildName))
	tcl = append(tcl, fmt.Sprintf("report_timing_summary -datasheet -max_paths 10 -file %s_timing.rpt", buildName))
	tcl = append(tcl, fmt.Sprintf("report_power -file %s_power.rpt", buildName))
	lines, err = renderHooks(t.BitstreamCommands, buildName)
	if err != nil {
		return nil, err
	}
	tcl = append(tcl, lines...)

	// Bitstream generation
	tcl = append(tcl, "\n# Bitstream generation\n")
	tcl = append(tcl, fmt.Sprintf("write_bitstream -force %s.bit", buildName))
	lines, err = renderHooks(t.AdditionalCommands, buildName)
	if err != nil {
		return nil, err
	}
	tcl = append(tcl, lines...)

	// Quit
	tcl = append(tcl, "\n# End\n")
	tcl = append(tcl, "quit")

	return tcl, nil
}
