package vivado

import (
	"fmt"
	"os"
	"os/exec"
	"path"
	"strings"

	"github.com/hdltools/fbt/config"
	"github.com/hdltools/fbt/design"
	"github.com/hdltools/fbt/log"
	"github.com/hdltools/fbt/util"
)

// yosysScript generates the synthesis pre-pass script producing the EDIF
// netlist the build script links against.
func yosysScript(buildName string, d Design) (string, error) {
	incFlags := ""
	for _, p := range d.IncludePaths() {
		incFlags += " -I" + p
	}
	var b strings.Builder
	for _, src := range d.Sources() {
		switch src.Language {
		case design.LanguageVerilog:
			fmt.Fprintf(&b, "read_verilog%s %s\n", incFlags, src.Filename)
		case design.LanguageSystemVerilog:
			fmt.Fprintf(&b, "read_verilog -sv%s %s\n", incFlags, src.Filename)
		default:
			return "", &ConfigurationError{
				Reason: fmt.Sprintf("cannot synthesize %s source %s externally", src.Language, src.Filename),
			}
		}
	}
	fmt.Fprintf(&b, "hierarchy -top %s\n", buildName)
	fmt.Fprintf(&b, "synth_xilinx -top %s\n", buildName)
	fmt.Fprintf(&b, "write_edif -pvector bra %s.edif\n", buildName)
	return b.String(), nil
}

// runYosys writes the pre-pass script and runs it, blocking until the
// external tool exits.
func runYosys(buildDir, buildName string, d Design) error {
	script, err := yosysScript(buildName, d)
	if err != nil {
		return err
	}
	scriptFile := buildName + ".ys"
	if err := util.WriteFile(path.Join(buildDir, scriptFile), script); err != nil {
		return err
	}

	yosys := config.GetConfig().Yosys
	log.Log("Running '%s %s'.\n", yosys, scriptFile)
	cmd := exec.Command(yosys, scriptFile)
	cmd.Dir = buildDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	log.Spinner.Start()
	err = cmd.Run()
	log.Spinner.Stop()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return &ToolExecutionError{Script: scriptFile, ExitCode: exitErr.ExitCode()}
		}
		return err
	}
	return nil
}
