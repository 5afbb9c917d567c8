package vivado

import (
	"os"
	"os/exec"
	"path"
	"runtime"
	"strings"

	"github.com/hdltools/fbt/config"
	"github.com/hdltools/fbt/log"
	"github.com/hdltools/fbt/util"
)

// writeWrapperScript writes the platform-appropriate wrapper script invoking
// the tool in batch mode on the generated build script and returns its name.
func writeWrapperScript(buildDir, buildName string) (string, error) {
	cfg := config.GetConfig()
	var script, contents string
	if runtime.GOOS == "windows" {
		script = "build_" + buildName + ".bat"
		contents = "REM Autogenerated by fbt / git: " + util.GitRevision() + "\n"
		contents += cfg.Vivado + " -mode batch -source " + buildName + ".tcl\n"
	} else {
		script = "build_" + buildName + ".sh"
		contents = "# Autogenerated by fbt / git: " + util.GitRevision() + "\nset -e\n"
		contents += cfg.Vivado + " -mode batch -source " + buildName + ".tcl\n"
	}
	if err := util.WriteFile(path.Join(buildDir, script), contents); err != nil {
		return "", err
	}
	return script, nil
}

// runWrapperScript executes the wrapper script inside the build directory and
// blocks until the tool exits.
func runWrapperScript(buildDir, script string) error {
	shell := []string{"bash"}
	if runtime.GOOS == "windows" {
		shell = []string{"cmd", "/c"}
	}
	if s := config.GetConfig().Shell; s != "" {
		shell = strings.Fields(s)
	}

	log.Log("Running '%s'.\n", script)
	log.Debug("Running command: '%s %s'\n", strings.Join(shell, " "), script)
	cmd := exec.Command(shell[0], append(shell[1:], script)...)
	cmd.Dir = buildDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	log.Spinner.Start()
	err := cmd.Run()
	log.Spinner.Stop()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return &ToolExecutionError{Script: script, ExitCode: exitErr.ExitCode()}
		}
		return err
	}
	return nil
}
