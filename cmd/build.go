package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hdltools/fbt/design"
	"github.com/hdltools/fbt/log"
	"github.com/hdltools/fbt/vivado"
)

var (
	buildDir  string
	buildName string
	synthMode string
	noRun     bool
	enableXPM bool
)

var buildCmd = &cobra.Command{
	Use:   "build <description.yaml>",
	Args:  cobra.ExactArgs(1),
	Short: "Generates the build artifacts and runs the tool",
	Long: `Generates the constraint file, build script and wrapper script for the
build described in the given file and runs the tool on the result.`,
	Run: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildDir, "build-dir", "build", "Directory the build artifacts are written to")
	buildCmd.Flags().StringVar(&buildName, "name", "", "Build name (defaults to the design name)")
	buildCmd.Flags().StringVar(&synthMode, "synth-mode", "vivado", "Synthesis mode (vivado or yosys)")
	buildCmd.Flags().BoolVar(&noRun, "no-run", false, "Only generate the build artifacts, do not run the tool")
	buildCmd.Flags().BoolVar(&enableXPM, "xpm", false, "Enable the Xilinx Parameterized Macros libraries")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) {
	file, err := design.Load(args[0])
	if err != nil {
		log.Fatal("Failed to load build description: %s.\n", err)
	}
	platform, err := file.Platform()
	if err != nil {
		log.Fatal("Invalid build description: %s.\n", err)
	}

	toolchain := vivado.NewToolchain()
	configureToolchain(toolchain, file)
	if log.ErrorOccured() {
		log.Error("Errors found in the timing constraints of the build description.\n")
		os.Exit(1)
	}

	name := buildName
	if name == "" {
		name = file.Name
	}
	err = toolchain.Build(platform, vivado.BuildConfig{
		BuildDir:  buildDir,
		BuildName: name,
		Run:       !noRun,
		SynthMode: synthMode,
		EnableXPM: enableXPM,
	})
	if err != nil {
		log.Fatal("Build failed: %s.\n", err)
	}
	log.Success("Build finished.\n")
}

func configureToolchain(toolchain *vivado.Toolchain, file *design.BuildFile) {
	directives := file.Directives
	if directives.Synth != "" {
		toolchain.SynthDirective = directives.Synth
	}
	if directives.Opt != "" {
		toolchain.OptDirective = directives.Opt
	}
	if directives.Place != "" {
		toolchain.PlaceDirective = directives.Place
	}
	toolchain.PostPlacePhysOptDirective = directives.PostPlacePhysOpt
	if directives.Route != "" {
		toolchain.RouteDirective = directives.Route
	}
	if directives.PostRoutePhysOpt != "" {
		toolchain.PostRoutePhysOptDirective = directives.PostRoutePhysOpt
	}

	toolchain.PreSynthesisCommands = vivado.Hooks(file.Hooks.PreSynthesis)
	toolchain.PrePlacementCommands = vivado.Hooks(file.Hooks.PrePlacement)
	toolchain.PreRoutingCommands = vivado.Hooks(file.Hooks.PreRouting)
	toolchain.BitstreamCommands = vivado.Hooks(file.Hooks.Bitstream)
	toolchain.AdditionalCommands = vivado.Hooks(file.Hooks.Additional)
	toolchain.Incremental = file.Incremental

	signals := map[string]*design.Signal{}
	signal := func(name string) *design.Signal {
		if sig, ok := signals[name]; ok {
			return sig
		}
		sig := design.NewSignal(name)
		signals[name] = sig
		return sig
	}
	for _, clock := range file.Clocks {
		if err := toolchain.Timing.AddPeriodConstraint(signal(clock.Signal), clock.Period); err != nil {
			log.Error("Invalid clock constraint: %s.\n", err)
		}
	}
	for _, fp := range file.FalsePaths {
		if err := toolchain.Timing.AddFalsePathConstraint(signal(fp.From), signal(fp.To)); err != nil {
			log.Error("Invalid false path constraint: %s.\n", err)
		}
	}
}
