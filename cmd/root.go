package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hdltools/fbt/config"
	"github.com/hdltools/fbt/log"
)

var rootCmd = &cobra.Command{
	Use:   "fbt",
	Short: "The FPGA build tool (fbt)",
	Long: `The FPGA build tool (fbt) turns a build description into the constraint
file and build script of the vendor tool and drives the tool on the result.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Loads the configuration so log colors are settled before the
		// first message.
		config.GetConfig()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().BoolVarP(&log.Verbose, "verbose", "v", false, "Print debug output")
	if rootCmd.Execute() != nil {
		os.Exit(1)
	}
}
