package egonet

import (
	"os"

	"github.com/spf13/cobra"

	. "github.com/CoverConnect/egonet/pkg/config"
	"github.com/CoverConnect/egonet/pkg/logging"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "egonet",
	Short: "Chat relay over websocket endpoints",
	Long: `egonet runs a websocket chat relay server, or connects to one and
exchanges chat lines from stdin.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		InitConfig(configPath)
		logging.Init(String("loglevel"), nil)
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", GetEnv("EGONET_CONFIG_FILE_PATH", ""), "Location of the egonet configuration file")
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConnectCmd())
}
