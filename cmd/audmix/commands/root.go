// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/internal/log"
)

var (
	cfgFile  string
	logLevel string

	cfg    audmix.Config
	logger *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "audmix",
	Short: "Positional audio mixer tool",
	Long: `audmix loads sound files into the audmix voice pool and plays them
through the speakers or renders the mix offline.

Supported files: .wav, .ogg, .mp3, .aif/.aiff

Settings come from the YAML file given with --config and the AUDMIX_*
environment variables, for example:
  channels: 32
  sample_rate: 44100
  enable_3d: true
  log_level: debug`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(infoCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = audmix.LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger = log.New(os.Stderr, cfg.LogLevel)

	return nil
}
