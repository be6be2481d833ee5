package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/cheerioskun/regexblocks/internal/models"
	"github.com/cheerioskun/regexblocks/internal/utils"
	"github.com/cheerioskun/regexblocks/ui/tester"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string

	// appFs backs config, block files, samples, exports and the log file
	appFs afero.Fs = afero.NewOsFs()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "regexblocks",
	Short: "Build regular expressions from blocks",
	Long: `RegexBlocks assembles regular expressions from visual blocks.

Drag anchors, literals, character classes and quantifiers from the palette
into a sequence; the pattern is rebuilt on every change and tested live
against a sample string.

Examples:
  regexblocks
  regexblocks render str-start digit zero-plus=x --test 1xx
  regexblocks palette`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
	RunE:              runTUI,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.regexblocks.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("default-value", models.DefaultValue, "initial value of literal and quantifier blocks")
	rootCmd.PersistentFlags().String("log-file", utils.DefaultLogPath, "where the log is written")
	rootCmd.PersistentFlags().Bool("mouse", true, "enable mouse drag and drop")
	rootCmd.PersistentFlags().Bool("osc52", true, "fall back to OSC 52 when the system clipboard is unavailable")
}

// initConfig reads the config file and environment, then starts logging
func initConfig(cmd *cobra.Command, args []string) error {
	viper.SetFs(appFs)

	viper.SetDefault("copy_flash", tester.DefaultFlashDuration)
	viper.SetDefault("default_value", models.DefaultValue)
	viper.SetDefault("log_file", utils.DefaultLogPath)
	viper.SetDefault("mouse", true)
	viper.SetDefault("osc52", true)

	// Bind flags to viper
	flags := cmd.Root().PersistentFlags()
	viper.BindPFlag("verbose", flags.Lookup("verbose"))
	viper.BindPFlag("default_value", flags.Lookup("default-value"))
	viper.BindPFlag("log_file", flags.Lookup("log-file"))
	viper.BindPFlag("mouse", flags.Lookup("mouse"))
	viper.BindPFlag("osc52", flags.Lookup("osc52"))

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".regexblocks")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("REGEXBLOCKS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	utils.Init(appFs, viper.GetString("log_file"), viper.GetBool("verbose"))
	if used := viper.ConfigFileUsed(); used != "" {
		utils.Debug("using config file %s", used)
	}
	return nil
}
