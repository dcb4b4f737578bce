package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/packwiz/serverpack/core"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

var (
	config = core.DefaultConfig()
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "serverpack",
	Short: "Downloads modpack server packs from CurseForge",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
	SilenceUsage: true,
}

// Execute starts the root command for serverpack
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Add adds a new command as a subcommand to serverpack
func Add(newCommand *cobra.Command) {
	rootCmd.AddCommand(newCommand)
}

// Config returns the configuration loaded for this run
func Config() core.Config {
	return config
}

// Logger returns the diagnostic logger for this run
func Logger() *slog.Logger {
	return logger
}

// normalizeFlagName lets flags be spelt the way their environment variables are, e.g. --mc_version
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.serverpack.toml)")

	rootCmd.PersistentFlags().String("api-url", core.DefaultAPIURL, "The CurseForge API endpoint to use")
	_ = viper.BindPFlag("api-url", rootCmd.PersistentFlags().Lookup("api-url"))
	_ = rootCmd.PersistentFlags().MarkHidden("api-url")

	rootCmd.PersistentFlags().IntP("timeout", "t", int(core.DefaultTimeout.Seconds()), "The timeout for requests, in seconds")
	_ = viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))

	rootCmd.PersistentFlags().BoolP("non-interactive", "y", false, "Never prompt; pick the first option and confirm everything")
	_ = viper.BindPFlag("non-interactive", rootCmd.PersistentFlags().Lookup("non-interactive"))

	rootCmd.PersistentFlags().Bool("verbose", false, "Log requests and other debug information to stderr")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	viper.SetDefault("game-id", core.DefaultGameID)
	viper.SetDefault("section-id", core.DefaultSectionID)
	viper.SetDefault("max", 1)
	viper.SetDefault("attempts", 0)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in home directory with name ".serverpack" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".serverpack")
	}

	viper.SetEnvPrefix("serverpack")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("using config file", slog.String("path", viper.ConfigFileUsed()))
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Failed to read config file %s: %v\n", cfgFile, err)
		os.Exit(1)
	}
}

// loadConfig decodes the merged settings once per run; nothing changes them afterwards
func loadConfig() error {
	cfg, err := core.DecodeConfig(viper.AllSettings())
	if err != nil {
		return err
	}
	config = cfg

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}
