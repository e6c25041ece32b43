// Package cmd contains all CLI commands for bushou.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/f3rmion/bushou/internal/config"
	"github.com/f3rmion/bushou/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bushou",
	Short: "部首 - find Chinese characters by radical and five-element",
	Long: `bushou finds Chinese characters by the radicals they contain.

Pick one or more radicals and combine them with AND (every radical
present) or OR (any radical present), narrow the result by the five
elements (金 木 水 火 土), and sort by stroke count or pinyin.

Running 'bushou' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	RunE:         runInteractive,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/bushou)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")
	rootCmd.PersistentFlags().String("corpus-url", "", "fetch the character corpus from this URL")
	rootCmd.PersistentFlags().String("corpus-path", "", "read the character corpus from this file")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("corpus.url", rootCmd.PersistentFlags().Lookup("corpus-url"))
	viper.BindPFlag("corpus.path", rootCmd.PersistentFlags().Lookup("corpus-path"))
}

// initConfig reads in ENV variables and resolves the config directory.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", dir)
	}

	viper.SetEnvPrefix("BUSHOU")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadConfig reads config.yaml and applies flag and BUSHOU_* overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(getConfigDir())
	if err != nil {
		return nil, err
	}

	url, path := viper.GetString("corpus.url"), viper.GetString("corpus.path")
	switch {
	case url != "":
		cfg.Corpus.URL = url
	case path != "":
		cfg.Corpus = config.CorpusConfig{Path: path}
	}
	for key, dst := range map[string]*string{
		"dictionary":  &cfg.Dictionary,
		"elements":    &cfg.Elements,
		"favorites":   &cfg.Favorites,
		"font":        &cfg.Font,
		"log_level":   &cfg.LogLevel,
		"search.mode": &cfg.Search.Mode,
		"search.sort": &cfg.Search.Sort,
	} {
		if v := viper.GetString(key); v != "" {
			*dst = v
		}
	}

	return cfg, nil
}

// setupLogging sends logs to stderr for CLI commands, or to a file in the
// config dir for the TUI.
func setupLogging(cfg *config.Config, toFile bool) error {
	level := logging.ParseLevel(cfg.LogLevel)
	if viper.GetBool("verbose") {
		level = log.DebugLevel
	}

	if toFile {
		return logging.InitFile(filepath.Join(getConfigDir(), "logs"), level)
	}
	logging.Init(os.Stderr, level)
	return nil
}
