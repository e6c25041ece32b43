package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/bushou/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize bushou configuration",
	Long: `Initialize bushou configuration files in your config directory.

This creates:
  - config.yaml    (corpus source, dictionary, default mode and sort)
  - elements.yaml  (five-element table for characters and radicals)

Edit elements.yaml to change how characters are classified.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()

	if _, err := os.Stat(filepath.Join(configDir, config.ConfigFile)); err == nil && !force {
		return fmt.Errorf("config already exists in %s\nUse --force to overwrite", configDir)
	}

	if err := config.EnsureConfigDir(configDir); err != nil {
		return err
	}

	fmt.Printf("Initializing bushou configuration in %s\n\n", configDir)

	if err := config.Save(configDir, config.Default()); err != nil {
		return err
	}
	fmt.Printf("  Created %s\n", config.ConfigFile)

	elementsPath := filepath.Join(configDir, config.ElementsFile)
	if err := os.WriteFile(elementsPath, []byte(config.DefaultElementsYAML), 0644); err != nil {
		return fmt.Errorf("writing elements file: %w", err)
	}
	fmt.Printf("  Created %s\n", config.ElementsFile)

	fmt.Println()
	fmt.Println("Configuration initialized!")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Point corpus.path (or corpus.url) at the chinese-xinhua word.json")
	fmt.Println("  2. Point dictionary at Make Me a Hanzi's dictionary.txt")
	fmt.Println("  3. Run 'bushou radicals' to check the radical list loads")

	return nil
}
