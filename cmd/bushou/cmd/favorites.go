package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/f3rmion/bushou/internal/anki"
	"github.com/f3rmion/bushou/internal/favorites"
	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "Manage favorite characters",
	Long: `Manage the saved favorites list.

Favorites are stored in a sqlite database in the config directory and
can be exchanged with Anki:
  import-deck reads every character found in an .apkg's notes
  export writes the favorites to a new .apkg deck`,
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorites",
	Args:  cobra.NoArgs,
	RunE: withFavorites(func(e *env, store *favorites.Store, args []string) error {
		favs, err := store.List()
		if err != nil {
			return err
		}
		if len(favs) == 0 {
			fmt.Println("No favorites yet.")
			return nil
		}
		fmt.Printf("%d favorites\n\n", len(favs))
		writeRows(os.Stdout, favs, e.oracle)
		return nil
	}),
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <characters>",
	Short: "Add characters from the corpus to favorites",
	Args:  cobra.MinimumNArgs(1),
	RunE: withFavorites(func(e *env, store *favorites.Store, args []string) error {
		return addText(e, store, strings.Join(args, " "))
	}),
}

var favoritesImportCmd = &cobra.Command{
	Use:   "import <text>",
	Short: "Add every corpus character found in text",
	Long: `Add every Chinese character found in text. Use - to read stdin.

Example:
  bushou favorites import "我喜欢森林"
  cat notes.txt | bushou favorites import -`,
	Args: cobra.ExactArgs(1),
	RunE: withFavorites(func(e *env, store *favorites.Store, args []string) error {
		text := args[0]
		if text == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			text = string(data)
		}
		return addText(e, store, text)
	}),
}

var favoritesImportDeckCmd = &cobra.Command{
	Use:   "import-deck <file.apkg>",
	Short: "Add every corpus character found in an Anki deck",
	Args:  cobra.ExactArgs(1),
	RunE: withFavorites(func(e *env, store *favorites.Store, args []string) error {
		pkg, err := anki.OpenPackage(args[0])
		if err != nil {
			return err
		}
		defer pkg.Close()

		fmt.Println(pkg.Summary())
		res, err := store.ImportDeck(pkg, e.loader.Load(context.Background()))
		if err != nil {
			return err
		}
		printImport(res)
		return nil
	}),
}

var favoritesExportCmd = &cobra.Command{
	Use:   "export <file.apkg>",
	Short: "Write favorites to an Anki deck",
	Args:  cobra.ExactArgs(1),
	RunE: withFavorites(func(e *env, store *favorites.Store, args []string) error {
		n, err := store.ExportDeck(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Exported %d cards to %s\n", n, args[0])
		return nil
	}),
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <characters>",
	Short: "Remove characters from favorites",
	Args:  cobra.MinimumNArgs(1),
	RunE: withFavorites(func(e *env, store *favorites.Store, args []string) error {
		for _, c := range favorites.Ideographs(strings.Join(args, "")) {
			if err := store.Remove(c); err != nil {
				return err
			}
			fmt.Printf("Removed %s\n", c)
		}
		return nil
	}),
}

var favoritesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all favorites",
	Args:  cobra.NoArgs,
	RunE: withFavorites(func(e *env, store *favorites.Store, args []string) error {
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("Favorites cleared.")
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(favoritesCmd)
	favoritesCmd.AddCommand(
		favoritesListCmd,
		favoritesAddCmd,
		favoritesRemoveCmd,
		favoritesClearCmd,
		favoritesImportCmd,
		favoritesImportDeckCmd,
		favoritesExportCmd,
	)
}

// withFavorites wraps a subcommand with env setup and the store lifecycle.
func withFavorites(fn func(e *env, store *favorites.Store, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := setup(false)
		if err != nil {
			return err
		}
		store, err := e.openFavorites()
		if err != nil {
			return err
		}
		defer store.Close()
		return fn(e, store, args)
	}
}

func addText(e *env, store *favorites.Store, text string) error {
	res, err := store.AddFromText(text, e.loader.Load(context.Background()))
	if err != nil {
		return err
	}
	printImport(res)
	return nil
}

func printImport(res favorites.ImportResult) {
	fmt.Printf("Added %d, skipped %d (already saved), %d not in the corpus\n", res.Added, res.Skipped, res.Invalid)
}
