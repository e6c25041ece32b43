package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/f3rmion/bushou/internal/detail"
	"github.com/f3rmion/bushou/internal/favorites"
	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <characters>",
	Short: "Show radicals, strokes and element for characters",
	Long: `Look up Chinese characters and display their:
  - Pinyin
  - Stroke count
  - Radicals, each with its own stroke count
  - Structure
  - Five-element classification
  - Dictionary explanation

Example:
  bushou lookup 好
  bushou lookup 森林`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	e, err := setup(false)
	if err != nil {
		return err
	}

	chars := favorites.Ideographs(strings.Join(args, ""))
	if len(chars) == 0 {
		return fmt.Errorf("no Chinese characters in %q", strings.Join(args, " "))
	}

	records := e.loader.Load(context.Background())
	for _, c := range chars {
		writeInfo(os.Stdout, detail.Describe(lookupRecord(records, c), e.oracle))
	}
	return nil
}

func writeInfo(w io.Writer, info detail.Info) {
	strokes := detail.Unknown
	if info.Strokes > 0 {
		strokes = fmt.Sprintf("%d", info.Strokes)
	}

	fmt.Fprintf(w, "Character: %s\n", info.Character.Word)
	if info.Character.OldWord != "" && info.Character.OldWord != info.Character.Word {
		fmt.Fprintf(w, "  Traditional: %s\n", info.Character.OldWord)
	}
	fmt.Fprintf(w, "  Pinyin:    %s\n", orUnknown(info.Pinyin))
	fmt.Fprintf(w, "  Strokes:   %s\n", strokes)
	fmt.Fprintf(w, "  Radicals:  %s\n", info.RadicalSummary())
	fmt.Fprintf(w, "  Structure: %s\n", orUnknown(info.Structure))
	fmt.Fprintf(w, "  Element:   %s\n", info.ElementLabel())
	if exp := strings.TrimSpace(info.Character.Explanation); exp != "" {
		fmt.Fprintln(w, "  ---")
		for _, line := range strings.Split(exp, "\n") {
			fmt.Fprintf(w, "  %s\n", strings.TrimSpace(line))
		}
	}
	fmt.Fprintln(w)
}

func orUnknown(s string) string {
	if s == "" {
		return detail.Unknown
	}
	return s
}
