package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/f3rmion/bushou/internal/element"
	"github.com/f3rmion/bushou/internal/search"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the five-element distribution of a query",
	Long: `Run a radical query and show how its results split across the five
elements. With no radicals or elements the whole corpus is counted.

Example:
  bushou stats
  bushou stats -r 氵`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var statsFlags queryFlags

func init() {
	rootCmd.AddCommand(statsCmd)
	statsFlags.register(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	e, err := setup(false)
	if err != nil {
		return err
	}

	sel, err := statsFlags.state(e.mode, e.sort)
	if err != nil {
		return err
	}

	ctx := context.Background()
	results := e.loader.Load(ctx)
	if !sel.Empty() {
		results = search.Recompute(ctx, sel, e.deps()).Results
	}

	writeDistribution(os.Stdout, element.Distribute(results, e.oracle))
	return nil
}

func writeDistribution(w io.Writer, d element.Distribution) {
	fmt.Fprintf(w, "%d characters, %d classified, %d unclassified\n\n", d.Total, d.Classified, d.Unclassified)

	const barWidth = 40
	for _, s := range d.Shares {
		bar := strings.Repeat("█", int(s.Percent/100*barWidth+0.5))
		fmt.Fprintf(w, "  %s %-5s %6d %5.1f%%  %s\n", s.Element, s.Element.Name(), s.Count, s.Percent, bar)
	}
}
