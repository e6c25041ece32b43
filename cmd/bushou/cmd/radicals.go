package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var radicalsCmd = &cobra.Command{
	Use:   "radicals",
	Short: "List the radicals found in the corpus",
	Long: `List every radical that appears in at least one corpus character,
in pinyin order.

--filter keeps radicals whose pinyin contains the text, ignoring case
and tone marks (nv or nü both match 女).

Example:
  bushou radicals
  bushou radicals --filter mu`,
	Args: cobra.NoArgs,
	RunE: runRadicals,
}

func init() {
	rootCmd.AddCommand(radicalsCmd)
	radicalsCmd.Flags().String("filter", "", "pinyin substring to filter by")
}

func runRadicals(cmd *cobra.Command, args []string) error {
	e, err := setup(false)
	if err != nil {
		return err
	}

	session := e.session()
	if len(session.LoadRadicals(context.Background())) == 0 {
		return fmt.Errorf("no radicals loaded; check the corpus and dictionary paths")
	}

	filter, _ := cmd.Flags().GetString("filter")
	session.SetRadicalFilter(filter)
	radicals := session.FilteredRadicals()

	writeRadicals(os.Stdout, radicals, e.oracle.Spell)
	return nil
}

func writeRadicals(w io.Writer, radicals []string, spell func(string) string) {
	fmt.Fprintf(w, "%d radicals\n\n", len(radicals))

	const perLine = 8
	var line []string
	for _, r := range radicals {
		line = append(line, fmt.Sprintf("%s %-6s", r, spell(r)))
		if len(line) == perLine {
			fmt.Fprintln(w, strings.TrimRight(strings.Join(line, " "), " "))
			line = line[:0]
		}
	}
	if len(line) > 0 {
		fmt.Fprintln(w, strings.TrimRight(strings.Join(line, " "), " "))
	}
}
