package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/f3rmion/bushou/internal/hanzi"
	"github.com/f3rmion/bushou/internal/oracle"
	"github.com/f3rmion/bushou/internal/search"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find characters by radical and five-element",
	Long: `Find characters containing the given radicals, optionally narrowed to
characters of the given five elements.

With --mode or (the default) a character matches if it has any of the
radicals; with --mode and it must have all of them. With no radicals
the element filter runs over the whole corpus.

Example:
  bushou search -r 女 -r 子 --mode and
  bushou search -r 木 -e 木 --sort stroke-asc
  bushou search -e water --json`,
	RunE: runSearch,
}

// queryFlags are the selection flags shared by search and stats.
type queryFlags struct {
	radicals []string
	elements []string
	mode     string
	sort     string
}

func (q *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&q.radicals, "radical", "r", nil, "radical to search for (repeatable)")
	cmd.Flags().StringArrayVarP(&q.elements, "element", "e", nil, "five-element filter: 金 木 水 火 土 or metal/wood/water/fire/earth (repeatable)")
	cmd.Flags().StringVar(&q.mode, "mode", "", "combine radicals with and/or (default from config)")
	cmd.Flags().StringVar(&q.sort, "sort", "", "default, stroke-asc, stroke-desc, pinyin-asc, pinyin-desc")
}

// state turns the flags into a selection, falling back to the configured
// mode and sort.
func (q *queryFlags) state(mode hanzi.Mode, sortMode hanzi.SortMode) (search.State, error) {
	s := search.State{Mode: mode, Sort: sortMode}

	if q.mode != "" {
		m, err := hanzi.ParseMode(q.mode)
		if err != nil {
			return s, err
		}
		s.Mode = m
	}
	if q.sort != "" {
		m, err := hanzi.ParseSortMode(q.sort)
		if err != nil {
			return s, err
		}
		s.Sort = m
	}

	for _, r := range q.radicals {
		for _, part := range splitGlyphs(r) {
			if !s.HasRadical(part) {
				s.Radicals = append(s.Radicals, part)
			}
		}
	}
	for _, raw := range q.elements {
		e, err := hanzi.ParseElement(raw)
		if err != nil {
			return s, err
		}
		if !s.HasElement(e) {
			s.Elements = append(s.Elements, e)
		}
	}
	return s, nil
}

// splitGlyphs lets "-r 女子" and "-r 女,子" mean two radicals.
func splitGlyphs(s string) []string {
	var out []string
	for _, r := range s {
		if r == ',' || r == ' ' || r == '，' {
			continue
		}
		out = append(out, string(r))
	}
	return out
}

var searchFlags queryFlags

func init() {
	rootCmd.AddCommand(searchCmd)
	searchFlags.register(searchCmd)
	searchCmd.Flags().Bool("json", false, "print results as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	e, err := setup(false)
	if err != nil {
		return err
	}

	sel, err := searchFlags.state(e.mode, e.sort)
	if err != nil {
		return err
	}
	if sel.Empty() {
		return fmt.Errorf("nothing to search: pass at least one --radical or --element")
	}

	result := search.Recompute(context.Background(), sel, e.deps())

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		return writeJSON(os.Stdout, result.Results, e.oracle)
	}
	writeTable(os.Stdout, result, e.oracle)
	return nil
}

// resultRow is one character in JSON output.
type resultRow struct {
	Word    string `json:"word"`
	Pinyin  string `json:"pinyin"`
	Strokes int    `json:"strokes"`
	Element string `json:"element,omitempty"`
}

func rows(results []hanzi.Character, o oracle.Oracle) []resultRow {
	o = oracle.Guard(o)
	out := make([]resultRow, len(results))
	for i, ch := range results {
		row := resultRow{Word: ch.Word, Pinyin: ch.Pinyin, Strokes: o.StrokeCountOf(ch.Word)}
		if row.Pinyin == "" {
			row.Pinyin = o.RomanizationOf(ch.Word)
		}
		if el, ok := o.ElementOf(ch.Word); ok {
			row.Element = string(el)
		}
		out[i] = row
	}
	return out
}

func writeJSON(w io.Writer, results []hanzi.Character, o oracle.Oracle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(rows(results, o))
}

func writeTable(w io.Writer, s search.State, o oracle.Oracle) {
	fmt.Fprintf(w, "Radicals: %s  Mode: %s  Elements: %s  Sort: %s\n",
		orDash(strings.Join(s.Radicals, " ")),
		s.Mode,
		orDash(joinElements(s.Elements)),
		s.Sort)
	fmt.Fprintf(w, "%d results\n\n", len(s.Results))
	writeRows(w, s.Results, o)
}

func writeRows(w io.Writer, results []hanzi.Character, o oracle.Oracle) {
	for _, r := range rows(results, o) {
		strokes := "-"
		if r.Strokes > 0 {
			strokes = fmt.Sprintf("%d", r.Strokes)
		}
		fmt.Fprintf(w, "  %s  %s %s %s\n",
			r.Word,
			runewidth.FillRight(r.Pinyin, 10),
			runewidth.FillLeft(strokes, 3),
			orDash(r.Element))
	}
}

func joinElements(es []hanzi.Element) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = string(e)
	}
	return strings.Join(parts, " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
