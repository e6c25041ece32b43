package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/f3rmion/bushou/internal/element"
	"github.com/f3rmion/bushou/internal/hanzi"
	"github.com/f3rmion/bushou/internal/logging"
	"github.com/f3rmion/bushou/internal/oracle"
	"github.com/f3rmion/bushou/internal/pinyin"
)

// speller is implemented by oracles that can give a toneless spelling
// for the radical picker filter.
type speller interface {
	Spell(char string) string
}

// Session owns one selection state. All mutations are serialized on a
// single lock and recompute before returning, so they apply in call order
// and a later mutation never sees results from an earlier one.
type Session struct {
	deps Deps

	mu    sync.Mutex
	state State

	radicals []string
	filter   string
}

// NewSession creates an empty session with the given default mode and sort.
func NewSession(deps Deps, mode hanzi.Mode, sort hanzi.SortMode) *Session {
	if mode == "" {
		mode = hanzi.ModeOr
	}
	if sort == "" {
		sort = hanzi.SortDefault
	}
	return &Session{
		deps: deps,
		state: State{
			Mode:    mode,
			Sort:    sort,
			Results: []hanzi.Character{},
		},
	}
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// ToggleRadical adds r to the selection, or removes it if already selected.
func (s *Session) ToggleRadical(ctx context.Context, r string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r == "" {
		return s.state.Clone()
	}
	next := s.state.Clone()
	next.Radicals = toggle(next.Radicals, r)
	return s.commit(ctx, next)
}

// ToggleElement adds e to the selection, or removes it if already selected.
// Unknown labels are ignored.
func (s *Session) ToggleElement(ctx context.Context, e hanzi.Element) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !e.Valid() {
		return s.state.Clone()
	}
	next := s.state.Clone()
	next.Elements = toggle(next.Elements, e)
	return s.commit(ctx, next)
}

// SetMode stores the combination mode. Results are only recomputed when
// radicals are selected; otherwise the mode waits for the next selection.
func (s *Session) SetMode(ctx context.Context, m hanzi.Mode) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Mode = m
	if len(s.state.Radicals) == 0 {
		return s.state.Clone()
	}
	return s.commit(ctx, s.state.Clone())
}

// SetSort stores the sort mode and reorders the existing results without
// re-running the query.
func (s *Session) SetSort(mode hanzi.SortMode) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Sort = mode
	if len(s.state.Results) > 0 {
		s.state.Results = ApplySort(s.state.Results, mode, s.deps.Oracle)
	}
	return s.state.Clone()
}

// ClearRadicals drops the radical selection and the results together. It
// does not fall back to an element-only query.
func (s *Session) ClearRadicals() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Radicals = nil
	s.state.Results = []hanzi.Character{}
	return s.state.Clone()
}

// ClearElements drops the element selection and recomputes.
func (s *Session) ClearElements(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.Clone()
	next.Elements = nil
	return s.commit(ctx, next)
}

// Counts returns the element histogram the element toggles are labelled
// with. It covers the radical query under the current mode, or the whole
// corpus when no radical is selected, and ignores the element selection so
// toggling one element never zeroes the others. Failures yield all-zero
// counts.
func (s *Session) Counts(ctx context.Context) (counts map[hanzi.Element]int) {
	s.mu.Lock()
	radicals := append([]string(nil), s.state.Radicals...)
	mode := s.state.Mode
	s.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			logging.Error("Element count failed", "radicals", radicals, "error", fmt.Sprint(r))
			counts = element.Count(nil, s.deps.Oracle)
		}
	}()

	var base []hanzi.Character
	if len(radicals) > 0 {
		found, err := s.deps.Index.Search(ctx, radicals, mode)
		if err != nil {
			logging.Error("Radical search failed", "radicals", radicals, "mode", mode, "error", err)
		}
		base = found
	} else {
		base = s.deps.Corpus.Load(ctx)
	}
	return element.Count(base, s.deps.Oracle)
}

func (s *Session) commit(ctx context.Context, next State) State {
	s.state = Recompute(ctx, next, s.deps)
	logging.Debug("Selection recomputed",
		"radicals", s.state.Radicals,
		"elements", s.state.Elements,
		"mode", s.state.Mode,
		"results", len(s.state.Results))
	return s.state.Clone()
}

// LoadRadicals fetches the radical list for the picker. A failure is logged
// and leaves the list empty so the next call retries.
func (s *Session) LoadRadicals(ctx context.Context) []string {
	radicals, err := s.deps.Index.AllRadicals(ctx)
	if err != nil {
		logging.Error("Failed to load radicals", "error", err)
		radicals = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.radicals = radicals
	return append([]string(nil), radicals...)
}

// SetRadicalFilter sets the picker filter text.
func (s *Session) SetRadicalFilter(filter string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = filter
}

// RadicalFilter returns the picker filter text.
func (s *Session) RadicalFilter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// FilteredRadicals returns the loaded radicals whose romanization contains
// the filter, ignoring case and tone marks. A radical also matches its own
// glyph. It never touches the selection or results.
func (s *Session) FilteredRadicals() []string {
	s.mu.Lock()
	radicals := s.radicals
	filter := s.filter
	s.mu.Unlock()

	return MatchRadicals(radicals, filter, s.deps.Oracle)
}

// MatchRadicals filters radicals by a romanization substring.
func MatchRadicals(radicals []string, filter string, o oracle.Oracle) []string {
	filter = strings.TrimSpace(filter)
	query := pinyin.StripTones(strings.ToLower(filter))
	if query == "" {
		return append([]string(nil), radicals...)
	}

	spell := spelling(o)
	out := []string{}
	for _, r := range radicals {
		if r == filter || strings.Contains(spell(r), query) {
			out = append(out, r)
		}
	}
	return out
}

func spelling(o oracle.Oracle) func(string) string {
	if sp, ok := o.(speller); ok {
		return func(char string) (out string) {
			defer func() {
				if r := recover(); r != nil {
					out = ""
				}
			}()
			return sp.Spell(char)
		}
	}
	g := oracle.Guard(o)
	return func(char string) string {
		return pinyin.StripTones(strings.ToLower(g.RomanizationOf(char)))
	}
}
