package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/f3rmion/bushou/internal/config"
	"github.com/f3rmion/bushou/internal/corpus"
	"github.com/f3rmion/bushou/internal/decomp"
	"github.com/f3rmion/bushou/internal/favorites"
	"github.com/f3rmion/bushou/internal/hanzi"
	"github.com/f3rmion/bushou/internal/logging"
	"github.com/f3rmion/bushou/internal/oracle"
	"github.com/f3rmion/bushou/internal/radical"
	"github.com/f3rmion/bushou/internal/search"
)

// env is everything a command needs, built once from the config.
type env struct {
	cfg    *config.Config
	dir    string
	loader *corpus.Loader
	oracle *oracle.Lexicon
	index  *radical.Builder
	mode   hanzi.Mode
	sort   hanzi.SortMode
}

func newEnv(cfg *config.Config) (*env, error) {
	dir := getConfigDir()

	mode, err := hanzi.ParseMode(cfg.Search.Mode)
	if err != nil {
		return nil, fmt.Errorf("config search.mode: %w", err)
	}
	sortMode, err := hanzi.ParseSortMode(cfg.Search.Sort)
	if err != nil {
		return nil, fmt.Errorf("config search.sort: %w", err)
	}

	dict := decomp.NewDictionary()
	if cfg.Dictionary != "" {
		if err := dict.LoadFromFile(cfg.Dictionary); err != nil {
			logging.Warn("Dictionary not loaded; radicals and strokes will be empty",
				"path", cfg.Dictionary, "error", err)
		}
	}

	elements, err := config.LoadElements(config.Resolve(dir, cfg.Elements))
	if errors.Is(err, os.ErrNotExist) {
		elements = config.DefaultElements()
	} else if err != nil {
		return nil, err
	}

	var source corpus.Source
	if cfg.Corpus.URL != "" {
		source = corpus.NewHTTPSource(cfg.Corpus.URL)
	} else {
		source = corpus.NewFileSource(cfg.Corpus.Path)
	}

	lex := oracle.NewLexicon(dict, elements)
	loader := corpus.NewLoader(source)

	return &env{
		cfg:    cfg,
		dir:    dir,
		loader: loader,
		oracle: lex,
		index:  radical.NewBuilder(loader, lex),
		mode:   mode,
		sort:   sortMode,
	}, nil
}

// setup loads the config, starts logging and builds the env.
func setup(toFile bool) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := setupLogging(cfg, toFile); err != nil {
		return nil, err
	}
	return newEnv(cfg)
}

func (e *env) deps() search.Deps {
	return search.Deps{Corpus: e.loader, Index: e.index, Oracle: e.oracle}
}

func (e *env) session() *search.Session {
	return search.NewSession(e.deps(), e.mode, e.sort)
}

// openFavorites opens the favorites database inside the config dir.
func (e *env) openFavorites() (*favorites.Store, error) {
	if err := config.EnsureConfigDir(e.dir); err != nil {
		return nil, err
	}
	return favorites.Open(config.Resolve(e.dir, e.cfg.Favorites))
}

// lookupRecord returns the corpus record for char, or a bare record when
// the corpus doesn't have it.
func lookupRecord(records []hanzi.Character, char string) hanzi.Character {
	for _, r := range records {
		if r.Word == char {
			return r
		}
	}
	return hanzi.Character{Word: char}
}
