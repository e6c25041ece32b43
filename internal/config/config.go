// Package config handles loading and saving user configuration for bushou.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/bushou/internal/hanzi"
	"gopkg.in/yaml.v3"
)

const (
	ConfigFile   = "config.yaml"
	ElementsFile = "elements.yaml"
)

// ErrUnknownElement is returned when elements.yaml names a label outside the five.
var ErrUnknownElement = errors.New("unknown element in elements file")

// Config holds all user configuration.
type Config struct {
	Corpus     CorpusConfig `yaml:"corpus"`
	Dictionary string       `yaml:"dictionary"`          // Make Me a Hanzi dictionary.txt
	Elements   string       `yaml:"elements"`            // elements.yaml, relative to the config dir
	Favorites  string       `yaml:"favorites"`           // sqlite database, relative to the config dir
	Font       string       `yaml:"font,omitempty"`      // Optional CJK font for the detail view
	Search     SearchConfig `yaml:"search"`
	LogLevel   string       `yaml:"log_level,omitempty"` // debug, info, warn, error
}

// CorpusConfig says where the character corpus comes from. URL wins over Path.
type CorpusConfig struct {
	URL  string `yaml:"url,omitempty"`
	Path string `yaml:"path,omitempty"`
}

// SearchConfig holds the initial selection settings of a session.
type SearchConfig struct {
	Mode string `yaml:"mode"` // AND or OR
	Sort string `yaml:"sort"` // default, stroke-asc, stroke-desc, pinyin-asc, pinyin-desc
}

// Default returns the configuration used when no config.yaml exists.
func Default() *Config {
	return &Config{
		Corpus:     CorpusConfig{Path: "data/word.json"},
		Dictionary: "data/dictionary.txt",
		Elements:   ElementsFile,
		Favorites:  "favorites.db",
		Search:     SearchConfig{Mode: string(hanzi.ModeOr), Sort: string(hanzi.SortDefault)},
		LogLevel:   "info",
	}
}

// Load reads config.yaml from dir. A missing file yields Default().
// Fields left empty in the file keep their default values.
func Load(dir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Save writes cfg to dir/config.yaml.
func Save(dir string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, ConfigFile), out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Resolve makes a config-relative path absolute against dir.
func Resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// ElementTable maps characters and radicals to their five-element label.
// Characters take precedence; radicals are the fallback for characters
// the table does not list.
type ElementTable struct {
	Characters map[string]hanzi.Element
	Radicals   map[string]hanzi.Element
}

// rawElementTable is the on-disk shape: each label lists its glyphs as one string.
type rawElementTable struct {
	Characters map[string]string `yaml:"characters"`
	Radicals   map[string]string `yaml:"radicals"`
}

// LoadElements reads an elements.yaml file.
func LoadElements(path string) (*ElementTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading elements file: %w", err)
	}
	return ParseElements(data)
}

// ParseElements decodes elements.yaml content.
func ParseElements(data []byte) (*ElementTable, error) {
	var raw rawElementTable
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing elements file: %w", err)
	}

	chars, err := expand(raw.Characters)
	if err != nil {
		return nil, err
	}
	radicals, err := expand(raw.Radicals)
	if err != nil {
		return nil, err
	}

	return &ElementTable{Characters: chars, Radicals: radicals}, nil
}

func expand(groups map[string]string) (map[string]hanzi.Element, error) {
	out := make(map[string]hanzi.Element)
	for label, glyphs := range groups {
		e, err := hanzi.ParseElement(label)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownElement, label)
		}
		for _, r := range glyphs {
			if r == ' ' || r == '\n' || r == '\t' || r == ',' {
				continue
			}
			out[string(r)] = e
		}
	}
	return out, nil
}

// DefaultElements returns the built-in table used when elements.yaml is absent.
func DefaultElements() *ElementTable {
	t, err := ParseElements([]byte(DefaultElementsYAML))
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultElementsYAML is the elements.yaml written by `bushou init`.
const DefaultElementsYAML = `# Five-element (五行) table.
#
# characters: explicit classification for single characters.
# radicals:   fallback classification for characters containing the radical.
#             The first radical of a character that appears here wins.
characters:
  金: "金银铜铁钱锋钟鑫铭锐"
  木: "木林森桂松柏桃梅"
  水: "水江河海湖泉冰雪雨"
  火: "火炎焱灯烟炉照明"
  土: "土地坤城培基坦山石"
radicals:
  金: "金钅釒刂"
  木: "木艹竹禾米"
  水: "水氵冫雨"
  火: "火灬日"
  土: "土石山田"
`

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "bushou"), nil
}

// EnsureConfigDir creates dir if it doesn't exist.
func EnsureConfigDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return nil
}
