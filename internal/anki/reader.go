// Package anki reads and writes Anki .apkg decks so favorites can be
// imported from and exported to spaced-repetition collections.
package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	_ "modernc.org/sqlite"
)

// fieldSeparator splits the flds column of a note.
const fieldSeparator = "\x1f"

// Package is an opened .apkg file. It is read-only; Close removes the
// extracted copy.
type Package struct {
	path    string
	tempDir string
	db      *sql.DB
	Models  map[int64]*Model
	Decks   map[int64]*Deck
	Notes   []*Note
}

// Model is an Anki note type.
type Model struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Fields    []Field    `json:"flds"`
	Templates []Template `json:"tmpls"`
	CSS       string     `json:"css"`
	Type      int        `json:"type"` // 0 = standard, 1 = cloze
}

// Field is one field of a note type.
type Field struct {
	Name string `json:"name"`
	Ord  int    `json:"ord"`
	Font string `json:"font"`
	Size int    `json:"size"`
}

// Template is one card template of a note type.
type Template struct {
	Name  string `json:"name"`
	Ord   int    `json:"ord"`
	Front string `json:"qfmt"`
	Back  string `json:"afmt"`
}

// Deck is an Anki deck.
type Deck struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Desc string `json:"desc"`
}

// Note is one Anki note with its fields split out.
type Note struct {
	ID      int64
	GUID    string
	ModelID int64
	Tags    string
	Fields  []string
}

// OpenPackage extracts and opens an .apkg file.
func OpenPackage(path string) (*Package, error) {
	pkg := &Package{
		path:   path,
		Models: make(map[int64]*Model),
		Decks:  make(map[int64]*Deck),
	}

	tempDir, err := os.MkdirTemp("", "bushou-apkg-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	pkg.tempDir = tempDir

	if err := pkg.extract(); err != nil {
		pkg.Close()
		return nil, err
	}

	dbPath := filepath.Join(tempDir, "collection.anki21")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		dbPath = filepath.Join(tempDir, "collection.anki2")
	}
	if _, err := os.Stat(dbPath); err != nil {
		pkg.Close()
		return nil, fmt.Errorf("package has no collection: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		pkg.Close()
		return nil, fmt.Errorf("opening collection: %w", err)
	}
	pkg.db = db

	if err := pkg.loadCollection(); err != nil {
		pkg.Close()
		return nil, err
	}
	if err := pkg.loadNotes(); err != nil {
		pkg.Close()
		return nil, err
	}

	return pkg, nil
}

func (p *Package) extract() error {
	r, err := zip.OpenReader(p.path)
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		// Only the collection database is needed; media is skipped.
		if !strings.HasPrefix(f.Name, "collection.anki2") {
			continue
		}

		fpath := filepath.Join(p.tempDir, f.Name)
		if !strings.HasPrefix(fpath, filepath.Clean(p.tempDir)+string(os.PathSeparator)) {
			return fmt.Errorf("illegal file path: %s", f.Name)
		}

		if err := extractFile(f, fpath); err != nil {
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
	}
	return nil
}

func extractFile(f *zip.File, dest string) error {
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	_, err = io.Copy(out, rc)
	return err
}

func (p *Package) loadCollection() error {
	var models, decks string
	if err := p.db.QueryRow("SELECT models, decks FROM col").Scan(&models, &decks); err != nil {
		return fmt.Errorf("reading collection: %w", err)
	}

	var modelsMap map[string]json.RawMessage
	if err := json.Unmarshal([]byte(models), &modelsMap); err != nil {
		return fmt.Errorf("parsing models: %w", err)
	}
	for _, raw := range modelsMap {
		var m Model
		if err := json.Unmarshal(raw, &m); err != nil {
			continue
		}
		p.Models[m.ID] = &m
	}

	var decksMap map[string]json.RawMessage
	if err := json.Unmarshal([]byte(decks), &decksMap); err != nil {
		return fmt.Errorf("parsing decks: %w", err)
	}
	for _, raw := range decksMap {
		var d Deck
		if err := json.Unmarshal(raw, &d); err != nil {
			continue
		}
		p.Decks[d.ID] = &d
	}
	return nil
}

func (p *Package) loadNotes() error {
	rows, err := p.db.Query("SELECT id, guid, mid, tags, flds FROM notes ORDER BY id")
	if err != nil {
		return fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			note Note
			flds string
		)
		if err := rows.Scan(&note.ID, &note.GUID, &note.ModelID, &note.Tags, &flds); err != nil {
			return fmt.Errorf("scanning note: %w", err)
		}
		note.Fields = strings.Split(flds, fieldSeparator)
		p.Notes = append(p.Notes, &note)
	}
	return rows.Err()
}

// FieldValue returns the named field of note, or "" when the note's model
// has no such field.
func (p *Package) FieldValue(note *Note, name string) string {
	model := p.Models[note.ModelID]
	if model == nil {
		return ""
	}
	for _, f := range model.Fields {
		if strings.EqualFold(f.Name, name) && f.Ord < len(note.Fields) {
			return note.Fields[f.Ord]
		}
	}
	return ""
}

var (
	tagPattern   = regexp.MustCompile(`(?s)<[^>]*>`)
	soundPattern = regexp.MustCompile(`\[sound:[^\]]*\]`)
)

// StripHTML reduces a field to its visible text.
func StripHTML(s string) string {
	s = soundPattern.ReplaceAllString(s, "")
	s = tagPattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(html.UnescapeString(s))
}

// Text returns the visible text of every note field, one note per line.
func (p *Package) Text() string {
	var sb strings.Builder
	for _, note := range p.Notes {
		parts := make([]string, 0, len(note.Fields))
		for _, f := range note.Fields {
			if t := StripHTML(f); t != "" {
				parts = append(parts, t)
			}
		}
		sb.WriteString(strings.Join(parts, " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Close releases the database and removes the extracted files.
func (p *Package) Close() error {
	if p.db != nil {
		p.db.Close()
	}
	if p.tempDir != "" {
		os.RemoveAll(p.tempDir)
	}
	return nil
}

// Summary describes the package contents.
func (p *Package) Summary() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Anki package: %s\n", filepath.Base(p.path)))
	sb.WriteString(fmt.Sprintf("  Decks: %d\n", len(p.Decks)))
	for _, d := range p.Decks {
		sb.WriteString(fmt.Sprintf("    - %s\n", d.Name))
	}
	sb.WriteString(fmt.Sprintf("  Notes: %d\n", len(p.Notes)))
	return sb.String()
}
