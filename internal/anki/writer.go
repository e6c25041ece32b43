package anki

import (
	"archive/zip"
	"crypto/sha1"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DeckFields are the note fields of an exported deck.
var DeckFields = []string{"Character", "Pinyin", "Details"}

// Card is one exported note.
type Card struct {
	Character string
	Pinyin    string
	Details   string
}

const collectionSchema = `
CREATE TABLE col (
	id integer PRIMARY KEY, crt integer NOT NULL, mod integer NOT NULL,
	scm integer NOT NULL, ver integer NOT NULL, dty integer NOT NULL,
	usn integer NOT NULL, ls integer NOT NULL, conf text NOT NULL,
	models text NOT NULL, decks text NOT NULL, dconf text NOT NULL, tags text NOT NULL
);
CREATE TABLE notes (
	id integer PRIMARY KEY, guid text NOT NULL, mid integer NOT NULL,
	mod integer NOT NULL, usn integer NOT NULL, tags text NOT NULL,
	flds text NOT NULL, sfld text NOT NULL, csum integer NOT NULL,
	flags integer NOT NULL, data text NOT NULL
);
CREATE TABLE cards (
	id integer PRIMARY KEY, nid integer NOT NULL, did integer NOT NULL,
	ord integer NOT NULL, mod integer NOT NULL, usn integer NOT NULL,
	type integer NOT NULL, queue integer NOT NULL, due integer NOT NULL,
	ivl integer NOT NULL, factor integer NOT NULL, reps integer NOT NULL,
	lapses integer NOT NULL, left integer NOT NULL, odue integer NOT NULL,
	odid integer NOT NULL, flags integer NOT NULL, data text NOT NULL
);
CREATE TABLE revlog (
	id integer PRIMARY KEY, cid integer NOT NULL, usn integer NOT NULL,
	ease integer NOT NULL, ivl integer NOT NULL, lastIvl integer NOT NULL,
	factor integer NOT NULL, time integer NOT NULL, type integer NOT NULL
);
CREATE TABLE graves (usn integer NOT NULL, oid integer NOT NULL, type integer NOT NULL);
`

// WriteDeck writes cards to path as a new .apkg containing a single deck.
func WriteDeck(path, deckName string, cards []Card) error {
	tempDir, err := os.MkdirTemp("", "bushou-export-*")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := writeCollection(dbPath, deckName, cards); err != nil {
		return err
	}

	return writeZip(path, dbPath)
}

func writeCollection(dbPath, deckName string, cards []Card) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening collection: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(collectionSchema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	now := time.Now()
	modelID := now.UnixMilli()
	deckID := modelID + 1

	models, decks, err := collectionJSON(modelID, deckID, deckName)
	if err != nil {
		return err
	}

	if _, err := db.Exec(
		`INSERT INTO col VALUES (1, ?, ?, ?, 11, 0, 0, 0, '{}', ?, ?, '{}', '{}')`,
		now.Unix(), now.UnixMilli(), now.UnixMilli(), models, decks,
	); err != nil {
		return fmt.Errorf("writing collection: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for i, c := range cards {
		id := modelID + int64(i) + 10
		flds := strings.Join([]string{c.Character, c.Pinyin, c.Details}, fieldSeparator)

		if _, err := tx.Exec(
			`INSERT INTO notes VALUES (?, ?, ?, ?, -1, 'bushou', ?, ?, ?, 0, '')`,
			id, guid(c.Character), modelID, now.Unix(), flds, c.Character, checksum(c.Character),
		); err != nil {
			return fmt.Errorf("writing note %s: %w", c.Character, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO cards VALUES (?, ?, ?, 0, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')`,
			id, id, deckID, now.Unix(), i+1,
		); err != nil {
			return fmt.Errorf("writing card %s: %w", c.Character, err)
		}
	}

	return tx.Commit()
}

func collectionJSON(modelID, deckID int64, deckName string) (string, string, error) {
	fields := make([]Field, len(DeckFields))
	for i, name := range DeckFields {
		fields[i] = Field{Name: name, Ord: i, Font: "Arial", Size: 20}
	}

	model := map[string]any{
		"id":    modelID,
		"name":  "bushou",
		"type":  0,
		"did":   deckID,
		"sortf": 0,
		"flds":  fields,
		"tmpls": []Template{{
			Name:  "Recognition",
			Front: `<div class="hanzi">{{Character}}</div>`,
			Back:  `{{FrontSide}}<hr id="answer">{{Pinyin}}<br>{{Details}}`,
		}},
		"css":       ".card { text-align: center; } .hanzi { font-size: 96px; }",
		"latexPre":  "",
		"latexPost": "",
		"req":       [][]any{{0, "any", []int{0}}},
		"tags":      []string{},
		"vers":      []any{},
		"usn":       -1,
		"mod":       modelID / 1000,
	}
	deck := map[string]any{
		"id":        deckID,
		"name":      deckName,
		"desc":      "",
		"dyn":       0,
		"conf":      1,
		"collapsed": false,
		"usn":       -1,
		"mod":       deckID / 1000,
	}

	models, err := json.Marshal(map[string]any{strconv.FormatInt(modelID, 10): model})
	if err != nil {
		return "", "", fmt.Errorf("marshaling models: %w", err)
	}
	decks, err := json.Marshal(map[string]any{strconv.FormatInt(deckID, 10): deck})
	if err != nil {
		return "", "", fmt.Errorf("marshaling decks: %w", err)
	}
	return string(models), string(decks), nil
}

// checksum is the first eight hex digits of the sort field's SHA-1, as Anki
// computes it for duplicate detection.
func checksum(sortField string) int64 {
	sum := sha1.Sum([]byte(StripHTML(sortField)))
	n, _ := strconv.ParseInt(hex.EncodeToString(sum[:4]), 16, 64)
	return n
}

func guid(key string) string {
	sum := sha1.Sum([]byte("bushou:" + key))
	return hex.EncodeToString(sum[:5])
}

func writeZip(path, dbPath string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	w, err := zw.Create("collection.anki2")
	if err != nil {
		return fmt.Errorf("creating zip entry: %w", err)
	}
	db, err := os.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if _, err := io.Copy(w, db); err != nil {
		return fmt.Errorf("writing collection: %w", err)
	}

	media, err := zw.Create("media")
	if err != nil {
		return fmt.Errorf("creating zip entry: %w", err)
	}
	if _, err := media.Write([]byte("{}")); err != nil {
		return err
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finishing zip: %w", err)
	}
	return out.Close()
}
