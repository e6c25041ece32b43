// Package favorites persists the user's favorite characters in SQLite.
package favorites

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/f3rmion/bushou/internal/anki"
	"github.com/f3rmion/bushou/internal/hanzi"
	_ "modernc.org/sqlite"
)

// DeckName is the deck name used when exporting favorites to Anki.
const DeckName = "bushou favorites"

// Store is the favorites list. Safe for concurrent use; every operation
// holds the store's lock.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// ImportResult counts the outcome of a bulk import.
type ImportResult struct {
	Added   int // new favorites
	Skipped int // already favorites
	Invalid int // not in the corpus
}

// Open opens or creates the favorites database at path. ":memory:" gives
// a private in-memory store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Every connection to ":memory:" is a different database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS favorites (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		word TEXT NOT NULL UNIQUE,
		oldword TEXT NOT NULL DEFAULT '',
		strokes TEXT NOT NULL DEFAULT '',
		pinyin TEXT NOT NULL DEFAULT '',
		radicals TEXT NOT NULL DEFAULT '',
		explanation TEXT NOT NULL DEFAULT '',
		more TEXT NOT NULL DEFAULT '',
		added_at DATETIME NOT NULL
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Add stores ch unless a favorite with the same character exists. It
// reports whether a row was added.
func (s *Store) Add(ch hanzi.Character) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(ch)
}

func (s *Store) add(ch hanzi.Character) (bool, error) {
	res, err := s.db.Exec(`
		INSERT OR IGNORE INTO favorites (
			word, oldword, strokes, pinyin, radicals, explanation, more, added_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, ch.Word, ch.OldWord, ch.Strokes, ch.Pinyin, ch.Radicals, ch.Explanation, ch.More, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("insert favorite %s: %w", ch.Word, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Remove deletes the favorite for word. Removing a missing word is not an error.
func (s *Store) Remove(word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec("DELETE FROM favorites WHERE word = ?", word); err != nil {
		return fmt.Errorf("delete favorite %s: %w", word, err)
	}
	return nil
}

// Toggle adds ch if it isn't a favorite, otherwise removes it. It returns
// whether ch is a favorite afterwards.
func (s *Store) Toggle(ch hanzi.Character) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fav, err := s.isFavorite(ch.Word)
	if err != nil {
		return false, err
	}
	if fav {
		if _, err := s.db.Exec("DELETE FROM favorites WHERE word = ?", ch.Word); err != nil {
			return true, fmt.Errorf("delete favorite %s: %w", ch.Word, err)
		}
		return false, nil
	}
	if _, err := s.add(ch); err != nil {
		return false, err
	}
	return true, nil
}

// IsFavorite reports whether word is a favorite.
func (s *Store) IsFavorite(word string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isFavorite(word)
}

func (s *Store) isFavorite(word string) (bool, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM favorites WHERE word = ?", word).Scan(&n); err != nil {
		return false, fmt.Errorf("query favorite %s: %w", word, err)
	}
	return n > 0, nil
}

// List returns every favorite in the order it was added.
func (s *Store) List() ([]hanzi.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT word, oldword, strokes, pinyin, radicals, explanation, more
		FROM favorites
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	out := []hanzi.Character{}
	for rows.Next() {
		var ch hanzi.Character
		if err := rows.Scan(&ch.Word, &ch.OldWord, &ch.Strokes, &ch.Pinyin, &ch.Radicals, &ch.Explanation, &ch.More); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		out = append(out, ch)
	}
	return out, rows.Err()
}

// Clear removes every favorite.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec("DELETE FROM favorites"); err != nil {
		return fmt.Errorf("clear favorites: %w", err)
	}
	return nil
}

// Ideographs returns the distinct CJK unified ideographs (U+4E00 to U+9FA5)
// in text, in first-seen order.
func Ideographs(text string) []string {
	seen := make(map[rune]struct{})
	var out []string
	for _, r := range text {
		if r < 0x4E00 || r > 0x9FA5 {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, string(r))
	}
	return out
}

// AddFromText adds every ideograph in text that exists in corpus. Characters
// missing from corpus count as invalid; existing favorites as skipped.
func (s *Store) AddFromText(text string, corpus []hanzi.Character) (ImportResult, error) {
	byWord := make(map[string]hanzi.Character, len(corpus))
	for _, ch := range corpus {
		if _, ok := byWord[ch.Word]; !ok {
			byWord[ch.Word] = ch
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var res ImportResult
	for _, word := range Ideographs(text) {
		ch, ok := byWord[word]
		if !ok {
			res.Invalid++
			continue
		}
		added, err := s.add(ch)
		if err != nil {
			return res, err
		}
		if added {
			res.Added++
		} else {
			res.Skipped++
		}
	}
	return res, nil
}

// ImportDeck adds every ideograph found in the notes of an Anki package.
func (s *Store) ImportDeck(pkg *anki.Package, corpus []hanzi.Character) (ImportResult, error) {
	return s.AddFromText(pkg.Text(), corpus)
}

// ExportDeck writes the favorites to path as an Anki package and returns
// how many cards were written.
func (s *Store) ExportDeck(path string) (int, error) {
	favs, err := s.List()
	if err != nil {
		return 0, err
	}

	cards := make([]anki.Card, len(favs))
	for i, ch := range favs {
		cards[i] = anki.Card{Character: ch.Word, Pinyin: ch.Pinyin, Details: ch.Explanation}
	}
	if err := anki.WriteDeck(path, DeckName, cards); err != nil {
		return 0, fmt.Errorf("export favorites: %w", err)
	}
	return len(cards), nil
}
