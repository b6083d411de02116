// apps/go-server/internal/words/dictionary.go
//
// Dictionary management for word validation and board scoring.
//
// Responsibilities:
//   - Load a word list exactly once per Dictionary (EnsureLoaded).
//   - Keep a folded set for O(1) membership tests (Contains).
//   - Build and cache the uppercase prefix trie used by the board solver.
//
// Sources:
//   - FromFile: a JSON array of strings (*.json) or one word per line.
//   - Embedded: the small list compiled into the assets package.
//   - FromList: an explicit list, mostly for tests.
//
// The set and trie are immutable after loading; concurrent readers never
// mutate them.

package words

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/boggle/apps/go-server/assets"
)

// ErrEmpty is returned when a source yields no usable words.
var ErrEmpty = errors.New("words: dictionary is empty")

// Source produces the raw word list.
type Source func() ([]string, error)

// Stats describes the loaded dictionary.
type Stats struct {
	WordCount int       `json:"wordCount"`
	LoadedAt  time.Time `json:"loadedAt"`
	IsLoaded  bool      `json:"isLoaded"`
}

// Dictionary is a lazily loaded word set plus its trie.
type Dictionary struct {
	source Source

	loadOnce sync.Once
	loadErr  error
	loaded   atomic.Bool
	set      map[string]struct{}
	list     []string
	loadedAt time.Time

	trieOnce sync.Once
	trie     *TrieNode
}

// New returns an unloaded Dictionary reading from src.
func New(src Source) *Dictionary {
	return &Dictionary{source: src}
}

// EnsureLoaded loads the word list on first call. Overlapping callers
// block on the same load and all observe its result.
func (d *Dictionary) EnsureLoaded() error {
	d.loadOnce.Do(func() {
		raw, err := d.source()
		if err != nil {
			d.loadErr = fmt.Errorf("load dictionary: %w", err)
			return
		}
		set := make(map[string]struct{}, len(raw))
		list := make([]string, 0, len(raw))
		for _, w := range raw {
			f := Fold(w)
			if !isWord(f) {
				continue
			}
			if _, dup := set[f]; dup {
				continue
			}
			set[f] = struct{}{}
			list = append(list, f)
		}
		if len(set) == 0 {
			d.loadErr = ErrEmpty
			return
		}
		d.set, d.list, d.loadedAt = set, list, time.Now().UTC()
		d.loaded.Store(true)
		log.Info().Int("words", len(set)).Msg("dictionary loaded")
	})
	return d.loadErr
}

// Loaded reports whether a load has completed successfully.
func (d *Dictionary) Loaded() bool { return d.loaded.Load() }

// Contains reports whether w is in the dictionary, ignoring case and
// accents. It is false until EnsureLoaded has succeeded.
func (d *Dictionary) Contains(w string) bool {
	if !d.Loaded() {
		return false
	}
	_, ok := d.set[Fold(w)]
	return ok
}

// Words returns the folded vocabulary in load order. Callers must not
// modify the returned slice.
func (d *Dictionary) Words() []string {
	if !d.Loaded() {
		return nil
	}
	return d.list
}

// Trie returns the prefix tree over the vocabulary, building it once.
// It returns nil if the dictionary is not loaded.
func (d *Dictionary) Trie() *TrieNode {
	if !d.Loaded() {
		return nil
	}
	d.trieOnce.Do(func() {
		start := time.Now()
		d.trie = BuildTrie(d.list)
		log.Debug().Dur("took", time.Since(start)).Msg("trie built")
	})
	return d.trie
}

// Stats reports the word count and load time.
func (d *Dictionary) Stats() Stats {
	if !d.Loaded() {
		return Stats{}
	}
	return Stats{WordCount: len(d.set), LoadedAt: d.loadedAt, IsLoaded: true}
}

// FromList serves a fixed list.
func FromList(list []string) Source {
	return func() ([]string, error) { return list, nil }
}

// Embedded serves the word list compiled into the binary.
func Embedded() Source {
	return assets.WordList
}

// FromFile reads path as a JSON array when it ends in .json, otherwise as
// one word per line (blank lines and # comments ignored).
func FromFile(path string) Source {
	return func() ([]string, error) {
		if strings.EqualFold(filepath.Ext(path), ".json") {
			return readJSONFile(path)
		}
		return readWordFile(path)
	}
}

func readJSONFile(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}

// SourceFor picks FromFile when path is set, otherwise Embedded.
func SourceFor(path string) Source {
	if path == "" {
		return Embedded()
	}
	return FromFile(path)
}
