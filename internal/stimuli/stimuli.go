// Package stimuli loads the reference-durations table mapping each target
// word to the spoken duration of its stimulus cue. Reaction time is the
// detected onset minus this duration, so a missing or mismatched entry
// makes a file's metrics meaningless.
package stimuli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeKey maps a word to its lookup form: case-folded with diacritics
// removed and surrounding whitespace dropped. Filenames and table entries
// rarely agree on accents or capitalization; this makes both sides meet.
// Transformers and casers are stateful, so each call builds its own;
// lookups run concurrently from the batch workers.
func NormalizeKey(word string) string {
	// NFD splits base letters from combining marks so the marks can drop.
	strip := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(strip, strings.TrimSpace(word))
	if err != nil {
		// Malformed UTF-8; fold what we have.
		stripped = strings.TrimSpace(word)
	}
	return cases.Fold().String(stripped)
}

// Table maps normalized target words to reference stimulus durations in
// seconds. Tables are built once by Load and read-only afterwards, so
// concurrent lookups need no synchronization.
type Table struct {
	durations  map[string]float64
	duplicates []string
}

// Load reads a stimuli CSV with columns word,duration (seconds). A first
// row whose duration cell is not numeric is treated as a header. When two
// rows normalize to the same key the first wins; later ones are recorded
// as duplicates for the batch log.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening stimuli table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	t := &Table{durations: make(map[string]float64)}
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading stimuli table: %w", err)
		}
		line++

		if len(record) < 2 {
			return nil, fmt.Errorf("stimuli table row %d: need word and duration, got %d columns", line, len(record))
		}
		word := strings.TrimSpace(record[0])
		durText := strings.TrimSpace(record[1])
		if word == "" && durText == "" {
			continue
		}

		dur, err := strconv.ParseFloat(durText, 64)
		if err != nil {
			if line == 1 {
				continue // header row
			}
			return nil, fmt.Errorf("stimuli table row %d: bad duration %q", line, durText)
		}
		if dur < 0 {
			return nil, fmt.Errorf("stimuli table row %d: negative duration %g", line, dur)
		}

		key := NormalizeKey(word)
		if key == "" {
			return nil, fmt.Errorf("stimuli table row %d: empty word", line)
		}
		if _, seen := t.durations[key]; seen {
			t.duplicates = append(t.duplicates, word)
			continue
		}
		t.durations[key] = dur
	}

	if len(t.durations) == 0 {
		return nil, fmt.Errorf("stimuli table %s has no entries", path)
	}
	return t, nil
}

// Duration returns the reference duration for a target word, normalizing
// the key the same way Load did.
func (t *Table) Duration(word string) (float64, bool) {
	d, ok := t.durations[NormalizeKey(word)]
	return d, ok
}

// Len reports the number of distinct entries.
func (t *Table) Len() int {
	return len(t.durations)
}

// Duplicates lists the original spellings of rows dropped because an
// earlier row claimed the same normalized key.
func (t *Table) Duplicates() []string {
	return t.duplicates
}
