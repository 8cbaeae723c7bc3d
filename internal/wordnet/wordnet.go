// Package wordnet parses the WordNet source files the offline
// dictionary builder consumes: the four index.* files (one per part
// of speech), the four *.exc exception files, and the cntlist
// frequency file. Formats match original_source/mkdict.py exactly:
// space-separated fields for index/exc files, "count sense_key" pairs
// for cntlist with the lemma taken before the first '%'.
package wordnet

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
)

// POS is one of WordNet's four source parts of speech, as used in
// index.* filenames and the second field of index lines.
type POS string

const (
	Adjective POS = "adj"
	Adverb    POS = "adv"
	Noun      POS = "noun"
	Verb      POS = "verb"
)

// Tag maps a POS to the single-letter tag that appears as the second
// field of its index.* lines.
var Tag = map[POS]string{
	Adjective: "a",
	Adverb:    "r",
	Noun:      "n",
	Verb:      "v",
}

// IndexFilename and ExcFilename return the conventional WordNet
// filenames for p ("index.adj"/"adj.exc", etc.); p is also the
// filename suffix itself, since POS's constants were chosen to match.
func IndexFilename(p POS) string { return "index." + string(p) }
func ExcFilename(p POS) string   { return string(p) + ".exc" }

// IndexEntry is one headword record from an index.* file.
type IndexEntry struct {
	Word string
	Tag  string // "a", "r", "n", or "v"
}

// ReadIndex reads an index.* file, skipping WordNet's copyright-banner
// continuation lines (which start with a space) the way mkdict.py does.
func ReadIndex(r io.Reader) ([]IndexEntry, error) {
	var entries []IndexEntry
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, " ") {
			continue
		}
		fields := strings.Split(strings.TrimSpace(line), " ")
		if len(fields) < 2 {
			continue
		}
		entries = append(entries, IndexEntry{Word: fields[0], Tag: fields[1]})
	}
	return entries, sc.Err()
}

// ReadExceptions reads a *.exc file. Each line is "inflected base"
// (space-separated); the returned map is inflected -> base, matching
// mkdict.py's _read_exc ((f[1], f[0]) yields base keyed by inflected).
func ReadExceptions(r io.Reader) (map[string]string, error) {
	exc := make(map[string]string)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Split(strings.TrimSpace(sc.Text()), " ")
		if len(fields) < 2 {
			continue
		}
		exc[fields[0]] = fields[1]
	}
	return exc, sc.Err()
}

// ReadCntlist reads the cntlist frequency file and returns, for each
// lemma, the floor(log2(total_count) + 0.5) weight spec.md §4.2.2
// specifies. A lemma's count is the sum across every sense key whose
// lemma (the part before '%') matches.
func ReadCntlist(r io.Reader) (map[string]int, error) {
	totals := make(map[string]int64)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Split(strings.TrimSpace(sc.Text()), " ")
		if len(fields) < 2 {
			continue
		}
		n, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			continue
		}
		senseKey := fields[1]
		lemma := senseKey
		if i := strings.IndexByte(senseKey, '%'); i >= 0 {
			lemma = senseKey[:i]
		}
		totals[lemma] += n
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	weights := make(map[string]int, len(totals))
	for w, n := range totals {
		weights[w] = weight(n)
	}
	return weights, nil
}

// weight computes floor(log2(n) + 0.5) for n > 0, 0 otherwise,
// matching mkdict.py's convfreq (which computes log(n)/log(2)+0.5,
// i.e. log base 2, then truncates via int()).
func weight(n int64) int {
	if n <= 0 {
		return 0
	}
	return int(math.Log2(float64(n)) + 0.5)
}
