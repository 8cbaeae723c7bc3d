// Package dictbuild is the offline counterpart to internal/dictionary:
// it reads WordNet's index/exception/frequency files and produces the
// two KV stores (w2g, g2w) the runtime consumes. It mirrors
// original_source/mkdict.py's DictionaryConverter step for step:
// regex-filtered headwords, per-POS inflection via internal/morph,
// frequency-weighted group labels, and a frozen ASCII-lexicographic
// member ordering within each group.
package dictbuild

import (
	"bufio"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/euske/nlcrypt/internal/kv"
	"github.com/euske/nlcrypt/internal/morph"
	"github.com/euske/nlcrypt/internal/wordnet"
)

var wordPattern = regexp.MustCompile(`^[A-Za-z]+$`)

// Exceptions holds the four *.exc tables (inflected -> base, as read),
// pre-split into the POS sub-buckets the builder needs (e.g. verb.exc
// fans out into VBZ/VBD/VBN/VBG tables by inspecting the exception's
// inflected form).
type Exceptions struct {
	NNS morph.Exceptions // noun.exc
	JJR morph.Exceptions
	JJS morph.Exceptions // adj.exc split by suffix
	RBR morph.Exceptions
	RBS morph.Exceptions // adv.exc split by suffix
	VBZ morph.Exceptions
	VBD morph.Exceptions
	VBN morph.Exceptions
	VBG morph.Exceptions // verb.exc split by regex classification
}

// SplitAdjExceptions buckets a raw adj.exc table into comparative
// (ends "r") and superlative (ends "t") exceptions, matching
// mkdict.py's read_adj_exc.
func SplitAdjExceptions(raw map[string]string) (jjr, jjs morph.Exceptions) {
	jjr, jjs = morph.Exceptions{}, morph.Exceptions{}
	for inflected, base := range raw {
		switch {
		case strings.HasSuffix(inflected, "r"):
			jjr[inflected] = base
		case strings.HasSuffix(inflected, "t"):
			jjs[inflected] = base
		}
	}
	return
}

// SplitAdvExceptions is SplitAdjExceptions for adv.exc (RBR/RBS).
func SplitAdvExceptions(raw map[string]string) (rbr, rbs morph.Exceptions) {
	rbr, rbs = morph.Exceptions{}, morph.Exceptions{}
	for inflected, base := range raw {
		switch {
		case strings.HasSuffix(inflected, "r"):
			rbr[inflected] = base
		case strings.HasSuffix(inflected, "t"):
			rbs[inflected] = base
		}
	}
	return
}

// SplitVerbExceptions buckets a raw verb.exc table into VBZ/VBD/VBN/VBG,
// matching mkdict.py's read_verb_exc classification order exactly:
// ends in "s" -> VBZ; else matches the past pattern and does not end
// in "ne" -> VBD; else matches the past-participle pattern -> VBN;
// else matches the gerund pattern -> VBG; otherwise dropped.
func SplitVerbExceptions(raw map[string]string) (vbz, vbd, vbn, vbg morph.Exceptions) {
	vbz, vbd, vbn, vbg = morph.Exceptions{}, morph.Exceptions{}, morph.Exceptions{}, morph.Exceptions{}
	for inflected, base := range raw {
		switch {
		case strings.HasSuffix(inflected, "s"):
			vbz[inflected] = base
		case morph.PastPattern.MatchString(inflected) && !strings.HasSuffix(inflected, "ne"):
			vbd[inflected] = base
		case morph.PastParticiplePattern.MatchString(inflected):
			vbn[inflected] = base
		case morph.GerundPattern.MatchString(inflected):
			vbg[inflected] = base
		}
	}
	return
}

// Converter accumulates (word -> set of POS tags) across every
// headword read, plus the cntlist frequency weights, the way
// mkdict.py's DictionaryConverter does. Build it with NewConverter,
// feed it WordNet index files via ReadIndex, then call Write.
type Converter struct {
	exc     Exceptions
	weight  map[string]int
	skip    map[string]bool
	words   map[string]map[string]bool // word -> set of POS tags
}

// NewConverter creates a Converter with the given exception tables,
// cntlist-derived weights, and an initial skip list. Per spec.md §9's
// open question about "a"/"an" colliding with the article mechanism,
// NewConverter always adds "a" and "an" to the skip list regardless
// of what the caller passes, to guarantee round-trip identity. Each
// exception table is inverted to base -> inflected, the keying
// internal/morph looks up by; where several inflected forms share a
// base, the ASCII-smallest one is kept.
func NewConverter(exc Exceptions, weight map[string]int, skip []string) *Converter {
	invert := func(m morph.Exceptions) morph.Exceptions {
		inv := make(morph.Exceptions, len(m))
		for inflected, base := range m {
			if cur, ok := inv[base]; !ok || inflected < cur {
				inv[base] = inflected
			}
		}
		return inv
	}
	exc = Exceptions{
		NNS: invert(exc.NNS), JJR: invert(exc.JJR), JJS: invert(exc.JJS),
		RBR: invert(exc.RBR), RBS: invert(exc.RBS),
		VBZ: invert(exc.VBZ), VBD: invert(exc.VBD), VBN: invert(exc.VBN), VBG: invert(exc.VBG),
	}
	c := &Converter{
		exc:    exc,
		weight: weight,
		skip:   make(map[string]bool, len(skip)+2),
		words:  make(map[string]map[string]bool),
	}
	for _, w := range skip {
		c.skip[strings.ToLower(w)] = true
	}
	c.skip["a"] = true
	c.skip["an"] = true
	return c
}

// ReadIndex ingests one index.* file's entries for part of speech pos,
// expanding each admissible headword into its surface forms via
// internal/morph, exactly as mkdict.py's read() does per POS branch.
func (c *Converter) ReadIndex(pos wordnet.POS, entries []wordnet.IndexEntry) {
	tag := wordnet.Tag[pos]
	for _, e := range entries {
		if e.Tag != tag {
			continue
		}
		w := e.Word
		if !wordPattern.MatchString(w) || len(w) < 2 {
			continue
		}
		switch pos {
		case wordnet.Adjective:
			c.addPOS(w, "JJ")
			c.addPOS(morph.Comparative(w, c.exc.JJR), "JJR")
			c.addPOS(morph.Superlative(w, c.exc.JJS), "JJS")
		case wordnet.Adverb:
			c.addPOS(w, "RB")
			c.addPOS(morph.Comparative(w, c.exc.RBR), "RBR")
			c.addPOS(morph.Superlative(w, c.exc.RBS), "RBS")
		case wordnet.Noun:
			c.addPOS(w, "NN")
			c.addPOS(morph.Plural(w, c.exc.NNS), "NNS")
		case wordnet.Verb:
			c.addPOS(w, "VB")
			c.addPOS(w, "VBP")
			c.addPOS(morph.PresentThirdPerson(w, c.exc.VBZ), "VBZ")
			c.addPOS(morph.Past(w, c.exc.VBD), "VBD")
			c.addPOS(morph.PastParticiple(w, c.exc.VBN), "VBN")
			if !strings.Contains(w, "_") {
				c.addPOS(morph.Gerund(w, c.exc.VBG), "VBG")
			}
		}
	}
}

func (c *Converter) addPOS(w, tag string) {
	w = strings.ToLower(w)
	if c.skip[w] {
		return
	}
	tags, ok := c.words[w]
	if !ok {
		tags = make(map[string]bool)
		c.words[w] = tags
	}
	tags[tag] = true
}

// group returns (word -> group label) and (label -> sorted members)
// built from the accumulated words and weights. Tags within a label
// are joined in deterministic ASCII-sorted order (spec.md §4.2.2's
// required fix for the original's unordered-set iteration), and
// members within each group are frozen in ASCII-lexicographic order.
func (c *Converter) group() (word2label map[string]string, label2words map[string][]string) {
	label2words = make(map[string][]string)
	word2label = make(map[string]string)

	for w, tags := range c.words {
		sortedTags := make([]string, 0, len(tags))
		for t := range tags {
			sortedTags = append(sortedTags, t)
		}
		sort.Strings(sortedTags)
		label := fmt.Sprintf("%s:%d", strings.Join(sortedTags, "+"), c.weight[w])
		label2words[label] = append(label2words[label], w)
		word2label[w] = label
	}
	for label, members := range label2words {
		sort.Strings(members)
		label2words[label] = members
	}
	return word2label, label2words
}

// Write builds the group tables and writes the w2g/g2w stores. Each
// skip-listed word is additionally written to w2g with the empty-label
// sentinel value ",0", per spec.md §3's WordEntry invariant.
func (c *Converter) Write(g2w, w2g kv.Writer) error {
	word2label, label2words := c.group()

	for label, members := range label2words {
		if err := g2w.Put(label, []byte(strings.Join(members, " "))); err != nil {
			return fmt.Errorf("dictbuild: writing g2w[%q]: %w", label, err)
		}
	}

	positions := make(map[string]map[string]int, len(label2words))
	for label, members := range label2words {
		pos := make(map[string]int, len(members))
		for i, m := range members {
			pos[m] = i
		}
		positions[label] = pos
	}

	for w, label := range word2label {
		pos := positions[label][w]
		if err := w2g.Put(w, []byte(fmt.Sprintf("%s,%d", label, pos))); err != nil {
			return fmt.Errorf("dictbuild: writing w2g[%q]: %w", w, err)
		}
	}
	for w := range c.skip {
		if err := w2g.Put(w, []byte(",0")); err != nil {
			return fmt.Errorf("dictbuild: writing skip entry w2g[%q]: %w", w, err)
		}
	}
	return nil
}

// ReadSkipList reads a tab-separated "word\tPOS" skip-list file (with
// "#"-prefixed comments stripped per line), matching mkdict.py's
// read_skip. Blank lines (after comment-stripping) are ignored.
func ReadSkipList(r *bufio.Scanner) []string {
	var words []string
	for r.Scan() {
		line := r.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 2)
		words = append(words, fields[0])
	}
	return words
}
