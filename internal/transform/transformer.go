// Package transform implements NLCrypt's text transformer: Unicode
// segmentation, per-token dictionary/engine lookups, and reassembly
// with whitespace, case, punctuation and indefinite-article agreement
// preserved. It is the only component that drives both
// internal/dictionary and internal/engine together; see
// original_source/nlcrypt.py's NLCrypt class, which this package
// follows step for step.
package transform

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/euske/nlcrypt/internal/dictionary"
	"github.com/euske/nlcrypt/internal/engine"
	"github.com/euske/nlcrypt/internal/logging"
)

var (
	wordPattern = regexp.MustCompile(`[\p{L}\p{N}_\x{2019}'.-]+`)
	partPattern = regexp.MustCompile(`\d+|[\p{L}\p{N}_]+|'[\p{L}\p{N}_]+`)

	// ignorePattern mirrors original_source/nlcrypt.py's IGNORE pattern,
	// compiled there with re.U: Go's \w is ASCII-only (RE2 gives it no
	// Unicode meaning), so the word/non-word classes are spelled out
	// explicitly instead, matching the \w definition wordPattern/partPattern
	// use above (letter, number or underscore).
	ignorePattern = regexp.MustCompile(`^([\p{L}\p{N}_][^\p{L}\p{N}_])+$`)
)

// Logger receives the three debug events the original CLI's -d flag
// traces to stderr: a word substitution, a token explicitly passed
// through (ignored), and a forced character-level substitution.
type Logger interface {
	Word(w0 string, i0 int, label string, w1 string, i1 int)
	Ignore(w0 string)
	Unknown(w0, w1 string)
}

// defaultLogger routes debug events to the shared package logger at
// DEBUG level, so callers who don't care about tracing get the
// original's "-d" behavior for free through the CLI's -d flag.
type defaultLogger struct{}

func (defaultLogger) Word(w0 string, i0 int, label string, w1 string, i1 int) {
	logging.Log.Debugf("word: %s(%s,%d) -> %s(%s,%d)", w0, label, i0, w1, label, i1)
}
func (defaultLogger) Ignore(w0 string) {
	logging.Log.Debugf("ignore: %q", w0)
}
func (defaultLogger) Unknown(w0, w1 string) {
	logging.Log.Debugf("unknown: %s -> %s", w0, w1)
}

// Transformer is one encrypt/decrypt session: an Engine for word- and
// character-level permutation, a Dictionary for word/class lookups,
// and the pending-article buffer described in spec.md §4.3. Like
// Engine, a Transformer is not safe for concurrent use — feed calls
// must be sequential and its state (article slot, Engine's HMAC
// state) persists between them.
type Transformer struct {
	eng    *engine.Engine
	dict   *dictionary.Dictionary
	log    Logger
	a0, a1 *string // pending article surface and accumulated trailer
}

// New creates a Transformer over dict, keyed and moded exactly as
// engine.New. log may be nil, in which case debug events go to the
// shared package logger.
func New(key []byte, reverse, cbc bool, dict *dictionary.Dictionary, log Logger) *Transformer {
	if log == nil {
		log = defaultLogger{}
	}
	return &Transformer{
		eng:  engine.New(key, reverse, cbc),
		dict: dict,
		log:  log,
	}
}

// Feed transforms s and returns the result. It may be called
// repeatedly on the same Transformer to stream a long input; the
// pending-article slot and the Engine's key state persist across
// calls, matching spec.md §5's "feed may be called repeatedly"
// streaming contract. A pending article at the time Feed returns is
// not flushed (spec.md §4.3.5's documented non-flushing choice,
// matching original_source/nlcrypt.py's feed(), which never flushes
// either); it will be resolved by the next Feed call's first word, if
// any.
func (t *Transformer) Feed(s string) string {
	var out strings.Builder
	for _, tok := range segment(wordPattern, s) {
		if !tok.isWord {
			t.putSpace(&out, tok.text)
			continue
		}
		if t.handleArticle(tok.text) {
			continue
		}
		if w1, ok := t.cryptWord(tok.text, false); ok {
			t.putWord(&out, w1)
			continue
		}
		for _, part := range segment(partPattern, tok.text) {
			if !part.isWord {
				t.putSpace(&out, part.text)
				continue
			}
			p1, ok := t.cryptWord(part.text, true)
			if !ok {
				p1 = part.text
			}
			t.putWord(&out, p1)
		}
	}
	return out.String()
}

type token struct {
	isWord bool
	text   string
}

// segment splits s into alternating (non-match, match) runs of pat,
// matching original_source/nlcrypt.py's segment_text generator.
func segment(pat *regexp.Regexp, s string) []token {
	var toks []token
	i0 := 0
	for _, loc := range pat.FindAllStringIndex(s, -1) {
		if i0 < loc[0] {
			toks = append(toks, token{false, s[i0:loc[0]]})
		}
		toks = append(toks, token{true, s[loc[0]:loc[1]]})
		i0 = loc[1]
	}
	if i0 < len(s) {
		toks = append(toks, token{false, s[i0:]})
	}
	return toks
}

// cryptWord resolves one word-class token. ok is false only when the
// token is unresolved against the dictionary and force is false (the
// caller should then fall back to PART-level re-segmentation).
func (t *Transformer) cryptWord(w0 string, force bool) (string, bool) {
	k := strings.ToLower(strings.ReplaceAll(w0, "’", "'"))

	if ignorePattern.MatchString(k) {
		t.log.Ignore(w0)
		return w0, true
	}

	entry, found, err := t.dict.LookupWord(k)
	if err != nil {
		panic(err) // dictionary corruption: a builder bug, fatal per spec §7.
	}
	if found {
		if entry.Skip {
			t.log.Ignore(w0)
			return w0, true
		}
		i1 := t.eng.Permute(entry.Position, entry.Label, entry.GroupSize)
		member, err := t.dict.GroupMember(entry.Label, i1)
		if err != nil {
			panic(err)
		}
		w1 := adjustCaps(w0, member)
		t.log.Word(w0, entry.Position, entry.Label, w1, i1)
		return w1, true
	}

	if force {
		w1 := cryptLetters(t.eng, w0)
		t.log.Unknown(w0, w1)
		return w1, true
	}
	return "", false
}

// cryptLetters is the forced fallback path: substitute each rune
// through its character class, leaving unclassified runes untouched.
func cryptLetters(eng *engine.Engine, w0 string) string {
	var out strings.Builder
	for _, c := range w0 {
		class, pos, size, ok := dictionary.ClassifyChar(c)
		if !ok {
			out.WriteRune(c)
			continue
		}
		i1 := eng.Permute(pos, class, size)
		out.WriteRune(dictionary.ClassMember(class, i1))
	}
	return out.String()
}

// handleArticle implements spec.md §4.3.3: remember a bare "a"/"an"
// token instead of emitting it immediately, so its surface form can be
// re-chosen once the word it's agreeing with has been substituted.
func (t *Transformer) handleArticle(w string) bool {
	if t.a0 == nil && (strings.EqualFold(w, "a") || strings.EqualFold(w, "an")) {
		t.a0 = &w
		empty := ""
		t.a1 = &empty
		return true
	}
	return false
}

func (t *Transformer) putSpace(out *strings.Builder, s string) {
	if t.a1 != nil {
		*t.a1 += s
		return
	}
	out.WriteString(s)
}

func (t *Transformer) putWord(out *strings.Builder, w string) {
	if t.a0 != nil {
		article := "a"
		if isVoweled(w) {
			article = "an"
		}
		out.WriteString(adjustCaps(*t.a0, article))
		out.WriteString(*t.a1)
		t.a0, t.a1 = nil, nil
	}
	out.WriteString(w)
}

func isVoweled(w string) bool {
	if w == "" {
		return false
	}
	r := []rune(strings.ToLower(w))[0]
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	default:
		return false
	}
}

// adjustCaps reproduces w2's letters, capitalized to follow w1's case
// pattern: if w1 is bracketed by uppercase on both ends, the whole
// result is upper-cased; otherwise each position is upper-cased iff
// the corresponding position in w1 is, up to w1's length, with
// positions beyond it left as the dictionary produced them (lower).
func adjustCaps(w1, w2 string) string {
	r1 := []rune(w1)
	r2 := []rune(w2)
	if len(r1) == 0 || len(r2) == 0 {
		return w2
	}
	if unicode.IsUpper(r1[0]) && unicode.IsUpper(r1[len(r1)-1]) {
		return strings.ToUpper(w2)
	}
	out := make([]rune, len(r2))
	for i, c := range r2 {
		if i < len(r1) && unicode.IsUpper(r1[i]) {
			out[i] = unicode.ToUpper(c)
		} else {
			out[i] = c
		}
	}
	return string(out)
}
