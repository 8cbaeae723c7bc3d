package transform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/euske/nlcrypt/internal/dictionary"
	"github.com/euske/nlcrypt/internal/kv"
)

// fixture builds a small dictionary: one five-word group covering
// "bird", "cat", "dog", "eel", "fish" (ASCII order, as a built
// dictionary would freeze them), plus the mandatory "a"/"an" skip
// entries.
func fixture(t *testing.T) *dictionary.Dictionary {
	t.Helper()
	w2g := kv.MemStore{
		"bird": []byte("NN:3,0"),
		"cat":  []byte("NN:3,1"),
		"dog":  []byte("NN:3,2"),
		"eel":  []byte("NN:3,3"),
		"fish": []byte("NN:3,4"),
		"a":    []byte(",0"),
		"an":   []byte(",0"),
	}
	g2w := kv.MemStore{
		"NN:3": []byte("bird cat dog eel fish"),
	}
	d, err := dictionary.Open(w2g, g2w)
	require.NoError(t, err)
	return d
}

func TestFeedRoundTrip(t *testing.T) {
	key := []byte("session-key")
	fwd := New(key, false, false, fixture(t), nil)
	rev := New(key, true, false, fixture(t), nil)

	in := "The cat chased a dog."
	out := fwd.Feed(in)
	back := rev.Feed(out)
	assert.Equal(t, in, back)
}

func TestFeedCBCRoundTrip(t *testing.T) {
	key := []byte("session-key")
	fwd := New(key, false, true, fixture(t), nil)
	rev := New(key, true, true, fixture(t), nil)

	in := "The cat chased a dog and a bird."
	out := fwd.Feed(in)
	back := rev.Feed(out)
	assert.Equal(t, in, back)
}

func TestFeedKnownWordIsSubstituted(t *testing.T) {
	fwd := New([]byte("k"), false, false, fixture(t), nil)
	out := fwd.Feed("cat")
	assert.NotEqual(t, "cat", out)
	assert.Contains(t, []string{"bird", "dog", "eel", "fish"}, out)
}

func TestFeedPreservesInitialCap(t *testing.T) {
	fwd := New([]byte("k"), false, false, fixture(t), nil)
	out := fwd.Feed("Cat")
	assert.Contains(t, []string{"Bird", "Dog", "Eel", "Fish"}, out)
}

func TestFeedPreservesAllCaps(t *testing.T) {
	fwd := New([]byte("k"), false, false, fixture(t), nil)
	out := fwd.Feed("CAT")
	assert.Contains(t, []string{"BIRD", "DOG", "EEL", "FISH"}, out)
}

func TestFeedArticleAgreementFollowsSubstitution(t *testing.T) {
	fwd := New([]byte("k"), false, false, fixture(t), nil)
	out := fwd.Feed("a cat")
	word := out[strings.Index(out, " ")+1:]
	wantArticle := "a"
	if isVoweled(word) {
		wantArticle = "an"
	}
	assert.Equal(t, wantArticle+" "+word, out)
}

func TestIsVoweled(t *testing.T) {
	assert.True(t, isVoweled("eel"))
	assert.False(t, isVoweled("dog"))
	assert.False(t, isVoweled(""))
}

func TestFeedUnknownWordFallsBackToCharacterSubstitution(t *testing.T) {
	fwd := New([]byte("k"), false, false, fixture(t), nil)
	rev := New([]byte("k"), true, false, fixture(t), nil)

	in := "xqz"
	out := fwd.Feed(in)
	assert.NotEqual(t, in, out)
	assert.Equal(t, in, rev.Feed(out))
}

func TestFeedPunctuationOnlyTokenIsIgnored(t *testing.T) {
	fwd := New([]byte("k"), false, false, fixture(t), nil)
	assert.Equal(t, "...", fwd.Feed("..."))
}

func TestFeedPreservesWhitespaceAndPunctuation(t *testing.T) {
	fwd := New([]byte("k"), false, false, fixture(t), nil)
	rev := New([]byte("k"), true, false, fixture(t), nil)

	in := "Cat, dog!\nFish?"
	out := fwd.Feed(in)
	assert.Equal(t, in, rev.Feed(out))
}

func TestAdjustCapsAllCaps(t *testing.T) {
	assert.Equal(t, "DOG", adjustCaps("CAT", "dog"))
}

func TestAdjustCapsInitialOnly(t *testing.T) {
	assert.Equal(t, "Dog", adjustCaps("Cat", "dog"))
}

func TestAdjustCapsLower(t *testing.T) {
	assert.Equal(t, "dog", adjustCaps("cat", "dog"))
}

type recordingLogger struct {
	words   int
	ignores int
	unknown int
}

func (r *recordingLogger) Word(string, int, string, string, int) { r.words++ }
func (r *recordingLogger) Ignore(string)                         { r.ignores++ }
func (r *recordingLogger) Unknown(string, string)                { r.unknown++ }

func TestFeedReportsEventsToLogger(t *testing.T) {
	log := &recordingLogger{}
	fwd := New([]byte("k"), false, false, fixture(t), log)
	fwd.Feed("cat e.g. xqz")
	assert.Equal(t, 1, log.words)
	assert.Equal(t, 1, log.ignores)
	assert.Equal(t, 1, log.unknown)
}
