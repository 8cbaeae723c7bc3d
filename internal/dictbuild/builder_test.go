package dictbuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/euske/nlcrypt/internal/kv"
	"github.com/euske/nlcrypt/internal/wordnet"
)

func TestSplitVerbExceptions(t *testing.T) {
	raw := map[string]string{
		"went":  "go",  // VBD (ends t, matches past pattern, not "ne")
		"gone":  "go",  // VBN (ends "ne")
		"going": "go",  // VBG (ends "ing")
		"goes":  "go",  // VBZ (ends s)
	}
	vbz, vbd, vbn, vbg := SplitVerbExceptions(raw)
	assert.Equal(t, "go", vbz["goes"])
	assert.Equal(t, "go", vbd["went"])
	assert.Equal(t, "go", vbn["gone"])
	assert.Equal(t, "go", vbg["going"])
}

func TestConverterSkipsAAndAnAlways(t *testing.T) {
	c := NewConverter(Exceptions{}, nil, nil)
	assert.True(t, c.skip["a"])
	assert.True(t, c.skip["an"])
}

func TestConverterGroupsAndWrites(t *testing.T) {
	c := NewConverter(Exceptions{}, map[string]int{"cat": 3, "dog": 3}, nil)
	c.ReadIndex(wordnet.Noun, []wordnet.IndexEntry{
		{Word: "cat", Tag: "n"},
		{Word: "dog", Tag: "n"},
	})

	g2w := kv.MemStore{}
	w2g := kv.MemStore{}
	require.NoError(t, c.Write(writerOf(g2w), writerOf(w2g)))

	catEntry := string(w2g["cat"])
	dogEntry := string(w2g["dog"])
	assert.Contains(t, catEntry, "NN:3,")
	assert.Contains(t, dogEntry, "NN:3,")

	// skip list sentinel entries are present for the default skip words.
	assert.Equal(t, ",0", string(w2g["a"]))
	assert.Equal(t, ",0", string(w2g["an"]))
}

// memWriter adapts a kv.MemStore (a plain map) to kv.Writer for tests,
// since kv.MemStore itself only implements the read side.
type memWriter struct {
	m kv.MemStore
}

func (w memWriter) Put(key string, value []byte) error {
	w.m[key] = value
	return nil
}
func (w memWriter) Close() error { return nil }

func writerOf(m kv.MemStore) kv.Writer { return memWriter{m: m} }
