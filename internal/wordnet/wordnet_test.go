package wordnet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadIndexSkipsBannerLines(t *testing.T) {
	data := " this is a license banner line\ncat n 1 2\ndog n 1 3\n"
	entries, err := ReadIndex(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []IndexEntry{{Word: "cat", Tag: "n"}, {Word: "dog", Tag: "n"}}, entries)
}

func TestReadExceptions(t *testing.T) {
	data := "children child\nmen man\n"
	exc, err := ReadExceptions(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"children": "child", "men": "man"}, exc)
}

func TestReadCntlistSumsAcrossSenses(t *testing.T) {
	data := "10 run%2:1::\n5 run%1:2::\n3 walk%1:1::\n"
	weights, err := ReadCntlist(strings.NewReader(data))
	require.NoError(t, err)
	// run: total 15 -> floor(log2(15)+0.5) = floor(3.907+0.5)=4
	assert.Equal(t, 4, weights["run"])
	// walk: total 3 -> floor(log2(3)+0.5) = floor(1.585+0.5)=2
	assert.Equal(t, 2, weights["walk"])
}

func TestWeightZeroForAbsent(t *testing.T) {
	assert.Equal(t, 0, weight(0))
}
