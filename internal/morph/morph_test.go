package morph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPluralRegular(t *testing.T) {
	cases := map[string]string{
		"cat":     "cats",
		"bus":     "buses",
		"box":     "boxes",
		"buzz":    "buzzes",
		"city":    "cities",
		"day":     "days",
		"church":  "churches",
		"dish":    "dishes",
		"woman":   "women",
	}
	for in, want := range cases {
		assert.Equal(t, want, Plural(in, nil), "Plural(%q)", in)
	}
}

func TestPluralException(t *testing.T) {
	exc := Exceptions{"child": "children"}
	assert.Equal(t, "children", Plural("child", exc))
}

func TestMultiWordInflectsHeadOnly(t *testing.T) {
	assert.Equal(t, "attorneys_general", Plural("attorney_general", nil))
}

func TestPastAndGerund(t *testing.T) {
	assert.Equal(t, "walked", Past("walk", nil))
	assert.Equal(t, "loved", Past("love", nil))
	assert.Equal(t, "walking", Gerund("walk", nil))
	assert.Equal(t, "loving", Gerund("love", nil))
	assert.Equal(t, "seeing", Gerund("see", nil))
}

func TestComparativeSuperlative(t *testing.T) {
	assert.Equal(t, "faster", Comparative("fast", nil))
	assert.Equal(t, "nicer", Comparative("nice", nil))
	assert.Equal(t, "happier", Comparative("happy", nil))

	assert.Equal(t, "fastest", Superlative("fast", nil))
	assert.Equal(t, "nicest", Superlative("nice", nil))
	assert.Equal(t, "happiest", Superlative("happy", nil))
}

func TestExceptionPatterns(t *testing.T) {
	assert.True(t, PastPattern.MatchString("went"))
	assert.True(t, PastParticiplePattern.MatchString("gone"))
	assert.True(t, GerundPattern.MatchString("going"))
}
