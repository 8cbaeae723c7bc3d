// Package charset implements the five fixed orthographic classes used as
// the fallback substitution alphabet when a token can't be resolved
// against the word dictionary: digits, lowercase vowels, uppercase
// vowels, lowercase consonants, uppercase consonants. Class IDs are the
// strings "0".."4", matching the group-label shape ("" or "TAG:WEIGHT")
// so both can be fed to the same keystream permutation without the
// engine needing to know which kind of label it's looking at.
package charset

// classes holds the five alphabets in class-id order. Position within
// a class is fixed at package init and never changes.
var classes = [5]string{
	"0123456789",
	"aeiou",
	"AEIOU",
	"bcdfghjklmnpqrstvwxyz",
	"BCDFGHJKLMNPQRSTVWXYZ",
}

// charIndex maps a rune to (class number, position within class).
var charIndex = make(map[rune][2]int, 72)

func init() {
	for class, alphabet := range classes {
		for pos, c := range alphabet {
			charIndex[c] = [2]int{class, pos}
		}
	}
}

// Classify returns the class id, position and class size for c, or ok=false
// if c belongs to none of the five classes (it should pass through verbatim).
func Classify(c rune) (class string, pos int, size int, ok bool) {
	idx, found := charIndex[c]
	if !found {
		return "", 0, 0, false
	}
	class = classID(idx[0])
	pos = idx[1]
	size = len(classes[idx[0]])
	return class, pos, size, true
}

// Member returns the position-th character of the class named by id.
// Precondition: 0 <= pos < Size(id). A violation indicates a caller bug
// (e.g. a permuted index computed against the wrong class) and panics.
func Member(id string, pos int) rune {
	n := classNumber(id)
	alphabet := classes[n]
	if pos < 0 || pos >= len(alphabet) {
		panic("charset: position out of range for class " + id)
	}
	return rune(alphabet[pos])
}

// Size returns the number of members of the class named by id.
func Size(id string) int {
	return len(classes[classNumber(id)])
}

func classID(n int) string {
	return string(rune('0' + n))
}

func classNumber(id string) int {
	if len(id) != 1 || id[0] < '0' || id[0] > '4' {
		panic("charset: invalid class id " + id)
	}
	return int(id[0] - '0')
}
