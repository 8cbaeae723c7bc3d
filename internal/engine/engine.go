// Package engine implements NLCrypt's keystream/permutation core.
//
// An Engine turns a stream of (index, label, modulus) requests into a
// permuted index, deterministically under a key, such that the exact
// same sequence of requests played back in the opposite direction
// reconstructs the original indices. It is the only source of
// randomness-shaped output in NLCrypt, and it is intentionally built
// from two broken primitives (HMAC-MD5 and RC4): see spec Non-goals.
// Bit-for-bit compatibility with those primitives, not their security,
// is the contract this package exists to uphold.
//
// Construction, step by step, for one call to Permute(i0, label, n):
//
//  1. Snapshot the running HMAC-MD5 digest: k (16 bytes). This is a
//     non-destructive read; it does not advance the HMAC state.
//  2. Build v = little-endian-uint32(n) || label.
//  3. Run RC4 keyed by k over v, truncated to len(v) bytes, to get v'.
//  4. Interpret the first 4 bytes of v' as a little-endian uint32 x.
//  5. If the engine is in chained ("CBC") mode, fold v' back into the
//     HMAC state via Write, so every subsequent Permute call sees a
//     different k. In unchained ("ECB") mode the HMAC state never
//     advances and every call with the same key sees the same k.
//  6. Return i0+x mod n going forward, or i0-x mod n in reverse.
//
// Permute is a bijection on {0,...,n-1} for any fixed state, direction,
// label and n, because step 6 is translation by a constant in Z/nZ.
// Encrypting and decrypting a message are inverses of each other only
// if both sides issue the exact same sequence of (label, n) pairs —
// that discipline is the caller's (the transform package's) job, not
// this package's.
package engine

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/rc4"
	"encoding/binary"
	"hash"
)

// Engine is the mutable key state of one encrypt/decrypt session. It
// owns its HMAC instance exclusively: concurrent Permute calls against
// the same Engine would interleave digest snapshots and chaining
// updates and silently break invertibility. Callers must not share an
// Engine across goroutines.
type Engine struct {
	mac     hash.Hash
	reverse bool
	cbc     bool
}

// New creates an Engine keyed by key (used verbatim as the HMAC-MD5
// key; NLCrypt does no key-stretching). reverse selects decryption
// instead of encryption; cbc enables chaining the RC4 output back into
// the HMAC state between calls.
func New(key []byte, reverse, cbc bool) *Engine {
	return &Engine{
		mac:     hmac.New(md5.New, key),
		reverse: reverse,
		cbc:     cbc,
	}
}

// Permute maps i0 (0 <= i0 < n) to a permuted index in the same range,
// consuming label and n as keystream context. label should be short
// ASCII (a group label like "NN+VB:3", or a character-class id like
// "0"); an empty label is legal. n must be >= 1 and i0 < n — violating
// either is a contract error (a builder or caller bug) and panics,
// per spec's "contract violations are fatal" error design.
func (e *Engine) Permute(i0 int, label string, n int) int {
	if n < 1 {
		panic("engine: Permute called with n < 1")
	}
	if i0 < 0 || i0 >= n {
		panic("engine: Permute called with i0 out of range")
	}

	k := snapshot(e.mac)

	v := make([]byte, 4+len(label))
	binary.LittleEndian.PutUint32(v, uint32(n))
	copy(v[4:], label)

	c, err := rc4.NewCipher(k)
	if err != nil {
		// k is always exactly md5.Size (16) bytes, which rc4 accepts for
		// any key length 1..256; this can never actually fail.
		panic(err)
	}
	vp := make([]byte, len(v))
	c.XORKeyStream(vp, v)

	if e.cbc {
		e.mac.Write(vp)
	}

	x := binary.LittleEndian.Uint32(vp[:4])
	if e.reverse {
		return mod(i0-int(x), n)
	}
	return mod(i0+int(x), n)
}

// snapshot reads the current digest without mutating the running HMAC
// state. hash.Hash doesn't expose a peek operation, so we ask for the
// sum with a nil suffix, which crypto/hmac and crypto/md5 both define
// as non-destructive (the internal block buffer is copied, not
// consumed) — the same trick the standard library's own hash.Hash
// users rely on for checksumming without resetting.
func snapshot(h hash.Hash) []byte {
	return h.Sum(nil)
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
