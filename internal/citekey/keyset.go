package citekey

// KeySet tracks the keys already issued in one conversion run. It is not
// safe for concurrent use; each run owns its own set.
type KeySet struct {
	seen map[string]bool
}

// NewKeySet returns a set pre-populated with existing keys.
func NewKeySet(existing ...string) *KeySet {
	s := &KeySet{seen: make(map[string]bool, len(existing))}
	for _, k := range existing {
		s.seen[k] = true
	}
	return s
}

// Claim returns base if unused, otherwise base with the first free letter
// suffix (a, b, ..., z, aa, ab, ...), and records the result.
func (s *KeySet) Claim(base string) string {
	key := base
	for i := 0; s.seen[key]; i++ {
		key = base + suffix(i)
	}
	s.seen[key] = true
	return key
}

// suffix returns the i-th letter suffix in bijective base 26.
func suffix(i int) string {
	var b []byte
	for i++; i > 0; i = (i - 1) / 26 {
		b = append([]byte{byte('a' + (i-1)%26)}, b...)
	}
	return string(b)
}
