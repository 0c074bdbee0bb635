package tokenizer

// Trimmer strips a configured byte set from both ends of a field. The cutset
// is treated as raw bytes; multi-byte runes in the cutset are not supported
// (trimming is deliberately not Unicode-aware).
type Trimmer struct {
	cutset  [256]bool
	enabled bool
}

// NewTrimmer builds a Trimmer for the given cutset. An empty cutset yields a
// no-op Trimmer.
func NewTrimmer(cutset string) Trimmer {
	var t Trimmer
	for i := 0; i < len(cutset); i++ {
		t.cutset[cutset[i]] = true
		t.enabled = true
	}
	return t
}

// Enabled reports whether the Trimmer has a non-empty cutset.
func (t Trimmer) Enabled() bool {
	return t.enabled
}

// Trim strips cutset bytes from both ends of s.
func (t Trimmer) Trim(s string) string {
	if !t.enabled {
		return s
	}
	lo, hi := 0, len(s)
	for lo < hi && t.cutset[s[lo]] {
		lo++
	}
	for hi > lo && t.cutset[s[hi-1]] {
		hi--
	}
	return s[lo:hi]
}
