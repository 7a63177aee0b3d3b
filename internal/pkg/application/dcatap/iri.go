package dcatap

import (
	"fmt"
	"strings"
)

const iriExcluded string = "<>\"{}|\\^`"

// escapeIRI percent-encodes the characters that may not occur in an IRI at all: controls,
// space and <>"{}|\^`. Everything else, non-ASCII letters included, is kept as is.
func escapeIRI(s string) string {
	if !strings.ContainsFunc(s, excludedFromIRI) {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if c := s[i]; c <= 0x20 || c == 0x7f || strings.IndexByte(iriExcluded, c) >= 0 {
			fmt.Fprintf(&b, "%%%02X", c)
		} else {
			b.WriteByte(c)
		}
	}

	return b.String()
}

func excludedFromIRI(r rune) bool {
	return r <= 0x20 || r == 0x7f || strings.ContainsRune(iriExcluded, r)
}
