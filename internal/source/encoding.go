package source

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// PEP 263: the coding cookie must appear in a comment on the first or second
// line of the file.
var codingCookie = regexp.MustCompile(`^[ \t\f]*#.*?coding[:=][ \t]*([-_.a-zA-Z0-9]+)`)

// detectEncoding returns the declared source encoding of a Python file,
// or "" when the file carries no coding cookie.
func detectEncoding(content []byte) string {
	rest := content
	for line := 0; line < 2; line++ {
		idx := bytes.IndexByte(rest, '\n')
		var cur []byte
		if idx < 0 {
			cur, rest = rest, nil
		} else {
			cur, rest = rest[:idx], rest[idx+1:]
		}
		if m := codingCookie.FindSubmatch(cur); m != nil {
			return string(m[1])
		}
		if rest == nil {
			break
		}
	}
	return ""
}

// Python codec spellings that neither the WHATWG nor the IANA index knows.
var encodingAliases = map[string]string{
	"latin-1": "latin1",
	"latin":   "latin1",
	"8859":    "latin1",
}

// decodeSource transcodes content to UTF-8 according to its coding cookie.
// UTF-8 (and its aliases) pass through untouched. The returned flag reports
// whether a transcode actually happened.
func decodeSource(content []byte, name string) ([]byte, bool, error) {
	normalized := strings.ToLower(strings.ReplaceAll(name, "_", "-"))
	switch normalized {
	case "", "utf-8", "utf8", "ascii", "us-ascii":
		return content, false, nil
	}
	if alias, ok := encodingAliases[normalized]; ok {
		normalized = alias
	}
	enc, err := htmlindex.Get(normalized)
	if err != nil {
		enc, err = ianaindex.IANA.Encoding(normalized)
	}
	if err != nil || enc == nil {
		return nil, false, fmt.Errorf("source: unknown encoding %q", name)
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), content)
	if err != nil {
		return nil, false, fmt.Errorf("source: decode %q: %w", name, err)
	}
	return out, true, nil
}
