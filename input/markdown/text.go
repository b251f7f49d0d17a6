package markdown

import (
	"bytes"
	"strconv"
	"unicode/utf8"

	"github.com/yuin/goldmark/util"
)

var replacementCharacter = []byte("\ufffd")

// decode resolves backslash escapes, numeric character references and
// entity names in raw inline text, as goldmark's HTML writer does when
// rendering text.
func decode(source []byte) string {
	var out bytes.Buffer
	escaped := false
	limit := len(source)
	n := 0
	for i := 0; i < limit; i++ {
		c := source[i]
		if escaped {
			if util.IsPunct(c) {
				out.Write(source[n : i-1])
				n = i
				escaped = false
				continue
			}
		}
		if c == '\x00' {
			out.Write(source[n:i])
			out.Write(replacementCharacter)
			n = i + 1
			escaped = false
			continue
		}
		if c == '&' {
			if end, r, ok := readReference(source, i); ok {
				out.Write(source[n:i])
				out.Write(r)
				n = end
				i = end - 1
				escaped = false
				continue
			}
		}
		escaped = c == '\\' && !escaped
	}
	out.Write(source[n:])
	return out.String()
}

// readReference reads a character reference starting at source[pos] == '&'.
// It returns the position after the closing semicolon and the replacement.
func readReference(source []byte, pos int) (int, []byte, bool) {
	limit := len(source)
	next := pos + 1
	if next < limit && source[next] == '#' {
		nnext := next + 1
		if nnext >= limit {
			return 0, nil, false
		}
		nc := source[nnext]
		if nc == 'x' || nc == 'X' { // like &#x22;
			start := nnext + 1
			i, ok := util.ReadWhile(source, [2]int{start, limit}, util.IsHexDecimal)
			if ok && i < limit && source[i] == ';' && i-start < 7 {
				v, _ := strconv.ParseUint(util.BytesToReadOnlyString(source[start:i]), 16, 32)
				return i + 1, runeBytes(rune(v)), true
			}
		} else if nc >= '0' && nc <= '9' { // like &#1234;
			start := nnext
			i, ok := util.ReadWhile(source, [2]int{start, limit}, util.IsNumeric)
			if ok && i < limit && i-start < 8 && source[i] == ';' {
				v, _ := strconv.ParseUint(util.BytesToReadOnlyString(source[start:i]), 10, 32)
				return i + 1, runeBytes(rune(v)), true
			}
		}
		return 0, nil, false
	}
	start := next
	i, ok := util.ReadWhile(source, [2]int{start, limit}, util.IsAlphaNumeric)
	if ok && i < limit && source[i] == ';' {
		name := util.BytesToReadOnlyString(source[start:i])
		if entity, ok := util.LookUpHTML5EntityByName(name); ok {
			return i + 1, entity.Characters, true
		}
	}
	return 0, nil, false
}

func runeBytes(r rune) []byte {
	if r == 0 || !utf8.ValidRune(r) {
		return replacementCharacter
	}
	buf := make([]byte, utf8.RuneLen(r))
	utf8.EncodeRune(buf, r)
	return buf
}
