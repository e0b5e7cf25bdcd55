package fonts

import (
	"strconv"
	"strings"

	"github.com/pagemark/pagemark/geom"
)

// scanContent walks a decoded page content stream and emits a TextRun for
// every text-showing operator, tracking the Tf font state and the text
// positioning operators (Tm, Td, TD, TL, T*). Boxes are approximate:
// width is estimated from glyph count, height from the font size. The
// incoming coordinates are PDF bottom-left; output boxes are document
// space (top-left origin).
func scanContent(data []byte, pageHeight float64, faces map[string]string) []TextRun {
	var runs []TextRun

	var (
		fontRes      string
		size         float64
		x, y         float64 // current text position, PDF space
		lineX, lineY float64
		leading      float64
		operands     []tok
	)

	emit := func(text string) {
		if text == "" || size <= 0 {
			return
		}
		w := estimateWidth(text, size)
		runs = append(runs, TextRun{
			BBox:  geom.Rect{X: x, Y: pageHeight - y - size*0.8, W: w, H: size * 1.2},
			Text:  text,
			Style: styleFor(fontRes, size, faces),
		})
		x += w
	}

	num := func(i int) float64 {
		if i < 0 || i >= len(operands) {
			return 0
		}
		f, _ := strconv.ParseFloat(operands[i].v, 64)
		return f
	}

	for _, t := range tokenize(data) {
		if t.isStr || !isOperator(t.v) {
			operands = append(operands, t)
			continue
		}
		n := len(operands)
		switch t.v {
		case "BT":
			x, y, lineX, lineY = 0, 0, 0, 0
		case "Tf":
			if n >= 2 {
				fontRes = strings.TrimPrefix(operands[n-2].v, "/")
				size = num(n - 1)
			}
		case "Tm":
			if n >= 6 {
				x, y = num(n-2), num(n-1)
				lineX, lineY = x, y
			}
		case "Td":
			lineX += num(n - 2)
			lineY += num(n - 1)
			x, y = lineX, lineY
		case "TD":
			leading = -num(n - 1)
			lineX += num(n - 2)
			lineY += num(n - 1)
			x, y = lineX, lineY
		case "TL":
			leading = num(n - 1)
		case "T*":
			lineY -= leading
			x, y = lineX, lineY
		case "Tj", "'", "\"":
			for i := n - 1; i >= 0; i-- {
				if operands[i].isStr {
					if t.v != "Tj" {
						lineY -= leading
						x, y = lineX, lineY
					}
					emit(operands[i].v)
					break
				}
			}
		case "TJ":
			var sb strings.Builder
			for _, op := range operands {
				if op.isStr {
					sb.WriteString(op.v)
				}
			}
			emit(sb.String())
		}
		operands = operands[:0]
	}

	return runs
}

func estimateWidth(text string, size float64) float64 {
	return 0.5 * size * float64(len([]rune(text)))
}

func styleFor(fontRes string, size float64, faces map[string]string) RunStyle {
	name := fontRes
	if base, ok := faces[fontRes]; ok {
		name = base
	}
	rs := ParseBaseFont(name)
	rs.Size = size
	return rs
}

type tok struct {
	isStr bool
	v     string
}

// isOperator reports whether a bare token is a content operator rather
// than a numeric or name operand.
func isOperator(s string) bool {
	if s == "" || s[0] == '/' || s == "[" || s == "]" {
		return false
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return false
	}
	return true
}

// tokenize splits a content stream into string literals and bare tokens.
// Dictionaries and hex strings get just enough handling to keep the
// scanner aligned.
func tokenize(data []byte) []tok {
	var toks []tok
	i := 0
	for i < len(data) {
		c := data[i]
		switch {
		case isWhitespace(c):
			i++
		case c == '%':
			for i < len(data) && data[i] != '\n' {
				i++
			}
		case c == '(':
			s, next := readLiteral(data, i+1)
			toks = append(toks, tok{isStr: true, v: s})
			i = next
		case c == '<':
			if i+1 < len(data) && data[i+1] == '<' {
				i = skipDict(data, i+2)
				continue
			}
			s, next := readHex(data, i+1)
			toks = append(toks, tok{isStr: true, v: s})
			i = next
		case c == '>':
			i++ // stray dict close
		case c == '[' || c == ']' || c == '{' || c == '}':
			toks = append(toks, tok{v: string(c)})
			i++
		case c == '/':
			j := i + 1
			for j < len(data) && !isWhitespace(data[j]) && !isDelimiter(data[j]) {
				j++
			}
			toks = append(toks, tok{v: string(data[i:j])})
			i = j
		default:
			j := i
			for j < len(data) && !isWhitespace(data[j]) && !isDelimiter(data[j]) {
				j++
			}
			if j == i {
				j++ // never stall on an unexpected byte
			}
			toks = append(toks, tok{v: string(data[i:j])})
			i = j
		}
	}
	return toks
}

func readLiteral(data []byte, i int) (string, int) {
	var sb strings.Builder
	depth := 1
	for i < len(data) {
		c := data[i]
		switch c {
		case '\\':
			i++
			if i >= len(data) {
				return sb.String(), i
			}
			switch data[i] {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'b', 'f':
				// ignored
			case '\n':
				// line continuation
			default:
				if data[i] >= '0' && data[i] <= '7' {
					v, n := readOctal(data, i)
					sb.WriteByte(v)
					i += n - 1
				} else {
					sb.WriteByte(data[i])
				}
			}
			i++
		case '(':
			depth++
			sb.WriteByte(c)
			i++
		case ')':
			depth--
			if depth == 0 {
				return sb.String(), i + 1
			}
			sb.WriteByte(c)
			i++
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String(), i
}

func readOctal(data []byte, i int) (byte, int) {
	v, n := 0, 0
	for n < 3 && i+n < len(data) && data[i+n] >= '0' && data[i+n] <= '7' {
		v = v*8 + int(data[i+n]-'0')
		n++
	}
	return byte(v), n
}

func readHex(data []byte, i int) (string, int) {
	var digits []byte
	for i < len(data) && data[i] != '>' {
		c := data[i]
		if isHexDigit(c) {
			digits = append(digits, c)
		}
		i++
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	var sb strings.Builder
	for j := 0; j+1 < len(digits); j += 2 {
		sb.WriteByte(hexVal(digits[j])<<4 | hexVal(digits[j+1]))
	}
	return sb.String(), i + 1
}

func skipDict(data []byte, i int) int {
	depth := 1
	for i < len(data) && depth > 0 {
		if i+1 < len(data) {
			if data[i] == '<' && data[i+1] == '<' {
				depth++
				i += 2
				continue
			}
			if data[i] == '>' && data[i+1] == '>' {
				depth--
				i += 2
				continue
			}
		}
		i++
	}
	return i
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == '\f' || c == 0
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
