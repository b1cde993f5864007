package frontmatter

import (
	"math"
	"strconv"
	"strings"

	"github.com/umputun/rootbyte/pkg/domain"
)

const delimiter = "---"

// quote characters stripped from both ends of a value, one layer only
const quoteChars = `"'“”‘’`

// Document is a parsed markdown file
type Document struct {
	Meta     domain.Meta
	Keys     []string // meta keys in file order
	Body     string
	HasBlock bool // false if the text has no closed frontmatter block
}

// block holds byte offsets of a frontmatter block inside the text
type block struct {
	start int // first byte after the opening delimiter line
	end   int // first byte of the closing delimiter line
	after int // first byte after the closing delimiter line
}

// Parse splits text into frontmatter values and body. It never fails: text without a closed
// block is returned as body with empty meta, lines without a colon are skipped.
func Parse(text string) Document {
	b, ok := findBlock(text)
	if !ok {
		return Document{Meta: domain.Meta{}, Body: text}
	}

	doc := Document{Meta: domain.Meta{}, HasBlock: true}
	for _, line := range strings.Split(text[b.start:b.end], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		k, v, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key := strings.TrimSpace(k)
		if key == "" {
			continue
		}
		if !doc.Meta.Has(key) {
			doc.Keys = append(doc.Keys, key)
		}
		doc.Meta[key] = Coerce(unquote(strings.TrimSpace(v)))
	}
	doc.Body = strings.TrimSpace(text[b.after:])
	return doc
}

// Coerce converts a raw value to bool or float64 when it is one, leaving other values as strings
func Coerce(val string) any {
	switch val {
	case "true":
		return true
	case "false":
		return false
	case "":
		return val
	}
	n, err := strconv.ParseFloat(val, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return val
	}
	return n
}

// Serialize renders document back to markdown with a frontmatter block. Keys are written in
// doc.Keys order, strings are double-quoted.
func Serialize(doc Document) string {
	var sb strings.Builder
	sb.WriteString(delimiter + "\n")
	for _, key := range doc.Keys {
		v, ok := doc.Meta[key]
		if !ok {
			continue
		}
		sb.WriteString(key)
		sb.WriteString(": ")
		if s, isStr := v.(string); isStr {
			sb.WriteString(`"` + s + `"`)
		} else {
			sb.WriteString(domain.FormatValue(v))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(delimiter + "\n")
	if doc.Body != "" {
		sb.WriteString("\n" + doc.Body + "\n")
	}
	return sb.String()
}

// SetField sets key to value inside the frontmatter block of text. The first line with this key
// is replaced, otherwise the key is added as the first line of the block. Text without a block
// gets a new one. Everything outside of the changed line is kept as is.
func SetField(text, key, value string) string {
	entry := key + ": " + value
	b, ok := findBlock(text)
	if !ok {
		return delimiter + "\n" + entry + "\n" + delimiter + "\n" + text
	}

	for pos := b.start; pos < b.end; {
		lineStart := pos
		line, next := nextLine(text, pos)
		if k, _, found := strings.Cut(line, ":"); found && strings.TrimSpace(k) == key {
			return text[:lineStart] + entry + text[lineStart+len(line):]
		}
		pos = next
	}
	return text[:b.start] + entry + "\n" + text[b.start:]
}

// findBlock locates a frontmatter block. The first line must be exactly the delimiter and the
// block ends on the next line that is exactly the delimiter.
func findBlock(text string) (block, bool) {
	line, pos := nextLine(text, 0)
	if line != delimiter {
		return block{}, false
	}
	b := block{start: pos}
	for pos < len(text) {
		lineStart := pos
		line, pos = nextLine(text, pos)
		if line == delimiter {
			b.end, b.after = lineStart, pos
			return b, true
		}
	}
	return block{}, false
}

// nextLine returns the line starting at pos without its line break and the offset of the next line
func nextLine(text string, pos int) (line string, next int) {
	idx := strings.IndexByte(text[pos:], '\n')
	if idx < 0 {
		return strings.TrimSuffix(text[pos:], "\r"), len(text)
	}
	return strings.TrimSuffix(text[pos:pos+idx], "\r"), pos + idx + 1
}

func unquote(val string) string {
	for _, q := range quoteChars {
		if strings.HasPrefix(val, string(q)) {
			val = val[len(string(q)):]
			break
		}
	}
	for _, q := range quoteChars {
		if strings.HasSuffix(val, string(q)) {
			val = val[:len(val)-len(string(q))]
			break
		}
	}
	return val
}
