package dot

import (
	"strconv"
	"strings"
)

// Reserved label keys.
const (
	KeyTrue  = "true"
	KeyFalse = "false"
	KeyMult  = "mult"
	KeyAdd   = "add"
)

// Default display strings for the reserved keys.
const (
	DefaultTrue  = "⟙"
	DefaultFalse = "⟘"
	DefaultMult  = "×"
	DefaultAdd   = "+"
)

// Labels maps literals, variables and the reserved keys to display text.
// A nil map is valid and yields the defaults everywhere.
type Labels map[string]string

// LiteralKey returns the key under which lit (or a vtree variable) is looked up.
func LiteralKey(lit int) string { return strconv.Itoa(lit) }

// get returns the text for key, or def when the key is absent.
func (l Labels) get(key, def string) string {
	if s, ok := l[key]; ok {
		return s
	}
	return def
}

// text returns the quoted-string-safe text for key, or def.
func (l Labels) text(key, def string) string { return escape(l.get(key, def)) }

// Terminal text is looked up twice: first the reserved key, then the result
// itself, so a map may rename a glyph without knowing which key produced it.
func (l Labels) terminal(key, def string) string {
	name := l.get(key, def)
	return escape(l.get(name, name))
}

func (l Labels) literal(lit int) string {
	key := LiteralKey(lit)
	return escape(l.get(key, key))
}

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// escape makes s safe inside a DOT double-quoted string.
func escape(s string) string { return labelEscaper.Replace(s) }
