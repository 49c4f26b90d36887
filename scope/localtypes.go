// Package scope holds the per-class nested type table and the opaque scope
// handle a frontend attaches to a class.
package scope

import (
	"iter"
	"strings"

	"github.com/skdltmxn/classwrap/ctype"
)

// LocalTypes maps short nested type names to their qualified form,
// e.g. "Color" to "Shape::Color". Keys keep their insertion order.
//
// A nil *LocalTypes is an empty, read-only table.
type LocalTypes struct {
	keys   []string
	values map[string]string
}

// NewLocalTypes creates an empty table.
func NewLocalTypes() *LocalTypes {
	return &LocalTypes{values: make(map[string]string)}
}

// Register records short as a type nested in class. A class's own
// declaration replaces whatever an earlier merge put there.
func (lt *LocalTypes) Register(class, short string) {
	lt.Set(short, class+"::"+short)
}

// Set stores an arbitrary mapping, replacing any existing value.
func (lt *LocalTypes) Set(short, qualified string) {
	if _, ok := lt.values[short]; !ok {
		lt.keys = append(lt.keys, short)
	}
	lt.values[short] = qualified
}

// Lookup returns the qualified name for short.
func (lt *LocalTypes) Lookup(short string) (string, bool) {
	if lt == nil {
		return "", false
	}
	q, ok := lt.values[short]
	return q, ok
}

// Len returns the number of entries.
func (lt *LocalTypes) Len() int {
	if lt == nil {
		return 0
	}
	return len(lt.keys)
}

// All iterates entries in insertion order.
func (lt *LocalTypes) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if lt == nil {
			return
		}
		for _, k := range lt.keys {
			if !yield(k, lt.values[k]) {
				return
			}
		}
	}
}

// Merge copies the entries of base that are not yet present, in base's
// order. When several bases are merged in turn the first one to supply a
// key keeps it.
func (lt *LocalTypes) Merge(base *LocalTypes) int {
	n := 0
	for k, v := range base.All() {
		if _, ok := lt.values[k]; ok {
			continue
		}
		lt.keys = append(lt.keys, k)
		lt.values[k] = v
		n++
	}
	return n
}

// Substitute returns t with its base name qualified when the table knows
// it. The input is never modified.
func (lt *LocalTypes) Substitute(t ctype.Type) ctype.Type {
	if q, ok := lt.Lookup(t.Base); ok {
		return t.WithBase(q)
	}
	return t.Copy()
}

// SubstituteParms returns a copy of parms with every parameter type and
// every identifier of a default value qualified through the table.
func (lt *LocalTypes) SubstituteParms(parms ctype.ParmList) ctype.ParmList {
	out := parms.Copy()
	if lt.Len() == 0 {
		return out
	}
	for i := range out {
		out[i].Type = lt.Substitute(out[i].Type)
		if out[i].Value != "" {
			out[i].Value = lt.substituteValue(out[i].Value)
		}
	}
	return out
}

// substituteValue rewrites unqualified identifiers in a default value
// expression. Identifiers following "::" or "." or "->" or inside string
// literals are left alone.
func (lt *LocalTypes) substituteValue(v string) string {
	var b strings.Builder
	for i := 0; i < len(v); {
		c := v[i]
		switch {
		case c == '"' || c == '\'':
			j := i + 1
			for j < len(v) && v[j] != c {
				if v[j] == '\\' {
					j++
				}
				j++
			}
			if j < len(v) {
				j++
			}
			if j > len(v) {
				j = len(v)
			}
			b.WriteString(v[i:j])
			i = j
		case isIdentStart(c):
			j := i
			for j < len(v) && isIdentChar(v[j]) {
				j++
			}
			word := v[i:j]
			if q, ok := lt.Lookup(word); ok && !qualifiedBefore(v, i) && !strings.HasPrefix(v[j:], "::") {
				word = q
			}
			b.WriteString(word)
			i = j
		case c >= '0' && c <= '9':
			// numeric literals may carry suffixes such as 10UL
			j := i
			for j < len(v) && isIdentChar(v[j]) {
				j++
			}
			b.WriteString(v[i:j])
			i = j
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

func qualifiedBefore(v string, i int) bool {
	p := strings.TrimRight(v[:i], " \t")
	return strings.HasSuffix(p, "::") || strings.HasSuffix(p, ".") || strings.HasSuffix(p, "->")
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
