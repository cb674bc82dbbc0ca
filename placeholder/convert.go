// Package placeholder rewrites positional "?" bind markers into generated
// placeholder names, leaving quoted literals untouched.
package placeholder

import (
	"strconv"
	"strings"
)

// NamePrefix is the prefix of names generated by Convert.
const NamePrefix = ":param"

// NameFunc returns the placeholder text for the n-th marker, n starting at 1.
type NameFunc func(n int) string

// Converted is a statement whose positional markers were replaced. Names
// holds one generated name per replaced marker, in order of appearance.
// A Converted is never modified after it is returned and may be shared.
type Converted struct {
	SQL   string
	Names []string
}

// Len returns the number of generated placeholders.
func (c *Converted) Len() int {
	return len(c.Names)
}

// Name returns the placeholder generated for the given 1-based ordinal.
func (c *Converted) Name(ordinal int) (string, bool) {
	if ordinal < 1 || ordinal > len(c.Names) {
		return "", false
	}
	return c.Names[ordinal-1], true
}

// DefaultName generates :param1, :param2, ...
func DefaultName(n int) string {
	return NamePrefix + strconv.Itoa(n)
}

// Convert replaces every "?" outside a quoted literal with :paramN.
func Convert(sql string) (*Converted, error) {
	return ConvertWith(sql, DefaultName)
}

// ConvertPositionalToNamed is Convert returning only the rewritten text.
func ConvertPositionalToNamed(sql string) (string, error) {
	c, err := Convert(sql)
	if err != nil {
		return "", err
	}
	return c.SQL, nil
}

// ConvertWith runs the scanner with a custom name generator. A nil name
// falls back to DefaultName.
func ConvertWith(sql string, name NameFunc) (*Converted, error) {
	if name == nil {
		name = DefaultName
	}

	est := strings.Count(sql, "?")
	var sb strings.Builder
	sb.Grow(len(sql) + est*len(NamePrefix))
	names := make([]string, 0, est)

	ctx := Normal
	open := 0
	for i := 0; i < len(sql); {
		c := sql[i]
		lookahead := noLookahead
		if i+1 < len(sql) {
			lookahead = int(sql[i+1])
		}

		next, act := step(ctx, c, lookahead)
		if ctx == Normal && next != Normal {
			open = i
		}
		ctx = next

		switch act {
		case emitName:
			n := name(len(names) + 1)
			names = append(names, n)
			sb.WriteString(n)
			i++
		case copyPair:
			sb.WriteByte(c)
			sb.WriteByte(c)
			i += 2
		default:
			sb.WriteByte(c)
			i++
		}
	}

	if ctx != Normal {
		return nil, newSyntaxError(open)
	}
	return &Converted{SQL: sb.String(), Names: names}, nil
}
