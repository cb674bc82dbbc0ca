package statement

import (
	"strconv"
	"strings"
)

// Key addresses a parameter either by integer position or by a native
// placeholder name starting with ':'.
type Key struct {
	Position int
	Name     string
}

func PositionKey(position int) Key {
	return Key{Position: position}
}

func NameKey(name string) Key {
	return Key{Name: name}
}

func (k Key) IsNamed() bool {
	return k.Name != ""
}

func (k Key) valid() bool {
	if k.IsNamed() {
		return strings.HasPrefix(k.Name, ":") && len(k.Name) > 1
	}
	return k.Position >= 0
}

func (k Key) String() string {
	if k.IsNamed() {
		return k.Name
	}
	return strconv.Itoa(k.Position)
}

// Param is one value of a parameter set.
type Param struct {
	Key   Key
	Value any
}

func At(position int, value any) Param {
	return Param{Key: PositionKey(position), Value: value}
}

func Named(name string, value any) Param {
	return Param{Key: NameKey(name), Value: value}
}

// Params is a parameter set consumed by one execute. Binds are dispatched
// in slice order.
type Params []Param

// Positional builds a 0-based parameter set.
func Positional(values ...any) Params {
	ps := make(Params, len(values))
	for i, v := range values {
		ps[i] = At(i, v)
	}
	return ps
}

// OneBased builds a parameter set keyed from 1.
func OneBased(values ...any) Params {
	ps := make(Params, len(values))
	for i, v := range values {
		ps[i] = At(i+1, v)
	}
	return ps
}

// zeroBased reports whether a positional key 0 is present, in which case
// every positional key is shifted by one.
func (ps Params) zeroBased() bool {
	for _, p := range ps {
		if !p.Key.IsNamed() && p.Key.Position == 0 {
			return true
		}
	}
	return false
}
