package database

import (
	"fmt"
	"strings"
)

type namedValue struct {
	name  string
	value any
}

// bindings collects values bound to a handle before execute.
type bindings struct {
	positional map[int]any
	named      []namedValue
}

func (b *bindings) setPositional(position int, value any) error {
	if position < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPosition, position)
	}
	if b.positional == nil {
		b.positional = make(map[int]any)
	}
	b.positional[position] = value
	return nil
}

// setNamed stores value under name without its leading colon. Rebinding a
// name replaces the earlier value.
func (b *bindings) setNamed(name string, value any) error {
	if !strings.HasPrefix(name, ":") || len(name) == 1 {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	name = name[1:]
	for i := range b.named {
		if b.named[i].name == name {
			b.named[i].value = value
			return nil
		}
	}
	b.named = append(b.named, namedValue{name: name, value: value})
	return nil
}

// ordered returns positional values as a dense slice.
func (b *bindings) ordered() ([]any, error) {
	last := 0
	for pos := range b.positional {
		if pos > last {
			last = pos
		}
	}
	args := make([]any, last)
	for i := range args {
		v, ok := b.positional[i+1]
		if !ok {
			return nil, fmt.Errorf("%w: position %d", ErrMissingBind, i+1)
		}
		args[i] = v
	}
	return args, nil
}

func (b *bindings) mixed() bool {
	return len(b.positional) > 0 && len(b.named) > 0
}

func (b *bindings) reset() {
	b.positional = nil
	b.named = nil
}
