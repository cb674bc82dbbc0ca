package statement

import (
	"github.com/Konsultn-Engineering/namedbind/database"
)

// BindTarget is a parameter resolved to the placeholder it binds.
// Position is the 1-based placeholder ordinal, zero for names passed
// through unchanged.
type BindTarget struct {
	Name     string
	Position int
	Value    any
}

// Binder resolves parameter keys against the names generated for a
// converted statement.
type Binder struct {
	names  []string
	byName bool

	// observe is called after each successful dispatch.
	observe func(BindTarget)
}

// NewBinder creates a Binder. byName selects BindNamed over BindPositional
// for resolved positions.
func NewBinder(names []string, byName bool) *Binder {
	return &Binder{names: names, byName: byName}
}

// BindAll dispatches params onto h using the generated names.
func BindAll(h database.StatementHandle, params Params, names []string, byName bool) error {
	return NewBinder(names, byName).BindAll(h, params)
}

// Resolve maps key to its target. zeroBased shifts positions by one.
func (b *Binder) Resolve(key Key, value any, zeroBased bool) (BindTarget, error) {
	if !key.valid() {
		return BindTarget{}, &BindError{Key: key, Err: ErrInvalidKey}
	}
	if key.IsNamed() {
		return BindTarget{Name: key.Name, Value: value}, nil
	}

	ordinal := key.Position
	if zeroBased {
		ordinal++
	}
	if ordinal < 1 || ordinal > len(b.names) {
		return BindTarget{}, &BindError{Key: key, Err: ErrNoPlaceholder}
	}
	return BindTarget{Name: b.names[ordinal-1], Position: ordinal, Value: value}, nil
}

// Dispatch sends one resolved target to h.
func (b *Binder) Dispatch(h database.StatementHandle, key Key, t BindTarget) error {
	if h == nil {
		return &BindError{Key: key, Name: t.Name, Err: database.ErrInvalidHandle}
	}
	var err error
	if t.Position == 0 || b.byName {
		err = h.BindNamed(t.Name, t.Value)
	} else {
		err = h.BindPositional(t.Position, t.Value)
	}
	if err != nil {
		return &BindError{Key: key, Name: t.Name, Err: err}
	}
	return nil
}

// BindAll resolves and dispatches every parameter in order, stopping at the
// first failure.
func (b *Binder) BindAll(h database.StatementHandle, params Params) error {
	zeroBased := params.zeroBased()
	for _, p := range params {
		t, err := b.Resolve(p.Key, p.Value, zeroBased)
		if err != nil {
			return err
		}
		if err := b.Dispatch(h, p.Key, t); err != nil {
			return err
		}
		if b.observe != nil {
			b.observe(t)
		}
	}
	return nil
}
