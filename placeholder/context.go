package placeholder

import "fmt"

// QuoteContext is the scanner state at a given byte of the statement.
type QuoteContext uint8

const (
	Normal QuoteContext = iota
	InSingleQuoted
	InDoubleQuoted
)

func (c QuoteContext) String() string {
	switch c {
	case Normal:
		return "normal"
	case InSingleQuoted:
		return "single-quoted"
	case InDoubleQuoted:
		return "double-quoted"
	default:
		return fmt.Sprintf("QuoteContext(%d)", uint8(c))
	}
}

// quote returns the byte that closes the literal, 0 outside a literal.
func (c QuoteContext) quote() byte {
	switch c {
	case InSingleQuoted:
		return '\''
	case InDoubleQuoted:
		return '"'
	}
	return 0
}

type action uint8

const (
	copyByte action = iota
	copyPair        // doubled quote inside a literal
	emitName
)

// noLookahead marks the end of input for step.
const noLookahead = -1

// step is the scanner transition function. lookahead is the byte following
// c, or noLookahead at the end of the statement.
func step(ctx QuoteContext, c byte, lookahead int) (QuoteContext, action) {
	switch ctx {
	case Normal:
		switch c {
		case '\'':
			return InSingleQuoted, copyByte
		case '"':
			return InDoubleQuoted, copyByte
		case '?':
			return Normal, emitName
		}
		return Normal, copyByte
	case InSingleQuoted, InDoubleQuoted:
		q := ctx.quote()
		if c != q {
			return ctx, copyByte
		}
		if lookahead == int(q) {
			return ctx, copyPair
		}
		return Normal, copyByte
	}
	panic(fmt.Sprintf("placeholder: unknown quote context %d", uint8(ctx)))
}
