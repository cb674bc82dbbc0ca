package placeholder

import "strings"

// ReplaceFunc returns the text to put in place of the ":name" marker, or
// false to keep the marker as written. name is passed without the colon.
type ReplaceFunc func(name string) (string, bool)

// RewriteMarkers replaces ":name" markers outside quoted literals. A
// doubled colon ("::int" casts) is never a marker. "?" is copied as is.
func RewriteMarkers(sql string, replace ReplaceFunc) (string, error) {
	var sb strings.Builder
	sb.Grow(len(sql))

	ctx := Normal
	open := 0
	for i := 0; i < len(sql); {
		c := sql[i]

		if ctx == Normal && c == ':' {
			if i+1 < len(sql) && sql[i+1] == ':' {
				sb.WriteString("::")
				i += 2
				continue
			}
			end := i + 1
			for end < len(sql) && isNameByte(sql[end]) {
				end++
			}
			if end > i+1 {
				if r, ok := replace(sql[i+1 : end]); ok {
					sb.WriteString(r)
				} else {
					sb.WriteString(sql[i:end])
				}
				i = end
				continue
			}
		}

		lookahead := noLookahead
		if i+1 < len(sql) {
			lookahead = int(sql[i+1])
		}
		next, act := step(ctx, c, lookahead)
		if ctx == Normal && next != Normal {
			open = i
		}
		ctx = next

		if act == copyPair {
			sb.WriteByte(c)
			sb.WriteByte(c)
			i += 2
			continue
		}
		sb.WriteByte(c)
		i++
	}

	if ctx != Normal {
		return "", newSyntaxError(open)
	}
	return sb.String(), nil
}

func isNameByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
