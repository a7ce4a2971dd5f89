package stringutils

import "strings"

// Truncate fits s into n runes for a fixed-width column. A longer string
// keeps its first n-1 runes followed by "…".
func Truncate(s string, n int) string {
	r := []rune(s)
	switch {
	case len(r) <= n:
		return s
	case n <= 0:
		return ""
	default:
		return string(r[:n-1]) + "…"
	}
}

// ShortName abbreviates job names longer than 22 characters to 19 plus "...".
func ShortName(name string) string {
	r := []rune(name)
	if len(r) <= 22 {
		return name
	}
	return string(r[:19]) + "..."
}

// ParamsSummary reduces a "NAME=value" parameter listing, one pair per line,
// to its values. Lines without '=' continue the previous value. A pair written
// as "[NAME=value]" loses its closing bracket.
func ParamsSummary(params string) string {
	var (
		values  []string
		current *strings.Builder
		bracket bool
	)
	flush := func() {
		if current == nil {
			return
		}
		v := strings.TrimSpace(current.String())
		if bracket {
			v = strings.TrimSuffix(v, "]")
		}
		values = append(values, v)
		current = nil
	}

	for _, line := range strings.Split(params, "\n") {
		trimmed := strings.TrimSpace(line)
		if eq := strings.IndexByte(trimmed, '='); eq > 0 {
			flush()
			current = &strings.Builder{}
			current.WriteString(trimmed[eq+1:])
			bracket = trimmed[0] == '['
			continue
		}
		if current != nil {
			current.WriteByte('\n')
			current.WriteString(line)
		}
	}
	flush()
	return strings.Join(values, "\n")
}
