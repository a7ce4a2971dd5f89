package crontab

import (
	"fmt"
	"hash/fnv"
	"math/bits"
	"strconv"
	"strings"
)

const (
	fieldMinute = iota
	fieldHour
	fieldDayOfMonth
	fieldMonth
	fieldDayOfWeek
)

// fieldSpec is the declared domain of one cron field. hashMax is the upper
// bound used for * and H; it differs from max only for day-of-week, where 7
// is accepted as an alias for Sunday.
type fieldSpec struct {
	name    string
	min     int
	max     int
	hashMax int
	names   map[string]int
}

var fieldSpecs = [5]fieldSpec{
	{name: "minute", min: 0, max: 59, hashMax: 59},
	{name: "hour", min: 0, max: 23, hashMax: 23},
	{name: "day-of-month", min: 1, max: 31, hashMax: 31},
	{name: "month", min: 1, max: 12, hashMax: 12, names: map[string]int{
		"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
		"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
	}},
	{name: "day-of-week", min: 0, max: 7, hashMax: 6, names: map[string]int{
		"SUN": 0, "MON": 1, "TUE": 2, "WED": 3, "THU": 4, "FRI": 5, "SAT": 6,
	}},
}

// bitset is a compact set of the integers 0-63.
type bitset uint64

func (b bitset) has(v int) bool { return v >= 0 && v < 64 && b&(1<<uint(v)) != 0 }
func (b *bitset) set(v int)     { *b |= 1 << uint(v) }

// next returns the smallest member that is >= v, if any.
func (b bitset) next(v int) (int, bool) {
	if v >= 64 {
		return 0, false
	}
	rest := uint64(b) >> uint(v)
	if rest == 0 {
		return 0, false
	}
	return v + bits.TrailingZeros64(rest), true
}

// field is the parsed form of one cron field. star is set when the text was
// an unrestricted wildcard; day matching depends on it.
type field struct {
	set  bitset
	star bool
}

// fieldParser carries the state shared by all fields of one expression.
type fieldParser struct {
	text string
	hash uint32
}

func newFieldParser(text, seed string) fieldParser {
	p := fieldParser{text: text}
	if seed != "" {
		h := fnv.New32a()
		_, _ = h.Write([]byte(seed))
		p.hash = h.Sum32()
	}
	return p
}

func (p fieldParser) fail(index int, format string, args ...any) *ParseError {
	return &ParseError{FieldIndex: index, Reason: fmt.Sprintf(format, args...), Text: p.text}
}

func (p fieldParser) parseField(index int, expr string) (field, *ParseError) {
	var f field
	terms := strings.Split(expr, ",")
	for _, term := range terms {
		bits, err := p.parseTerm(index, term)
		if err != nil {
			return field{}, err
		}
		f.set |= bits
	}
	if f.set == 0 {
		return field{}, p.fail(index, "%q produces an empty set", expr)
	}
	f.star = len(terms) == 1 && (expr == "*" || expr == "*/1")
	return f, nil
}

// parseTerm handles one list element: *, H, H(a-b), V, V-V, each optionally
// followed by /step. A bare V/step runs from V to the field maximum.
func (p fieldParser) parseTerm(index int, term string) (bitset, *ParseError) {
	spec := fieldSpecs[index]
	if term == "" {
		return 0, p.fail(index, "empty list element")
	}

	rangeExpr, stepExpr, hasStep := strings.Cut(term, "/")
	step := 1
	if hasStep {
		n, err := strconv.Atoi(stepExpr)
		if err != nil {
			return 0, p.fail(index, "invalid step %q", stepExpr)
		}
		if n <= 0 {
			return 0, p.fail(index, "step must be positive, got %d", n)
		}
		step = n
	}

	var lo, hi int
	switch {
	case rangeExpr == "*":
		lo, hi = spec.min, spec.hashMax
	case rangeExpr == "H" || strings.HasPrefix(rangeExpr, "H("):
		return p.parseHash(index, rangeExpr, step, hasStep)
	default:
		first, last, isRange := strings.Cut(rangeExpr, "-")
		var err *ParseError
		if lo, err = p.parseValue(index, first); err != nil {
			return 0, err
		}
		hi = lo
		switch {
		case isRange:
			if hi, err = p.parseValue(index, last); err != nil {
				return 0, err
			}
		case hasStep:
			// 7/n in the day-of-week field steps from Sunday.
			lo = normalize(index, lo)
			hi = spec.hashMax
		}
	}

	if lo > hi {
		return 0, p.fail(index, "range start %d is after end %d", lo, hi)
	}
	if lo < spec.min || hi > spec.max {
		return 0, p.fail(index, "value out of range [%d-%d]: %d-%d", spec.min, spec.max, lo, hi)
	}

	var out bitset
	for v := lo; v <= hi; v += step {
		out.set(normalize(index, v))
	}
	return out, nil
}

func (p fieldParser) parseHash(index int, expr string, step int, hasStep bool) (bitset, *ParseError) {
	spec := fieldSpecs[index]
	lo, hi := spec.min, spec.hashMax
	if expr != "H" {
		inner, ok := strings.CutSuffix(strings.TrimPrefix(expr, "H("), ")")
		if !ok {
			return 0, p.fail(index, "unterminated hash range %q", expr)
		}
		first, last, isRange := strings.Cut(inner, "-")
		if !isRange {
			return 0, p.fail(index, "hash range %q needs a start and an end", expr)
		}
		var err *ParseError
		if lo, err = p.parseValue(index, first); err != nil {
			return 0, err
		}
		if hi, err = p.parseValue(index, last); err != nil {
			return 0, err
		}
		if lo > hi {
			return 0, p.fail(index, "range start %d is after end %d", lo, hi)
		}
		if lo < spec.min || hi > spec.max {
			return 0, p.fail(index, "value out of range [%d-%d]: %d-%d", spec.min, spec.max, lo, hi)
		}
	}

	var out bitset
	if !hasStep {
		out.set(normalize(index, lo+int(p.hash%uint32(hi-lo+1))))
		return out, nil
	}
	start := lo + int(p.hash%uint32(step))
	if start > hi {
		start = lo
	}
	for v := start; v <= hi; v += step {
		out.set(normalize(index, v))
	}
	return out, nil
}

func (p fieldParser) parseValue(index int, s string) (int, *ParseError) {
	if v, ok := fieldSpecs[index].names[strings.ToUpper(s)]; ok {
		return v, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, p.fail(index, "invalid value %q", s)
	}
	return v, nil
}

// normalize folds day-of-week 7 onto 0 so both mean Sunday.
func normalize(index, v int) int {
	if index == fieldDayOfWeek && v == 7 {
		return 0
	}
	return v
}
