package analyzer

import (
	"fmt"
	"iter"
	"strings"

	"github.com/mcncl/jsonpeek/internal/errors"
)

// EscapeMarker starts a unit escape.
const EscapeMarker = `\u`

const (
	highSurrogateMin = 0xD800
	highSurrogateMax = 0xDBFF
	lowSurrogateMin  = 0xDC00
	lowSurrogateMax  = 0xDFFF

	// unitEscapeLen is the length of `\uXXXX`.
	unitEscapeLen = 6
)

// EscapeError reports a `\u` followed by four characters that are not all
// hexadecimal digits.
type EscapeError struct {
	Sequence string
	// Offset is the byte offset of the backslash in the decoded string.
	Offset int
}

func (e *EscapeError) Error() string {
	return fmt.Sprintf("invalid escape %q at offset %d", e.Sequence, e.Offset)
}

// Unwrap makes errors.Is(err, errors.ErrInvalidEscape) hold.
func (e *EscapeError) Unwrap() error { return errors.ErrInvalidEscape }

// DecodeUnicode replaces every `\uXXXX` unit escape in s with the character
// it encodes, joining a high and low surrogate escape into one code point.
// Lone surrogates are written as U+FFFD. Strings without the escape marker
// are returned unchanged.
func DecodeUnicode(s string) (string, error) {
	if !strings.Contains(s, EscapeMarker) {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for r, err := range DecodedRunes(s) {
		if err != nil {
			return "", err
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

// DecodedRunes yields the runes of s with unit escapes decoded. Surrogate
// code units that do not form a pair are yielded as is. On a malformed
// escape it yields a single *EscapeError and stops.
func DecodedRunes(s string) iter.Seq2[rune, error] {
	return func(yield func(rune, error) bool) {
		var d escapeDecoder
		for at, r := range s {
			if err := d.feed(scanned{r: r, at: at}); err != nil {
				yield(0, err)
				return
			}
			for _, out := range d.drain() {
				if !yield(out, nil) {
					return
				}
			}
		}
		if err := d.finish(); err != nil {
			yield(0, err)
			return
		}
		for _, out := range d.drain() {
			if !yield(out, nil) {
				return
			}
		}
	}
}

type escapeState int

const (
	stateNormal escapeState = iota
	stateSawBackslash
	stateInEscape
	stateAwaitingLowSurrogate
)

// scanned is an input rune and its byte offset in the source string.
type scanned struct {
	r  rune
	at int
}

// escapeDecoder is a push-driven state machine. Runes go in through feed;
// decoded runes collect in out until drained.
type escapeDecoder struct {
	state escapeState
	// pending holds the raw runes of the escape being read. While awaiting a
	// low surrogate it holds the lookahead after the first escape.
	pending []scanned
	high    rune
	out     []rune
}

func (d *escapeDecoder) drain() []rune {
	out := d.out
	d.out = nil
	return out
}

func (d *escapeDecoder) emit(r rune) { d.out = append(d.out, r) }

func (d *escapeDecoder) feed(c scanned) error {
	switch d.state {
	case stateNormal:
		if c.r == '\\' {
			d.pending = append(d.pending[:0], c)
			d.state = stateSawBackslash
			return nil
		}
		d.emit(c.r)

	case stateSawBackslash:
		if c.r == 'u' {
			d.pending = append(d.pending, c)
			d.state = stateInEscape
			return nil
		}
		// Not an escape: the backslash is ordinary text and c is scanned
		// again from the normal state, since it may itself be a backslash.
		d.emit('\\')
		d.pending = d.pending[:0]
		d.state = stateNormal
		return d.feed(c)

	case stateInEscape:
		d.pending = append(d.pending, c)
		if len(d.pending) < unitEscapeLen {
			return nil
		}
		unit, ok := hexUnit(d.pending[2:])
		if !ok {
			return &EscapeError{Sequence: runesOf(d.pending), Offset: d.pending[0].at}
		}
		d.pending = d.pending[:0]
		if isHighSurrogate(unit) {
			d.high = unit
			d.state = stateAwaitingLowSurrogate
			return nil
		}
		d.emit(unit)
		d.state = stateNormal

	case stateAwaitingLowSurrogate:
		d.pending = append(d.pending, c)
		if !lookaheadPlausible(d.pending) {
			return d.abandonPair()
		}
		if len(d.pending) < unitEscapeLen {
			return nil
		}
		low, _ := hexUnit(d.pending[2:])
		if !isLowSurrogate(low) {
			return d.abandonPair()
		}
		d.emit(combineSurrogates(d.high, low))
		d.pending = d.pending[:0]
		d.state = stateNormal
	}
	return nil
}

// abandonPair emits the high surrogate on its own and rescans the lookahead
// from the normal state.
func (d *escapeDecoder) abandonPair() error {
	d.emit(d.high)
	lookahead := append([]scanned(nil), d.pending...)
	d.pending = d.pending[:0]
	d.state = stateNormal
	for _, c := range lookahead {
		if err := d.feed(c); err != nil {
			return err
		}
	}
	return nil
}

// finish flushes whatever is pending at the end of the input. An escape cut
// short by the end of the input is copied verbatim.
func (d *escapeDecoder) finish() error {
	switch d.state {
	case stateSawBackslash, stateInEscape:
		for _, c := range d.pending {
			d.emit(c.r)
		}
	case stateAwaitingLowSurrogate:
		if err := d.abandonPair(); err != nil {
			return err
		}
		return d.finish()
	}
	d.pending = d.pending[:0]
	d.state = stateNormal
	return nil
}

// lookaheadPlausible reports whether the runes read after a high surrogate
// escape can still become a second unit escape.
func lookaheadPlausible(p []scanned) bool {
	last := len(p) - 1
	switch last {
	case 0:
		return p[last].r == '\\'
	case 1:
		return p[last].r == 'u'
	default:
		return isHexDigit(p[last].r)
	}
}

func hexUnit(digits []scanned) (rune, bool) {
	var unit rune
	for _, c := range digits {
		v, ok := hexValue(c.r)
		if !ok {
			return 0, false
		}
		unit = unit<<4 | v
	}
	return unit, true
}

func hexValue(r rune) (rune, bool) {
	switch {
	case r >= '0' && r <= '9':
		return r - '0', true
	case r >= 'a' && r <= 'f':
		return r - 'a' + 10, true
	case r >= 'A' && r <= 'F':
		return r - 'A' + 10, true
	}
	return 0, false
}

func isHexDigit(r rune) bool {
	_, ok := hexValue(r)
	return ok
}

func isHighSurrogate(u rune) bool { return u >= highSurrogateMin && u <= highSurrogateMax }

func isLowSurrogate(u rune) bool { return u >= lowSurrogateMin && u <= lowSurrogateMax }

func combineSurrogates(high, low rune) rune {
	return ((high - highSurrogateMin) << 10) + (low - lowSurrogateMin) + 0x10000
}

func runesOf(p []scanned) string {
	var b strings.Builder
	for _, c := range p {
		b.WriteRune(c.r)
	}
	return b.String()
}
