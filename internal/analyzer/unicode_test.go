package analyzer

import (
	stderrors "errors"
	"fmt"
	"testing"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonpeek/internal/errors"
)

func TestDecodeUnicode_NoMarkerIsIdentity(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		`C:\path\to\file`,
		`trailing backslash \`,
		`\\`,
		"tab\tand newline\n",
		"😀 already decoded",
		`\x41 is not a unicode escape`,
	}

	for _, in := range inputs {
		out, err := DecodeUnicode(in)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}

func TestDecodeUnicode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single BMP escape", `\u0041`, "A"},
		{"escape inside text", `caf\u00e9 au lait`, "café au lait"},
		{"uppercase hex", `caf\u00E9`, "café"},
		{"CJK", `\u4f60\u597d`, "你好"},
		{"surrogate pair", `\uD83D\uDE00`, "😀"},
		{"surrogate pair lowercase", `smile \ud83d\ude00!`, "smile 😀!"},
		{"two pairs back to back", `\uD83D\uDE00\uD83D\uDE01`, "😀😁"},
		{"lone high surrogate before text", `\uD800abc`, "\uFFFDabc"},
		{"lone high surrogate at end", `x\uD83D`, "x\uFFFD"},
		{"high surrogate then BMP escape", `\uD83D\u0041`, "\uFFFDA"},
		{"high surrogate then high surrogate pair", `\uD800\uD83D\uDE00`, "\uFFFD😀"},
		{"lone low surrogate", `\uDE00x`, "\uFFFDx"},
		{"high surrogate then backslash text", `\uD83D\n`, "\uFFFD\\n"},
		{"high surrogate then cut-short escape", `\uD83D\uDE`, "\uFFFD\\uDE"},
		{"escape cut short by end", `abc\u12`, `abc\u12`},
		{"bare marker at end", `abc\u`, `abc\u`},
		{"short non-hex at end is copied", `abc\uZ`, `abc\uZ`},
		{"backslash not followed by u", `a\b\u0041`, `a\bA`},
		{"escaped backslash before marker", `\\u0041`, `\A`},
		{"multibyte text around escape", `é\u0041ü`, "éAü"},
		{"NUL escape", `a\u0000b`, "a\x00b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeUnicode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeUnicode_SurrogatePairRoundTrip(t *testing.T) {
	scalars := []rune{0x10000, 0x1F600, 0x1F9D1, 0x20BB7, 0xE0001, 0x10FFFF}

	for _, r := range scalars {
		t.Run(fmt.Sprintf("U+%X", r), func(t *testing.T) {
			hi, lo := utf16.EncodeRune(r)
			escaped := fmt.Sprintf(`\u%04X\u%04X`, hi, lo)

			got, err := DecodeUnicode(escaped)
			require.NoError(t, err)
			require.Equal(t, 1, utf8.RuneCountInString(got))
			assert.Equal(t, r, []rune(got)[0])
		})
	}
}

func TestDecodeUnicode_GrinningFace(t *testing.T) {
	got, err := DecodeUnicode(`\uD83D\uDE00`)
	require.NoError(t, err)
	assert.Equal(t, []rune{0x1F600}, []rune(got))
}

func TestDecodeUnicode_LoneHighSurrogateIsDeterministic(t *testing.T) {
	first, err := DecodeUnicode(`\uD800 then text`)
	require.NoError(t, err)
	second, err := DecodeUnicode(`\uD800 then text`)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "\uFFFD then text", first)
}

func TestDecodeUnicode_InvalidHex(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantSeq    string
		wantOffset int
	}{
		{"all non-hex", `\uZZZZ`, `\uZZZZ`, 0},
		{"one bad digit", `ab\u12G4`, `\u12G4`, 2},
		{"after multibyte text", `é\uXYZW`, `\uXYZW`, 2},
		{"after a high surrogate", `\uD83D\uZZZZ`, `\uZZZZ`, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := DecodeUnicode(tt.input)
			require.Error(t, err)
			assert.Empty(t, out)
			assert.True(t, stderrors.Is(err, errors.ErrInvalidEscape))

			var escErr *EscapeError
			require.ErrorAs(t, err, &escErr)
			assert.Equal(t, tt.wantSeq, escErr.Sequence)
			assert.Equal(t, tt.wantOffset, escErr.Offset)
		})
	}
}

func TestDecodedRunes_YieldsRawSurrogateUnits(t *testing.T) {
	var got []rune
	for r, err := range DecodedRunes(`\uD800x`) {
		require.NoError(t, err)
		got = append(got, r)
	}
	assert.Equal(t, []rune{0xD800, 'x'}, got)
}

func TestDecodedRunes_StopsEarly(t *testing.T) {
	var got []rune
	for r, err := range DecodedRunes(`\u0041\u0042\u0043`) {
		require.NoError(t, err)
		got = append(got, r)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []rune{'A', 'B'}, got)
}

func TestDecodedRunes_ErrorEndsSequence(t *testing.T) {
	var runes []rune
	var errs []error
	for r, err := range DecodedRunes(`ok\uQQQQmore`) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		runes = append(runes, r)
	}
	assert.Equal(t, []rune{'o', 'k'}, runes)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], errors.ErrInvalidEscape)
}
