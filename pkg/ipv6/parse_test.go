package ipv6

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValid(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantWords  Word128
		wantPrefix int
	}{
		{
			name:       "full form",
			input:      "2001:0db8:0000:0000:0000:0000:0000:0001",
			wantWords:  Word128{0x2001, 0x0db8, 0, 0, 0, 0, 0, 1},
			wantPrefix: 128,
		},
		{
			name:       "compressed with prefix",
			input:      "2001:db8::/32",
			wantWords:  Word128{0x2001, 0x0db8},
			wantPrefix: 32,
		},
		{
			name:       "loopback",
			input:      "::1",
			wantWords:  Word128{0, 0, 0, 0, 0, 0, 0, 1},
			wantPrefix: 128,
		},
		{
			name:       "all zero",
			input:      "::",
			wantWords:  Word128{},
			wantPrefix: 128,
		},
		{
			name:       "all zero with zero prefix",
			input:      "::/0",
			wantWords:  Word128{},
			wantPrefix: 0,
		},
		{
			name:       "compression in the middle",
			input:      "fe80::1:2",
			wantWords:  Word128{0xfe80, 0, 0, 0, 0, 0, 1, 2},
			wantPrefix: 128,
		},
		{
			name:       "trailing compression",
			input:      "2001:db8:1::",
			wantWords:  Word128{0x2001, 0x0db8, 1},
			wantPrefix: 128,
		},
		{
			name:       "ipv4 mapped shorthand",
			input:      "::ffff:192.168.1.1",
			wantWords:  Word128{0, 0, 0, 0, 0, 0xffff, 0xc0a8, 0x0101},
			wantPrefix: 128,
		},
		{
			name:       "ipv4 compatible embedding",
			input:      "::10.0.0.2",
			wantWords:  Word128{0, 0, 0, 0, 0, 0, 0x0a00, 0x0002},
			wantPrefix: 128,
		},
		{
			name:       "whitespace trimmed",
			input:      "  2001:db8::1  ",
			wantWords:  Word128{0x2001, 0x0db8, 0, 0, 0, 0, 0, 1},
			wantPrefix: 128,
		},
		{
			name:       "uppercase hex",
			input:      "2001:DB8::ABCD",
			wantWords:  Word128{0x2001, 0x0db8, 0, 0, 0, 0, 0, 0xabcd},
			wantPrefix: 128,
		},
		{
			// Eight explicit groups plus a marker inserts zero words.
			name:       "degenerate compression",
			input:      "1:2:3:4::5:6:7:8",
			wantWords:  Word128{1, 2, 3, 4, 5, 6, 7, 8},
			wantPrefix: 128,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Parse(tt.input)
			require.True(t, rec.Valid, "parse failed: %s", rec.ErrorDetail)
			assert.Equal(t, tt.wantWords, rec.Words)
			assert.Equal(t, tt.wantPrefix, rec.PrefixLength)
			assert.Equal(t, tt.input, rec.RawInput)
			assert.Empty(t, rec.ErrorDetail)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantDetail string
	}{
		{"two compression markers", "2001:db8::1::2", ErrMultipleCompressionMarkers.Error()},
		{"three compression markers", "::1::2::3", ErrMultipleCompressionMarkers.Error()},
		{"too few groups", "2001:db8:1", ErrInvalidLength.Error()},
		{"too many groups", "1:2:3:4:5:6:7:8:9", ErrInvalidLength.Error()},
		{"compression with nine words", "1:2:3:4::5:6:7:8:9", ErrInvalidLength.Error()},
		{"empty input", "", ErrInvalidLength.Error()},
		{"hextet too long", "20011:db8::", ErrInvalidHextet.Error()},
		{"hextet not hex", "2001:dbg8::", ErrInvalidHextet.Error()},
		{"empty group", "1::2:", ErrInvalidHextet.Error()},
		{"prefix missing value", "2001:db8::/", ErrInvalidPrefix.Error()},
		{"prefix non-numeric", "2001:db8::/abc", ErrInvalidPrefix.Error()},
		{"prefix too large", "2001:db8::/129", ErrInvalidPrefix.Error()},
		{"prefix negative", "2001:db8::/-1", ErrInvalidPrefix.Error()},
		{"ipv4 octet out of range", "::ffff:192.168.1.256", ErrInvalidIPv4Embed.Error()},
		{"ipv4 too few octets", "::ffff:192.168.1", ErrInvalidIPv4Embed.Error()},
		{"ipv4 not in final position", "::192.168.1.1:ffff", ErrInvalidIPv4Embed.Error()},
		{"ipv4 octet not a number", "::ffff:a.b.c.d", ErrInvalidIPv4Embed.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Parse(tt.input)
			assert.False(t, rec.Valid)
			assert.Contains(t, rec.ErrorDetail, tt.wantDetail)

			// Never partially populated on failure.
			assert.Equal(t, Word128{}, rec.Words)
			assert.Empty(t, rec.Compressed)
			assert.Empty(t, rec.Classification)
			assert.Empty(t, rec.ComplianceNotes)
		})
	}
}

func TestParseScenarios(t *testing.T) {
	t.Run("documentation prefix", func(t *testing.T) {
		rec := Parse("2001:db8::/32")
		require.True(t, rec.Valid)
		assert.Equal(t, ClassDocumentation, rec.Classification)
		assert.Equal(t, "2001:db8::", rec.Compressed)
		assert.Equal(t, "2001:db8::/32", rec.Network)
	})

	t.Run("loopback", func(t *testing.T) {
		rec := Parse("::1")
		require.True(t, rec.Valid)
		assert.Equal(t, ClassLoopback, rec.Classification)
		assert.Equal(t, "::1", rec.Compressed)
	})

	t.Run("ipv4 mapped", func(t *testing.T) {
		rec := Parse("::ffff:192.168.1.1")
		require.True(t, rec.Valid)
		assert.Equal(t, ClassIPv4Mapped, rec.Classification)
		assert.True(t, rec.Flags.IsIPv4Mapped)
		assert.Equal(t, "0000:0000:0000:0000:0000:ffff:c0a8:0101", rec.Expanded)
	})
}

func TestParseRoundTrip(t *testing.T) {
	inputs := []string{
		"2001:db8::1",
		"fe80::1%ignored", // invalid, must not round-trip
		"::",
		"::1",
		"ff02::1:ff00:1",
		"2001:db8:85a3::8a2e:370:7334",
		"64:ff9b::192.0.2.33",
	}
	for _, in := range inputs {
		rec := Parse(in)
		if !rec.Valid {
			continue
		}
		again := Parse(rec.Compressed)
		require.True(t, again.Valid, "re-parse of %q failed", rec.Compressed)
		assert.Equal(t, rec.Words, again.Words, "compressed round-trip for %q", in)

		expanded := Parse(rec.Expanded)
		require.True(t, expanded.Valid)
		assert.Equal(t, rec.Words, expanded.Words, "expanded round-trip for %q", in)

		// Idempotence: the compressed form of the re-parse is identical.
		assert.Equal(t, rec.Compressed, again.Compressed)
	}
}

func TestParseRecordDerivedFields(t *testing.T) {
	rec := Parse("2001:db8::1/64")
	require.True(t, rec.Valid)

	assert.Equal(t, "2001:db8::/64", rec.Network)
	assert.Equal(t, "2001:db8::", rec.FirstAddress)
	assert.Equal(t, "2001:db8::ffff:ffff:ffff:ffff", rec.LastAddress)
	assert.Equal(t, "18446744073709551616", rec.HostCount)
	assert.Equal(t, "2^64", rec.HostCountPow2)
	assert.True(t, rec.Flags.IsSLAACEligible)
}
