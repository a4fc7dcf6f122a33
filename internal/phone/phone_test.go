package phone_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Gulrukh07/BeautyShopBooking/internal/phone"
)

func TestNormalizeEquivalentSpellings(t *testing.T) {
	for _, raw := range []string{
		"998901234567",
		"+998901234567",
		"+998 90 123 45 67",
		"998 90 123 4567",
		"90-123-45-67",
		"90 123 45 67",
		"  +998-90-123-45-67  ",
	} {
		got, err := phone.Normalize(raw)
		require.NoError(t, err, raw)
		require.Equal(t, "+998901234567", got, raw)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	once, err := phone.Normalize("+998 99 222 22 22")
	require.NoError(t, err)
	twice, err := phone.Normalize(once)
	require.NoError(t, err)
	require.Equal(t, once, twice)
}

func TestNormalizeRejectsMalformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"hello",
		"+998",
		"+99890123456",    // 8 subscriber digits
		"+9989012345678",  // 10 subscriber digits
		"9012345",         // too short without country code
		"+1 202 555 0147", // wrong country code
		"90_123_45_67",    // disallowed separator
	} {
		_, err := phone.Normalize(raw)
		require.ErrorIs(t, err, phone.ErrInvalidFormat, raw)
	}
}

func TestValidateMobileAllowedPrefixes(t *testing.T) {
	for _, prefix := range []string{"90", "91", "93", "94", "95", "97", "98", "99", "33", "88", "50", "77"} {
		got, err := phone.ValidateMobile("+998 " + prefix + " 123 45 67")
		require.NoError(t, err, prefix)
		require.Equal(t, "+998"+prefix+"1234567", got)
	}
}

func TestValidateMobileDisallowedPrefix(t *testing.T) {
	// Well-formed grouping, but 12 is not a mobile operator.
	_, err := phone.ValidateMobile("+998123456789")
	require.ErrorIs(t, err, phone.ErrDisallowedPrefix)

	// Grouping failures must stay distinct from prefix failures.
	_, err = phone.ValidateMobile("+99812345")
	require.ErrorIs(t, err, phone.ErrInvalidFormat)
}

func TestPipelineShortCircuits(t *testing.T) {
	calls := 0
	boom := func(s string) (string, error) { calls++; return "", phone.ErrInvalidFormat }
	never := func(s string) (string, error) { calls += 100; return s, nil }
	_, err := phone.Pipeline(boom, never)("x")
	require.ErrorIs(t, err, phone.ErrInvalidFormat)
	require.Equal(t, 1, calls)
}
