package util_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Gulrukh07/BeautyShopBooking/internal/util"
)

func TestValidatePassword(t *testing.T) {
	require.NoError(t, util.ValidatePassword("a1bc"))
	require.NoError(t, util.ValidatePassword("secret42"))

	require.Error(t, util.ValidatePassword("a1"))                                // too short
	require.Error(t, util.ValidatePassword("a1bcdefghijklmnopqrstu"))            // too long
	require.Error(t, util.ValidatePassword("letters"))                           // no digit
	require.Error(t, util.ValidatePassword("123456"))                            // no letter
}

func TestHashAndComparePassword(t *testing.T) {
	hash, err := util.HashPassword("secret42")
	require.NoError(t, err)
	require.NotEqual(t, "secret42", hash)

	require.True(t, util.ComparePassword(hash, "secret42"))
	require.False(t, util.ComparePassword(hash, "secret43"))
}
