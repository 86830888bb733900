package services

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVerificationCodeRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		code, err := GenerateVerificationCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}

func TestGenerateResetTokenShape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateResetToken()
		require.NoError(t, err)
		require.Len(t, token, resetTokenBytes*2)
		for _, r := range token {
			require.True(t, (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f'), "non-hex rune %q in %s", r, token)
		}
		assert.False(t, seen[token], "duplicate token %s", token)
		seen[token] = true
	}
}
