package credentials

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProducesDistinctPairs(t *testing.T) {
	gen := NewTokenGenerator(8)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		username, secret, err := gen.Generate()
		require.NoError(t, err)
		assert.Len(t, username, 8)
		assert.Len(t, secret, 8)
		assert.False(t, seen[username], "username repeated: %s", username)
		seen[username] = true
	}
}

func TestGenerateUsesSafeAlphabet(t *testing.T) {
	gen := NewTokenGenerator(32)

	username, secret, err := gen.Generate()
	require.NoError(t, err)
	for _, token := range []string{username, secret} {
		for _, r := range token {
			assert.True(t, strings.ContainsRune(alphabet, r), "unexpected character %q", r)
		}
	}
}

func TestGenerateEnforcesMinimumLength(t *testing.T) {
	gen := NewTokenGenerator(1)

	username, _, err := gen.Generate()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(username), 4)
}
