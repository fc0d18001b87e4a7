package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastParams = Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPasswordWithParams("segredo123", fastParams)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword("segredo123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("errado", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashesAreSalted(t *testing.T) {
	a, err := HashPasswordWithParams("same", fastParams)
	require.NoError(t, err)
	b, err := HashPasswordWithParams("same", fastParams)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	_, err := VerifyPassword("x", "not-a-hash")
	assert.ErrorIs(t, err, ErrInvalidHash)

	_, err = VerifyPassword("x", "$argon2id$v=1$m=1,t=1,p=1$AAAA$AAAA")
	assert.ErrorIs(t, err, ErrIncompatibleVersion)
}

func TestNeedsRehash(t *testing.T) {
	weak, err := HashPasswordWithParams("x", fastParams)
	require.NoError(t, err)
	assert.True(t, NeedsRehash(weak))
	assert.True(t, NeedsRehash("garbage"))
}

func TestGenerateRandomToken(t *testing.T) {
	a, err := GenerateRandomToken(32)
	require.NoError(t, err)
	b, err := GenerateRandomToken(32)
	require.NoError(t, err)

	assert.Len(t, a, 43)
	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "=")
}
