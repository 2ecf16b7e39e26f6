package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("motdepasse123")
	require.NoError(t, err)
	h2, err := HashPassword("motdepasse123")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, CheckPassword(h1, "motdepasse123"))
	assert.True(t, CheckPassword(h2, "motdepasse123"))
}

func TestCheckPassword_WrongPassword(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("motdepasse123")
	require.NoError(t, err)

	assert.False(t, CheckPassword(h, "autremotdepasse"))
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "motdepasse123"))
}
