package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faraz011/virasat2/pkg/jwt"
)

const secret = "unit-test-secret"

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, err := jwt.Generate(secret, "acc-123", true, "virasat", 1)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	accountID, isAdmin, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "acc-123", accountID)
	assert.True(t, isAdmin)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := jwt.Generate(secret, "acc-123", false, "virasat", 1)
	require.NoError(t, err)

	_, _, err = jwt.Parse("another-secret", token)
	assert.Error(t, err)
}

func TestParse_ExpiredToken(t *testing.T) {
	token, err := jwt.Generate(secret, "acc-123", false, "virasat", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse(secret, token)
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	_, _, err := jwt.Parse(secret, "not.a.token")
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := jwt.Generate("", "acc-123", false, "virasat", 1)
	assert.Error(t, err)
}
