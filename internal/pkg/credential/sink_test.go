package credential

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestVerbatim(t *testing.T) {
	got, err := Verbatim{}.Store("hunter2")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)
}

func TestBcrypt(t *testing.T) {
	got, err := Bcrypt{}.Store("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", got)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got), []byte("hunter2")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(got), []byte("wrong")))
}
