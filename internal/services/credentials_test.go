package services

import (
	"context"
	"testing"

	"github.com/dt-hbtn/chordgen-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticCredentials_Authenticate(t *testing.T) {
	hash, err := models.HashPassword("livecode")
	require.NoError(t, err)

	store := NewStaticCredentials(map[string]string{"dt-hbtn": hash})

	user, err := store.Authenticate(context.Background(), "dt-hbtn", "livecode")
	require.NoError(t, err)
	assert.Equal(t, "dt-hbtn", user.Username)
	assert.True(t, user.IsActive)

	_, err = store.Authenticate(context.Background(), "dt-hbtn", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = store.Authenticate(context.Background(), "nobody", "livecode")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestStaticCredentials_CopiesInput(t *testing.T) {
	hash, err := models.HashPassword("pw")
	require.NoError(t, err)

	users := map[string]string{"a": hash}
	store := NewStaticCredentials(users)
	delete(users, "a")

	_, err = store.Authenticate(context.Background(), "a", "pw")
	assert.NoError(t, err)
}

func TestStaticCredentials_MalformedHash(t *testing.T) {
	store := NewStaticCredentials(map[string]string{"a": "not-a-bcrypt-hash"})
	_, err := store.Authenticate(context.Background(), "a", "not-a-bcrypt-hash")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestStaticCredentials_UnknownUserStillComparesHash(t *testing.T) {
	hash, err := models.HashPassword("livecode")
	require.NoError(t, err)
	store := NewStaticCredentials(map[string]string{"dt-hbtn": hash})

	var calls int
	original := compareHash
	compareHash = func(hashed, password []byte) error {
		calls++
		return original(hashed, password)
	}
	t.Cleanup(func() { compareHash = original })

	_, err = store.Authenticate(context.Background(), "dt-hbtn", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 1, calls)

	_, err = store.Authenticate(context.Background(), "nobody", "livecode")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 2, calls, "unknown user must cost a bcrypt comparison")
}
