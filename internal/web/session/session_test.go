package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	Init(nil)

	id, err := GenerateSessionID()
	require.NoError(t, err)
	assert.Len(t, id, 64)

	require.NoError(t, (&Data{UserID: 7, Email: "x@y.com"}).Write(id, time.Minute))

	var got Data
	require.NoError(t, got.Read(id))
	assert.Equal(t, Data{UserID: 7, Email: "x@y.com"}, got)

	require.NoError(t, Delete(id))
	require.ErrorIs(t, (&Data{}).Read(id), ErrNoSession)
}

func TestSessionUnknownID(t *testing.T) {
	Init(nil)

	require.ErrorIs(t, (&Data{}).Read("does-not-exist"), ErrNoSession)
}
