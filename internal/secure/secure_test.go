package secure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevealRoundTrip(t *testing.T) {
	s := NewString("hunter22")

	var got string
	require.NoError(t, s.Reveal(func(plaintext string) error {
		got = plaintext
		return nil
	}))
	assert.Equal(t, "hunter22", got)
}

func TestRevealRepeatable(t *testing.T) {
	s := NewString("x")
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Reveal(func(plaintext string) error {
			assert.Equal(t, "x", plaintext)
			return nil
		}))
	}
}

func TestEmpty(t *testing.T) {
	var nilString *String
	assert.True(t, nilString.Empty())
	assert.True(t, (&String{}).Empty())
	assert.False(t, NewString("s").Empty())
}

func TestNilRevealYieldsEmpty(t *testing.T) {
	var s *String
	require.NoError(t, s.Reveal(func(plaintext string) error {
		assert.Equal(t, "", plaintext)
		return nil
	}))
}
