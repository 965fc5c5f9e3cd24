package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_SetGetDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, s.Set(ctx, "k", []byte("v1")))
	v, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), v)

	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))

	v, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestStorage_ValuesAreCopied(t *testing.T) {
	s := New()
	ctx := context.Background()

	in := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", in))
	in[0] = 'x'

	out, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), out)

	out[1] = 'y'
	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestStorage_EmptyValueIsNotAbsent(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", nil))

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.NotNil(t, v)
	assert.Empty(t, v)
}
