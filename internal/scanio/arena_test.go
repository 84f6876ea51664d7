package scanio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/mdcm/internal/scanio"
)

func TestByteArenaTake(t *testing.T) {
	var arena scanio.ByteArena

	_, err := arena.WriteString("hello ")
	require.NoError(t, err)
	hello := arena.Take()

	_, err = arena.WriteString("world")
	require.NoError(t, err)
	world := arena.Take()

	assert.Equal(t, "hello ", hello.Text())
	assert.Equal(t, "world", world.Text())
	assert.False(t, hello.Empty())
}

func TestByteArenaTokenEmpty(t *testing.T) {
	var arena scanio.ByteArena
	tok := arena.Take()
	assert.True(t, tok.Empty())
	assert.Equal(t, "", tok.Text())
}

func TestByteArenaTokenSlice(t *testing.T) {
	var arena scanio.ByteArena
	_, err := arena.WriteString("foo bar baz")
	require.NoError(t, err)
	tok := arena.Take()

	assert.Equal(t, "foo", tok.Slice(0, 3).Text())
	assert.Equal(t, "baz", tok.Slice(8, -1).Text())
}

func TestByteArenaReset(t *testing.T) {
	var arena scanio.ByteArena
	_, err := arena.WriteString("stale")
	require.NoError(t, err)
	arena.Take()
	arena.Reset()

	_, err = arena.WriteString("fresh")
	require.NoError(t, err)
	tok := arena.Take()
	assert.Equal(t, "fresh", tok.Text())
}
