package utils

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoldWriter_PassThrough(t *testing.T) {
	var out bytes.Buffer
	h := NewHoldWriter(&out)

	n, err := h.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", out.String())
	assert.Zero(t, h.Buffered())
}

func TestHoldWriter_HoldAndRelease(t *testing.T) {
	var out bytes.Buffer
	h := NewHoldWriter(&out)

	h.Hold()
	_, _ = h.Write([]byte("one "))
	_, _ = h.Write([]byte("two"))
	assert.Empty(t, out.String())
	assert.Equal(t, 7, h.Buffered())

	require.NoError(t, h.Release())
	assert.Equal(t, "one two", out.String())
	assert.Zero(t, h.Buffered())

	_, _ = h.Write([]byte("!"))
	assert.Equal(t, "one two!", out.String())
}

func TestHoldWriter_ReleaseEmpty(t *testing.T) {
	var out bytes.Buffer
	h := NewHoldWriter(&out)

	h.Hold()
	require.NoError(t, h.Release())
	assert.Empty(t, out.String())
}

func TestHoldWriter_Concurrent(t *testing.T) {
	var out bytes.Buffer
	h := NewHoldWriter(&out)
	h.Hold()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = fmt.Fprintf(h, "%02d", i)
		}()
	}
	wg.Wait()

	require.NoError(t, h.Release())
	assert.Len(t, out.String(), 100)
}
