package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SameSeedSameFiles(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()

	want, err := generate(first, 7)
	require.NoError(t, err)
	got, err := generate(second, 7)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	for _, name := range []string{censusFile, femaFile} {
		a, err := os.ReadFile(filepath.Join(first, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(second, name))
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), name)
	}
}

func TestGenerate_DifferentSeeds(t *testing.T) {
	a, err := generate(t.TempDir(), 1)
	require.NoError(t, err)
	b, err := generate(t.TempDir(), 2)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
