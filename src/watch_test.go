package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsShaderChange(t *testing.T) {
	assert.True(t, isShaderChange(fsnotify.Event{Name: "s/color.frag.glsl", Op: fsnotify.Write}))
	assert.True(t, isShaderChange(fsnotify.Event{Name: "s/color.frag.glsl", Op: fsnotify.Create}))
	assert.False(t, isShaderChange(fsnotify.Event{Name: "s/color.frag.glsl", Op: fsnotify.Chmod}))
	assert.False(t, isShaderChange(fsnotify.Event{Name: "s/notes.txt", Op: fsnotify.Write}))
}

func TestWatchShaders(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan struct{}, 16)
	w, err := watchShaders(dir, func() { changed <- struct{}{} })
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "white.frag.glsl"), []byte("void main() {}"), 0644))
	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatchShadersMissingDir(t *testing.T) {
	_, err := watchShaders(filepath.Join(t.TempDir(), "missing"), func() {})
	assert.Error(t, err)
}
