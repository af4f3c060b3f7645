package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed shaders/*.glsl
var embeddedShaders embed.FS

// shaderSource returns the named shader, preferring a file in dir so that
// edits can be picked up without rebuilding.
func shaderSource(dir, name string) (string, error) {
	if dir != "" {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return string(b), nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
	}
	b, err := embeddedShaders.ReadFile("shaders/" + name)
	if err != nil {
		return "", fmt.Errorf("shader %q: %w", name, err)
	}
	return string(b), nil
}

// shaderPair loads the vertex and fragment sources of a program.
func shaderPair(dir, vert, frag string) (vs, fs string, err error) {
	if vs, err = shaderSource(dir, vert+".vert.glsl"); err != nil {
		return
	}
	fs, err = shaderSource(dir, frag+".frag.glsl")
	return
}
