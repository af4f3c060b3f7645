package render

import "fmt"

type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrContextUnavailable is returned when a surface id does not resolve
	// to a drawing context.
	ErrContextUnavailable = Error("drawing context unavailable")
	// ErrAttributeNotFound is returned when a program has no active
	// attribute of the requested name, usually because the compiler
	// optimized it away. Drawing can continue without it.
	ErrAttributeNotFound = Error("attribute not found")
)

// CompileError carries the compiler's info log for a rejected shader.
type CompileError struct {
	Kind Enum
	Log  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader compilation error: %s", shaderKindName(e.Kind), e.Log)
}

// LinkError carries the linker's info log for a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "link program error: " + e.Log
}

// ImageLoadError reports an image that could not be fetched or decoded.
// The texture it was meant for keeps showing its placeholder.
type ImageLoadError struct {
	URL string
	Err error
}

func (e *ImageLoadError) Error() string {
	return fmt.Sprintf("load image %q: %v", e.URL, e.Err)
}

func (e *ImageLoadError) Unwrap() error {
	return e.Err
}

func shaderKindName(kind Enum) string {
	switch kind {
	case VERTEX_SHADER:
		return "vertex"
	case FRAGMENT_SHADER:
		return "fragment"
	}
	return fmt.Sprintf("0x%x", uint32(kind))
}
