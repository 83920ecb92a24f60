package shader

import (
	"fmt"

	"github.com/Faultbox/modelview/internal/engine/gpu"
)

// CompileError reports a shader stage that failed to compile.
type CompileError struct {
	Kind gpu.ShaderKind
	Log  string
}

func (e *CompileError) Error() string {
	if e.Log == "" {
		return fmt.Sprintf("%s shader: compile failed", e.Kind)
	}
	return fmt.Sprintf("%s shader: %s", e.Kind, e.Log)
}

// LinkError reports a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	if e.Log == "" {
		return "link: failed"
	}
	return "link: " + e.Log
}
