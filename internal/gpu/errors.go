package gpu

import (
	"fmt"
	"strings"
)

// ShaderCompileError reports a shader stage that failed to compile or a
// program that failed to link.
type ShaderCompileError struct {
	Stage string
	Path  string
	Log   string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader %q: %s", e.Stage, e.Path, strings.TrimSpace(e.Log))
}

// LayoutMismatchError reports a vertex shader whose inputs are not covered by
// the vertex layout it was paired with.
type LayoutMismatchError struct {
	Shader  string
	Layout  string
	Missing []string
}

func (e *LayoutMismatchError) Error() string {
	return fmt.Sprintf("vertex shader %q expects inputs %s missing from layout %q",
		e.Shader, strings.Join(e.Missing, ", "), e.Layout)
}

// CheckSignature compares the inputs a vertex shader declares against a
// layout and returns a *LayoutMismatchError naming every uncovered input.
func CheckSignature(shader string, inputs []string, layout VertexLayout) error {
	var missing []string
	for _, in := range inputs {
		if !layout.Has(in) {
			missing = append(missing, in)
		}
	}
	if len(missing) > 0 {
		return &LayoutMismatchError{Shader: shader, Layout: layout.Name, Missing: missing}
	}
	return nil
}
