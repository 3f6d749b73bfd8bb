package wgpu

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/flashlight"
)

//go:embed shaders/overlay.wgsl
var overlayShaderWGSL string

// Shader entry points.
const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

// Bind group slots. Group 0 holds the per-frame uniform, group 1 the
// captured texture and its sampler.
const (
	paramsGroup  = 0
	captureGroup = 1
)

// ErrShaderLayout is returned when the shader's uniform block does not
// match flashlight.OverlayParamsSize.
var ErrShaderLayout = errors.New("wgpu: overlay shader uniform layout mismatch")

var (
	shaderCheckOnce sync.Once
	shaderCheckErr  error
)

// checkOverlayShader parses and validates the embedded shader once and
// verifies its uniform block is the size the CPU side encodes.
func checkOverlayShader() error {
	shaderCheckOnce.Do(func() {
		shaderCheckErr = validateShader(overlayShaderWGSL)
	})
	return shaderCheckErr
}

func validateShader(source string) error {
	module, err := lowerShader(source)
	if err != nil {
		return err
	}

	for _, stage := range []struct {
		name  string
		stage ir.ShaderStage
	}{
		{vertexEntryPoint, ir.StageVertex},
		{fragmentEntryPoint, ir.StageFragment},
	} {
		if !hasEntryPoint(module, stage.name, stage.stage) {
			return fmt.Errorf("wgpu: overlay shader has no %s entry point", stage.name)
		}
	}

	span, ok := uniformSpan(module, paramsGroup, 0)
	if !ok {
		return fmt.Errorf("%w: no uniform struct at @group(%d) @binding(0)", ErrShaderLayout, paramsGroup)
	}
	if span != flashlight.OverlayParamsSize {
		return fmt.Errorf("%w: shader uses %d bytes, params encode %d", ErrShaderLayout, span, flashlight.OverlayParamsSize)
	}
	return nil
}

func lowerShader(source string) (*ir.Module, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse overlay shader: %w", err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("lower overlay shader: %w", err)
	}
	verrs, err := naga.Validate(module)
	if err != nil {
		return nil, fmt.Errorf("validate overlay shader: %w", err)
	}
	if len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, v := range verrs {
			msgs[i] = v.Message
		}
		return nil, fmt.Errorf("validate overlay shader: %s", strings.Join(msgs, "; "))
	}
	return module, nil
}

func hasEntryPoint(m *ir.Module, name string, stage ir.ShaderStage) bool {
	for _, ep := range m.EntryPoints {
		if ep.Name == name && ep.Stage == stage {
			return true
		}
	}
	return false
}

// uniformSpan returns the byte size of the uniform struct bound at
// (group, binding).
func uniformSpan(m *ir.Module, group, binding uint32) (uint32, bool) {
	for _, gv := range m.GlobalVariables {
		if gv.Space != ir.SpaceUniform || gv.Binding == nil {
			continue
		}
		if gv.Binding.Group != group || gv.Binding.Binding != binding {
			continue
		}
		if int(gv.Type) >= len(m.Types) {
			return 0, false
		}
		st, ok := m.Types[gv.Type].Inner.(ir.StructType)
		if !ok {
			return 0, false
		}
		return st.Span, true
	}
	return 0, false
}
