package effect

import (
	"fmt"

	"glade/internal/gpu"
)

// Customise applies named state presets. Empty names and "default" keep the
// current state.
//
//	blend:  alpha | additive | alpha-to-coverage
//	depth:  less-equal | read-only
//	raster: no-cull | wireframe
func (e *Effect) Customise(blend, depth, raster string) error {
	if blend != "" && blend != "default" {
		desc := e.BlendDesc()
		switch blend {
		case "alpha":
			desc.Enable, desc.AlphaToCoverage = true, false
			desc.Src, desc.Dest = gpu.BlendSrcAlpha, gpu.BlendInvSrcAlpha
		case "additive":
			desc.Enable, desc.AlphaToCoverage = true, false
			desc.Src, desc.Dest = gpu.BlendOne, gpu.BlendOne
		case "alpha-to-coverage":
			desc.Enable, desc.AlphaToCoverage = false, true
		default:
			return fmt.Errorf("effect %s: unknown blend preset %q", e.name, blend)
		}
		if err := e.SetBlendState(desc); err != nil {
			return err
		}
	}

	if depth != "" && depth != "default" {
		desc := e.DepthStencilDesc()
		switch depth {
		case "less-equal":
			desc.DepthFunc = gpu.CompareLessEqual
		case "read-only":
			desc.DepthWrite = false
		default:
			return fmt.Errorf("effect %s: unknown depth preset %q", e.name, depth)
		}
		if err := e.SetDepthStencilState(desc); err != nil {
			return err
		}
	}

	if raster != "" && raster != "default" {
		desc := e.RasterizerDesc()
		switch raster {
		case "no-cull":
			desc.Cull = gpu.CullNone
		case "wireframe":
			desc.Fill = gpu.FillWireframe
		default:
			return fmt.Errorf("effect %s: unknown raster preset %q", e.name, raster)
		}
		if err := e.SetRasterizerState(desc); err != nil {
			return err
		}
	}
	return nil
}
