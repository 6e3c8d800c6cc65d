package scene

import (
	"glade/internal/gpu"
	"glade/internal/graphics/renderer"
	"glade/internal/logging"
)

// buildPasses lays the objects out in draw order: background, opaque, the
// foliage loop, the rest of the terrain layer, dynamic, transparent and
// finally the flares with the depth buffer borrowed.
func (s *Scene) buildPasses() (*renderer.Renderer, error) {
	layers := map[renderer.Layer][]renderer.Renderable{}
	var grass renderer.Renderable
	for _, o := range s.objects {
		if s.cfg.Grass.Passes > 0 && o.item.Name() == s.cfg.Grass.Terrain {
			grass = o.item
			continue
		}
		layers[o.layer] = append(layers[o.layer], o.item)
	}

	passes := []*renderer.Pass{
		{Name: "background", Layer: renderer.Background, Items: layers[renderer.Background]},
		{Name: "opaque", Layer: renderer.Opaque, Items: layers[renderer.Opaque]},
	}
	if grass != nil {
		s.foliage = &renderer.Pass{
			Name:    "foliage",
			Layer:   renderer.Terrain,
			Items:   []renderer.Renderable{grass},
			Repeat:  s.cfg.Grass.Passes,
			Prepare: s.prepareFoliage,
			End:     s.endFoliage,
		}
		passes = append(passes, s.foliage)
	}
	passes = append(passes,
		&renderer.Pass{Name: "terrain", Layer: renderer.Terrain, Items: layers[renderer.Terrain]},
		&renderer.Pass{Name: "dynamic", Layer: renderer.Dynamic, Items: layers[renderer.Dynamic]},
		&renderer.Pass{Name: "transparent", Layer: renderer.Transparent, Items: layers[renderer.Transparent]},
		&renderer.Pass{
			Name:  "flares",
			Layer: renderer.Flare,
			Items: layers[renderer.Flare],
			Begin: s.borrowDepth,
			End:   s.restoreDepth,
		},
	)
	return renderer.NewRenderer(passes...)
}

// GrassHeight returns the shell height of foliage pass i.
func (s *Scene) GrassHeight(i int) float32 {
	if s.cfg.Grass.Passes <= 0 {
		return 0
	}
	return s.cfg.Grass.Length / float32(s.cfg.Grass.Passes) * float32(i)
}

func (s *Scene) prepareFoliage(ctx gpu.Context, i int) error {
	s.scene.Data.GrassHeight = s.GrassHeight(i)
	return s.scene.Sync(ctx)
}

// endFoliage leaves a zero shell height for every later draw.
func (s *Scene) endFoliage(ctx gpu.Context) {
	s.scene.Data.GrassHeight = 0
	if err := s.scene.Sync(ctx); err != nil {
		logging.Warn("scene buffer: %v", err)
	}
}

// borrowDepth detaches the depth-stencil view and exposes the depth buffer to
// the vertex stage for flare occlusion.
func (s *Scene) borrowDepth(ctx gpu.Context) error {
	rt, _ := ctx.RenderTargets()
	ctx.SetRenderTargets(rt, nil)
	ctx.SetShaderResources(gpu.StageVertex, gpu.SlotDepthResource, s.system.DepthStencilResource())
	return nil
}

// restoreDepth unbinds the depth resource and reattaches the default
// depth-stencil view.
func (s *Scene) restoreDepth(ctx gpu.Context) {
	ctx.SetShaderResources(gpu.StageVertex, gpu.SlotDepthResource, nil)
	rt, _ := ctx.RenderTargets()
	ctx.SetRenderTargets(rt, s.system.DepthStencil())
}
