package scene

import (
	"fmt"

	"glade/internal/config"
	"glade/internal/gpu"
	"glade/internal/graphics/effect"
	"glade/internal/graphics/material"
	"glade/internal/graphics/mesh"
	"glade/internal/graphics/renderables/box"
	"glade/internal/graphics/renderables/flare"
	"glade/internal/graphics/renderables/grid"
	"glade/internal/graphics/renderables/model"
	"glade/internal/graphics/renderables/particles"
	"glade/internal/graphics/renderables/terrain"
	"glade/internal/graphics/renderer"
	"glade/internal/graphics/texture"
	"glade/internal/logging"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/rand"
)

func (s *Scene) createEffects(dev gpu.Device) error {
	for _, c := range s.cfg.Effects {
		layout, ok := gpu.LayoutByName(c.Layout)
		if !ok {
			return fmt.Errorf("effect %s: unknown layout %q", c.Name, c.Layout)
		}
		vs, err := s.loader.Shader(c.VertexShader)
		if err != nil {
			return fmt.Errorf("effect %s: %w", c.Name, err)
		}
		ps, err := s.loader.Shader(c.PixelShader)
		if err != nil {
			return fmt.Errorf("effect %s: %w", c.Name, err)
		}
		e, err := effect.New(dev, c.Name, vs, ps, layout)
		if err != nil {
			return err
		}
		s.arena.Add("effect "+c.Name, e)
		if err := e.Customise(c.Blend, c.Depth, c.Raster); err != nil {
			return err
		}
		s.effects[c.Name] = e
	}
	return nil
}

func (s *Scene) loadTextures(dev gpu.Device) error {
	for _, c := range s.cfg.Textures {
		var (
			t   *texture.Texture
			err error
		)
		if c.IsCube() {
			t, err = texture.LoadCube(dev, s.loader, c.Name, c.Faces)
		} else {
			t, err = texture.Load(dev, s.loader, c.Name, c.Path, c.KeepImage)
		}
		if err != nil {
			return err
		}
		s.arena.Add("texture "+c.Name, t)
		s.textures[c.Name] = t
	}
	return nil
}

// createObjects builds every configured object, places it and pushes its
// buffer so the first frame draws valid state.
func (s *Scene) createObjects(dev gpu.Device) error {
	ctx := s.system.Context()
	if ctx == nil {
		return ErrNoContext
	}
	rng := rand.New(rand.NewSource(s.cfg.Seed))
	meshes := map[string]*mesh.Mesh{}

	for _, c := range s.cfg.Objects {
		layer, ok := renderer.ParseLayer(c.Layer)
		if !ok {
			return fmt.Errorf("object %s: unknown layer %q", c.Name, c.Layer)
		}
		desc, err := s.objectDesc(c)
		if err != nil {
			return err
		}
		transform, err := s.place(c)
		if err != nil {
			return err
		}

		items, err := s.build(dev, c, desc, meshes, rng)
		if err != nil {
			return err
		}
		for _, item := range items {
			s.arena.AddFunc("object "+item.Name(), item.Dispose)
			item.SetWorldMatrix(worldMatrix(transform, mgl32.Ident4()))
			if err := item.Update(ctx); err != nil {
				return fmt.Errorf("object %s: %w", item.Name(), err)
			}
			o := &object{
				item:      item,
				layer:     layer,
				transform: transform,
				animate:   c.Animate,
				sync:      c.Sync,
			}
			s.objects = append(s.objects, o)
			s.byName[item.Name()] = o
		}
		if len(items) == 0 {
			continue
		}
		if t, ok := items[0].(*terrain.Terrain); ok && (s.ground == nil || c.Name == s.cfg.Grass.Terrain) {
			s.ground = t
		}
	}
	return nil
}

func (s *Scene) objectDesc(c config.Object) (renderer.ObjectDesc, error) {
	eff, ok := s.effects[c.Effect]
	if !ok {
		return renderer.ObjectDesc{}, fmt.Errorf("object %s: unknown effect %q", c.Name, c.Effect)
	}
	desc := renderer.ObjectDesc{Name: c.Name, Effect: eff, Material: material.White}
	for _, name := range c.Textures {
		t, ok := s.textures[name]
		if !ok {
			return renderer.ObjectDesc{}, fmt.Errorf("object %s: unknown texture %q", c.Name, name)
		}
		desc.Textures = append(desc.Textures, t)
	}
	if c.Material != "" {
		m, ok := s.cfg.Materials[c.Material]
		if !ok {
			return renderer.ObjectDesc{}, fmt.Errorf("object %s: unknown material %q", c.Name, c.Material)
		}
		desc.Material = material.FromConfig(m)
	}
	return desc, nil
}

// place resolves the initial transform. Grounded objects take their height
// from a terrain built earlier.
func (s *Scene) place(c config.Object) (config.Transform, error) {
	t := c.Transform
	if c.Ground == nil {
		return t, nil
	}
	o, ok := s.byName[c.Ground.Terrain]
	if !ok {
		return t, fmt.Errorf("object %s: ground terrain %q not built yet", c.Name, c.Ground.Terrain)
	}
	ground, ok := o.item.(*terrain.Terrain)
	if !ok {
		return t, fmt.Errorf("object %s: %q is not a terrain", c.Name, c.Ground.Terrain)
	}
	t.Translate[1] = ground.CalculateYValueWorld(c.Ground.At[0], c.Ground.At[1]) + c.Ground.Offset
	return t, nil
}

func (s *Scene) build(dev gpu.Device, c config.Object, desc renderer.ObjectDesc, meshes map[string]*mesh.Mesh, rng *rand.Rand) ([]renderer.Renderable, error) {
	one := func(r renderer.Renderable, err error) ([]renderer.Renderable, error) {
		if err != nil {
			return nil, err
		}
		return []renderer.Renderable{r}, nil
	}

	switch c.Kind {
	case config.KindBox:
		return one(box.New(dev, desc))
	case config.KindGrid:
		return one(grid.New(dev, desc, c.Width, c.Depth))
	case config.KindTerrain:
		hm, ok := s.textures[c.Heightmap]
		if !ok || hm.Image() == nil {
			return nil, fmt.Errorf("object %s: heightmap %q has no CPU image", c.Name, c.Heightmap)
		}
		return one(terrain.New(dev, desc, hm.Image(), c.Width, c.Depth))
	case config.KindModel:
		m, ok := meshes[c.Mesh]
		if !ok {
			var err error
			if m, err = s.loader.Mesh(c.Mesh); err != nil {
				return nil, fmt.Errorf("object %s: %w", c.Name, err)
			}
			meshes[c.Mesh] = m
		}
		return one(model.New(dev, desc, m))
	case config.KindParticles:
		return one(particles.New(dev, desc, c.Count, c.Size, rng))
	case config.KindFlare:
		return s.buildFlares(dev, c, desc, rng)
	}
	return nil, fmt.Errorf("object %s: unknown kind %q", c.Name, c.Kind)
}

// buildFlares expands one configured flare into Count billboards named
// name0, name1, ... Each gets a random light colour and one of the
// configured textures; alpha spaces them along the flare line.
func (s *Scene) buildFlares(dev gpu.Device, c config.Object, desc renderer.ObjectDesc, rng *rand.Rand) ([]renderer.Renderable, error) {
	textures := desc.Textures
	out := make([]renderer.Renderable, 0, c.Count)
	for i, name := range c.BuiltNames() {
		d := desc
		d.Name = name
		if len(textures) > 0 {
			d.Textures = []*texture.Texture{textures[rng.Intn(len(textures))]}
		}
		colour := flare.RandomColour(rng, float32(i)/float32(c.Count))
		f, err := flare.New(dev, d, c.Size, colour)
		if err != nil {
			for _, built := range out {
				built.Dispose()
			}
			return nil, err
		}
		out = append(out, f)
	}
	logging.Debug("flare %s: %d billboards", c.Name, len(out))
	return out, nil
}

// worldMatrix composes translate * rotate * animation * scale. A zero scale
// component is treated as 1.
func worldMatrix(t config.Transform, animation mgl32.Mat4) mgl32.Mat4 {
	scale := t.Scale
	for i, v := range scale {
		if v == 0 {
			scale[i] = 1
		}
	}
	rotate := mgl32.HomogRotate3DZ(mgl32.DegToRad(t.RotateZ)).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(t.RotateY))).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(t.RotateX)))
	return mgl32.Translate3D(t.Translate[0], t.Translate[1], t.Translate[2]).
		Mul4(rotate).
		Mul4(animation).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

// spin returns the rotation of an animated object after elapsed seconds.
func spin(a *config.Animation, elapsed float32) mgl32.Mat4 {
	if a == nil {
		return mgl32.Ident4()
	}
	angle := a.Rate * elapsed
	switch a.Axis {
	case "x":
		return mgl32.HomogRotate3DX(angle)
	case "y":
		return mgl32.HomogRotate3DY(angle)
	default:
		return mgl32.HomogRotate3DZ(angle)
	}
}
