// Package scene owns every device resource of the demo and drives the
// per-frame update, render and present cycle.
//
// A Scene is built from a config.Scene in a fixed order: viewport, effects,
// textures, renderables, camera, then the light and scene buffers. Every
// acquired resource is recorded in an arena and released in reverse order by
// Close, or immediately when construction fails part way.
package scene

import (
	"errors"
	"fmt"
	"time"

	"glade/internal/assets"
	"glade/internal/cbuffer"
	"glade/internal/clock"
	"glade/internal/config"
	"glade/internal/gpu"
	"glade/internal/graphics/camera"
	"glade/internal/graphics/effect"
	"glade/internal/graphics/renderables/terrain"
	"glade/internal/graphics/renderer"
	"glade/internal/graphics/texture"
	"glade/internal/input"
	"glade/internal/logging"
	"glade/internal/resource"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrNoDevice and ErrNoContext are fatal when returned from New.
	ErrNoDevice  = errors.New("scene: graphics device unavailable")
	ErrNoContext = errors.New("scene: device context unavailable")
	ErrNoClock   = errors.New("scene: no clock")
	// ErrFrameSkipped reports a frame that was not drawn. The next frame
	// retries normally.
	ErrFrameSkipped = errors.New("scene: frame skipped")
	ErrPresent      = errors.New("scene: present failed")
)

// Window is the part of the host window the scene reads.
type Window interface {
	ClientSize() (width, height int)
	Minimised() bool
}

// CameraFactory builds the scene camera from configuration.
type CameraFactory func(dev gpu.Device, cfg config.Camera) (camera.Camera, error)

type options struct {
	clock     *clock.Clock
	loader    *assets.Loader
	newCamera CameraFactory
}

type Option func(*options)

// WithClock replaces the default wall-clock game clock. A clock that is not
// running is started at the end of New.
func WithClock(c *clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithAssets replaces the loader rooted at config.Scene.AssetsDir.
func WithAssets(l *assets.Loader) Option {
	return func(o *options) { o.loader = l }
}

func WithCameraFactory(f CameraFactory) Option {
	return func(o *options) { o.newCamera = f }
}

// NewCamera is the default CameraFactory.
func NewCamera(dev gpu.Device, cfg config.Camera) (camera.Camera, error) {
	lens := camera.Lens{FOV: cfg.FOV, Near: cfg.Near, Far: cfg.Far}
	var (
		cam camera.Camera
		err error
	)
	switch cfg.Kind {
	case config.CameraLookAt:
		cam, err = camera.NewLookAt(dev, cfg.Position, cfg.Up, cfg.Target, lens)
	default:
		cam, err = camera.NewFirstPerson(dev, cfg.Position, cfg.Up, cfg.Direction, lens)
	}
	if err != nil {
		return nil, err
	}
	if cfg.Turn != 0 {
		cam.Turn(cfg.Turn)
	}
	cam.SetFlying(cfg.Flying)
	return cam, nil
}

// object is one constructed renderable and the configuration it came from.
type object struct {
	item      renderer.Renderable
	layer     renderer.Layer
	transform config.Transform
	animate   *config.Animation
	sync      bool
}

type Scene struct {
	system gpu.System
	window Window
	cfg    *config.Scene
	clock  *clock.Clock
	loader *assets.Loader
	arena  resource.Arena

	effects  map[string]*effect.Effect
	textures map[string]*texture.Texture
	objects  []*object
	byName   map[string]*object
	ground   *terrain.Terrain

	renderer *renderer.Renderer
	foliage  *renderer.Pass

	camera   camera.Camera
	controls *input.Controls
	light    *cbuffer.Mirror[cbuffer.Light]
	scene    *cbuffer.Mirror[cbuffer.Scene]

	viewport   gpu.Viewport
	nextReport float64
	closed     bool
}

// New builds the scene. On failure every resource acquired so far has
// already been released and the returned scene is nil.
func New(sys gpu.System, win Window, cfg *config.Scene, opts ...Option) (_ *Scene, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scene config: %w", err)
	}
	o := options{newCamera: NewCamera}
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		o.clock = clock.New(clock.WithStatsDelay(time.Duration(cfg.Clock.StatsDelay * float64(time.Second))))
	}
	if o.loader == nil {
		o.loader = assets.Dir(cfg.AssetsDir)
	}

	dev := sys.Device()
	if dev == nil {
		return nil, ErrNoDevice
	}
	if sys.Context() == nil {
		return nil, ErrNoContext
	}

	// Tuning writes to the scene's own copy.
	local := *cfg
	s := &Scene{
		system:   sys,
		window:   win,
		cfg:      &local,
		clock:    o.clock,
		loader:   o.loader,
		effects:  map[string]*effect.Effect{},
		textures: map[string]*texture.Texture{},
		byName:   map[string]*object{},
	}
	defer func() {
		if err != nil {
			s.arena.Release()
		}
	}()

	if err := s.RebuildViewport(); err != nil {
		return nil, err
	}
	if err := s.createEffects(dev); err != nil {
		return nil, err
	}
	if err := s.loadTextures(dev); err != nil {
		return nil, err
	}
	if err := s.createObjects(dev); err != nil {
		return nil, err
	}
	if err := s.createCamera(dev, o.newCamera); err != nil {
		return nil, err
	}
	if err := s.createSceneBuffers(dev); err != nil {
		return nil, err
	}
	if s.renderer, err = s.buildPasses(); err != nil {
		return nil, err
	}

	if !s.clock.Running() {
		s.clock.Start()
	}
	s.nextReport = cfg.Clock.ReportInterval
	logging.Info("scene ready: %d effects, %d textures, %d objects, %d resources",
		len(s.effects), len(s.textures), len(s.objects), s.arena.Len())
	return s, nil
}

func (s *Scene) createCamera(dev gpu.Device, factory CameraFactory) error {
	cam, err := factory(dev, s.cfg.Camera)
	if err != nil {
		return fmt.Errorf("camera: %w", err)
	}
	s.arena.AddFunc("camera", cam.Dispose)
	w, h := s.window.ClientSize()
	cam.SetAspect(w, h)
	s.camera = cam
	s.controls = input.NewControls(cam)
	return nil
}

// createSceneBuffers fills the light and scene buffers and binds them once.
// Their slots never change, so nothing else binds them.
func (s *Scene) createSceneBuffers(dev gpu.Device) error {
	ctx := s.system.Context()
	if ctx == nil {
		return ErrNoContext
	}

	light, err := cbuffer.New(dev, gpu.SlotLight, lightConstants(s.cfg.Light))
	if err != nil {
		return fmt.Errorf("light buffer: %w", err)
	}
	s.arena.Add("light buffer", light)
	s.light = light

	scene, err := cbuffer.New(dev, gpu.SlotScene, cbuffer.Scene{WindDirection: s.cfg.Wind})
	if err != nil {
		return fmt.Errorf("scene buffer: %w", err)
	}
	s.arena.Add("scene buffer", scene)
	s.scene = scene

	if err := light.Sync(ctx); err != nil {
		return err
	}
	if err := scene.Sync(ctx); err != nil {
		return err
	}
	light.Bind(ctx)
	scene.Bind(ctx)
	return nil
}

func lightConstants(l config.Light) cbuffer.Light {
	return cbuffer.Light{
		Vector:   l.Vector,
		Ambient:  l.Ambient,
		Diffuse:  l.Diffuse,
		Specular: l.Specular,
	}
}

// Close releases every owned resource, newest first. It is safe to call more
// than once.
func (s *Scene) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.arena.Release()
	logging.Info("scene released")
}

func (s *Scene) Camera() camera.Camera { return s.camera }

func (s *Scene) Clock() *clock.Clock { return s.clock }

func (s *Scene) Config() *config.Scene { return s.cfg }

// Effect returns the named effect, or nil.
func (s *Scene) Effect(name string) *effect.Effect { return s.effects[name] }

// Texture returns the named texture, or nil.
func (s *Scene) Texture(name string) *texture.Texture { return s.textures[name] }

// Object returns the named renderable, or nil. Flares expanded from one
// configured object are named after it with an index suffix.
func (s *Scene) Object(name string) renderer.Renderable {
	if o, ok := s.byName[name]; ok {
		return o.item
	}
	return nil
}

// Ground returns the terrain the camera and foliage use, or nil.
func (s *Scene) Ground() *terrain.Terrain { return s.ground }

// Renderer exposes the pass list.
func (s *Scene) Renderer() *renderer.Renderer { return s.renderer }

func (s *Scene) LightBuffer() *cbuffer.Mirror[cbuffer.Light] { return s.light }

func (s *Scene) SceneBuffer() *cbuffer.Mirror[cbuffer.Scene] { return s.scene }

// Viewport returns the viewport set by the last rebuild.
func (s *Scene) Viewport() gpu.Viewport { return s.viewport }

// Resources returns the number of owned resources.
func (s *Scene) Resources() int { return s.arena.Len() }

// ClearColour returns the colour the back buffer is cleared to.
func (s *Scene) ClearColour() mgl32.Vec4 { return s.cfg.ClearColour }
