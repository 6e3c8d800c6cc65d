package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Object kinds.
const (
	KindBox       = "box"
	KindGrid      = "grid"
	KindTerrain   = "terrain"
	KindModel     = "model"
	KindParticles = "particles"
	KindFlare     = "flare"
)

// Camera kinds.
const (
	CameraFirstPerson = "first-person"
	CameraLookAt      = "look-at"
)

var (
	Kinds       = []string{KindBox, KindGrid, KindTerrain, KindModel, KindParticles, KindFlare}
	Layers      = []string{"background", "opaque", "terrain", "dynamic", "transparent", "flare"}
	Layouts     = []string{"basic", "extended", "particle", "flare"}
	BlendModes  = []string{"", "default", "alpha", "additive", "alpha-to-coverage"}
	DepthModes  = []string{"", "default", "less-equal", "read-only"}
	RasterModes = []string{"", "default", "no-cull", "wireframe"}
	Axes        = []string{"x", "y", "z"}
)

// Scene is the complete, data-driven composition of a scene.
type Scene struct {
	AssetsDir   string              `toml:"assets_dir"`
	Window      Window              `toml:"window"`
	Log         Log                 `toml:"log"`
	Clock       Clock               `toml:"clock"`
	Camera      Camera              `toml:"camera"`
	Light       Light               `toml:"light"`
	Wind        [4]float32          `toml:"wind"`
	Grass       Grass               `toml:"grass"`
	ClearColour [4]float32          `toml:"clear_colour"`
	Seed        uint64              `toml:"seed"`
	Materials   map[string]Material `toml:"materials"`
	Effects     []Effect            `toml:"effects"`
	Textures    []Texture           `toml:"textures"`
	Objects     []Object            `toml:"objects"`
}

type Window struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type Log struct {
	Level string `toml:"level"`
}

// Clock times are in seconds.
type Clock struct {
	StatsDelay     float64 `toml:"stats_delay"`
	ReportInterval float64 `toml:"report_interval"`
	FPSLimit       int     `toml:"fps_limit"`
}

type Camera struct {
	Kind     string     `toml:"kind"`
	Position [3]float32 `toml:"position"`
	Up       [3]float32 `toml:"up"`
	// Direction is the initial look direction of a first-person camera.
	Direction [3]float32 `toml:"direction"`
	// Target is the orbit centre of a look-at camera.
	Target [3]float32 `toml:"target"`
	// Turn is applied once after construction, in radians.
	Turn          float32 `toml:"turn"`
	FOV           float32 `toml:"fov"`
	Near          float32 `toml:"near"`
	Far           float32 `toml:"far"`
	Flying        bool    `toml:"flying"`
	GroundOffset  float32 `toml:"ground_offset"`
	FollowTerrain bool    `toml:"follow_terrain"`
}

type Light struct {
	Vector   [4]float32 `toml:"vector"`
	Ambient  [4]float32 `toml:"ambient"`
	Diffuse  [4]float32 `toml:"diffuse"`
	Specular [4]float32 `toml:"specular"`
}

// Grass drives the foliage multi-pass over the named terrain object.
type Grass struct {
	Terrain string  `toml:"terrain"`
	Length  float32 `toml:"length"`
	Passes  int     `toml:"passes"`
}

type Material struct {
	Ambient  [4]float32 `toml:"ambient"`
	Diffuse  [4]float32 `toml:"diffuse"`
	Specular [3]float32 `toml:"specular"`
	Power    float32    `toml:"power"`
}

type Effect struct {
	Name         string `toml:"name"`
	VertexShader string `toml:"vertex_shader"`
	PixelShader  string `toml:"pixel_shader"`
	Layout       string `toml:"layout"`
	Blend        string `toml:"blend"`
	Depth        string `toml:"depth"`
	Raster       string `toml:"raster"`
}

// Texture is either a 2D image (Path) or a cube map (six Faces in +X, -X, +Y,
// -Y, +Z, -Z order). KeepImage retains the decoded pixels on the CPU.
type Texture struct {
	Name      string   `toml:"name"`
	Path      string   `toml:"path"`
	Faces     []string `toml:"faces"`
	KeepImage bool     `toml:"keep_image"`
}

// IsCube reports whether the texture is a cube map.
func (t Texture) IsCube() bool {
	return len(t.Faces) > 0
}

type Transform struct {
	Scale     [3]float32 `toml:"scale"`
	RotateX   float32    `toml:"rotate_x"` // degrees
	RotateY   float32    `toml:"rotate_y"`
	RotateZ   float32    `toml:"rotate_z"`
	Translate [3]float32 `toml:"translate"`
}

// Animation spins an object about a local axis at Rate radians per second of
// game time.
type Animation struct {
	Axis string  `toml:"axis"`
	Rate float32 `toml:"rate"`
}

// Ground places an object on a terrain: its Y translation becomes the terrain
// height at At (world x, z) plus Offset.
type Ground struct {
	Terrain string     `toml:"terrain"`
	At      [2]float32 `toml:"at"`
	Offset  float32    `toml:"offset"`
}

type Object struct {
	Name      string     `toml:"name"`
	Kind      string     `toml:"kind"`
	Layer     string     `toml:"layer"`
	Effect    string     `toml:"effect"`
	Textures  []string   `toml:"textures"`
	Material  string     `toml:"material"`
	Mesh      string     `toml:"mesh"`
	Width     int        `toml:"width"`
	Depth     int        `toml:"depth"`
	Heightmap string     `toml:"heightmap"`
	Count     int        `toml:"count"`
	Size      float32    `toml:"size"`
	Transform Transform  `toml:"transform"`
	Animate   *Animation `toml:"animate"`
	Ground    *Ground    `toml:"ground"`
	// Sync pushes the object buffer every frame even when nothing moved.
	Sync bool `toml:"sync"`
}

// Load reads a TOML file on top of Default. Arrays present in the file
// (effects, textures, objects) replace the defaults; tables are merged.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read scene config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML on top of Default and validates the result.
func Parse(data []byte) (*Scene, error) {
	var keys map[string]any
	if err := toml.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("could not parse scene config: %w", err)
	}

	cfg := Default()
	if _, ok := keys["effects"]; ok {
		cfg.Effects = nil
	}
	if _, ok := keys["textures"]; ok {
		cfg.Textures = nil
	}
	if _, ok := keys["objects"]; ok {
		cfg.Objects = nil
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("unknown scene config keys:\n%s", strict.String())
		}
		return nil, fmt.Errorf("could not decode scene config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Effect returns the named effect.
func (s *Scene) Effect(name string) (Effect, bool) {
	i := slices.IndexFunc(s.Effects, func(e Effect) bool { return e.Name == name })
	if i < 0 {
		return Effect{}, false
	}
	return s.Effects[i], true
}

// Texture returns the named texture.
func (s *Scene) Texture(name string) (Texture, bool) {
	i := slices.IndexFunc(s.Textures, func(t Texture) bool { return t.Name == name })
	if i < 0 {
		return Texture{}, false
	}
	return s.Textures[i], true
}

// Object returns the named object.
func (s *Scene) Object(name string) (Object, bool) {
	i := slices.IndexFunc(s.Objects, func(o Object) bool { return o.Name == name })
	if i < 0 {
		return Object{}, false
	}
	return s.Objects[i], true
}

// Validate checks every reference and enumerated value. All problems are
// reported together.
func (s *Scene) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		add("window: invalid size %dx%d", s.Window.Width, s.Window.Height)
	}
	if s.Camera.Kind != CameraFirstPerson && s.Camera.Kind != CameraLookAt {
		add("camera: unknown kind %q", s.Camera.Kind)
	}
	if s.Camera.Near <= 0 || s.Camera.Far <= s.Camera.Near {
		add("camera: invalid clip planes %v..%v", s.Camera.Near, s.Camera.Far)
	}
	if s.Clock.ReportInterval < 0 || s.Clock.StatsDelay < 0 {
		add("clock: negative interval")
	}
	if s.Grass.Passes < 0 || s.Grass.Length < 0 {
		add("grass: passes and length must not be negative")
	}

	effects := map[string]bool{}
	for _, e := range s.Effects {
		if e.Name == "" || effects[e.Name] {
			add("effect %q: missing or duplicate name", e.Name)
		}
		effects[e.Name] = true
		if e.VertexShader == "" || e.PixelShader == "" {
			add("effect %q: needs a vertex and a pixel shader", e.Name)
		}
		if !slices.Contains(Layouts, e.Layout) {
			add("effect %q: unknown layout %q", e.Name, e.Layout)
		}
		if !slices.Contains(BlendModes, e.Blend) {
			add("effect %q: unknown blend %q", e.Name, e.Blend)
		}
		if !slices.Contains(DepthModes, e.Depth) {
			add("effect %q: unknown depth %q", e.Name, e.Depth)
		}
		if !slices.Contains(RasterModes, e.Raster) {
			add("effect %q: unknown raster %q", e.Name, e.Raster)
		}
	}

	textures := map[string]bool{}
	for _, t := range s.Textures {
		if t.Name == "" || textures[t.Name] {
			add("texture %q: missing or duplicate name", t.Name)
		}
		textures[t.Name] = true
		switch {
		case t.IsCube() && len(t.Faces) != 6:
			add("texture %q: cube map needs 6 faces, has %d", t.Name, len(t.Faces))
		case t.IsCube() && t.Path != "":
			add("texture %q: set either path or faces", t.Name)
		case !t.IsCube() && t.Path == "":
			add("texture %q: missing path", t.Name)
		}
	}

	objects := map[string]string{}
	for _, o := range s.Objects {
		if o.Name == "" {
			add("object with kind %q has no name", o.Kind)
		} else if _, dup := objects[o.Name]; dup {
			add("object %q: duplicate name", o.Name)
		}
		if !slices.Contains(Kinds, o.Kind) {
			add("object %q: unknown kind %q", o.Name, o.Kind)
		}
		if !slices.Contains(Layers, o.Layer) {
			add("object %q: unknown layer %q", o.Name, o.Layer)
		}
		if !effects[o.Effect] {
			add("object %q: unknown effect %q", o.Name, o.Effect)
		}
		for _, t := range o.Textures {
			if !textures[t] {
				add("object %q: unknown texture %q", o.Name, t)
			}
		}
		if o.Material != "" {
			if _, ok := s.Materials[o.Material]; !ok {
				add("object %q: unknown material %q", o.Name, o.Material)
			}
		}
		switch o.Kind {
		case KindGrid, KindTerrain:
			if o.Width <= 0 || o.Depth <= 0 {
				add("object %q: invalid grid size %dx%d", o.Name, o.Width, o.Depth)
			}
			if o.Kind == KindTerrain {
				if t, ok := s.Texture(o.Heightmap); !ok || !t.KeepImage || t.IsCube() {
					add("object %q: heightmap %q must be a 2D texture with keep_image", o.Name, o.Heightmap)
				}
			}
		case KindModel:
			if o.Mesh == "" {
				add("object %q: missing mesh", o.Name)
			}
		case KindParticles, KindFlare:
			if o.Count <= 0 {
				add("object %q: count must be positive", o.Name)
			}
		}
		if o.Animate != nil && !slices.Contains(Axes, o.Animate.Axis) {
			add("object %q: unknown animation axis %q", o.Name, o.Animate.Axis)
		}
		if o.Ground != nil && objects[o.Ground.Terrain] != KindTerrain {
			add("object %q: ground terrain %q must be an earlier terrain object", o.Name, o.Ground.Terrain)
		}
		objects[o.Name] = o.Kind
	}

	if s.Grass.Passes > 0 && objects[s.Grass.Terrain] != KindTerrain {
		add("grass: terrain %q is not a terrain object", s.Grass.Terrain)
	}

	built := map[string]string{}
	for _, o := range s.Objects {
		for _, name := range o.BuiltNames() {
			if owner, taken := built[name]; taken && owner != o.Name {
				add("object %q: name %q is already used by %q", o.Name, name, owner)
			}
			built[name] = o.Name
		}
	}
	return errors.Join(errs...)
}

// BuiltNames returns the names the scene registers for o. A flare expands
// into one billboard per count, suffixed 0, 1, ...
func (o Object) BuiltNames() []string {
	if o.Kind != KindFlare {
		return []string{o.Name}
	}
	names := make([]string, 0, o.Count)
	for i := range o.Count {
		names = append(names, o.Name+strconv.Itoa(i))
	}
	return names
}
