package config

func extended(name, shader string) Effect {
	return Effect{
		Name:         name,
		VertexShader: "shaders/" + shader + ".vert",
		PixelShader:  "shaders/" + shader + ".frag",
		Layout:       "extended",
	}
}

func cubeFaces(dir string) []string {
	faces := make([]string, 0, 6)
	for _, f := range []string{"px", "nx", "py", "ny", "pz", "nz"} {
		faces = append(faces, dir+"/"+f+".png")
	}
	return faces
}

func uniform(s float32) [3]float32 {
	return [3]float32{s, s, s}
}

func tree(name string, x, z float32) Object {
	return Object{
		Name:      name,
		Kind:      KindModel,
		Layer:     "terrain",
		Effect:    "tree",
		Textures:  []string{"tree"},
		Material:  "white",
		Mesh:      "models/tree.obj",
		Transform: Transform{Scale: uniform(1), Translate: [3]float32{x, 0, z}},
		Ground:    &Ground{Terrain: "grass", At: [2]float32{x, z}},
	}
}

// Default returns the demo scene: a skybox, a grassy terrain with water and
// trees, static and animated meshes, fire and smoke, and a ring of sun flares.
func Default() *Scene {
	skybox := extended("sky-box", "sky_box")
	skybox.Depth = "less-equal"
	skybox.Raster = "no-cull"

	grass := extended("grass", "grass")
	grass.Blend = "alpha-to-coverage"

	treeEffect := extended("tree", "tree")
	treeEffect.Blend = "alpha-to-coverage"

	fire := Effect{
		Name: "fire", VertexShader: "shaders/fire.vert", PixelShader: "shaders/fire.frag",
		Layout: "particle", Blend: "alpha", Depth: "read-only",
	}
	smoke := fire
	smoke.Name = "smoke"

	return &Scene{
		AssetsDir: "assets",
		Window:    Window{Title: "glade", Width: 1280, Height: 720},
		Log:       Log{Level: "info"},
		Clock:     Clock{StatsDelay: 3, ReportInterval: 5},
		Camera: Camera{
			Kind:         CameraFirstPerson,
			Position:     [3]float32{15, 2, -5},
			Up:           [3]float32{0, 1, 0},
			Direction:    [3]float32{0.8, 0, -1},
			Target:       [3]float32{0, 0, 0},
			Turn:         1.25,
			FOV:          45,
			Near:         0.1,
			Far:          5000,
			GroundOffset: 2,
		},
		Light: Light{
			Vector:   [4]float32{-5, 2, 5, 1},
			Ambient:  [4]float32{0.2, 0.2, 0.2, 1},
			Diffuse:  [4]float32{0.7, 0.7, 0.7, 1},
			Specular: [4]float32{1, 1, 1, 1},
		},
		Wind:        [4]float32{1, 0, 0, 1},
		Grass:       Grass{Terrain: "grass", Length: 0.01, Passes: 80},
		ClearColour: [4]float32{0, 0, 1, 1},
		Seed:        1,
		Materials: map[string]Material{
			"white": {
				Ambient:  [4]float32{1, 1, 1, 1},
				Diffuse:  [4]float32{1, 1, 1, 1},
				Specular: [3]float32{0.2, 0.2, 0.2},
				Power:    0.01,
			},
			"gloss-red": {
				Ambient:  [4]float32{1, 0, 0, 1},
				Diffuse:  [4]float32{1, 0, 0, 1},
				Specular: [3]float32{1, 1, 1},
				Power:    32,
			},
		},
		Effects: []Effect{
			{Name: "basic-colour", VertexShader: "shaders/basic_colour.vert", PixelShader: "shaders/basic_colour.frag", Layout: "basic"},
			extended("basic-lighting", "basic_lighting"),
			extended("per-pixel-lighting", "per_pixel_lighting"),
			skybox,
			extended("reflection-mapping", "reflection_map"),
			extended("ocean", "ocean"),
			grass,
			treeEffect,
			fire,
			smoke,
			{Name: "flare", VertexShader: "shaders/flare.vert", PixelShader: "shaders/flare.frag", Layout: "flare", Blend: "additive"},
		},
		Textures: []Texture{
			{Name: "heightmap", Path: "textures/heightmap.bmp", KeepImage: true},
			{Name: "normalmap", Path: "textures/normalmap.bmp"},
			{Name: "environment", Faces: cubeFaces("textures/grassenv")},
			{Name: "waves", Path: "textures/waves.png"},
			{Name: "shark", Path: "textures/greatwhiteshark.png"},
			{Name: "castle", Path: "textures/castle.jpg"},
			{Name: "grass-alpha", Path: "textures/grassAlpha.tif"},
			{Name: "grass", Path: "textures/grass.png"},
			{Name: "tree", Path: "textures/tree.tif"},
			{Name: "brick", Path: "textures/brick_diffuse.jpg"},
			{Name: "knight", Path: "textures/knight.jpg"},
			{Name: "fire", Path: "textures/fire.tif"},
			{Name: "smoke", Path: "textures/smoke.tif"},
			{Name: "flare-divine", Path: "textures/flares/divine.png"},
			{Name: "flare-ring", Path: "textures/flares/extendring.png"},
		},
		Objects: []Object{
			{
				Name: "sky", Kind: KindBox, Layer: "background", Effect: "sky-box",
				Textures:  []string{"environment"},
				Transform: Transform{Scale: uniform(1000)},
			},
			{
				Name: "orb0", Kind: KindModel, Layer: "opaque", Effect: "reflection-mapping",
				Textures: []string{"environment"}, Material: "gloss-red", Mesh: "models/sphere.obj",
				Transform: Transform{Scale: uniform(2), Translate: [3]float32{-8, 0, 0}},
			},
			{
				Name: "knight", Kind: KindModel, Layer: "opaque", Effect: "per-pixel-lighting",
				Textures: []string{"knight"}, Material: "white", Mesh: "models/knight.obj",
				Transform: Transform{Scale: uniform(0.02), Translate: [3]float32{2, -0.75, 0}},
				Sync:      true,
			},
			{
				Name: "water", Kind: KindGrid, Layer: "opaque", Effect: "ocean",
				Textures: []string{"waves", "environment"}, Width: 32, Depth: 30,
				Transform: Transform{Scale: uniform(1), Translate: [3]float32{-25, 0, -15}},
				Ground:    &Ground{Terrain: "grass", At: [2]float32{5, 5}, Offset: 0.01},
				Sync:      true,
			},
			{
				Name: "castle", Kind: KindModel, Layer: "opaque", Effect: "per-pixel-lighting",
				Textures: []string{"castle"}, Material: "white", Mesh: "models/castle.obj",
				Transform: Transform{Scale: uniform(10), RotateY: 90, Translate: [3]float32{-10, 0, 20}},
			},
			{
				Name: "grass", Kind: KindTerrain, Layer: "terrain", Effect: "grass",
				Textures: []string{"grass-alpha", "grass", "normalmap"}, Width: 100, Depth: 100,
				Heightmap: "heightmap",
				Transform: Transform{Scale: [3]float32{1, 2, 1}, Translate: [3]float32{-50, 0, -50}},
			},
			tree("tree0", -30, 10),
			tree("tree1", -20, 10),
			tree("tree2", -30, 20),
			{
				Name: "orb1", Kind: KindModel, Layer: "dynamic", Effect: "per-pixel-lighting",
				Textures: []string{"brick"}, Material: "white", Mesh: "models/sphere.obj",
				Transform: Transform{Scale: uniform(0.5), Translate: [3]float32{-8, 3, 0}},
				Animate:   &Animation{Axis: "z", Rate: 1},
			},
			{
				Name: "shark", Kind: KindModel, Layer: "dynamic", Effect: "tree",
				Textures: []string{"shark"}, Material: "white", Mesh: "models/shark.obj",
				Transform: Transform{Scale: uniform(0.25), Translate: [3]float32{-5, -0.75, 0}},
				Animate:   &Animation{Axis: "y", Rate: 0.5},
			},
			{
				Name: "fire", Kind: KindParticles, Layer: "transparent", Effect: "fire",
				Textures: []string{"fire"}, Count: 200, Size: 0.5,
				Transform: Transform{Scale: uniform(1), Translate: [3]float32{10, 1, 0}},
				Sync:      true,
			},
			{
				Name: "smoke", Kind: KindParticles, Layer: "transparent", Effect: "smoke",
				Textures: []string{"smoke"}, Count: 100, Size: 1,
				Transform: Transform{Scale: uniform(1), Translate: [3]float32{10, 1.5, 0}},
				Sync:      true,
			},
			{
				Name: "sun", Kind: KindFlare, Layer: "flare", Effect: "flare",
				Textures: []string{"flare-divine", "flare-ring"}, Count: 6, Size: 10,
				Transform: Transform{Scale: uniform(1), Translate: [3]float32{-125, 60, 70}},
			},
		},
	}
}
