package renderer_test

import (
	"errors"
	"testing"

	"glade/internal/gpu"
	"glade/internal/gpu/gputest"
	"glade/internal/graphics/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spy records into a shared log instead of touching the context.
type spy struct {
	name      string
	log       *[]string
	world     mgl32.Mat4
	renderErr error
	updateErr error
}

func (s *spy) Name() string                 { return s.name }
func (s *spy) SetWorldMatrix(m mgl32.Mat4)  { s.world = m }
func (s *spy) WorldMatrix() mgl32.Mat4      { return s.world }
func (s *spy) Dispose()                     {}
func (s *spy) Update(ctx gpu.Context) error { return s.updateErr }
func (s *spy) Render(ctx gpu.Context) error {
	*s.log = append(*s.log, s.name)
	return s.renderErr
}

func TestLayerNames(t *testing.T) {
	for l := renderer.Background; l <= renderer.Flare; l++ {
		got, ok := renderer.ParseLayer(l.String())
		require.True(t, ok)
		assert.Equal(t, l, got)
	}
	_, ok := renderer.ParseLayer("overlay")
	assert.False(t, ok)
	assert.Equal(t, "unknown", renderer.Layer(42).String())
}

func TestNewRendererRejectsOutOfOrderPasses(t *testing.T) {
	_, err := renderer.NewRenderer(
		&renderer.Pass{Name: "opaque", Layer: renderer.Opaque},
		&renderer.Pass{Name: "sky", Layer: renderer.Background},
	)
	assert.ErrorContains(t, err, `pass "sky"`)

	r, err := renderer.NewRenderer(
		&renderer.Pass{Name: "a", Layer: renderer.Opaque},
		&renderer.Pass{Name: "b", Layer: renderer.Opaque},
		&renderer.Pass{Name: "c", Layer: renderer.Flare},
	)
	require.NoError(t, err)
	assert.Len(t, r.Passes(), 3)
	assert.Equal(t, "b", r.Pass("b").Name)
	assert.Nil(t, r.Pass("missing"))
}

func TestRenderDrawsPassesInOrder(t *testing.T) {
	var log []string
	r, err := renderer.NewRenderer(
		&renderer.Pass{Name: "bg", Layer: renderer.Background, Items: []renderer.Renderable{&spy{name: "sky", log: &log}}},
		&renderer.Pass{Name: "opaque", Layer: renderer.Opaque, Items: []renderer.Renderable{
			&spy{name: "orb", log: &log},
			&spy{name: "knight", log: &log},
		}},
	)
	require.NoError(t, err)
	require.NoError(t, r.Render(gputest.NewContext()))
	assert.Equal(t, []string{"sky", "orb", "knight"}, log)
}

func TestRepeatRunsPrepareBeforeEachRepetition(t *testing.T) {
	var log []string
	pass := &renderer.Pass{
		Name:   "foliage",
		Layer:  renderer.Terrain,
		Items:  []renderer.Renderable{&spy{name: "grass", log: &log}},
		Repeat: 3,
		Prepare: func(ctx gpu.Context, i int) error {
			log = append(log, "prepare", string(rune('0'+i)))
			return nil
		},
	}
	r, err := renderer.NewRenderer(pass)
	require.NoError(t, err)
	require.NoError(t, r.Render(gputest.NewContext()))
	assert.Equal(t, []string{"prepare", "0", "grass", "prepare", "1", "grass", "prepare", "2", "grass"}, log)
}

func TestEndRunsWhenADrawFails(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	r, err := renderer.NewRenderer(
		&renderer.Pass{
			Name:  "flares",
			Layer: renderer.Flare,
			Items: []renderer.Renderable{&spy{name: "sun0", log: &log, renderErr: boom}, &spy{name: "sun1", log: &log}},
			Begin: func(ctx gpu.Context) error { log = append(log, "begin"); return nil },
			End:   func(ctx gpu.Context) { log = append(log, "end") },
		},
	)
	require.NoError(t, err)

	err = r.Render(gputest.NewContext())
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "render sun0")
	assert.Equal(t, []string{"begin", "sun0", "end"}, log)
}

func TestFailedBeginSkipsPass(t *testing.T) {
	var log []string
	r, err := renderer.NewRenderer(
		&renderer.Pass{
			Name:  "flares",
			Layer: renderer.Flare,
			Items: []renderer.Renderable{&spy{name: "sun0", log: &log}},
			Begin: func(ctx gpu.Context) error { return errors.New("no depth") },
			End:   func(ctx gpu.Context) { log = append(log, "end") },
		},
	)
	require.NoError(t, err)
	assert.Error(t, r.Render(gputest.NewContext()))
	assert.Empty(t, log)
}

func TestUpdateAllJoinsFailures(t *testing.T) {
	var log []string
	first, second := errors.New("first"), errors.New("second")
	err := renderer.UpdateAll(gputest.NewContext(), []renderer.Renderable{
		&spy{name: "a", log: &log, updateErr: first},
		&spy{name: "b", log: &log},
		&spy{name: "c", log: &log, updateErr: second},
	})
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
	assert.NoError(t, renderer.UpdateAll(gputest.NewContext(), nil))
}
