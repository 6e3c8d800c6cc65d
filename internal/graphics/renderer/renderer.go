package renderer

import (
	"errors"
	"fmt"

	"glade/internal/gpu"
	"glade/internal/profiling"
)

// Renderer draws an ordered list of passes.
type Renderer struct {
	passes []*Pass
}

// NewRenderer validates that the passes are in layer order.
func NewRenderer(passes ...*Pass) (*Renderer, error) {
	for i := 1; i < len(passes); i++ {
		if passes[i].Layer < passes[i-1].Layer {
			return nil, fmt.Errorf("pass %q (%s) is ordered after %q (%s)",
				passes[i].Name, passes[i].Layer, passes[i-1].Name, passes[i-1].Layer)
		}
	}
	return &Renderer{passes: passes}, nil
}

// Pass returns the named pass, or nil.
func (r *Renderer) Pass(name string) *Pass {
	for _, p := range r.passes {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func (r *Renderer) Passes() []*Pass { return r.passes }

// Render executes every pass in order and stops at the first failure.
func (r *Renderer) Render(ctx gpu.Context) error {
	for _, p := range r.passes {
		if err := r.renderPass(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderPass(ctx gpu.Context, p *Pass) error {
	defer profiling.Track("renderer.pass." + p.Name)()

	if p.Begin != nil {
		if err := p.Begin(ctx); err != nil {
			return fmt.Errorf("pass %s: %w", p.Name, err)
		}
	}
	if p.End != nil {
		defer p.End(ctx)
	}

	repeat := max(p.Repeat, 1)
	for i := 0; i < repeat; i++ {
		if p.Prepare != nil {
			if err := p.Prepare(ctx, i); err != nil {
				return fmt.Errorf("pass %s: %w", p.Name, err)
			}
		}
		for _, item := range p.Items {
			if err := item.Render(ctx); err != nil {
				return fmt.Errorf("pass %s: render %s: %w", p.Name, item.Name(), err)
			}
		}
	}
	return nil
}

// UpdateAll runs Update on every item and joins the failures.
func UpdateAll(ctx gpu.Context, items []Renderable) error {
	var errs []error
	for _, item := range items {
		if err := item.Update(ctx); err != nil {
			errs = append(errs, fmt.Errorf("update %s: %w", item.Name(), err))
		}
	}
	return errors.Join(errs...)
}
