package gpu

// Blend is a blend factor.
type Blend uint8

const (
	BlendZero Blend = iota
	BlendOne
	BlendSrcAlpha
	BlendInvSrcAlpha
	BlendSrcColour
	BlendInvSrcColour
)

// BlendDesc describes render target 0 blending.
type BlendDesc struct {
	AlphaToCoverage bool
	Enable          bool
	Src             Blend
	Dest            Blend
}

// DefaultBlendDesc is opaque output: no blending, no alpha to coverage.
func DefaultBlendDesc() BlendDesc {
	return BlendDesc{Src: BlendOne, Dest: BlendZero}
}

// Comparison is a depth test function.
type Comparison uint8

const (
	CompareNever Comparison = iota
	CompareLess
	CompareLessEqual
	CompareEqual
	CompareGreater
	CompareAlways
)

// DepthStencilDesc describes depth testing. Stencil is never used by the scene
// and only carried so backends can clear it.
type DepthStencilDesc struct {
	DepthEnable   bool
	DepthWrite    bool
	DepthFunc     Comparison
	StencilEnable bool
}

// DefaultDepthStencilDesc tests and writes depth with a less-than comparison.
func DefaultDepthStencilDesc() DepthStencilDesc {
	return DepthStencilDesc{DepthEnable: true, DepthWrite: true, DepthFunc: CompareLess}
}

type CullMode uint8

const (
	CullNone CullMode = iota
	CullFront
	CullBack
)

type FillMode uint8

const (
	FillSolid FillMode = iota
	FillWireframe
)

// RasterizerDesc describes primitive rasterization.
type RasterizerDesc struct {
	Fill                  FillMode
	Cull                  CullMode
	FrontCounterClockwise bool
}

// DefaultRasterizerDesc culls back faces of counter-clockwise wound geometry.
func DefaultRasterizerDesc() RasterizerDesc {
	return RasterizerDesc{Fill: FillSolid, Cull: CullBack, FrontCounterClockwise: true}
}
