package terrain

import (
	"image"

	"github.com/chewxy/math32"
)

// Heightmap samples the red channel of an image as a height in [0, 1].
type Heightmap struct {
	img *image.RGBA
}

func NewHeightmap(img *image.RGBA) Heightmap {
	return Heightmap{img: img}
}

func (h Heightmap) at(x, y int) float32 {
	b := h.img.Bounds()
	x = min(max(x, 0), b.Dx()-1)
	y = min(max(y, 0), b.Dy()-1)
	return float32(h.img.Pix[h.img.PixOffset(b.Min.X+x, b.Min.Y+y)]) / 255
}

// Sample bilinearly interpolates at normalised coordinates. u runs along the
// image width and v along its height; both are clamped to [0, 1].
func (h Heightmap) Sample(u, v float32) float32 {
	b := h.img.Bounds()
	if b.Empty() {
		return 0
	}
	fx := min(max(u, 0), 1) * float32(b.Dx()-1)
	fy := min(max(v, 0), 1) * float32(b.Dy()-1)
	x0, y0 := int(math32.Floor(fx)), int(math32.Floor(fy))
	tx, ty := fx-float32(x0), fy-float32(y0)

	top := h.at(x0, y0)*(1-tx) + h.at(x0+1, y0)*tx
	bottom := h.at(x0, y0+1)*(1-tx) + h.at(x0+1, y0+1)*tx
	return top*(1-ty) + bottom*ty
}
