package uihelpers

// ComputeChartDimensions applies the width clamp used for both charts and derives the
// price-change and land-price plot heights from it. Heights keep the 900:480 and
// 900:420 proportions of the reference layout.
func ComputeChartDimensions(rawW int) (w, priceH, landH int) {
	w = rawW
	if w < 640 {
		w = 640
	}
	if w > 1600 {
		w = 1600
	}
	priceH = clamp(w*480/900, 320, 640)
	landH = clamp(w*420/900, 280, 560)
	return w, priceH, landH
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ContainRect describes where an image of size imgW x imgH lands when drawn with
// "contain" fitting into a view of viewW x viewH: centred and uniformly scaled.
type ContainRect struct {
	X, Y, W, H float32
	Scale      float32
}

// ComputeContainRect returns the drawn rectangle. A degenerate image or view yields
// the full view at scale 1.
func ComputeContainRect(imgW, imgH, viewW, viewH float32) ContainRect {
	if imgW <= 0 || imgH <= 0 || viewW <= 0 || viewH <= 0 {
		return ContainRect{W: viewW, H: viewH, Scale: 1}
	}
	scale := viewW / imgW
	if sy := viewH / imgH; sy < scale {
		scale = sy
	}
	w, h := imgW*scale, imgH*scale
	return ContainRect{X: (viewW - w) / 2, Y: (viewH - h) / 2, W: w, H: h, Scale: scale}
}

// Contains reports whether a view-space point falls on the drawn image.
func (c ContainRect) Contains(x, y float32) bool {
	return x >= c.X && x <= c.X+c.W && y >= c.Y && y <= c.Y+c.H
}

// ViewToImage maps a view-space point to image pixels.
func (c ContainRect) ViewToImage(x, y float32) (float64, float64) {
	if c.Scale == 0 {
		return float64(x), float64(y)
	}
	return float64((x - c.X) / c.Scale), float64((y - c.Y) / c.Scale)
}

// ImageToView maps image pixels to view space.
func (c ContainRect) ImageToView(x, y float64) (float32, float32) {
	return c.X + float32(x)*c.Scale, c.Y + float32(y)*c.Scale
}

// PlaceTooltip keeps a w x h panel offset from the cursor and inside the view, flipping
// to the other side of the cursor when it would overflow.
func PlaceTooltip(cursorX, cursorY, w, h, viewW, viewH float32) (float32, float32) {
	const offset = 12
	x, y := cursorX+offset, cursorY+offset
	if x+w > viewW {
		x = cursorX - offset - w
	}
	if y+h > viewH {
		y = cursorY - offset - h
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}
