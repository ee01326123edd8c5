package main

import (
	"image/color"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/lutogin/listingcharts/cmd/listingviewer/uihelpers"
	"github.com/lutogin/listingcharts/src/charts"
	"github.com/lutogin/listingcharts/src/palette"
)

// maxTooltipLines covers the title, three value rows and the optional note.
const maxTooltipLines = 5

// hoverOverlay sits on top of a chart image, hit-tests the cursor against the markers of
// the last render and shows the tooltip panel for the one under it.
type hoverOverlay struct {
	widget.BaseWidget
	pane     *chartPane
	mouse    fyne.Position
	hovering bool
}

func newHoverOverlay(p *chartPane) *hoverOverlay {
	h := &hoverOverlay{pane: p}
	h.ExtendBaseWidget(h)
	return h
}

// pick maps a position in overlay space (of the given size) onto the rendered image and
// returns the marker under it together with the contain rect used.
func (h *hoverOverlay) pick(pos fyne.Position, size fyne.Size) (charts.Marker, uihelpers.ContainRect, bool) {
	var rect uihelpers.ContainRect
	if h.pane == nil || h.pane.img == nil || h.pane.img.Image == nil {
		return charts.Marker{}, rect, false
	}
	b := h.pane.img.Image.Bounds()
	rect = uihelpers.ComputeContainRect(float32(b.Dx()), float32(b.Dy()), size.Width, size.Height)
	if !rect.Contains(pos.X, pos.Y) {
		return charts.Marker{}, rect, false
	}
	ix, iy := rect.ViewToImage(pos.X, pos.Y)
	m, ok := h.pane.frame.HitTest(ix, iy)
	return m, rect, ok
}

func nrgba(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func (h *hoverOverlay) CreateRenderer() fyne.WidgetRenderer {
	// background to ensure full hit-area for hover events
	bg := canvas.NewRectangle(color.NRGBA{})
	ring := canvas.NewCircle(color.NRGBA{})
	ring.StrokeWidth = 2
	panel := canvas.NewRectangle(nrgba(palette.White))
	panel.StrokeColor = nrgba(palette.TooltipBorder)
	panel.StrokeWidth = 1
	panel.CornerRadius = 8
	objs := []fyne.CanvasObject{bg, ring, panel}
	r := &hoverRenderer{h: h, bg: bg, ring: ring, panel: panel}
	for i := 0; i < maxTooltipLines; i++ {
		t := canvas.NewText("", nrgba(palette.Text))
		t.TextSize = 13
		r.lines = append(r.lines, t)
		objs = append(objs, t)
	}
	r.lines[0].TextStyle = fyne.TextStyle{Bold: true}
	r.objs = objs
	return r
}

type hoverRenderer struct {
	h     *hoverOverlay
	bg    *canvas.Rectangle
	ring  *canvas.Circle
	panel *canvas.Rectangle
	lines []*canvas.Text
	objs  []fyne.CanvasObject
}

func (r *hoverRenderer) Destroy() {}

func (r *hoverRenderer) hide() {
	off := fyne.NewPos(-1000, -1000)
	r.ring.Move(off)
	r.panel.Resize(fyne.NewSize(0, 0))
	r.panel.Move(off)
	for _, t := range r.lines {
		t.Text = ""
		t.Move(off)
	}
}

func (r *hoverRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
	if !r.h.hovering {
		r.hide()
		return
	}
	m, rect, ok := r.h.pick(r.h.mouse, size)
	if !ok || r.h.pane.view == nil {
		r.hide()
		return
	}
	tip := r.h.pane.view.Tooltip(m)

	// ring around the hovered marker
	cx, cy := rect.ImageToView(m.X, m.Y)
	rad := float32(m.Radius+3) * rect.Scale
	r.ring.StrokeColor = nrgba(tip.TitleColor)
	r.ring.Resize(fyne.NewSize(2*rad, 2*rad))
	r.ring.Move(fyne.NewPos(cx-rad, cy-rad))

	text := tip.Text()
	const pad, gap = float32(12), float32(4)
	var w, hgt float32
	for i, t := range r.lines {
		if i >= len(text) {
			t.Text = ""
			continue
		}
		t.Text = text[i]
		t.Color = nrgba(palette.Text)
		if i == len(text)-1 && tip.Note != "" {
			t.Color = nrgba(palette.Neutral)
		}
		ms := t.MinSize()
		if ms.Width > w {
			w = ms.Width
		}
		hgt += ms.Height + gap
	}
	r.lines[0].Color = nrgba(tip.TitleColor)
	w += 2 * pad
	hgt += 2*pad - gap

	px, py := uihelpers.PlaceTooltip(r.h.mouse.X, r.h.mouse.Y, w, hgt, size.Width, size.Height)
	r.panel.Resize(fyne.NewSize(w, hgt))
	r.panel.Move(fyne.NewPos(px, py))
	y := py + pad
	for _, t := range r.lines {
		if t.Text == "" {
			t.Move(fyne.NewPos(-1000, -1000))
			continue
		}
		t.Move(fyne.NewPos(px+pad, y))
		y += t.MinSize().Height + gap
	}
}

func (r *hoverRenderer) MinSize() fyne.Size           { return fyne.NewSize(10, 10) }
func (r *hoverRenderer) Objects() []fyne.CanvasObject { return r.objs }

func (r *hoverRenderer) Refresh() {
	r.Layout(r.h.Size())
	for _, o := range r.objs {
		o.Refresh()
	}
}

func (h *hoverOverlay) MouseMoved(ev *desktop.MouseEvent) {
	h.hovering = true
	h.mouse = ev.Position
	h.Refresh()
}
func (h *hoverOverlay) MouseIn(ev *desktop.MouseEvent) {
	h.hovering = true
	h.mouse = ev.Position
	h.Refresh()
}
func (h *hoverOverlay) MouseOut() { h.hovering = false; h.Refresh() }

var _ desktop.Hoverable = (*hoverOverlay)(nil)
