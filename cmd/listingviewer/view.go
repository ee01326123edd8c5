package main

import (
	"image"
	"image/color"
	"image/png"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/lutogin/listingcharts/cmd/listingviewer/uihelpers"
	"github.com/lutogin/listingcharts/src/charts"
	"github.com/lutogin/listingcharts/src/config"
	"github.com/lutogin/listingcharts/src/listings"
	"github.com/lutogin/listingcharts/src/logging"
	"github.com/lutogin/listingcharts/src/palette"
)

// chartPane is one rendered chart in the window together with the frame its hover
// overlay hit-tests against.
type chartPane struct {
	name    string
	view    charts.View
	frame   charts.Frame
	img     *canvas.Image
	overlay *hoverOverlay
}

type uiState struct {
	app    fyne.App
	window fyne.Window
	cfg    config.Config

	records []listings.Listing
	// land chart visibility; local to this window and never saved
	toggles charts.Toggles

	land  *chartPane
	price *chartPane

	subjectChk *widget.Check
	trendChk   *widget.Check

	// widthOverride fixes the chart width when there is no window (tests, headless).
	widthOverride int
}

// dark theme wrapper
type darkTheme struct{}

func (d *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}
func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

func newUIState(cfg config.Config) *uiState {
	return &uiState{
		cfg:     cfg,
		records: listings.Mock(),
		toggles: charts.DefaultToggles(),
	}
}

func runViewer(cfg config.Config) error {
	a := app.NewWithID("com.listingcharts.viewer")
	if cfg.Theme == "dark" {
		a.Settings().SetTheme(&darkTheme{})
	}
	w := a.NewWindow("Listing Charts")
	w.Resize(fyne.NewSize(float32(cfg.Width)+48, 900))

	state := newUIState(cfg)
	state.app, state.window = a, w
	// config only seeds the initial state
	state.toggles = charts.Toggles{ShowSubject: cfg.ShowSubject, ShowTrendline: cfg.ShowTrendline}

	state.land = newChartPane("land-price")
	state.price = newChartPane("price-change")

	// checkbox callbacks are assigned after the panes exist
	state.subjectChk = widget.NewCheck("Subject Property", nil)
	state.trendChk = widget.NewCheck("Trendline represents average price per acre of SOLD listings.", nil)
	state.subjectChk.SetChecked(state.toggles.ShowSubject)
	state.trendChk.SetChecked(state.toggles.ShowTrendline)
	state.subjectChk.OnChanged = func(b bool) {
		state.setToggles(charts.Toggles{ShowSubject: b, ShowTrendline: state.toggles.ShowTrendline})
	}
	state.trendChk.OnChanged = func(b bool) {
		state.setToggles(charts.Toggles{ShowSubject: state.toggles.ShowSubject, ShowTrendline: b})
	}

	legend := container.NewHBox(state.subjectChk, state.trendChk)
	content := container.NewVScroll(container.NewVBox(
		container.NewStack(state.land.img, state.land.overlay),
		legend,
		widget.NewSeparator(),
		container.NewStack(state.price.img, state.price.overlay),
	))
	w.SetContent(content)
	buildMenus(state)

	// Redraw charts on window resize so they scale with width
	prevW := int(w.Canvas().Size().Width)
	done := make(chan struct{})
	w.SetOnClosed(func() { close(done) })
	go func() {
		t := time.NewTicker(300 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				curW := int(w.Canvas().Size().Width)
				if curW != prevW {
					prevW = curW
					fyne.Do(func() { redrawCharts(state) })
				}
			}
		}
	}()

	redrawCharts(state)
	w.ShowAndRun()
	return nil
}

func newChartPane(name string) *chartPane {
	p := &chartPane{name: name}
	p.img = canvas.NewImageFromImage(blank(10, 10))
	p.img.FillMode = canvas.ImageFillContain
	p.overlay = newHoverOverlay(p)
	return p
}

// setToggles applies new land chart visibility and redraws only that chart.
func (s *uiState) setToggles(t charts.Toggles) {
	if t == s.toggles {
		return
	}
	s.toggles = t
	logging.Debugf("[viewer] toggles subject=%t trend=%t", t.ShowSubject, t.ShowTrendline)
	w, _, landH := uihelpers.ComputeChartDimensions(chartWidth(s))
	renderPane(s.land, s.landView(w, landH))
}

func (s *uiState) landView(w, h int) *charts.LandPriceView {
	// the window shows real checkboxes, so the in-image legend is left out
	return &charts.LandPriceView{Records: s.records, Width: w, Height: h, Toggles: s.toggles, Header: true}
}

func (s *uiState) priceView(w, h int) *charts.PriceChangeView {
	return &charts.PriceChangeView{Records: s.records, Width: w, Height: h, Legend: true}
}

// chartWidth follows the window width, leaving room for scrollbars and padding.
func chartWidth(s *uiState) int {
	if s.widthOverride > 0 {
		return s.widthOverride
	}
	if s.window == nil || s.window.Canvas() == nil {
		return s.cfg.Width
	}
	return int(s.window.Canvas().Size().Width*0.95) - 12
}

func redrawCharts(s *uiState) {
	defer logging.TimeTrack(time.Now(), "redraw charts")
	w, priceH, landH := uihelpers.ComputeChartDimensions(chartWidth(s))
	renderPane(s.land, s.landView(w, landH))
	renderPane(s.price, s.priceView(w, priceH))
}

// renderPane draws v into p. A failed render shows a blank placeholder so the UI still
// visibly updates.
func renderPane(p *chartPane, v charts.View) {
	if p == nil {
		return
	}
	img, fr, err := charts.Image(v)
	if err != nil {
		logging.Warnf("[viewer] %s chart render error: %v; showing blank fallback", p.name, err)
		img, fr = drawHint(blank(800, 320), "chart unavailable: "+err.Error()), charts.Frame{}
	}
	p.view, p.frame = v, fr
	if p.img != nil {
		p.img.Image = img
		b := img.Bounds()
		p.img.SetMinSize(fyne.NewSize(float32(b.Dx()), float32(b.Dy())))
		p.img.Refresh()
	}
	if p.overlay != nil {
		p.overlay.Refresh()
	}
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bg := color.RGBA{R: palette.PriceBackground.R, G: palette.PriceBackground.G, B: palette.PriceBackground.B, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, bg)
		}
	}
	return img
}

// menus and dialogs
func buildMenus(s *uiState) {
	if s == nil || s.window == nil {
		return
	}
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Export Land Price Chart…", func() { exportChartPNG(s, s.land, "land_price.png") }),
		fyne.NewMenuItem("Export Price Change Chart…", func() { exportChartPNG(s, s.price, "price_change.png") }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { s.window.Close() }),
	)
	s.window.SetMainMenu(fyne.NewMainMenu(fileMenu))
}

// export PNG
func exportChartPNG(s *uiState, p *chartPane, defaultName string) {
	if p == nil || p.img == nil || p.img.Image == nil {
		dialog.ShowInformation("Export", "No chart to export.", s.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, p.img.Image); err != nil {
			logging.Errorf("[viewer] export %s: %v", defaultName, err)
			dialog.ShowError(err, s.window)
			return
		}
		logging.Infof("[viewer] exported %s to %s", p.name, wc.URI())
	}, s.window)
	fs.SetFileName(defaultName)
	fs.Show()
}
