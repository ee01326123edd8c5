package server

import (
	"html/template"
	"net/http"
	"net/url"

	"github.com/lutogin/listingcharts/src/charts"
	"github.com/lutogin/listingcharts/src/logging"
	"github.com/lutogin/listingcharts/src/palette"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Listing charts</title>
<style>
body { font-family: system-ui, sans-serif; margin: 0; padding: 24px; background: {{.Background}}; color: {{.Text}}; }
.card { max-width: {{.Width}}px; margin: 0 0 32px; }
.card img { display: block; width: 100%; height: auto; }
form { display: flex; gap: 24px; align-items: center; margin-top: 12px; }
label { display: flex; gap: 8px; align-items: center; cursor: pointer; font-size: 14px; }
input[type=checkbox] { accent-color: {{.Accent}}; }
</style>
</head>
<body>
<div class="card">
  <img src="{{.LandSrc}}" alt="Land price per acre">
  <form method="get" action="/">
    <input type="hidden" name="set" value="1">
    <label><input type="checkbox" name="subject" value="1" onchange="this.form.submit()"{{if .Toggles.ShowSubject}} checked{{end}}>Subject Property</label>
    <label><input type="checkbox" name="trend" value="1" onchange="this.form.submit()"{{if .Toggles.ShowTrendline}} checked{{end}}>Trendline</label>
    <noscript><button type="submit">Apply</button></noscript>
  </form>
</div>
<div class="card">
  <img src="{{.PriceSrc}}" alt="Price change over days on market">
</div>
</body>
</html>
`))

type indexData struct {
	Width      int
	Background string
	Text       string
	Accent     string
	Toggles    charts.Toggles
	LandSrc    string
	PriceSrc   string
}

// pageToggles reads the host page form. A submitted form (set=1) reports unchecked boxes
// by leaving them out, so absence means off; otherwise query flags apply as on the chart
// endpoints.
func (s *Server) pageToggles(r *http.Request) charts.Toggles {
	q := r.URL.Query()
	if q.Get("set") == "1" {
		return charts.Toggles{ShowSubject: q.Has("subject"), ShowTrendline: q.Has("trend")}
	}
	return s.toggles(r)
}

func boolParam(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	t := s.pageToggles(r)
	q := url.Values{}
	q.Set("subject", boolParam(t.ShowSubject))
	q.Set("trend", boolParam(t.ShowTrendline))

	data := indexData{
		Width:      s.cfg.Width,
		Background: palette.Hex(palette.PriceBackground),
		Text:       palette.Hex(palette.Text),
		Accent:     palette.Hex(palette.SubjectBorder),
		Toggles:    t,
		LandSrc:    "/charts/land-price.svg?" + q.Encode(),
		PriceSrc:   "/charts/price-change.svg",
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		logging.Warnf("[server] %s: index template: %v", requestID(r), err)
	}
}
