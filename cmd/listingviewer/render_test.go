package main

import (
	"image"
	_ "image/png" // register PNG decoder
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/lutogin/listingcharts/src/charts"
	"github.com/lutogin/listingcharts/src/config"
)

func TestRunRenderMode_WritesEveryChartAndFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Width, cfg.Height, cfg.LandHeight = 700, 360, 320
	outDir := filepath.Join(t.TempDir(), "nested", "out")

	written, err := RunRenderMode(cfg, outDir, []charts.Format{charts.FormatPNG, charts.FormatSVG}, charts.DefaultToggles())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var names []string
	for _, p := range written {
		names = append(names, filepath.Base(p))
	}
	sort.Strings(names)
	want := []string{"land_price.png", "land_price.svg", "price_change.png", "price_change.svg"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("written %v want %v", names, want)
	}

	f, err := os.Open(filepath.Join(outDir, "price_change.png"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 700 {
		t.Fatalf("png width %d want 700", img.Bounds().Dx())
	}

	svg, err := os.ReadFile(filepath.Join(outDir, "land_price.svg"))
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !strings.Contains(string(svg), "Subject Property") {
		t.Fatalf("exported land chart should carry its legend")
	}
}

func TestParseFormats(t *testing.T) {
	fs, err := parseFormats([]string{"PNG", "svg", "png"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(fs) != 2 || fs[0] != charts.FormatPNG || fs[1] != charts.FormatSVG {
		t.Fatalf("unexpected formats %v", fs)
	}
	if _, err := parseFormats([]string{"jpg"}); err == nil {
		t.Fatalf("expected error for jpg")
	}
	if _, err := parseFormats(nil); err == nil {
		t.Fatalf("expected error for empty list")
	}
}

func TestResolveToggles_FlagsOverrideConfigOnlyWhenSet(t *testing.T) {
	cfg := config.Default()
	cfg.ShowSubject = false

	var flags charts.Toggles
	fs := pflag.NewFlagSet("render", pflag.ContinueOnError)
	addToggleFlags(fs, &flags)
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := resolveToggles(fs, flags, cfg); got != (charts.Toggles{ShowSubject: false, ShowTrendline: true}) {
		t.Fatalf("unset flags should keep config values, got %+v", got)
	}

	fs = pflag.NewFlagSet("render", pflag.ContinueOnError)
	addToggleFlags(fs, &flags)
	if err := fs.Parse([]string{"--subject", "--trend=false"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := resolveToggles(fs, flags, cfg); got != (charts.Toggles{ShowSubject: true, ShowTrendline: false}) {
		t.Fatalf("explicit flags should win, got %+v", got)
	}
}
