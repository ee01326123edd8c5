package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lutogin/listingcharts/src/charts"
	"github.com/lutogin/listingcharts/src/config"
	"github.com/lutogin/listingcharts/src/logging"
)

func newRenderCmd(c *cli) *cobra.Command {
	var (
		outDir  string
		formats []string
		toggles charts.Toggles
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Export both charts headlessly",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg
			if outDir != "" {
				cfg.OutDir = outDir
			}
			if len(formats) > 0 {
				cfg.Formats = formats
			}
			fs, err := parseFormats(cfg.Formats)
			if err != nil {
				return err
			}
			t := resolveToggles(cmd.Flags(), toggles, cfg)
			written, err := RunRenderMode(cfg, cfg.OutDir, fs, t)
			for _, p := range written {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (overrides config)")
	cmd.Flags().StringSliceVar(&formats, "format", nil, "png and/or svg (overrides config)")
	addToggleFlags(cmd.Flags(), &toggles)
	return cmd
}

func parseFormats(in []string) ([]charts.Format, error) {
	seen := map[charts.Format]bool{}
	var out []charts.Format
	for _, s := range in {
		f, err := charts.ParseFormat(s)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no output format given")
	}
	return out, nil
}

// exportViews returns the charts as exported files show them: land price first, both
// with their in-image legends.
func exportViews(cfg config.Config, t charts.Toggles) []charts.View {
	return []charts.View{
		charts.NewLandPriceView(cfg.Width, cfg.LandHeight, t),
		charts.NewPriceChangeView(cfg.Width, cfg.Height),
	}
}

// RunRenderMode renders every chart in every format under outDir and returns the paths
// written. It runs without creating a window.
func RunRenderMode(cfg config.Config, outDir string, formats []charts.Format, t charts.Toggles) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create out dir: %w", err)
	}
	var written []string
	for _, v := range exportViews(cfg, t) {
		for _, f := range formats {
			var buf bytes.Buffer
			if _, err := charts.Render(v, f, &buf); err != nil {
				return written, err
			}
			name := strings.ReplaceAll(v.Name(), "-", "_") + "." + string(f)
			outPath := filepath.Join(outDir, name)
			if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
				return written, fmt.Errorf("write %s: %w", outPath, err)
			}
			logging.Infof("[render] wrote %s (%d bytes)", outPath, buf.Len())
			written = append(written, outPath)
		}
	}
	return written, nil
}
