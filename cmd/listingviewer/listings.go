package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lutogin/listingcharts/src/charts"
	"github.com/lutogin/listingcharts/src/listings"
)

func newListingsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "listings",
		Short: "Print the listing dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ls := listings.Mock()
			if err := listings.Validate(ls); err != nil {
				return fmt.Errorf("dataset: %w", err)
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(ls)
			}
			return writeListingsTable(cmd.OutOrStdout(), ls)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func writeListingsTable(w io.Writer, ls []listings.Listing) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ID\tSTATUS\tDAYS\tORIGINAL\tCURRENT\tCHANGE\tACRES\tPRICE\tPER ACRE\t")
	for _, l := range ls {
		id := fmt.Sprint(l.ID)
		if l.IsSubject {
			id += "*"
		}
		change := "-"
		if d := l.PriceChange(); d != 0 {
			change = charts.FormatPrice(d)
		}
		fmt.Fprintf(tw, "%s\t%s\t%.0f\t%s\t%s\t%s\t%.3f\t%s\t%s\t\n",
			id, l.Status.Label(), l.Days,
			charts.FormatPrice(l.OriginalPrice), charts.FormatPrice(l.CurrentPrice), change,
			l.Acres, charts.FormatPrice(l.Price), charts.FormatDollars(l.PricePerAcre()))
	}
	counts := listings.CountByStatus(ls)
	fmt.Fprintf(tw, "\n%d listings\tsold %d\tactive %d\tpending %d\t\n",
		len(ls), counts[listings.StatusSold], counts[listings.StatusActive], counts[listings.StatusPending])
	return tw.Flush()
}
