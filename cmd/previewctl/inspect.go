package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"datapreview/internal/config"
	"datapreview/internal/errors"
	"datapreview/internal/i18n"
	"datapreview/ui/chart"
	"datapreview/ui/render"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"
)

func newBindingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bindings [page.html]",
		Short: "List the preview triggers of an HTML page",
		Long: `List every element of the page that opens a preview dialog, with the file it
previews and whether its content container exists.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			found, err := render.DiscoverBindings(f)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FILE\tMODAL\tCONTAINER\tFOUND")
			for _, b := range found {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", b.FileID, b.ModalTarget(), b.ContainerSelector(), b.HasContainer)
			}
			return w.Flush()
		},
	}
}

func newChartCmd() *cobra.Command {
	var output, pngPath string

	cmd := &cobra.Command{
		Use:   "chart [page.html]",
		Short: "Add the statistics chart to a saved page",
		Long: `Append the mean vs median chart after the first statistics table of the
page. A page without a statistics table is written back unchanged.

Example: previewctl chart stats.html -o stats-chart.html --png stats.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			loc := i18n.New(config.LoadLocal().UI.Language)

			if pngPath != "" {
				if err := writePNG(args[0], pngPath, loc); err != nil {
					return err
				}
			}

			out, err := chart.InitCharts(page, loc)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			return os.WriteFile(output, out, 0o644)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the page here instead of stdout")
	cmd.Flags().StringVar(&pngPath, "png", "", "Also draw the chart as a PNG image")
	return cmd
}

func writePNG(pagePath, pngPath string, loc *i18n.Localizer) error {
	f, err := os.Open(pagePath)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return err
	}
	series, ok := chart.Extract(doc)
	if !ok {
		return errors.NotFound("statistics table in " + pagePath)
	}

	out, err := os.Create(pngPath)
	if err != nil {
		return err
	}
	defer out.Close()
	return chart.RenderPNG(series, out, loc)
}
