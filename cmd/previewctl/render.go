package main

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"text/tabwriter"

	"datapreview/app"
	"datapreview/domain/preview"
	"datapreview/internal/config"
	"datapreview/internal/container"
	"datapreview/ui/render"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type renderResult struct {
	fileID  string
	outcome string
	path    string
}

func newRenderCmd() *cobra.Command {
	var outDir string
	var all, workbook bool

	cmd := &cobra.Command{
		Use:   "render [file-ids...]",
		Short: "Render previews to HTML files",
		Long: `Render the preview container of each file to <out>/<id>.html, exactly as the
preview dialog would show it. Files are rendered concurrently, at most
RENDER_CONCURRENCY at a time.

Example: previewctl render 12 13 --out previews --xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !all {
				return fmt.Errorf("give file ids or --all")
			}

			appConfig, err := config.Load()
			if err != nil {
				return err
			}
			c, err := container.New(appConfig)
			if err != nil {
				return err
			}
			defer c.Shutdown(context.Background())

			ids := args
			if all {
				if err := c.InitWithDatabase(cmd.Context()); err != nil {
					return err
				}
				files, err := c.Catalog.List(cmd.Context())
				if err != nil {
					return err
				}
				ids = nil
				for _, f := range files {
					ids = append(ids, f.ID)
				}
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			results, err := renderAll(cmd.Context(), c, ids, outDir, workbook)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, r := range results {
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.fileID, r.outcome, r.path)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "previews", "Output directory")
	cmd.Flags().BoolVar(&all, "all", false, "Render every catalog file")
	cmd.Flags().BoolVar(&workbook, "xlsx", false, "Also export each preview as a workbook")
	return cmd
}

// renderAll renders each file on its own goroutine; results keep the order of ids
func renderAll(ctx context.Context, c *container.Container, ids []string, outDir string, workbook bool) ([]renderResult, error) {
	results := make([]renderResult, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Config.UI.RenderConcurrency)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			buf := render.NewBuffer()
			outcome, resp, err := c.Loader.Load(ctx, id, buf)
			if err != nil {
				return err
			}

			path := filepath.Join(outDir, url.PathEscape(id)+".html")
			if err := os.WriteFile(path, []byte(buf.Content()), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			results[i] = renderResult{fileID: id, outcome: outcome.String(), path: path}

			// the HTML rendition already carries any failure
			if workbook && outcome == app.OutcomeRendered {
				return writeWorkbook(c, resp, id, outDir)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func writeWorkbook(c *container.Container, resp *preview.Response, id, outDir string) error {
	var buf bytes.Buffer
	if err := c.Workbooks.Write(&buf, preview.NewView(resp)); err != nil {
		return err
	}
	path := filepath.Join(outDir, url.PathEscape(id)+".xlsx")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
