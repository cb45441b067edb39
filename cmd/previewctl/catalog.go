package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"datapreview/adapters/catalog"
	"datapreview/domain/dataset"
	"datapreview/internal/config"
	"datapreview/internal/errors"

	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List, add and remove catalog files",
	}
	cmd.AddCommand(newCatalogListCmd(), newCatalogAddCmd(), newCatalogRemoveCmd())
	return cmd
}

func openCatalog(ctx context.Context) (catalog.Repository, func(), error) {
	cfg := config.LoadLocal()
	db, err := catalog.Open(ctx, cfg.Catalog)
	if err != nil {
		return nil, nil, err
	}
	return catalog.NewRepository(db), func() { db.Close() }, nil
}

func newCatalogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog files, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			files, err := repo.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tFILE\tTYPE\tUPLOADED\tROWS\tCOLUMNS\tPROCESSED")
			for _, f := range files {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%t\n",
					f.ID, f.OriginalFilename, f.FileType, f.UploadedAt.Format(time.RFC3339), f.RowCount, f.ColumnCount, f.Processed)
			}
			return w.Flush()
		},
	}
}

func newCatalogAddCmd() *cobra.Command {
	var rows, columns int
	var processed bool
	var uploadedAt string

	cmd := &cobra.Command{
		Use:   "add [id] [filename]",
		Short: "Add or update a catalog file",
		Long: `Add a file to the catalog, or update the entry with the same id.

The file type is taken from the filename extension (csv, json or xml).

Example: previewctl catalog add 12 ventes.csv --rows 1200 --columns 8 --processed`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fileType, ok := dataset.ParseFileType(args[1])
			if !ok {
				return errors.InvalidInput("unsupported file type: " + args[1])
			}

			uploaded := time.Now()
			if uploadedAt != "" {
				var err error
				uploaded, err = time.Parse(time.RFC3339, uploadedAt)
				if err != nil {
					return fmt.Errorf("invalid uploaded-at format (use RFC3339): %w", err)
				}
			}

			repo, closeDB, err := openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			f := &dataset.File{
				ID:               args[0],
				OriginalFilename: args[1],
				FileType:         fileType,
				UploadedAt:       uploaded,
				RowCount:         rows,
				ColumnCount:      columns,
				Processed:        processed,
			}
			if err := repo.Save(cmd.Context(), f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s)\n", f.ID, f.OriginalFilename)
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 0, "Number of data rows")
	cmd.Flags().IntVar(&columns, "columns", 0, "Number of columns")
	cmd.Flags().BoolVar(&processed, "processed", false, "Whether the file is ready for export")
	cmd.Flags().StringVar(&uploadedAt, "uploaded-at", "", "Upload time (RFC3339, default now)")
	return cmd
}

func newCatalogRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [id]",
		Short: "Remove a catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			if err := repo.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}
