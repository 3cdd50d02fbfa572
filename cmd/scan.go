package cmd

import (
	"github.com/spf13/cobra"

	"itemscan/pkg/scan"
)

func newScanCmd(opts *options) *cobra.Command {
	var (
		watch   bool
		workers int
	)
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "OCR every screenshot in the images directory into one CSV",
		Long: `Scan runs the batch pipeline: every .png/.jpg/.jpeg file in the images
directory is preprocessed, OCR'd, parsed into the fixed attribute schema, and
appended to data/ocr_output_<timestamp>.csv in directory-listing order.

The run aborts before writing anything when Tesseract is unavailable, the
item catalog is empty, or there is nothing to process.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &scan.Runner{
				ImagesDir: opts.imagesDir,
				DataDir:   opts.dataDir,
				Lang:      opts.lang,
				Workers:   workers,
				Watch:     watch,
				Verbose:   opts.verbose,
				Catalog:   loadCatalog(opts),
			}
			return r.Run(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "after the initial pass, keep appending rows for new screenshots")
	cmd.Flags().IntVar(&workers, "workers", 1, "worker pool size; 1 keeps strictly sequential processing")
	return cmd
}
