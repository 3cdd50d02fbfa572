package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"itemscan/pkg/ocr"
	"itemscan/pkg/tooltip"
)

func newInspectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <image>",
		Short: "Run one screenshot through the pipeline and print every stage",
		Long: `Inspect processes a single screenshot and dumps the intermediate stages:
the preprocessed debug artifact lands in the data directory, the raw OCR text
and the parsed record go to stdout. Useful for tuning screenshots that parse
badly in a batch run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ocr.EngineCheck(opts.lang); err != nil {
				return err
			}
			text, err := ocr.Recognize(args[0], opts.lang, opts.dataDir)
			if err != nil {
				return err
			}
			fmt.Println("OCR Output:")
			fmt.Println(text)
			fmt.Println(strings.Repeat("-", 50))

			rec := tooltip.Parse(text, loadCatalog(opts))
			row := rec.Row()
			for i, f := range tooltip.Schema {
				fmt.Printf("%s: %s\n", f.Label, row[i])
			}
			return nil
		},
	}
}
