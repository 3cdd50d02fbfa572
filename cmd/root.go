package cmd

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"itemscan/pkg/catalog"
)

// options carries the directory conventions shared by every subcommand.
// Defaults mirror the tool's fixed layout: screenshots in images/, reference
// CSVs in csv/, output and debug artifacts in data/.
type options struct {
	imagesDir string
	csvDir    string
	dataDir   string
	lang      string
	verbose   bool
}

// catalogFiles are the reference tables read from the csv directory, in
// merge order (later files win on duplicate names).
var catalogFiles = []string{"extracted_items.csv", "anklets_items.csv"}

const columnNamesFile = "column-names.csv"

func NewRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "itemscan",
		Short: "Extract game item stats from tooltip screenshots",
		Long: `Itemscan OCRs screenshots of in-game item tooltips, reconciles the item
name against a reference catalog with fuzzy matching, and writes one CSV row
of structured attributes per screenshot.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env if present; flags beat env, env beats defaults.
			_ = godotenv.Load()
			applyEnvDefault(cmd, "images", "ITEMSCAN_IMAGES")
			applyEnvDefault(cmd, "csv", "ITEMSCAN_CSV")
			applyEnvDefault(cmd, "data", "ITEMSCAN_DATA")
			applyEnvDefault(cmd, "lang", "ITEMSCAN_LANG")
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.imagesDir, "images", "images", "directory of tooltip screenshots")
	pf.StringVar(&opts.csvDir, "csv", "csv", "directory holding the reference CSV tables")
	pf.StringVar(&opts.dataDir, "data", "data", "output directory for results and debug artifacts")
	pf.StringVar(&opts.lang, "lang", "eng", "tesseract language")
	pf.BoolVar(&opts.verbose, "verbose", false, "verbose per-file logging")

	cmd.AddCommand(newScanCmd(opts))
	cmd.AddCommand(newInspectCmd(opts))
	cmd.AddCommand(newLookupCmd(opts))
	return cmd
}

// applyEnvDefault backfills a flag from the environment when the user did
// not set it on the command line.
func applyEnvDefault(cmd *cobra.Command, name, key string) {
	f := cmd.Flags().Lookup(name)
	if f == nil || f.Changed {
		return
	}
	if v := os.Getenv(key); v != "" {
		_ = f.Value.Set(v)
	}
}

// loadCatalog reads the reference tables from the csv directory. Missing
// files warn individually inside the loader; emptiness is judged by the
// caller because only the batch run treats it as fatal.
func loadCatalog(opts *options) *catalog.Catalog {
	paths := make([]string, len(catalogFiles))
	for i, f := range catalogFiles {
		paths[i] = filepath.Join(opts.csvDir, f)
	}
	c := catalog.Load(paths...)
	c.LoadColumnNames(filepath.Join(opts.csvDir, columnNamesFile))
	if !c.HasColumnNames() {
		log.Printf("WARN no column names loaded; item-name validation against UI labels is skipped")
	}
	return c
}
