package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"itemscan/pkg/catalog"
)

func newLookupCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <name>",
		Short: "Resolve one candidate name against the item catalog",
		Long: `Lookup runs a single candidate through the same name validation the batch
uses: UI-label rejection, exact catalog hit, then fuzzy correction by edit
distance. Handy for checking why a particular OCR'd title did or did not
resolve.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := loadCatalog(opts)
			if cat.Len() == 0 {
				return fmt.Errorf("catalog in %s: %w", opts.csvDir, catalog.ErrEmpty)
			}
			candidate := args[0]
			name, typ := cat.Validate(candidate)
			switch {
			case name == "":
				fmt.Printf("%q is a UI column label, not an item name\n", candidate)
			case typ == "":
				closest, dist := cat.Closest(candidate, false)
				fmt.Printf("no trustworthy match for %q (closest: %q at distance %d)\n", candidate, closest, dist)
			case name == candidate:
				fmt.Printf("%s (%s)\n", name, typ)
			default:
				fmt.Printf("%s (%s), corrected from %q at distance %d\n", name, typ, candidate, catalog.Distance(candidate, name))
			}
			return nil
		},
	}
}
