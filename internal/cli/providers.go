package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/porticolabs/connectors/airtable"
	"github.com/porticolabs/connectors/apollo"
	"github.com/porticolabs/connectors/hubspot"
	"github.com/porticolabs/connectors/reddit"
	"github.com/porticolabs/connectors/slack"
	"github.com/porticolabs/connectors/xero"
	"github.com/porticolabs/connectors/zoom"
)

// providerRoots maps provider names to their default API roots. GitHub and
// Sheets go through their SDKs and are listed with the SDK defaults.
var providerRoots = map[string]string{
	"airtable": airtable.BaseURL,
	"apollo":   apollo.BaseURL,
	"github":   "https://api.github.com",
	"hubspot":  hubspot.BaseURL,
	"reddit":   reddit.BaseURL,
	"sheets":   "https://sheets.googleapis.com",
	"slack":    slack.BaseURL,
	"webhook":  "(caller-supplied endpoint)",
	"xero":     xero.BaseURL,
	"zoom":     zoom.BaseURL,
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List available providers and their API roots",
	Run:   runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, _ []string) {
	names := make([]string, 0, len(providerRoots))
	for name := range providerRoots {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd.Printf("%-10s %s\n", name, providerRoots[name])
	}
}
