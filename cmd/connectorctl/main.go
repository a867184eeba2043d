// Command connectorctl validates connector configuration and probes
// provider endpoints.
package main

import (
	"os"

	"github.com/porticolabs/connectors/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
