// soilbio computes derived soil-biology metrics (bacterial and fungal
// biomass, protozoa counts, nematode abundance) from raw microscopy
// counts and dilution metadata.
package main

import (
	"os"

	"github.com/rhizome-labs/soilbio-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
