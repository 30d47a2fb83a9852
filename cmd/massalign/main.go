// MassAlign - mass-aware peptide sequence alignment
package main

import (
	"fmt"
	"os"

	"github.com/ChrisMcGann/MassAlign/cmd/massalign/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
