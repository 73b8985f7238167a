// Command khatactl is the operator CLI for the ledger: it runs reports and
// exports for a tenant, inspects invoice sequences and issues test tokens.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
