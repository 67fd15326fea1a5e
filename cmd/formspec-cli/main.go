// Command formspec-cli validates, normalizes, previews and exports form
// specifications from the command line.
//
//	formspec-cli validate <spec>
//	formspec-cli normalize <spec>
//	formspec-cli preview <spec> [-o out.html]
//	formspec-cli export <spec> [--openapi]
//	formspec-cli answer <spec>
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
