// Command cartctl inspects stored carts and runs the checkout helpers from a
// shell.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
