// Command scanctl parses jewellery scanner strings from the command line.
package main

import (
	"fmt"
	"os"
)

func main() {
	a := &app{}
	defer a.close()
	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		a.close()
		os.Exit(1)
	}
}
