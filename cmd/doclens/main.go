// Command doclens classifies technical documents and mines their knowledge.
package main

import (
	"fmt"
	"os"

	"github.com/doclens/doclens-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
