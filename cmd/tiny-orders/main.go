// Command tiny-orders prepares and runs the order-processing benchmark.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/leoppro/tiny-orders/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
