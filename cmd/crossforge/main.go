package main

import (
	"fmt"
	"os"

	"github.com/crossforge/crossforge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "crossforge:", err)
		os.Exit(1)
	}
}
