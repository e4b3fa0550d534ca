package main

import (
	"os"

	"github.com/growthmesh/refgraph/cmd/refgraph"
)

func main() {
	if err := refgraph.Execute(); err != nil {
		os.Exit(1)
	}
}
