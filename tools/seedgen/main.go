// Package main writes a starter seed file with the demo facts and the demo
// account, ready to be edited and passed to the server via -s.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/akulikov/facthub/internal/seed"
)

func main() {
	path := "seed.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	raw, err := json.MarshalIndent(seed.Default(), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal seed data: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", path, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", path)
}
