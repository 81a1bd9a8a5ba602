package main

import (
	"fmt"
	"os"

	"github.com/MrSnakeDoc/buckets/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "buckets:", err)
		os.Exit(1)
	}
}
