package main

import (
	"os"

	"packtest/cmd/packtest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
