package main

import (
	"os"

	"github.com/iconicfonts/iconic/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
