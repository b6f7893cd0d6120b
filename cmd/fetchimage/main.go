package main

import (
	"os"

	"github.com/kean/FetchImage/cmd/fetchimage/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
