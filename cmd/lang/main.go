package main

import (
	"os"

	"github.com/graeme-hill/lang-go/cmd/lang/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
