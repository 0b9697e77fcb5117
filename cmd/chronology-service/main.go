package main

import (
	"os"

	"github.com/courtprep/backend/chronologyservice"
)

func main() {
	if err := chronologyservice.Run(); err != nil {
		os.Exit(1)
	}
}
