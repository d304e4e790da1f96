package main

import (
	"os"

	"github.com/scan-io-git/html-checker/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
