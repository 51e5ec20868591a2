package main

import (
	"os"

	"github.com/hkporter/hkporter/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
