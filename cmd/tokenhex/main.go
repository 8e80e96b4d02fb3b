package main

import (
	"fmt"
	"os"
)

func main() {
	err := newRootCmd().Execute()
	code := exitCode(err)
	if err != nil && code != exitConversionFailed {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(code)
}
