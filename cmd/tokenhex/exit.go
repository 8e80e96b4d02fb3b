package main

import (
	"errors"

	tokenerrors "github.com/alexisbeaulieu97/tokenhex/pkg/errors"
)

const (
	exitOK               = 0
	exitConversionFailed = 1
	exitInputNotFound    = 2
	exitFatal            = 3
)

// errConversionFailed signals that the report was produced but contains
// failed tokens. The failures were already printed.
var errConversionFailed = errors.New("one or more color tokens failed to convert")

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, errConversionFailed) {
		return exitConversionFailed
	}
	var notFound *tokenerrors.InputNotFoundError
	if errors.As(err, &notFound) {
		return exitInputNotFound
	}
	return exitFatal
}
