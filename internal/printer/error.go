package printer

import "errors"

var (
	ErrTransportUnavailable = errors.New("printer transport unavailable")
	ErrPrintFailed          = errors.New("print job failed")
	ErrNothingToPrint       = errors.New("no pending items to print")
)
