package ipc

import (
	"errors"
	"fmt"
	"strings"

	"sift/internal/services"
)

// Boundary error codes carried across the RPC channel. net/rpc flattens
// errors to strings, so the code travels as a "CODE: message" prefix and is
// recovered on the client side with ErrorCode.
const (
	CodeScan        = "SCAN_ERROR"
	CodeGetPhotos   = "GET_PHOTOS_ERROR"
	CodeSwipe       = "SWIPE_ERROR"
	CodeInvalidArgs = "INVALID_ARGS"
)

func codedError(code string, err error) error {
	return fmt.Errorf("%s: %s", code, err.Error())
}

func invalidArgs(message string) error {
	return fmt.Errorf("%s: %s", CodeInvalidArgs, message)
}

// swipeError maps a triage failure onto its boundary code: validation
// failures surface as INVALID_ARGS, everything else as SWIPE_ERROR.
func swipeError(err error) error {
	if errors.Is(err, services.ErrValidation) {
		return codedError(CodeInvalidArgs, err)
	}
	return codedError(CodeSwipe, err)
}

// ErrorCode extracts the boundary code from an RPC error, or "" when the
// error carries none.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	message := err.Error()
	for _, code := range []string{CodeScan, CodeGetPhotos, CodeSwipe, CodeInvalidArgs} {
		if strings.HasPrefix(message, code+":") || message == code {
			return code
		}
	}
	return ""
}
