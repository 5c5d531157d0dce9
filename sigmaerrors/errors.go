package sigmaerrors

import (
	"errors"
	"strings"
)

// Decoding (S) Errors
var (
	ErrTruncated          = errors.New("S1|Truncated: Input ended before a complete unit was read.")
	ErrUnknownType        = errors.New("S2|UnknownType: Type descriptor tag is not recognized.")
	ErrTypeMismatch       = errors.New("S3|TypeMismatch: Value shape does not match its declared type.")
	ErrOverflow           = errors.New("S4|Overflow: Decoded magnitude exceeds the target width.")
	ErrMalformedRegisters = errors.New("S5|MalformedRegisters: Registers are not populated contiguously from R4.")
	ErrInvalidPoint       = errors.New("S6|InvalidPoint: Bytes are not a compressed point on the curve.")
	ErrDepthExceeded      = errors.New("S7|DepthExceeded: Nesting is deeper than the configured limit.")
	ErrTrailingBytes      = errors.New("S8|TrailingBytes: Input continues after a complete value.")
	ErrInvalidHex         = errors.New("S9|InvalidHex: Text is not valid base16.")
	ErrUnknownSigmaProp   = errors.New("S10|UnknownSigmaProp: Sigma proposition op code is not recognized.")
	ErrTooManyConstants   = errors.New("S11|TooManyConstants: Script carries more segregated constants than allowed.")
)

var all = []error{
	ErrTruncated,
	ErrUnknownType,
	ErrTypeMismatch,
	ErrOverflow,
	ErrMalformedRegisters,
	ErrInvalidPoint,
	ErrDepthExceeded,
	ErrTrailingBytes,
	ErrInvalidHex,
	ErrUnknownSigmaProp,
	ErrTooManyConstants,
}

// Classify returns the catalogue error wrapped by err, or nil if err carries none.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, e := range all {
		if errors.Is(err, e) {
			return e
		}
	}
	return nil
}

// GetErrorName extracts the error name from the error message.
func GetErrorName(err error) string {
	if err == nil {
		return "No Error"
	}
	if known := Classify(err); known != nil {
		err = known
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "|") || !strings.Contains(errStr, ":") {
		return errStr
	}
	parts := strings.SplitN(errStr, "|", 2)
	nameParts := strings.SplitN(parts[1], ":", 2)
	return strings.TrimSpace(nameParts[0])
}

func GetErrorNames(errs []error) []string {
	errStrs := make([]string, len(errs))
	for i, err := range errs {
		errStrs[i] = GetErrorName(err)
	}
	return errStrs
}

// GetErrorCode extracts the error code from the error message.
func GetErrorCode(err error) string {
	if err == nil {
		return ""
	}
	if known := Classify(err); known != nil {
		err = known
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "|") {
		return ""
	}
	parts := strings.SplitN(errStr, "|", 2)
	return strings.TrimSpace(parts[0])
}

// GetErrorCodeWithName returns the error code and name in the format "Code_ErrorName".
func GetErrorCodeWithName(err error) string {
	code := GetErrorCode(err)
	name := GetErrorName(err)
	if code == "" || name == "" {
		return ""
	}
	return code + "_" + name
}

// GetErrorDesc extracts the error description from the error message.
func GetErrorDesc(err error) string {
	if err == nil {
		return ""
	}
	if known := Classify(err); known != nil {
		err = known
	}
	parts := strings.SplitN(err.Error(), ":", 2)
	if len(parts) < 2 {
		return "DESC NOT SET"
	}
	return strings.TrimSpace(parts[1])
}
