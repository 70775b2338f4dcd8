package types

import "errors"

// MintError is returned across package boundaries.
type MintError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *MintError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *MintError) Unwrap() error {
	return e.Err
}

// Error codes
const (
	ErrInvalidParams     = "INVALID_PARAMS"
	ErrUnsupportedChain  = "UNSUPPORTED_CHAIN"
	ErrMalformedResponse = "MALFORMED_RESPONSE"
	ErrInvalidDecimals   = "INVALID_DECIMALS"
	ErrBuildFailed       = "BUILD_FAILED"
	ErrSubmitFailed      = "SUBMIT_FAILED"
	ErrConfig            = "CONFIG_ERROR"
)

// IsMalformed reports whether err signals a contract that answered with data
// of the wrong shape. These are never converted into a free-mint estimate.
func IsMalformed(err error) bool {
	var me *MintError
	if !errors.As(err, &me) {
		return false
	}
	return me.Code == ErrMalformedResponse || me.Code == ErrInvalidDecimals
}

// HasCode reports whether err is a MintError with code.
func HasCode(err error, code string) bool {
	var me *MintError
	return errors.As(err, &me) && me.Code == code
}
