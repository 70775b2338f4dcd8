package clients

import "errors"

var (
	// -----------------------------
	// READ PATH
	// -----------------------------

	// ErrEncodeCall means the arguments did not match the ABI.
	ErrEncodeCall = errors.New("encode call")
	// ErrCallFailed covers reverts and transport errors from eth_call.
	ErrCallFailed = errors.New("contract call failed")
	// ErrEmptyResult means the call returned no data, usually a missing
	// function hitting a fallback or an address without code.
	ErrEmptyResult = errors.New("contract returned no data")
	// ErrDecodeResult means the returned bytes did not match the ABI.
	ErrDecodeResult = errors.New("decode result")

	// -----------------------------
	// WRITE PATH
	// -----------------------------

	ErrNoSigner    = errors.New("no signing key")
	ErrFeeEstimate = errors.New("fee estimation failed")
	ErrGasEstimate = errors.New("gas estimation failed")
	ErrBroadcast   = errors.New("broadcast failed")
)
