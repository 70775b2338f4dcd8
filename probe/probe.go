// Package probe runs prioritized capability probes against a contract: an
// ordered list of read attempts where the first accepted answer wins.
package probe

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/vitwit/mintprice/clients"
	"github.com/vitwit/mintprice/logger"
	"github.com/vitwit/mintprice/types"
)

// Attempt is one candidate read.
type Attempt struct {
	Method string
	Args   []interface{}

	// Accept decides whether decoded values count as success. Nil means
	// AcceptUint.
	Accept func(values []interface{}) bool
}

// Hit is the first accepted attempt.
type Hit struct {
	Index  int
	Method string
	Values []interface{}
}

// Target is the contract being probed.
type Target struct {
	Address common.Address
	ABI     *abi.ABI
}

// AcceptUint accepts a single non-nil uint256.
func AcceptUint(values []interface{}) bool {
	if len(values) != 1 {
		return false
	}
	v, ok := values[0].(*big.Int)
	return ok && v != nil
}

// Named builds one attempt per method, all sharing args.
func Named(methods []string, args ...interface{}) []Attempt {
	attempts := make([]Attempt, 0, len(methods))
	for _, m := range methods {
		attempts = append(attempts, Attempt{Method: m, Args: args})
	}
	return attempts
}

// Run executes attempts in order and stops at the first accepted one. Read
// errors and rejected values move on to the next attempt. ok is false when
// nothing was accepted; err is only set when ctx ends first.
func Run(ctx context.Context, r clients.Reader, target Target, attempts []Attempt, log logger.Logger) (hit Hit, ok bool, err error) {
	log = logger.OrNoop(log)

	for i, a := range attempts {
		if err := ctx.Err(); err != nil {
			return Hit{}, false, err
		}

		values, err := r.ReadContract(ctx, types.ReadCall{
			Address: target.Address,
			ABI:     target.ABI,
			Method:  a.Method,
			Args:    a.Args,
		})
		if err != nil {
			log.Debug("probe attempt failed", map[string]any{
				"contract": target.Address.Hex(),
				"method":   a.Method,
				"error":    err,
			})
			continue
		}

		accept := a.Accept
		if accept == nil {
			accept = AcceptUint
		}
		if !accept(values) {
			log.Debug("probe attempt rejected", map[string]any{
				"contract": target.Address.Hex(),
				"method":   a.Method,
			})
			continue
		}

		return Hit{Index: i, Method: a.Method, Values: values}, true, nil
	}
	return Hit{}, false, nil
}
