// Package clienttest provides an in-memory clients.Reader for tests.
package clienttest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/vitwit/mintprice/clients"
	"github.com/vitwit/mintprice/types"
)

// ErrReverted is what unknown methods fail with.
var ErrReverted = errors.New("execution reverted")

type response struct {
	values []interface{}
	err    error
}

// Reader answers ReadContract from canned responses keyed by method name,
// optionally scoped to a contract address. It is safe for concurrent use.
type Reader struct {
	mu        sync.Mutex
	responses map[string]response
	calls     []types.ReadCall
	before    func(ctx context.Context, call types.ReadCall)
}

func NewReader() *Reader {
	return &Reader{responses: make(map[string]response)}
}

func key(addr *common.Address, method string) string {
	if addr == nil {
		return method
	}
	return addr.Hex() + "/" + method
}

// On makes method return values on any address.
func (r *Reader) On(method string, values ...interface{}) *Reader {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[key(nil, method)] = response{values: values}
	return r
}

// OnAt makes method return values on addr only.
func (r *Reader) OnAt(addr common.Address, method string, values ...interface{}) *Reader {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[key(&addr, method)] = response{values: values}
	return r
}

// Fail makes method return err on any address.
func (r *Reader) Fail(method string, err error) *Reader {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[key(nil, method)] = response{err: err}
	return r
}

func (r *Reader) ReadContract(ctx context.Context, call types.ReadCall) ([]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.calls = append(r.calls, call)
	before := r.before
	resp, ok := r.responses[key(&call.Address, call.Method)]
	if !ok {
		resp, ok = r.responses[key(nil, call.Method)]
	}
	r.mu.Unlock()

	if before != nil {
		before(ctx, call)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s: %w", clients.ErrCallFailed, call.Method, ErrReverted)
	}
	if resp.err != nil {
		return nil, resp.err
	}
	return resp.values, nil
}

// Before runs fn on every read after it is recorded and before it is
// answered. fn runs without the reader's lock held, so it may block.
func (r *Reader) Before(fn func(ctx context.Context, call types.ReadCall)) *Reader {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.before = fn
	return r
}

// Calls returns how many times method was read.
func (r *Reader) Calls(method string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// Total returns the number of reads issued.
func (r *Reader) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Last returns the most recent read of method.
func (r *Reader) Last(method string) (types.ReadCall, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.calls) - 1; i >= 0; i-- {
		if r.calls[i].Method == method {
			return r.calls[i], true
		}
	}
	return types.ReadCall{}, false
}

// Order returns the methods read, in order.
func (r *Reader) Order() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.calls))
	for _, c := range r.calls {
		out = append(out, c.Method)
	}
	return out
}
