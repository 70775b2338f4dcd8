package providers

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/vitwit/mintprice/clients/clienttest"
	"github.com/vitwit/mintprice/types"
)

var (
	contractAddr  = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	extensionAddr = common.HexToAddress("0x26BBEA7803DcAc346D5F5f135b57Cf2c752A02bE")
	recipientAddr = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	usdcAddr      = common.HexToAddress("0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913")
)

func mintParams(amount uint64) types.MintParams {
	return types.MintParams{
		ContractAddress: contractAddr.Hex(),
		ChainID:         8453,
		Recipient:       recipientAddr.Hex(),
		Amount:          amount,
	}
}

func withToken(r *clienttest.Reader, decimals int64, allowance int64) *clienttest.Reader {
	return r.
		On("symbol", "USDC").
		On("decimals", big.NewInt(decimals)).
		On("allowance", big.NewInt(allowance)).
		On("balanceOf", big.NewInt(50_000_000))
}

func wei(v int64) *big.Int {
	return big.NewInt(v)
}

// rendezvous holds each read of methods until every one of them has started.
// A read still waiting after a second means the reads ran one after another.
func rendezvous(t *testing.T, methods ...string) func(context.Context, types.ReadCall) {
	t.Helper()
	joined := make(map[string]bool, len(methods))
	for _, m := range methods {
		joined[m] = true
	}

	var started sync.WaitGroup
	started.Add(len(methods))
	all := make(chan struct{})
	go func() {
		started.Wait()
		close(all)
	}()

	return func(_ context.Context, call types.ReadCall) {
		if !joined[call.Method] {
			return
		}
		started.Done()
		select {
		case <-all:
		case <-time.After(time.Second):
			t.Errorf("%s ran alone; expected it to overlap %v", call.Method, methods)
		}
	}
}
