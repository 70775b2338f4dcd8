package probe

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitwit/mintprice/clients/clienttest"
	"github.com/vitwit/mintprice/contracts"
)

var target = Target{
	Address: common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
	ABI:     contracts.PriceDiscoveryABI,
}

func TestRun_FirstAcceptedWins(t *testing.T) {
	reader := clienttest.NewReader().
		On("price", big.NewInt(20)).
		On("publicMintPrice", big.NewInt(30))

	hit, ok, err := Run(context.Background(), reader, target,
		Named([]string{"mintPrice", "price", "publicMintPrice"}), nil)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, 1, hit.Index)
	assert.Equal(t, "price", hit.Method)
	assert.Equal(t, int64(20), hit.Values[0].(*big.Int).Int64())
	assert.Equal(t, []string{"mintPrice", "price"}, reader.Order())
}

func TestRun_RejectedValuesFallThrough(t *testing.T) {
	reader := clienttest.NewReader().
		On("mintPrice", "not a number").
		On("price", big.NewInt(7))

	hit, ok, err := Run(context.Background(), reader, target,
		Named([]string{"mintPrice", "price"}), nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "price", hit.Method)
}

func TestRun_NothingMatches(t *testing.T) {
	reader := clienttest.NewReader()

	_, ok, err := Run(context.Background(), reader, target,
		Named([]string{"mintPrice", "price", "MINT_PRICE"}), nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 3, reader.Total())
}

func TestRun_CustomAccept(t *testing.T) {
	reader := clienttest.NewReader().On("mintPrice", big.NewInt(0))

	attempts := []Attempt{{
		Method: "mintPrice",
		Accept: func(values []interface{}) bool {
			return AcceptUint(values) && values[0].(*big.Int).Sign() > 0
		},
	}}
	_, ok, err := Run(context.Background(), reader, target, attempts, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := clienttest.NewReader().On("mintPrice", big.NewInt(1))
	_, ok, err := Run(ctx, reader, target, Named([]string{"mintPrice"}), nil)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, reader.Total())
}

func TestNamed_SharesArgs(t *testing.T) {
	attempts := Named([]string{"mintFee"}, big.NewInt(3))
	require.Len(t, attempts, 1)
	assert.Equal(t, []interface{}{big.NewInt(3)}, attempts[0].Args)
}
