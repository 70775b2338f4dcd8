package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitwit/mintprice/clients/clienttest"
	"github.com/vitwit/mintprice/types"
)

var nfts2meInfo = types.ContractInfo{Provider: "nfts2me"}

func TestNFTs2Me_FlatPrice(t *testing.T) {
	reader := clienttest.NewReader().
		On("mintPrice", wei(1_000)).
		On("mintFee", wei(1)).
		On("protocolFee", wei(1))

	result, err := nfts2meProvider{}.Discover(context.Background(), NewEnv(reader, nil), mintParams(3), nfts2meInfo)
	require.NoError(t, err)

	assert.Equal(t, int64(1_000), result.Price.MintPrice.Int64())
	assert.Equal(t, int64(3_000), result.Price.TotalCost.Int64())
	assert.Zero(t, reader.Calls("mintFee"))
	assert.Zero(t, reader.Calls("protocolFee"))
}

func TestNFTs2Me_CreatorAndProtocolFee(t *testing.T) {
	reader := clienttest.NewReader().
		On("mintFee", wei(100)).
		On("protocolFee", wei(10))

	result, err := nfts2meProvider{}.Discover(context.Background(), NewEnv(reader, nil), mintParams(1), nfts2meInfo)
	require.NoError(t, err)

	assert.Equal(t, int64(100), result.Price.MintPrice.Int64())
	assert.Equal(t, int64(110), result.Price.TotalCost.Int64())

	call, ok := reader.Last("mintFee")
	require.True(t, ok)
	assert.Equal(t, []interface{}{wei(1)}, call.Args)
}

func TestNFTs2Me_FeeReadsOverlap(t *testing.T) {
	reader := clienttest.NewReader().
		On("mintFee", wei(100)).
		On("protocolFee", wei(10))
	reader.Before(rendezvous(t, "mintFee", "protocolFee"))

	result, err := nfts2meProvider{}.Discover(context.Background(), NewEnv(reader, nil), mintParams(1), nfts2meInfo)
	require.NoError(t, err)
	assert.Equal(t, int64(110), result.Price.TotalCost.Int64())
}

func TestNFTs2Me_CancelDuringFeeReadsFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := clienttest.NewReader().Before(func(_ context.Context, call types.ReadCall) {
		if call.Method == "mintFee" {
			cancel()
		}
	})

	result, err := nfts2meProvider{}.Discover(ctx, NewEnv(reader, nil), mintParams(1), nfts2meInfo)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)

	_, err = Discover(ctx, NewEnv(reader, nil), mintParams(1), nfts2meInfo)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNFTs2Me_ProtocolFeeScalesWithAmount(t *testing.T) {
	reader := clienttest.NewReader().
		On("mintFee", wei(300)).
		On("protocolFee", wei(10))

	result, err := nfts2meProvider{}.Discover(context.Background(), NewEnv(reader, nil), mintParams(3), nfts2meInfo)
	require.NoError(t, err)
	assert.Equal(t, int64(330), result.Price.TotalCost.Int64())
}

func TestNFTs2Me_DefaultFees(t *testing.T) {
	tests := []struct {
		amount    uint64
		wantPrice int64
		wantTotal int64
	}{
		{amount: 1, wantPrice: 100_000_000_000_000, wantTotal: 200_000_000_000_000},
		{amount: 4, wantPrice: 400_000_000_000_000, wantTotal: 800_000_000_000_000},
	}

	for _, tt := range tests {
		reader := clienttest.NewReader().On("mintFee", wei(100))

		result, err := nfts2meProvider{}.Discover(context.Background(), NewEnv(reader, nil), mintParams(tt.amount), nfts2meInfo)
		require.NoError(t, err)
		assert.Equal(t, tt.wantPrice, result.Price.MintPrice.Int64())
		assert.Equal(t, tt.wantTotal, result.Price.TotalCost.Int64())
	}
}

func TestNFTs2Me_ConfigAttachesDiscoveredTotal(t *testing.T) {
	d := &types.DiscoveryResult{
		Provider: types.ProviderNFTs2Me,
		Price:    types.PriceResult{MintPrice: wei(100), TotalCost: wei(130)},
	}

	cfg := nfts2meProvider{}.Config(d)
	assert.Equal(t, int64(130), cfg.Mint.CalculateValue(wei(100), mintParams(3)).Int64())

	base := nfts2meProvider{}.Config(nil)
	assert.Equal(t, int64(300), base.Mint.CalculateValue(wei(100), mintParams(3)).Int64())
}
