package providers

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitwit/mintprice/contracts"
	"github.com/vitwit/mintprice/types"
)

func TestBuild_Manifold(t *testing.T) {
	d := &types.DiscoveryResult{
		Provider: types.ProviderManifold,
		Contract: manifoldInfo(),
		Price:    types.PriceResult{MintPrice: wei(5), TotalCost: wei(15)},
		Claim:    &types.Claim{Cost: wei(10)},
	}
	params := manifoldParams()
	params.TokenID = "2"

	call, err := BuildMint(d, params)
	require.NoError(t, err)

	assert.Equal(t, extensionAddr, call.To)
	assert.Equal(t, "mint", call.Method)
	assert.Equal(t, int64(15), call.Value.Int64())
	assert.Equal(t, contracts.ManifoldExtensionABI.Methods["mint"].ID, []byte(call.Data[:4]))

	require.Len(t, call.Args, 5)
	assert.Equal(t, contractAddr, call.Args[0])
	assert.Equal(t, big.NewInt(4113), call.Args[1])
	assert.Equal(t, uint32(2), call.Args[2])
	assert.Equal(t, recipientAddr, call.Args[4])
}

func TestBuild_ThirdwebPacksAllowlistProof(t *testing.T) {
	d := &types.DiscoveryResult{
		Provider: types.ProviderThirdweb,
		Price:    types.PriceResult{MintPrice: wei(50), TotalCost: wei(100)},
		ClaimCondition: &types.ClaimCondition{
			ID:            wei(0),
			PricePerToken: wei(50),
			Currency:      contracts.NativeToken,
		},
	}

	call, err := BuildMint(d, mintParams(2))
	require.NoError(t, err)

	assert.Equal(t, contractAddr, call.To)
	assert.Equal(t, "claim", call.Method)
	assert.Equal(t, int64(100), call.Value.Int64())

	unpacked, err := contracts.ThirdwebDropABI.Methods["claim"].Inputs.Unpack(call.Data[4:])
	require.NoError(t, err)
	assert.Equal(t, recipientAddr, unpacked[0])
	assert.Equal(t, contracts.NativeToken, unpacked[2])
}

func TestBuild_NFTs2MeUsesDiscoveredTotal(t *testing.T) {
	d := &types.DiscoveryResult{
		Provider: types.ProviderNFTs2Me,
		Price:    types.PriceResult{MintPrice: wei(100), TotalCost: wei(130)},
	}

	call, err := BuildMint(d, mintParams(3))
	require.NoError(t, err)
	assert.Equal(t, int64(130), call.Value.Int64())
	assert.Equal(t, []interface{}{wei(3)}, call.Args)
}

func TestBuild_DegradedAttachesNothing(t *testing.T) {
	d := &types.DiscoveryResult{
		Provider: types.ProviderOpenSea,
		Price:    types.PriceResult{TotalCost: new(big.Int)},
		Degraded: true,
	}

	call, err := BuildMint(d, mintParams(2))
	require.NoError(t, err)
	assert.Equal(t, int64(0), call.Value.Int64())
}

func TestBuild_Errors(t *testing.T) {
	_, err := BuildMint(nil, mintParams(1))
	assert.True(t, types.HasCode(err, types.ErrBuildFailed))

	params := mintParams(1)
	params.Recipient = ""
	_, err = BuildMint(&types.DiscoveryResult{Provider: types.ProviderZora, Price: types.PriceResult{MintPrice: wei(1)}}, params)
	assert.True(t, types.HasCode(err, types.ErrBuildFailed))

	params = manifoldParams()
	params.MerkleProof = []string{"0x1234"}
	_, err = BuildMint(&types.DiscoveryResult{Provider: types.ProviderManifold, Contract: manifoldInfo()}, params)
	assert.True(t, types.HasCode(err, types.ErrBuildFailed))
}

func TestBuildApproval(t *testing.T) {
	thirdwebERC20 := func(allowance *big.Int) *types.DiscoveryResult {
		return &types.DiscoveryResult{
			Provider: types.ProviderThirdweb,
			Price: types.PriceResult{
				MintPrice: wei(2_000_000),
				TotalCost: new(big.Int),
				ERC20:     &types.Erc20Details{Address: usdcAddr, Symbol: "USDC", Decimals: 6, Allowance: allowance},
			},
			ClaimCondition: &types.ClaimCondition{PricePerToken: wei(2_000_000), Currency: usdcAddr},
		}
	}

	t.Run("native", func(t *testing.T) {
		call, err := BuildApproval(&types.DiscoveryResult{Provider: types.ProviderOpenSea}, mintParams(1))
		require.NoError(t, err)
		assert.Nil(t, call)
	})

	t.Run("allowance covers", func(t *testing.T) {
		call, err := BuildApproval(thirdwebERC20(wei(4_000_000)), mintParams(2))
		require.NoError(t, err)
		assert.Nil(t, call)
	})

	t.Run("allowance short", func(t *testing.T) {
		call, err := BuildApproval(thirdwebERC20(wei(3_999_999)), mintParams(2))
		require.NoError(t, err)
		require.NotNil(t, call)

		assert.Equal(t, usdcAddr, call.To)
		assert.Equal(t, "approve", call.Method)
		assert.Equal(t, int64(0), call.Value.Int64())
		assert.Equal(t, []interface{}{contractAddr, wei(4_000_000)}, call.Args)
		assert.Equal(t, contracts.ERC20ABI.Methods["approve"].ID, []byte(call.Data[:4]))
	})

	t.Run("allowance unknown", func(t *testing.T) {
		call, err := BuildApproval(thirdwebERC20(nil), mintParams(1))
		require.NoError(t, err)
		assert.NotNil(t, call)
	})
}
