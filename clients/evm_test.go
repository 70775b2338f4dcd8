package clients

import (
	"context"
	"errors"
	"math/big"
	"testing"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitwit/mintprice/contracts"
	"github.com/vitwit/mintprice/types"
)

var (
	testPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	tokenAddress   = common.HexToAddress("0x036CbD53842c5426634e7929541eC2318f3dCF7e")
)

type fakeBackend struct {
	callOut  []byte
	callErr  error
	lastCall ethereum.CallMsg
	sent     *ethtypes.Transaction
	closed   bool
}

func (f *fakeBackend) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.lastCall = msg
	return f.callOut, f.callErr
}

func (f *fakeBackend) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 120000, nil
}

func (f *fakeBackend) SendTransaction(_ context.Context, tx *ethtypes.Transaction) error {
	f.sent = tx
	return nil
}

func (f *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return 7, nil
}

func (f *fakeBackend) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (f *fakeBackend) HeaderByNumber(context.Context, *big.Int) (*ethtypes.Header, error) {
	return &ethtypes.Header{BaseFee: big.NewInt(2_000_000_000)}, nil
}

func (f *fakeBackend) Close() { f.closed = true }

func TestEVMClient_ReadContract(t *testing.T) {
	out, err := contracts.ERC20ABI.Methods["balanceOf"].Outputs.Pack(big.NewInt(4200))
	require.NoError(t, err)

	backend := &fakeBackend{callOut: out}
	client := NewEVMClientWithBackend(8453, backend, types.ClientConfig{RequestsPerSecond: 100, Burst: 10})

	owner := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	values, err := client.ReadContract(context.Background(), types.ReadCall{
		Address: tokenAddress,
		ABI:     contracts.ERC20ABI,
		Method:  "balanceOf",
		Args:    []interface{}{owner},
	})
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, int64(4200), values[0].(*big.Int).Int64())

	require.NotNil(t, backend.lastCall.To)
	assert.Equal(t, tokenAddress, *backend.lastCall.To)
	assert.Equal(t, contracts.ERC20ABI.Methods["balanceOf"].ID, backend.lastCall.Data[:4])
}

func TestEVMClient_ReadContractErrors(t *testing.T) {
	call := types.ReadCall{Address: tokenAddress, ABI: contracts.ERC20ABI, Method: "symbol"}

	t.Run("revert", func(t *testing.T) {
		client := NewEVMClientWithBackend(1, &fakeBackend{callErr: errors.New("execution reverted")}, types.ClientConfig{})
		_, err := client.ReadContract(context.Background(), call)
		assert.ErrorIs(t, err, ErrCallFailed)
	})

	t.Run("empty", func(t *testing.T) {
		client := NewEVMClientWithBackend(1, &fakeBackend{}, types.ClientConfig{})
		_, err := client.ReadContract(context.Background(), call)
		assert.ErrorIs(t, err, ErrEmptyResult)
	})

	t.Run("garbage", func(t *testing.T) {
		client := NewEVMClientWithBackend(1, &fakeBackend{callOut: []byte{0x01, 0x02}}, types.ClientConfig{})
		_, err := client.ReadContract(context.Background(), call)
		assert.ErrorIs(t, err, ErrDecodeResult)
	})

	t.Run("bad args", func(t *testing.T) {
		client := NewEVMClientWithBackend(1, &fakeBackend{}, types.ClientConfig{})
		_, err := client.ReadContract(context.Background(), types.ReadCall{
			Address: tokenAddress,
			ABI:     contracts.ERC20ABI,
			Method:  "balanceOf",
		})
		assert.ErrorIs(t, err, ErrEncodeCall)
	})
}

func TestEVMClient_WriteContract(t *testing.T) {
	key, err := crypto.HexToECDSA(testPrivateKey)
	require.NoError(t, err)

	backend := &fakeBackend{}
	client := NewEVMClientWithBackend(84532, backend, types.ClientConfig{})

	call := &types.MintCall{
		To:    common.HexToAddress("0x209693Bc6afc0C5328bA36FaF03C514EF312287C"),
		Data:  []byte{0xa0, 0x71, 0x2d, 0x68},
		Value: big.NewInt(1000),
	}

	hash, err := client.WriteContract(context.Background(), call, key)
	require.NoError(t, err)
	require.NotNil(t, backend.sent)

	assert.Equal(t, backend.sent.Hash(), hash)
	assert.Equal(t, uint64(7), backend.sent.Nonce())
	assert.Equal(t, uint64(120000), backend.sent.Gas())
	assert.Equal(t, int64(5_000_000_000), backend.sent.GasFeeCap().Int64())
	assert.Equal(t, int64(1000), backend.sent.Value().Int64())
	assert.Equal(t, int64(84532), backend.sent.ChainId().Int64())

	sender, err := ethtypes.Sender(ethtypes.LatestSignerForChainID(big.NewInt(84532)), backend.sent)
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), sender)
}

func TestEVMClient_WriteContractWithoutKey(t *testing.T) {
	client := NewEVMClientWithBackend(1, &fakeBackend{}, types.ClientConfig{})
	_, err := client.WriteContract(context.Background(), &types.MintCall{}, nil)
	assert.ErrorIs(t, err, ErrNoSigner)
}

func TestEVMClient_Close(t *testing.T) {
	backend := &fakeBackend{}
	NewEVMClientWithBackend(1, backend, types.ClientConfig{}).Close()
	assert.True(t, backend.closed)
}
