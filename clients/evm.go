package clients

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/time/rate"

	"github.com/vitwit/mintprice/types"
)

var _ Client = (*EVMClient)(nil)

// Backend is the subset of *ethclient.Client the EVMClient needs.
type Backend interface {
	ethereum.ContractCaller
	ethereum.GasEstimator
	ethereum.TransactionSender
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*ethtypes.Header, error)
	Close()
}

// EVMClient reads and writes contracts on a single EVM chain.
type EVMClient struct {
	chainID int64
	backend Backend
	limiter *rate.Limiter
	timeout time.Duration
}

// NewEVMClient dials config.RPCUrl for chainID.
func NewEVMClient(chainID int64, config types.ClientConfig) (*EVMClient, error) {
	if config.RPCUrl == "" {
		return nil, &types.MintError{
			Code:    types.ErrConfig,
			Message: fmt.Sprintf("no rpc url for chain %d", chainID),
		}
	}

	client, err := ethclient.Dial(config.RPCUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to chain %d rpc: %w", chainID, err)
	}

	return NewEVMClientWithBackend(chainID, client, config), nil
}

// NewEVMClientWithBackend wraps an existing backend.
func NewEVMClientWithBackend(chainID int64, backend Backend, config types.ClientConfig) *EVMClient {
	var limiter *rate.Limiter
	if config.RequestsPerSecond > 0 {
		burst := config.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), burst)
	}

	return &EVMClient{
		chainID: chainID,
		backend: backend,
		limiter: limiter,
		timeout: config.Timeout,
	}
}

func (e *EVMClient) ChainID() int64 {
	return e.chainID
}

func (e *EVMClient) Close() {
	e.backend.Close()
}

func (e *EVMClient) wait(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, nil, err
		}
	}
	if e.timeout > 0 {
		ctx, cancel := context.WithTimeout(ctx, e.timeout)
		return ctx, cancel, nil
	}
	return ctx, func() {}, nil
}

// ReadContract performs an eth_call against the latest block and decodes the
// outputs of call.Method.
func (e *EVMClient) ReadContract(ctx context.Context, call types.ReadCall) ([]interface{}, error) {
	if call.ABI == nil {
		return nil, fmt.Errorf("%w: no abi for %s", ErrEncodeCall, call.Method)
	}

	data, err := call.ABI.Pack(call.Method, call.Args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrEncodeCall, call.Method, err)
	}

	ctx, cancel, err := e.wait(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	to := call.Address
	out, err := e.backend.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s on %s: %v", ErrCallFailed, call.Method, to.Hex(), err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s on %s", ErrEmptyResult, call.Method, to.Hex())
	}

	values, err := call.ABI.Unpack(call.Method, out)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecodeResult, call.Method, err)
	}
	return values, nil
}

// WriteContract signs call as an EIP-1559 transaction with key and
// broadcasts it. The returned hash is not waited on.
func (e *EVMClient) WriteContract(ctx context.Context, call *types.MintCall, key *ecdsa.PrivateKey) (common.Hash, error) {
	if key == nil {
		return common.Hash{}, ErrNoSigner
	}

	ctx, cancel, err := e.wait(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	defer cancel()

	from := crypto.PubkeyToAddress(key.PublicKey)
	value := call.Value
	if value == nil {
		value = new(big.Int)
	}

	nonce, err := e.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("nonce for %s: %w", from.Hex(), err)
	}

	tip, err := e.backend.SuggestGasTipCap(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: %v", ErrFeeEstimate, err)
	}
	head, err := e.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: %v", ErrFeeEstimate, err)
	}
	feeCap := new(big.Int).Set(tip)
	if head.BaseFee != nil {
		feeCap.Add(feeCap, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
	}

	to := call.To
	gas, err := e.backend.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &to,
		Value: value,
		Data:  call.Data,
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: %v", ErrGasEstimate, err)
	}

	chainID := big.NewInt(e.chainID)
	tx := ethtypes.NewTx(&ethtypes.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &to,
		Value:     value,
		Data:      call.Data,
	})

	signed, err := ethtypes.SignTx(tx, ethtypes.LatestSignerForChainID(chainID), key)
	if err != nil {
		return common.Hash{}, fmt.Errorf("sign tx: %w", err)
	}

	if err := e.backend.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("%w: %v", ErrBroadcast, err)
	}
	return signed.Hash(), nil
}
