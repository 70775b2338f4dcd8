// Package mintprice discovers what it costs to mint on an NFT contract whose
// mint protocol is not known in advance, and builds the call that mints.
package mintprice

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vitwit/mintprice/clients"
	"github.com/vitwit/mintprice/logger"
	"github.com/vitwit/mintprice/metrics"
	"github.com/vitwit/mintprice/providers"
	"github.com/vitwit/mintprice/types"
	"github.com/vitwit/mintprice/utils"
)

const defaultTimeout = 30 * time.Second

// Service holds one client per chain and runs discovery and call building
// against them.
type Service struct {
	mu      sync.RWMutex
	clients map[int64]clients.Client

	config     *types.Config
	logger     logger.Logger
	metrics    metrics.Recorder
	registerer prometheus.Registerer
	timeout    time.Duration
}

// New creates a Service and dials every chain in config.
func New(config *types.Config, opts ...Option) (*Service, error) {
	if config == nil {
		config = &types.Config{}
	}

	s := &Service{
		clients: make(map[int64]clients.Client),
		config:  config,
		timeout: defaultTimeout,
	}
	if config.DefaultTimeout > 0 {
		s.timeout = config.DefaultTimeout
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		if config.LogLevel != "" {
			s.logger = logger.NewZapLogger(config.LogLevel)
		} else {
			s.logger = logger.NoopLogger{}
		}
	}

	if s.metrics == nil && config.EnableMetrics {
		rec, err := metrics.NewPrometheusRecorder(s.registerer)
		if err != nil {
			return nil, &types.MintError{
				Code:    types.ErrConfig,
				Message: "failed to register metrics",
				Err:     err,
			}
		}
		s.metrics = rec
	}
	s.metrics = metrics.OrNoop(s.metrics)

	for chainID, cc := range config.Chains {
		if err := s.AddChain(chainID, cc); err != nil {
			s.Close()
			return nil, err
		}
	}

	return s, nil
}

// NewWithDefaults creates a Service with no chains and default settings
func NewWithDefaults(opts ...Option) *Service {
	s, _ := New(&types.Config{
		DefaultTimeout: defaultTimeout,
		LogLevel:       "info",
	}, opts...)
	return s
}

// AddChain dials config.RPCUrl and serves chainID from it
func (s *Service) AddChain(chainID int64, config types.ClientConfig) error {
	if config.Timeout <= 0 {
		config.Timeout = s.timeout
	}

	client, err := clients.NewEVMClient(chainID, config)
	if err != nil {
		return fmt.Errorf("failed to create EVM client for chain %d: %w", chainID, err)
	}

	s.AddClient(client)
	return nil
}

// AddClient serves client.ChainID() from client, replacing any previous one.
func (s *Service) AddClient(client clients.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.clients[client.ChainID()]; ok {
		prev.Close()
	}
	s.clients[client.ChainID()] = client

	if err := utils.ValidateChain(client.ChainID()); err != nil {
		s.logger.Warn("chain has no known metadata, assuming 18 decimal native currency", map[string]any{
			"chainId": client.ChainID(),
			"error":   err,
		})
	}
	s.logger.Info("chain added", map[string]any{
		"chainId": client.ChainID(),
		"chain":   types.LookupChain(client.ChainID()).String(),
	})
}

// IsChainSupported checks if a client is registered for chainID
func (s *Service) IsChainSupported(chainID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.clients[chainID]
	return ok
}

func (s *Service) client(chainID int64) (clients.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	client, ok := s.clients[chainID]
	if !ok {
		return nil, &types.MintError{
			Code:    types.ErrUnsupportedChain,
			Message: fmt.Sprintf("no client for chain %d", chainID),
		}
	}
	return client, nil
}

// Discover finds the current mint price of params.ContractAddress using the
// provider named by info.
func (s *Service) Discover(
	ctx context.Context,
	params types.MintParams,
	info types.ContractInfo,
) (*types.DiscoveryResult, error) {
	if err := utils.ValidateMintParams(&params); err != nil {
		return nil, err
	}
	if info.ExtensionAddress != "" {
		if _, err := utils.ValidateAddress(info.ExtensionAddress); err != nil {
			return nil, &types.MintError{
				Code:    types.ErrInvalidParams,
				Message: "invalid extension address",
				Err:     err,
			}
		}
	}

	client, err := s.client(params.ChainID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	kind := providers.Lookup(info.Provider).Kind()
	labels := map[string]string{
		"provider": kind.String(),
		"chain":    strconv.FormatInt(params.ChainID, 10),
	}
	start := time.Now()

	log := s.logger.With(map[string]any{
		"chainId":  params.ChainID,
		"contract": params.Contract().Hex(),
	})

	result, err := providers.Discover(ctx, providers.NewEnv(client, log), params, info)
	metrics.ObserveSince(s.metrics, "discovery", start, labels)
	labels["outcome"] = outcome(result, err)
	s.metrics.IncCounter("discovery", labels)
	if err != nil {
		return nil, err
	}

	log.Debug("price discovered", map[string]any{
		"provider":  kind.String(),
		"totalCost": result.Price.TotalCost.String(),
		"erc20":     result.Price.ERC20 != nil,
		"degraded":  result.Degraded,
	})
	return result, nil
}

func outcome(result *types.DiscoveryResult, err error) string {
	switch {
	case types.IsMalformed(err):
		return "malformed"
	case err != nil:
		return "error"
	case result.Degraded:
		return "degraded"
	case result.Price.ERC20 != nil:
		return "erc20"
	case result.Price.TotalCost.Sign() == 0:
		return "free"
	default:
		return "native"
	}
}

// Quote runs Discover and renders the result in display units.
func (s *Service) Quote(
	ctx context.Context,
	params types.MintParams,
	info types.ContractInfo,
) (*types.Quote, error) {
	d, err := s.Discover(ctx, params, info)
	if err != nil {
		return nil, err
	}
	return NewQuote(d, params), nil
}

// NewQuote renders d for display. The token price is the full ERC-20 amount
// the mint moves, not the per-unit price.
func NewQuote(d *types.DiscoveryResult, params types.MintParams) *types.Quote {
	chain := types.LookupChain(params.ChainID)
	q := &types.Quote{
		Discovery:    d,
		NativeSymbol: chain.NativeSymbol,
		NativeTotal:  utils.FormatUnits(d.Price.TotalCost, chain.NativeDecimals),
	}

	if token := d.Price.ERC20; token != nil {
		q.TokenSymbol = token.Symbol
		if cfg := providers.ConfigFor(d.Provider.String(), d); cfg.ERC20 != nil {
			q.TokenPrice = utils.FormatUnits(cfg.ERC20.Amount(params), token.Decimals)
		}
	}
	return q
}

// BuildMint builds the mint call for a discovery made with the same params.
func (s *Service) BuildMint(d *types.DiscoveryResult, params types.MintParams) (*types.MintCall, error) {
	if err := utils.ValidateMintParams(&params); err != nil {
		return nil, err
	}
	return providers.BuildMint(d, params)
}

// BuildApproval builds the ERC-20 approval the mint needs, or returns nil.
func (s *Service) BuildApproval(d *types.DiscoveryResult, params types.MintParams) (*types.MintCall, error) {
	if err := utils.ValidateMintParams(&params); err != nil {
		return nil, err
	}
	return providers.BuildApproval(d, params)
}

// Submit signs call with key and broadcasts it on chainID. It does not wait
// for inclusion.
func (s *Service) Submit(
	ctx context.Context,
	chainID int64,
	call *types.MintCall,
	key *ecdsa.PrivateKey,
) (common.Hash, error) {
	if call == nil {
		return common.Hash{}, &types.MintError{
			Code:    types.ErrInvalidParams,
			Message: "call is required",
		}
	}

	client, err := s.client(chainID)
	if err != nil {
		return common.Hash{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	labels := map[string]string{"chain": strconv.FormatInt(chainID, 10)}
	start := time.Now()

	hash, err := client.WriteContract(ctx, call, key)
	metrics.ObserveSince(s.metrics, "submit", start, labels)
	if err != nil {
		labels["outcome"] = "error"
		s.metrics.IncCounter("submit", labels)
		s.logger.Error("submit failed", map[string]any{
			"chainId": chainID,
			"to":      call.To.Hex(),
			"method":  call.Method,
			"error":   err,
		})
		return common.Hash{}, &types.MintError{
			Code:    types.ErrSubmitFailed,
			Message: fmt.Sprintf("%s on %s", call.Method, call.To.Hex()),
			Err:     err,
		}
	}

	labels["outcome"] = "sent"
	s.metrics.IncCounter("submit", labels)
	s.logger.Info("transaction sent", map[string]any{
		"chainId": chainID,
		"to":      call.To.Hex(),
		"method":  call.Method,
		"hash":    hash.Hex(),
	})
	return hash, nil
}

// Close closes all client connections
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.clients {
		c.Close()
		delete(s.clients, id)
	}
}

// Version information
const Version = "1.0.0"

// GetVersion returns version information
func GetVersion() map[string]interface{} {
	kinds := providers.Kinds()
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.String())
	}

	return map[string]interface{}{
		"library_version":     Version,
		"supported_providers": names,
		"supported_standards": []string{"native", "erc20"},
	}
}
