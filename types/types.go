package types

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ProviderKind identifies a minting protocol family.
type ProviderKind string

const (
	ProviderManifold ProviderKind = "manifold"
	ProviderOpenSea  ProviderKind = "opensea"
	ProviderZora     ProviderKind = "zora"
	ProviderGeneric  ProviderKind = "generic"
	ProviderNFTs2Me  ProviderKind = "nfts2me"
	ProviderThirdweb ProviderKind = "thirdweb"
)

func (k ProviderKind) String() string {
	return string(k)
}

// MintParams is the caller's mint intent.
type MintParams struct {
	// Address of the NFT contract to mint from.
	ContractAddress string `json:"contractAddress" yaml:"contractAddress" validate:"required,eth_addr"`

	// EVM chain id the contract lives on.
	ChainID int64 `json:"chainId" yaml:"chainId" validate:"required,gt=0"`

	// Wallet receiving the token. Also the owner whose ERC-20 allowance
	// and balance are read.
	Recipient string `json:"recipient,omitempty" yaml:"recipient,omitempty" validate:"omitempty,eth_addr"`

	// Number of tokens to mint. Zero is treated as one.
	Amount uint64 `json:"amount,omitempty" yaml:"amount,omitempty"`

	// Manifold claim instance id.
	InstanceID string `json:"instanceId,omitempty" yaml:"instanceId,omitempty" validate:"omitempty,number"`

	TokenID string `json:"tokenId,omitempty" yaml:"tokenId,omitempty" validate:"omitempty,number"`

	// Allowlist proof, 32-byte hex words.
	MerkleProof []string `json:"merkleProof,omitempty" yaml:"merkleProof,omitempty" validate:"omitempty,dive,hexadecimal"`
}

// Quantity returns Amount as a big integer, defaulting to one.
func (p MintParams) Quantity() *big.Int {
	if p.Amount == 0 {
		return big.NewInt(1)
	}
	return new(big.Int).SetUint64(p.Amount)
}

func (p MintParams) Contract() common.Address {
	return common.HexToAddress(p.ContractAddress)
}

// RecipientAddress returns the recipient and whether one was supplied.
func (p MintParams) RecipientAddress() (common.Address, bool) {
	if p.Recipient == "" {
		return common.Address{}, false
	}
	return common.HexToAddress(p.Recipient), true
}

// Instance returns the Manifold instance id, if any.
func (p MintParams) Instance() (*big.Int, bool) {
	if p.InstanceID == "" {
		return nil, false
	}
	id, ok := new(big.Int).SetString(p.InstanceID, 10)
	if !ok {
		return nil, false
	}
	return id, true
}

// MintIndex returns TokenID narrowed to uint32, zero when absent.
func (p MintParams) MintIndex() (uint32, error) {
	if p.TokenID == "" {
		return 0, nil
	}
	id, ok := new(big.Int).SetString(p.TokenID, 10)
	if !ok || id.Sign() < 0 || !id.IsUint64() || id.Uint64() > uint64(^uint32(0)) {
		return 0, fmt.Errorf("tokenId %q does not fit uint32", p.TokenID)
	}
	return uint32(id.Uint64()), nil
}

// Proof decodes MerkleProof into bytes32 words.
func (p MintParams) Proof() ([][32]byte, error) {
	proof := make([][32]byte, 0, len(p.MerkleProof))
	for i, word := range p.MerkleProof {
		if !strings.HasPrefix(word, "0x") {
			word = "0x" + word
		}
		b, err := hexutil.Decode(word)
		if err != nil {
			return nil, fmt.Errorf("merkleProof[%d]: %w", i, err)
		}
		if len(b) != 32 {
			return nil, fmt.Errorf("merkleProof[%d]: want 32 bytes, got %d", i, len(b))
		}
		var w [32]byte
		copy(w[:], b)
		proof = append(proof, w)
	}
	return proof, nil
}

// ContractInfo names the provider for a contract. It is never written to
// during discovery.
type ContractInfo struct {
	Provider string `json:"provider" yaml:"provider"`

	// Manifold delegates minting to a separate extension contract.
	ExtensionAddress string `json:"extensionAddress,omitempty" yaml:"extensionAddress,omitempty" validate:"omitempty,eth_addr"`
}

func (c ContractInfo) Extension() (common.Address, bool) {
	if c.ExtensionAddress == "" {
		return common.Address{}, false
	}
	addr := common.HexToAddress(c.ExtensionAddress)
	return addr, addr != (common.Address{})
}

// Claim is a Manifold claim record as read from the extension.
type Claim struct {
	Total           uint32         `json:"total"`
	TotalMax        uint32         `json:"totalMax"`
	WalletMax       uint32         `json:"walletMax"`
	StartDate       *big.Int       `json:"startDate"`
	EndDate         *big.Int       `json:"endDate"`
	MerkleRoot      common.Hash    `json:"merkleRoot"`
	Location        string         `json:"location"`
	Cost            *big.Int       `json:"cost"`
	PaymentReceiver common.Address `json:"paymentReceiver"`
	ERC20           common.Address `json:"erc20"`
	SigningAddress  common.Address `json:"signingAddress"`
}

// PaysInERC20 reports whether the claim names a non-zero currency.
func (c *Claim) PaysInERC20() bool {
	return c != nil && c.ERC20 != (common.Address{})
}

// ClaimCondition is the active thirdweb drop condition.
type ClaimCondition struct {
	ID                     *big.Int       `json:"id"`
	StartTimestamp         *big.Int       `json:"startTimestamp"`
	MaxClaimableSupply     *big.Int       `json:"maxClaimableSupply"`
	SupplyClaimed          *big.Int       `json:"supplyClaimed"`
	QuantityLimitPerWallet *big.Int       `json:"quantityLimitPerWallet"`
	MerkleRoot             common.Hash    `json:"merkleRoot"`
	PricePerToken          *big.Int       `json:"pricePerToken"`
	Currency               common.Address `json:"currency"`
	Metadata               string         `json:"metadata"`
}

// Erc20Details describes the token a mint is priced in. A nil Allowance or
// Balance means the value is unknown, not zero.
type Erc20Details struct {
	Address   common.Address `json:"address"`
	Symbol    string         `json:"symbol"`
	Decimals  uint8          `json:"decimals"`
	Allowance *big.Int       `json:"allowance,omitempty"`
	Balance   *big.Int       `json:"balance,omitempty"`
}

// Covers reports whether the known allowance covers required. An unknown
// allowance never covers.
func (d *Erc20Details) Covers(required *big.Int) bool {
	if d == nil || d.Allowance == nil {
		return false
	}
	return d.Allowance.Cmp(required) >= 0
}

// PriceResult is what a caller shows the user before minting.
type PriceResult struct {
	// Per-unit price as reported by the contract. Nil when discovery
	// degraded without learning it.
	MintPrice *big.Int `json:"mintPrice,omitempty"`

	ERC20 *Erc20Details `json:"erc20Details,omitempty"`

	// Native value to attach to the mint transaction.
	TotalCost *big.Int `json:"totalCost"`
}

// DiscoveryResult carries everything a later build step needs.
type DiscoveryResult struct {
	Provider       ProviderKind    `json:"provider"`
	Contract       ContractInfo    `json:"contract"`
	Price          PriceResult     `json:"price"`
	Claim          *Claim          `json:"claim,omitempty"`
	ClaimCondition *ClaimCondition `json:"claimCondition,omitempty"`

	// Set when a provider branch failed and the result was replaced by a
	// zero-cost estimate.
	Degraded bool `json:"degraded,omitempty"`
}

// ZeroCost returns a free-mint result for kind.
func ZeroCost(kind ProviderKind, info ContractInfo) *DiscoveryResult {
	return &DiscoveryResult{
		Provider: kind,
		Contract: info,
		Price: PriceResult{
			MintPrice: new(big.Int),
			TotalCost: new(big.Int),
		},
	}
}

// ReadCall is a view-function invocation.
type ReadCall struct {
	Address common.Address
	ABI     *abi.ABI
	Method  string
	Args    []interface{}
}

// MintCall is a materialized state-changing call.
type MintCall struct {
	To     common.Address `json:"to"`
	ABI    *abi.ABI       `json:"-"`
	Method string         `json:"method"`
	Args   []interface{}  `json:"args"`
	Data   hexutil.Bytes  `json:"data"`
	Value  *big.Int       `json:"value"`
}

// Quote is a DiscoveryResult rendered in display units.
type Quote struct {
	Discovery    *DiscoveryResult `json:"discovery"`
	NativeSymbol string           `json:"nativeSymbol"`
	NativeTotal  string           `json:"nativeTotal"`
	TokenSymbol  string           `json:"tokenSymbol,omitempty"`
	TokenPrice   string           `json:"tokenPrice,omitempty"`
}

// ClientConfig configures one chain's RPC client.
type ClientConfig struct {
	RPCUrl            string        `json:"rpcUrl" yaml:"rpcUrl" validate:"required,url"`
	Timeout           time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty" validate:"gte=0"`
	RequestsPerSecond float64       `json:"requestsPerSecond,omitempty" yaml:"requestsPerSecond,omitempty" validate:"gte=0"`
	Burst             int           `json:"burst,omitempty" yaml:"burst,omitempty" validate:"gte=0"`
}

// Config is the library-wide configuration.
type Config struct {
	DefaultTimeout time.Duration          `json:"defaultTimeout,omitempty" yaml:"defaultTimeout,omitempty" validate:"gte=0"`
	LogLevel       string                 `json:"logLevel,omitempty" yaml:"logLevel,omitempty" validate:"omitempty,oneof=debug info warn error"`
	EnableMetrics  bool                   `json:"enableMetrics,omitempty" yaml:"enableMetrics,omitempty"`
	Chains         map[int64]ClientConfig `json:"chains,omitempty" yaml:"chains,omitempty" validate:"omitempty,dive"`
}
