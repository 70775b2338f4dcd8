// Package contracts holds the ABIs of the mint protocols the library speaks
// and decoders for their tuple return values.
package contracts

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

var (
	// ZeroAddress marks "no ERC-20" in Manifold claims.
	ZeroAddress = common.Address{}

	// NativeToken is thirdweb's sentinel for the chain currency.
	NativeToken = common.HexToAddress("0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE")
)

// Manifold lazy payable claim extension.
const manifoldExtensionABI = `[
  {
    "name": "MINT_FEE",
    "type": "function",
    "stateMutability": "view",
    "inputs": [],
    "outputs": [{ "name": "", "type": "uint256" }]
  },
  {
    "name": "getClaim",
    "type": "function",
    "stateMutability": "view",
    "inputs": [
      { "name": "creatorContractAddress", "type": "address" },
      { "name": "instanceId", "type": "uint256" }
    ],
    "outputs": [
      {
        "name": "",
        "type": "tuple",
        "components": [
          { "name": "total", "type": "uint32" },
          { "name": "totalMax", "type": "uint32" },
          { "name": "walletMax", "type": "uint32" },
          { "name": "startDate", "type": "uint48" },
          { "name": "endDate", "type": "uint48" },
          { "name": "storageProtocol", "type": "uint8" },
          { "name": "contractVersion", "type": "uint8" },
          { "name": "identical", "type": "bool" },
          { "name": "merkleRoot", "type": "bytes32" },
          { "name": "location", "type": "string" },
          { "name": "cost", "type": "uint256" },
          { "name": "paymentReceiver", "type": "address" },
          { "name": "erc20", "type": "address" },
          { "name": "signingAddress", "type": "address" }
        ]
      }
    ]
  },
  {
    "name": "mint",
    "type": "function",
    "stateMutability": "payable",
    "inputs": [
      { "name": "creatorContractAddress", "type": "address" },
      { "name": "instanceId", "type": "uint256" },
      { "name": "mintIndex", "type": "uint32" },
      { "name": "merkleProof", "type": "bytes32[]" },
      { "name": "mintFor", "type": "address" }
    ],
    "outputs": []
  }
]`

// thirdweb OpenEditionERC721 / single phase drop.
const thirdwebDropABI = `[
  {
    "name": "claimCondition",
    "type": "function",
    "stateMutability": "view",
    "inputs": [],
    "outputs": [
      { "name": "currentStartId", "type": "uint256" },
      { "name": "count", "type": "uint256" }
    ]
  },
  {
    "name": "getClaimConditionById",
    "type": "function",
    "stateMutability": "view",
    "inputs": [{ "name": "_conditionId", "type": "uint256" }],
    "outputs": [
      {
        "name": "condition",
        "type": "tuple",
        "components": [
          { "name": "startTimestamp", "type": "uint256" },
          { "name": "maxClaimableSupply", "type": "uint256" },
          { "name": "supplyClaimed", "type": "uint256" },
          { "name": "quantityLimitPerWallet", "type": "uint256" },
          { "name": "merkleRoot", "type": "bytes32" },
          { "name": "pricePerToken", "type": "uint256" },
          { "name": "currency", "type": "address" },
          { "name": "metadata", "type": "string" }
        ]
      }
    ]
  },
  {
    "name": "claim",
    "type": "function",
    "stateMutability": "payable",
    "inputs": [
      { "name": "_receiver", "type": "address" },
      { "name": "_quantity", "type": "uint256" },
      { "name": "_currency", "type": "address" },
      { "name": "_pricePerToken", "type": "uint256" },
      {
        "name": "_allowlistProof",
        "type": "tuple",
        "components": [
          { "name": "proof", "type": "bytes32[]" },
          { "name": "quantityLimitPerWallet", "type": "uint256" },
          { "name": "pricePerToken", "type": "uint256" },
          { "name": "currency", "type": "address" }
        ]
      },
      { "name": "_data", "type": "bytes" }
    ],
    "outputs": []
  }
]`

// nfts2me prices differently across deployed versions.
const nfts2meABI = `[
  {
    "name": "mintPrice",
    "type": "function",
    "stateMutability": "view",
    "inputs": [],
    "outputs": [{ "name": "", "type": "uint256" }]
  },
  {
    "name": "mintFee",
    "type": "function",
    "stateMutability": "view",
    "inputs": [{ "name": "amount", "type": "uint256" }],
    "outputs": [{ "name": "", "type": "uint256" }]
  },
  {
    "name": "protocolFee",
    "type": "function",
    "stateMutability": "view",
    "inputs": [],
    "outputs": [{ "name": "", "type": "uint256" }]
  },
  {
    "name": "mint",
    "type": "function",
    "stateMutability": "payable",
    "inputs": [{ "name": "amount", "type": "uint256" }],
    "outputs": []
  }
]`

// Common price getters of hand-rolled ERC-721 drops.
const priceDiscoveryABI = `[
  { "name": "mintPrice", "type": "function", "stateMutability": "view", "inputs": [], "outputs": [{ "name": "", "type": "uint256" }] },
  { "name": "price", "type": "function", "stateMutability": "view", "inputs": [], "outputs": [{ "name": "", "type": "uint256" }] },
  { "name": "publicMintPrice", "type": "function", "stateMutability": "view", "inputs": [], "outputs": [{ "name": "", "type": "uint256" }] },
  { "name": "MINT_PRICE", "type": "function", "stateMutability": "view", "inputs": [], "outputs": [{ "name": "", "type": "uint256" }] },
  { "name": "getMintPrice", "type": "function", "stateMutability": "view", "inputs": [], "outputs": [{ "name": "", "type": "uint256" }] }
]`

const mintABI = `[
  {
    "name": "mint",
    "type": "function",
    "stateMutability": "payable",
    "inputs": [{ "name": "quantity", "type": "uint256" }],
    "outputs": []
  }
]`

const mintToABI = `[
  {
    "name": "mint",
    "type": "function",
    "stateMutability": "payable",
    "inputs": [
      { "name": "recipient", "type": "address" },
      { "name": "quantity", "type": "uint256" }
    ],
    "outputs": []
  }
]`

// decimals is declared as uint256 so out-of-range words reach the range
// check instead of failing inside the decoder.
const erc20ABI = `[
  { "name": "symbol", "type": "function", "stateMutability": "view", "inputs": [], "outputs": [{ "name": "", "type": "string" }] },
  { "name": "decimals", "type": "function", "stateMutability": "view", "inputs": [], "outputs": [{ "name": "", "type": "uint256" }] },
  {
    "name": "allowance",
    "type": "function",
    "stateMutability": "view",
    "inputs": [
      { "name": "owner", "type": "address" },
      { "name": "spender", "type": "address" }
    ],
    "outputs": [{ "name": "", "type": "uint256" }]
  },
  {
    "name": "balanceOf",
    "type": "function",
    "stateMutability": "view",
    "inputs": [{ "name": "owner", "type": "address" }],
    "outputs": [{ "name": "", "type": "uint256" }]
  },
  {
    "name": "approve",
    "type": "function",
    "stateMutability": "nonpayable",
    "inputs": [
      { "name": "spender", "type": "address" },
      { "name": "value", "type": "uint256" }
    ],
    "outputs": [{ "name": "", "type": "bool" }]
  }
]`

var (
	ManifoldExtensionABI = mustParse(manifoldExtensionABI)
	ThirdwebDropABI      = mustParse(thirdwebDropABI)
	NFTs2MeABI           = mustParse(nfts2meABI)
	PriceDiscoveryABI    = mustParse(priceDiscoveryABI)
	MintABI              = mustParse(mintABI)
	MintToABI            = mustParse(mintToABI)
	ERC20ABI             = mustParse(erc20ABI)
)

func mustParse(def string) *abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic("contracts: bad ABI definition: " + err.Error())
	}
	return &parsed
}
