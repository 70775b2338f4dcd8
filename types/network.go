package types

// Chain describes an EVM chain the library knows display details for.
type Chain struct {
	ID             int64
	Name           string
	NativeSymbol   string
	NativeDecimals uint8
	Testnet        bool
}

var knownChains = map[int64]Chain{
	1:        {ID: 1, Name: "ethereum", NativeSymbol: "ETH", NativeDecimals: 18},
	10:       {ID: 10, Name: "optimism", NativeSymbol: "ETH", NativeDecimals: 18},
	137:      {ID: 137, Name: "polygon", NativeSymbol: "POL", NativeDecimals: 18},
	8453:     {ID: 8453, Name: "base", NativeSymbol: "ETH", NativeDecimals: 18},
	42161:    {ID: 42161, Name: "arbitrum", NativeSymbol: "ETH", NativeDecimals: 18},
	7777777:  {ID: 7777777, Name: "zora", NativeSymbol: "ETH", NativeDecimals: 18},
	84532:    {ID: 84532, Name: "base-sepolia", NativeSymbol: "ETH", NativeDecimals: 18, Testnet: true},
	11155111: {ID: 11155111, Name: "sepolia", NativeSymbol: "ETH", NativeDecimals: 18, Testnet: true},
}

// LookupChain returns display details for id. Unknown chains get a generic
// 18-decimal native currency.
func LookupChain(id int64) Chain {
	if c, ok := knownChains[id]; ok {
		return c
	}
	return Chain{ID: id, Name: "unknown", NativeSymbol: "ETH", NativeDecimals: 18}
}

func (c Chain) Known() bool {
	_, ok := knownChains[c.ID]
	return ok
}

func (c Chain) String() string {
	return c.Name
}
