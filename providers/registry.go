package providers

import (
	"strings"

	"github.com/vitwit/mintprice/types"
)

var registry = map[types.ProviderKind]Provider{
	types.ProviderManifold: manifoldProvider{},
	types.ProviderNFTs2Me:  nfts2meProvider{},
	types.ProviderThirdweb: thirdwebProvider{},
	types.ProviderOpenSea:  probeProvider{base: openseaConfig},
	types.ProviderZora:     probeProvider{base: zoraConfig},
	types.ProviderGeneric:  probeProvider{base: genericConfig},
}

// Lookup returns the provider registered under name. Unknown names get the
// generic provider.
func Lookup(name string) Provider {
	if p, ok := registry[types.ProviderKind(strings.ToLower(strings.TrimSpace(name)))]; ok {
		return p
	}
	return registry[types.ProviderGeneric]
}

// ConfigFor returns the config of name, specialized on d when given.
func ConfigFor(name string, d *types.DiscoveryResult) *Config {
	return Lookup(name).Config(d)
}

// Kinds lists the registered providers.
func Kinds() []types.ProviderKind {
	return []types.ProviderKind{
		types.ProviderManifold,
		types.ProviderOpenSea,
		types.ProviderZora,
		types.ProviderGeneric,
		types.ProviderNFTs2Me,
		types.ProviderThirdweb,
	}
}
