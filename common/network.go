package common

type Network string

const (
	NetworkMainnet  Network = "mainnet"
	NetworkDevnet   Network = "devnet"
	NetworkTestnet  Network = "testnet"
	NetworkLocalnet Network = "localnet"
)

var supportedNetworks = map[Network]struct{}{
	NetworkMainnet:  {},
	NetworkDevnet:   {},
	NetworkTestnet:  {},
	NetworkLocalnet: {},
}

// IsSupported reports whether a deployment can run on n.
func (n Network) IsSupported() bool {
	_, ok := supportedNetworks[n]
	return ok
}

func (n Network) String() string {
	return string(n)
}
