package entity

// NetworkDefinition holds the RPC configuration of the chain the contracts live on.
type NetworkDefinition struct {
	ChainID          uint64   `json:"chainId" yaml:"chainId"`
	Name             string   `json:"name" yaml:"name"`
	Identifier       string   `json:"identifier" yaml:"identifier"`
	NativeSymbol     string   `json:"nativeSymbol" yaml:"nativeSymbol"`
	PrimaryRPCURL    string   `json:"primaryRpcUrl" yaml:"primaryRpcUrl"`
	FallbackRPCURLs  []string `json:"fallbackRpcUrls" yaml:"fallbackRpcUrls"`
	BlockExplorerURL string   `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
}
