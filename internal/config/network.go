package config

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/trebuchet-org/smithy/internal/domain/config"
)

var placeholderPattern = regexp.MustCompile(`\$\{(\w+)\}`)

var builtinNetworks = map[string]string{
	"localhost": "http://127.0.0.1:8545",
	"hardhat":   "http://127.0.0.1:8545",
	"anvil":     "http://127.0.0.1:8545",
}

// NetworkResolver resolves network names to RPC endpoints
type NetworkResolver struct {
	endpoints map[string]string
}

// NewNetworkResolver creates a resolver over foundry.toml [rpc_endpoints]
func NewNetworkResolver(endpoints map[string]string) *NetworkResolver {
	if endpoints == nil {
		endpoints = make(map[string]string)
	}
	return &NetworkResolver{endpoints: endpoints}
}

// Resolve resolves a network name or RPC URL to its configuration
func (r *NetworkResolver) Resolve(networkName string) (*config.Network, error) {
	if networkName == "" {
		networkName = "localhost"
	}

	if isRPCURL(networkName) {
		return &config.Network{Name: "custom", RPCURL: networkName}, nil
	}

	if rpcURL, ok := r.endpoints[networkName]; ok {
		if missing := unsetVariables(rpcURL); len(missing) > 0 {
			return nil, fmt.Errorf("rpc endpoint for network '%s' references unset environment variable(s): %s",
				networkName, strings.Join(missing, ", "))
		}
		if rpcURL == "" {
			return nil, fmt.Errorf("rpc endpoint for network '%s' is empty", networkName)
		}
		return &config.Network{Name: networkName, RPCURL: rpcURL}, nil
	}

	if rpcURL, ok := builtinNetworks[networkName]; ok {
		return &config.Network{Name: networkName, RPCURL: rpcURL}, nil
	}

	return nil, fmt.Errorf("network '%s' not found in foundry.toml [rpc_endpoints] (available: %s)",
		networkName, strings.Join(r.Names(), ", "))
}

// ResolveWithOverride resolves a network, letting an explicit RPC URL win
func (r *NetworkResolver) ResolveWithOverride(networkName, rpcURL string) (*config.Network, error) {
	if rpcURL == "" {
		return r.Resolve(networkName)
	}
	if networkName == "" {
		networkName = "custom"
	}
	return &config.Network{Name: networkName, RPCURL: rpcURL}, nil
}

// Names returns all resolvable network names
func (r *NetworkResolver) Names() []string {
	names := lo.Uniq(append(lo.Keys(r.endpoints), lo.Keys(builtinNetworks)...))
	sort.Strings(names)
	return names
}

// unsetVariables lists the ${VAR} placeholders left in an expanded endpoint
func unsetVariables(rpcURL string) []string {
	return lo.Uniq(lo.Map(placeholderPattern.FindAllStringSubmatch(rpcURL, -1), func(m []string, _ int) string {
		return m[1]
	}))
}

func isRPCURL(s string) bool {
	for _, prefix := range []string{"http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
