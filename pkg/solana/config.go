package solana

import (
	"net"
	"net/url"
	"strconv"
)

// Cluster names a public Solana cluster, using the monikers accepted by the
// Solana CLI.
type Cluster string

const (
	ClusterDevnet  Cluster = "devnet"
	ClusterTestnet Cluster = "testnet"
	ClusterMainnet Cluster = "mainnet-beta"
	ClusterLocal   Cluster = "localhost"
)

var clusterRpcEndpoints = map[Cluster]string{
	ClusterDevnet:  "https://api.devnet.solana.com",
	ClusterTestnet: "https://api.testnet.solana.com",
	ClusterMainnet: "https://api.mainnet-beta.solana.com",
	ClusterLocal:   "http://127.0.0.1:8899",
}

// RpcEndpoint returns the JSON-RPC endpoint of the cluster, or an empty
// string for an unknown cluster.
func (c Cluster) RpcEndpoint() string {
	return clusterRpcEndpoints[c]
}

// ResolveRpcEndpoint expands a cluster moniker into its endpoint. Anything
// else is returned unchanged.
func ResolveRpcEndpoint(endpoint string) string {
	if resolved := Cluster(endpoint).RpcEndpoint(); resolved != "" {
		return resolved
	}
	return endpoint
}

// WebsocketEndpointFor derives the pubsub endpoint served alongside an RPC
// endpoint: http becomes ws, https becomes wss, and an explicit port is
// incremented by one. Unparseable endpoints are returned unchanged.
func WebsocketEndpointFor(rpcEndpoint string) string {
	u, err := url.Parse(ResolveRpcEndpoint(rpcEndpoint))
	if err != nil || u.Host == "" {
		return rpcEndpoint
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	}

	if port := u.Port(); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			u.Host = net.JoinHostPort(u.Hostname(), strconv.Itoa(n+1))
		}
	}
	return u.String()
}
