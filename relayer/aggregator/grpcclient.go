package aggregator

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Dial opens a gRPC client connection to an attestor endpoint, using the
// same insecure-transport dial call the relayer-api container client uses
// for its own service connections. Production deployments reaching an
// attestor over the network should supply real transport credentials;
// insecure.NewCredentials is appropriate only for co-located/test
// attestors.
//
// The returned connection is wrapped in an AttestorClient implementation
// generated from the attestor's own .proto service definition, which is
// supplied per deployment rather than by this module (no attestor .proto
// file is part of this repository's retrieved sources).
func Dial(addr string) (*grpc.ClientConn, error) {
	return grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
}
