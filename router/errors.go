package router

import (
	"errors"
	"fmt"

	"github.com/cosmos/solidity-ibc-eureka/types"
)

// Sentinel errors using the normative names from §6.6.
var (
	ErrClientFrozen           = errors.New("router: client is frozen")
	ErrClientNotActive        = errors.New("router: client is not active")
	ErrConsensusStateNotFound = errors.New("router: consensus state not found at proof height")
	ErrPacketTimedOut         = errors.New("router: packet timeout_timestamp has elapsed")
	ErrMembershipFailed       = errors.New("router: membership proof verification failed")
	ErrNonMembershipFailed    = errors.New("router: non-membership proof verification failed")
	ErrCommitmentMismatch     = errors.New("router: existing commitment does not match computed commitment")
	ErrUnauthorizedCaller     = errors.New("router: caller is not authorized for this port")
)

// UnknownPortError is returned when no application is registered at a port.
type UnknownPortError struct {
	Port types.PortId
}

func (e *UnknownPortError) Error() string {
	return fmt.Sprintf("router: no application registered at port %q", e.Port)
}

// UnknownClientError is returned when a client id has no registered
// light client.
type UnknownClientError struct {
	ClientId types.ClientId
}

func (e *UnknownClientError) Error() string {
	return fmt.Sprintf("router: unknown client %q", e.ClientId)
}
