package router

import (
	"github.com/cosmos/solidity-ibc-eureka/ics24"
	"github.com/cosmos/solidity-ibc-eureka/types"
)

// IBCModule is the host callback interface every application registered at
// a PortId implements, §6.3. The router invokes these directly; host
// adapters are responsible for enforcing that nothing else can.
type IBCModule interface {
	// OnRecvPacket is invoked once per payload, in payload order, after the
	// router has written the packet's Receipt. It returns the application
	// acknowledgement bytes, or an error to signal the universal error ack.
	OnRecvPacket(sourceClient, destClient types.ClientId, sequence uint64, payload ics24.Payload, relayer []byte) ([]byte, error)

	// OnAcknowledgementPacket is invoked once per payload after ack_packet
	// verifies the counterparty's acknowledgement commitment.
	OnAcknowledgementPacket(sourceClient, destClient types.ClientId, sequence uint64, payload ics24.Payload, ack []byte, relayer []byte) error

	// OnTimeoutPacket is invoked once per payload after timeout_packet
	// verifies the non-membership of the receipt path.
	OnTimeoutPacket(sourceClient, destClient types.ClientId, sequence uint64, payload ics24.Payload, relayer []byte) error
}

// PortRegistry is the router's PortId -> IBCModule binding table. Unlike
// the EVM source's addIBCApp(portId, address), which authorizes by
// contract address, this registry authorizes purely by which IBCModule
// value was bound at Register time — the host adapter's inter-program
// call convention is what actually enforces that only the router can
// invoke it.
type PortRegistry struct {
	apps map[types.PortId]IBCModule
}

// NewPortRegistry returns an empty PortRegistry.
func NewPortRegistry() *PortRegistry {
	return &PortRegistry{apps: make(map[types.PortId]IBCModule)}
}

// Register binds app to port, rejecting a port that is already bound
// (mirrors the source's IBCPortAlreadyExists check).
func (r *PortRegistry) Register(port types.PortId, app IBCModule) error {
	if err := port.Validate(); err != nil {
		return err
	}
	if _, exists := r.apps[port]; exists {
		return &PortAlreadyBoundError{Port: port}
	}
	r.apps[port] = app
	return nil
}

func (r *PortRegistry) lookup(port types.PortId) (IBCModule, error) {
	app, ok := r.apps[port]
	if !ok {
		return nil, &UnknownPortError{Port: port}
	}
	return app, nil
}

// PortAlreadyBoundError mirrors the source's IBCPortAlreadyExists error.
type PortAlreadyBoundError struct {
	Port types.PortId
}

func (e *PortAlreadyBoundError) Error() string {
	return "router: port " + string(e.Port) + " already has a registered application"
}
