// Package noctrace builds the per-op NoC trace JSON files: one record per
// kernel zone boundary or NoC transfer, grouped by run, rebased to the kernel
// start and with fabric sends coalesced into single logical events.
package noctrace

// FabricSend annotates a coalesced fabric write with its route.
type FabricSend struct {
	EthChan       uint8 `json:"eth_chan"`
	StartDistance int   `json:"start_distance"`
	Range         int   `json:"range"`
}

// Event is one NoC trace record. Which optional fields are set depends on
// the record kind: kernel zone, local transfer, fabric send or routing fields.
type Event struct {
	RunHostID             uint32      `json:"run_host_id"`
	OpName                string      `json:"op_name"`
	Proc                  string      `json:"proc"`
	Zone                  string      `json:"zone,omitempty"`
	ZonePhase             string      `json:"zone_phase,omitempty"`
	Noc                   string      `json:"noc,omitempty"`
	VC                    *int        `json:"vc,omitempty"`
	SrcDeviceID           *int        `json:"src_device_id,omitempty"`
	SX                    int         `json:"sx"`
	SY                    int         `json:"sy"`
	NumBytes              *uint32     `json:"num_bytes,omitempty"`
	Type                  string      `json:"type,omitempty"`
	RoutingFieldsType     string      `json:"routing_fields_type,omitempty"`
	RoutingFieldsValue    *uint32     `json:"routing_fields_value,omitempty"`
	ScatterAddressIndex   *int        `json:"scatter_address_index,omitempty"`
	ScatterTotalAddresses *int        `json:"scatter_total_addresses,omitempty"`
	Timestamp             uint64      `json:"timestamp"`
	DX                    *int        `json:"dx,omitempty"`
	DY                    *int        `json:"dy,omitempty"`
	McastStartX           *int        `json:"mcast_start_x,omitempty"`
	McastStartY           *int        `json:"mcast_start_y,omitempty"`
	McastEndX             *int        `json:"mcast_end_x,omitempty"`
	McastEndY             *int        `json:"mcast_end_y,omitempty"`
	FabricSend            *FabricSend `json:"fabric_send,omitempty"`
}

func ptr[T any](v T) *T { return &v }

// SetDest sets a unicast destination.
func (e *Event) SetDest(x, y int) {
	e.DX, e.DY = ptr(x), ptr(y)
}

// SetMcast sets a multicast destination rectangle.
func (e *Event) SetMcast(startX, startY, endX, endY int) {
	e.McastStartX, e.McastStartY = ptr(startX), ptr(startY)
	e.McastEndX, e.McastEndY = ptr(endX), ptr(endY)
}
