package utils

import "sort"

// SignalDef describes one physical signal packed into a CAN frame.
// Only little-endian packing is supported.
type SignalDef struct {
	Name      string
	StartBit  int
	BitLength int
	Signed    bool
	Factor    float64
	Offset    float64
	Min       float64
	Max       float64
	Default   float64
	Unit      string
}

// FrameDef describes one CAN frame and the signals it carries.
type FrameDef struct {
	ID        uint32
	Name      string
	DLC       int
	Direction string // "rx" or "tx" from the controller's point of view
	CycleMS   int
	Signals   []SignalDef
}

// CANMap is the full signal database for the vehicle bus.
type CANMap struct {
	ByID   map[uint32]*FrameDef
	ByName map[string]*FrameDef
}

func (m *CANMap) FrameNames() []string {
	out := make([]string, 0, len(m.ByName))
	for k := range m.ByName {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
