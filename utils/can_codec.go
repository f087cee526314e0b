package utils

import (
	"fmt"
	"math"

	"go.einride.tech/can"
)

// Encode packs physical signal values into a transmit-ready frame. Signals
// absent from values fall back to their map defaults; everything is clamped
// to the signal's physical range before packing.
func (m *CANMap) Encode(frameName string, values map[string]float64) (can.Frame, error) {
	fd, err := m.FrameByName(frameName)
	if err != nil {
		return can.Frame{}, err
	}
	if fd.DLC <= 0 || fd.DLC > 8 {
		return can.Frame{}, fmt.Errorf("frame %s has invalid DLC %d", fd.Name, fd.DLC)
	}

	var payload uint64
	for _, s := range fd.Signals {
		v, ok := values[s.Name]
		if !ok {
			v = s.Default
		}
		v = clamp(v, s.Min, s.Max)

		raw := int64(math.Round((v - s.Offset) / s.Factor))
		raw = clampRaw(raw, s.BitLength, s.Signed)
		payload = setBits(payload, s.StartBit, s.BitLength, rawToUnsigned(raw, s.BitLength))
	}

	var f can.Frame
	f.ID = fd.ID
	f.Length = uint8(fd.DLC)
	for i := 0; i < fd.DLC; i++ {
		f.Data[i] = byte(payload >> (8 * i))
	}
	return f, nil
}

// Decode unpacks a received frame into physical signal values keyed by
// signal name. Unknown frame IDs are an error; callers filter first.
func (m *CANMap) Decode(f can.Frame) (map[string]float64, error) {
	fd, err := m.FrameByID(f.ID)
	if err != nil {
		return nil, err
	}
	if int(f.Length) < fd.DLC {
		return nil, fmt.Errorf("frame 0x%X expects DLC %d, got %d", f.ID, fd.DLC, f.Length)
	}

	var payload uint64
	for i := 0; i < fd.DLC && i < 8; i++ {
		payload |= uint64(f.Data[i]) << (8 * i)
	}

	out := make(map[string]float64, len(fd.Signals))
	for _, s := range fd.Signals {
		raw := unsignedToRaw(getBits(payload, s.StartBit, s.BitLength), s.BitLength, s.Signed)
		out[s.Name] = float64(raw)*s.Factor + s.Offset
	}
	return out, nil
}
