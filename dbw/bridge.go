package dbw

import (
	"fmt"

	"go.einride.tech/can"

	"dbw-control-core/track"
	"dbw-control-core/utils"
)

// Frame names the bridge expects in the CAN map.
const (
	FrameEnable   = "DBW_ENABLE"
	FramePose     = "POSE"
	FrameVelocity = "VELOCITY"
	FrameWaypoint = "WAYPOINT"

	FrameSteeringCmd = "STEERING_CMD"
	FrameThrottleCmd = "THROTTLE_CMD"
	FrameBrakeCmd    = "BRAKE_CMD"
)

// Throttle and brake pedal command modes on the wire.
const (
	pedalModePercent = 2
	pedalModeTorque  = 3
)

// Bridge converts between bus frames and the controller's telemetry and
// command types. Waypoint lists arrive as a burst of indexed frames and are
// reassembled here, applied atomically only when the burst completes.
type Bridge struct {
	cmap *utils.CANMap

	enableID   uint32
	poseID     uint32
	velocityID uint32
	waypointID uint32

	pending  []track.Waypoint
	seen     []bool
	received int
}

func NewBridge(cmap *utils.CANMap) (*Bridge, error) {
	b := &Bridge{cmap: cmap}

	for _, want := range []struct {
		name string
		dst  *uint32
	}{
		{FrameEnable, &b.enableID},
		{FramePose, &b.poseID},
		{FrameVelocity, &b.velocityID},
		{FrameWaypoint, &b.waypointID},
	} {
		fd, err := cmap.FrameByName(want.name)
		if err != nil {
			return nil, fmt.Errorf("bridge: %w", err)
		}
		*want.dst = fd.ID
	}

	// TX frames must exist too; fail at startup, not on first dispatch.
	for _, name := range []string{FrameSteeringCmd, FrameThrottleCmd, FrameBrakeCmd} {
		if _, err := cmap.FrameByName(name); err != nil {
			return nil, fmt.Errorf("bridge: %w", err)
		}
	}
	return b, nil
}

// Decode turns an inbound frame into a telemetry Update. The second return
// is false for frames that are not telemetry or that only advance waypoint
// reassembly without completing a list.
func (b *Bridge) Decode(f can.Frame) (Update, bool, error) {
	switch f.ID {
	case b.enableID:
		sig, err := b.cmap.Decode(f)
		if err != nil {
			return nil, false, err
		}
		return EnableUpdate(sig["dbw_enable"] != 0), true, nil

	case b.poseID:
		sig, err := b.cmap.Decode(f)
		if err != nil {
			return nil, false, err
		}
		return PoseUpdate(track.Pose{
			X:       sig["pos_x_m"],
			Y:       sig["pos_y_m"],
			Heading: sig["heading_rad"],
		}), true, nil

	case b.velocityID:
		sig, err := b.cmap.Decode(f)
		if err != nil {
			return nil, false, err
		}
		return VelocityUpdate(Velocity{
			Linear:  sig["speed_mps"],
			Angular: sig["yaw_rate_rps"],
		}), true, nil

	case b.waypointID:
		sig, err := b.cmap.Decode(f)
		if err != nil {
			return nil, false, err
		}
		return b.collectWaypoint(sig)

	default:
		return nil, false, nil
	}
}

// collectWaypoint accumulates one frame of a waypoint burst. A frame with
// index 0 or a changed count restarts reassembly; the list is emitted once
// every index has arrived. Stale partial bursts are discarded, never
// applied.
func (b *Bridge) collectWaypoint(sig map[string]float64) (Update, bool, error) {
	idx := int(sig["wp_index"])
	count := int(sig["wp_count"])
	if count <= 0 || idx < 0 || idx >= count {
		return nil, false, fmt.Errorf("waypoint frame with index %d of count %d", idx, count)
	}

	if idx == 0 || count != len(b.pending) {
		b.pending = make([]track.Waypoint, count)
		b.seen = make([]bool, count)
		b.received = 0
	}

	b.pending[idx] = track.Waypoint{
		X:     sig["pos_x_m"],
		Y:     sig["pos_y_m"],
		Speed: sig["target_speed_mps"],
	}
	if !b.seen[idx] {
		b.seen[idx] = true
		b.received++
	}

	if b.received < count {
		return nil, false, nil
	}
	list := b.pending
	b.pending = nil
	b.seen = nil
	b.received = 0
	return WaypointsUpdate(list), true, nil
}

// EncodeCommands packs a tick's arbitration outcome into transmit frames,
// in dispatch order (steering first).
func (b *Bridge) EncodeCommands(cmds CommandSet) ([]can.Frame, error) {
	frames := make([]can.Frame, 0, 2)

	if cmds.Steering != nil {
		f, err := b.cmap.Encode(FrameSteeringCmd, map[string]float64{
			"steer_enable":         boolToFloat(cmds.Steering.Enable),
			"steer_angle_rad":      cmds.Steering.Angle,
			"steer_velocity_limit": cmds.Steering.VelocityLimit,
		})
		if err != nil {
			return nil, fmt.Errorf("encode steering: %w", err)
		}
		frames = append(frames, f)
	}

	if cmds.Throttle != nil {
		f, err := b.cmap.Encode(FrameThrottleCmd, map[string]float64{
			"throttle_enable": boolToFloat(cmds.Throttle.Enable),
			"pedal_mode":      pedalModePercent,
			"pedal_pct":       cmds.Throttle.Pedal,
		})
		if err != nil {
			return nil, fmt.Errorf("encode throttle: %w", err)
		}
		frames = append(frames, f)
	}

	if cmds.Brake != nil {
		f, err := b.cmap.Encode(FrameBrakeCmd, map[string]float64{
			"brake_enable":    boolToFloat(cmds.Brake.Enable),
			"pedal_mode":      pedalModeTorque,
			"pedal_torque_nm": cmds.Brake.Torque,
		})
		if err != nil {
			return nil, fmt.Errorf("encode brake: %w", err)
		}
		frames = append(frames, f)
	}

	return frames, nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
