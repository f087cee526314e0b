package dbw

import "dbw-control-core/track"

// Velocity is the vehicle's measured linear and angular speed.
type Velocity struct {
	Linear  float64 // m/s, forward
	Angular float64 // rad/s, yaw
}

// Update is one inbound telemetry notification applied during the drain
// phase at the start of a tick.
type Update interface {
	applyTo(*TelemetryStore)
}

type EnableUpdate bool

type WaypointsUpdate []track.Waypoint

type PoseUpdate track.Pose

type VelocityUpdate Velocity

func (u EnableUpdate) applyTo(s *TelemetryStore) {
	s.enabled = bool(u)
}

func (u WaypointsUpdate) applyTo(s *TelemetryStore) {
	s.waypoints = append(s.waypoints[:0], u...)
	s.haveWaypoints = true
}

func (u PoseUpdate) applyTo(s *TelemetryStore) {
	s.pose = track.Pose(u)
	s.havePose = true
}

func (u VelocityUpdate) applyTo(s *TelemetryStore) {
	s.velocity = Velocity(u)
	s.haveVelocity = true
}

// TelemetryStore holds the latest value of each telemetry input, tracking
// whether each has arrived at least once. It is only mutated from the
// control loop's drain step, so it needs no locking. Enable defaults to
// disabled rather than unset and does not participate in readiness.
type TelemetryStore struct {
	enabled   bool
	waypoints []track.Waypoint
	pose      track.Pose
	velocity  Velocity

	haveWaypoints bool
	havePose      bool
	haveVelocity  bool
}

func NewTelemetryStore() *TelemetryStore {
	return &TelemetryStore{}
}

// Drain applies every update queued since the previous tick, in arrival
// order, so the newest value of each type wins. Never blocks.
func (s *TelemetryStore) Drain(updates <-chan Update) {
	for {
		select {
		case u := <-updates:
			u.applyTo(s)
		default:
			return
		}
	}
}

// Ready reports whether waypoints, pose, and velocity have each been
// received at least once. The enable flag is deliberately excluded.
func (s *TelemetryStore) Ready() bool {
	return s.haveWaypoints && s.havePose && s.haveVelocity
}

func (s *TelemetryStore) Enabled() bool { return s.enabled }

func (s *TelemetryStore) Waypoints() []track.Waypoint { return s.waypoints }

func (s *TelemetryStore) Pose() track.Pose { return s.pose }

func (s *TelemetryStore) Velocity() Velocity { return s.velocity }
