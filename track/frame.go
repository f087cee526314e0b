package track

import "math"

// ToLocalFrame re-expresses world-frame waypoints in the vehicle frame:
// translate by the vehicle position, then rotate by the negative heading.
// The vehicle ends up at the origin facing local +x. Target speeds are
// carried through unchanged.
func ToLocalFrame(world []Waypoint, pose Pose) []Waypoint {
	sin, cos := math.Sincos(-pose.Heading)
	local := make([]Waypoint, len(world))
	for i, wp := range world {
		dx := wp.X - pose.X
		dy := wp.Y - pose.Y
		local[i] = Waypoint{
			X:     dx*cos - dy*sin,
			Y:     dx*sin + dy*cos,
			Speed: wp.Speed,
		}
	}
	return local
}
