package track

import "math"

// Waypoint is one point of the reference path with its target speed.
type Waypoint struct {
	X     float64
	Y     float64
	Speed float64 // target speed at this point, m/s
}

// Pose is the vehicle's world-frame position and heading.
type Pose struct {
	X       float64
	Y       float64
	Heading float64 // rad, world frame
}

// ClosestIndex returns the index of the waypoint nearest to the pose.
// Returns -1 for an empty list.
func ClosestIndex(wps []Waypoint, pose Pose) int {
	best := -1
	bestDist := math.Inf(1)
	for i, wp := range wps {
		dx := wp.X - pose.X
		dy := wp.Y - pose.Y
		d := dx*dx + dy*dy
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
