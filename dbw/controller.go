package dbw

import (
	"math"

	"dbw-control-core/track"
	"dbw-control-core/utils"
)

// Controller runs the per-tick pipeline: drain telemetry, transform the
// waypoint window into the vehicle frame, fit the path polynomial, project
// the state over the actuation latency, solve, and arbitrate. All failures
// are local to the tick; a failed tick withholds output and the loop moves
// on.
type Controller struct {
	cfg       Config
	log       *utils.Logger
	store     *TelemetryStore
	predictor KinematicPredictor
	optimizer Optimizer
	arbiter   ActuationArbiter

	// prev is last tick's dispatched action, feeding latency compensation.
	// Zero value on the first tick is the required neutral default.
	prev     Actuation
	lastGood Actuation
	failures int
}

func NewController(cfg Config, opt Optimizer, log *utils.Logger) *Controller {
	return &Controller{
		cfg:   cfg,
		log:   log,
		store: NewTelemetryStore(),
		predictor: KinematicPredictor{
			Latency: cfg.ActuationLatencyS,
			Lf:      cfg.LfM,
		},
		optimizer: opt,
		arbiter:   NewActuationArbiter(cfg),
	}
}

// Store exposes the telemetry store for inspection.
func (c *Controller) Store() *TelemetryStore { return c.store }

// Tick executes one control cycle. It always drains pending updates first;
// telemetry applied here is visible to this tick's computation and no
// earlier one. The returned CommandSet is empty whenever the safety gate or
// any pipeline stage withholds output.
func (c *Controller) Tick(updates <-chan Update) CommandSet {
	c.store.Drain(updates)

	if !c.store.Ready() {
		c.log.Debug("tick withheld: telemetry not ready")
		return CommandSet{}
	}
	if !c.store.Enabled() {
		c.log.Trace("tick withheld: drive-by-wire disabled")
		return CommandSet{}
	}

	act, ok := c.compute()
	if !ok {
		return CommandSet{}
	}

	cmds := c.arbiter.Arbitrate(act, c.store.Enabled(), c.store.Ready())
	if !cmds.Empty() {
		c.prev = act
	}
	return cmds
}

// compute runs transform, fit, latency compensation, and the optimizer.
// The second return is false when this tick must withhold actuation.
func (c *Controller) compute() (Actuation, bool) {
	wps := c.store.Waypoints()
	pose := c.store.Pose()
	speed := c.store.Velocity().Linear

	closest := track.ClosestIndex(wps, pose)
	if closest < 0 {
		c.log.Debug("tick withheld: empty waypoint list")
		return Actuation{}, false
	}

	// Window clamped to what the list actually holds; degree degrades with
	// it so the fit never consumes more points than exist.
	end := closest + c.cfg.WaypointWindow
	if end > len(wps) {
		end = len(wps)
	}
	window := wps[closest:end]

	degree := c.cfg.FitDegree
	if degree > len(window)-1 {
		degree = len(window) - 1
	}
	if degree < 1 {
		c.log.Debug("tick withheld: %d waypoints cannot support a fit", len(window))
		return Actuation{}, false
	}

	local := track.ToLocalFrame(window, pose)
	coeffs, err := track.Fit(local, degree)
	if err != nil {
		c.log.Warn("tick withheld: %v", err)
		return Actuation{}, false
	}

	// Vehicle sits at the local origin, so the polynomial's constant term
	// is the cross-track error and its slope gives the heading error.
	cte := track.Eval(coeffs, 0)
	headingErr := -math.Atan(coeffs[1])

	state := c.predictor.Predict(c.prev, speed, cte, headingErr)

	if sr, ok := c.optimizer.(SpeedReferenced); ok {
		sr.SetTargetSpeed(window[0].Speed)
	}

	act, err := c.optimizer.Solve(state.Vector(), coeffs)
	if err != nil {
		return c.fallback(err, speed), true
	}

	c.lastGood = act
	c.failures = 0
	return act, true
}

// fallback applies the optimizer-failure policy: hold the last good command
// for up to HoldTicks consecutive failures, then command straight-ahead
// steering with a controlled deceleration until the optimizer recovers.
func (c *Controller) fallback(cause error, speed float64) Actuation {
	c.failures++
	if c.failures <= c.cfg.HoldTicks {
		c.log.Warn("optimizer failed (%d consecutive), holding last command: %v", c.failures, cause)
		return c.lastGood
	}
	c.log.Error("optimizer failed (%d consecutive), commanding controlled stop: %v", c.failures, cause)
	decel := -c.cfg.FallbackDecelMPS2
	if speed <= 0 {
		decel = 0
	}
	return Actuation{Steering: 0, Acceleration: decel}
}
