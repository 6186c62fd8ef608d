package logic

// Controller nudges the throttle toward the target RPM. This is a
// deliberately simple incremental corrector, not a PID: each accepted
// crossing moves the throttle one bounded step in the direction of
// the target. The ErrorFloor keeps the step nonzero near convergence,
// trading exact settling for a small bounded oscillation.
type Controller struct {
	cfg Config

	targetRPM float64
	throttle  float64
}

// NewController creates a Controller resting at neutral with closed
// loop correction disabled.
func NewController(cfg Config) *Controller {
	return &Controller{
		cfg:      cfg,
		throttle: cfg.NeutralThrottle,
	}
}

// Correct applies one correction step toward the target. It must be
// called only on an accepted crossing. Returns the new throttle and
// whether a step was actually taken (none is when the target is 0,
// which means open loop).
func (c *Controller) Correct(estimatedRPM float64) (float64, bool) {
	if c.targetRPM == 0 {
		return c.throttle, false
	}

	step := (abs(c.targetRPM-estimatedRPM) + c.cfg.ErrorFloor) / c.cfg.StepDivisor
	if c.targetRPM > estimatedRPM {
		c.throttle += step
	} else {
		c.throttle -= step
	}
	c.throttle = c.clamp(c.throttle)
	return c.throttle, true
}

func (c *Controller) clamp(v float64) float64 {
	if v > c.cfg.MaxThrottle {
		return c.cfg.MaxThrottle
	}
	if c.cfg.Clamp == ClampSymmetric && v < c.cfg.MinThrottle {
		return c.cfg.MinThrottle
	}
	return v
}

// TargetRPM returns the current closed-loop target (0 = disabled).
func (c *Controller) TargetRPM() float64 {
	return c.targetRPM
}

// SetTargetRPM sets the closed-loop target. Setting a nonzero target
// while the servo rests at neutral bootstraps the throttle so the
// rotor starts turning and crossings begin to arrive; correction
// takes over from there.
func (c *Controller) SetTargetRPM(rpm float64) (bootstrapped bool) {
	c.targetRPM = rpm
	if rpm != 0 && c.throttle == c.cfg.NeutralThrottle {
		c.throttle = c.cfg.BootstrapThrottle
		return true
	}
	return false
}

// Throttle returns the current actuator command.
func (c *Controller) Throttle() float64 {
	return c.throttle
}

// SetThrottle sets the actuator command directly, bypassing
// correction. The next accepted crossing overrides it unless the
// target RPM is 0.
func (c *Controller) SetThrottle(v float64) {
	c.throttle = v
}

// Neutral forces the throttle to the deadband value and disables
// closed-loop correction.
func (c *Controller) Neutral() {
	c.throttle = c.cfg.NeutralThrottle
	c.targetRPM = 0
}

// AtNeutral reports whether the throttle currently rests at the
// deadband value.
func (c *Controller) AtNeutral() bool {
	return c.throttle == c.cfg.NeutralThrottle
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
