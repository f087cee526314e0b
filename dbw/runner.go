package dbw

import (
	"context"
	"fmt"
	"time"

	"dbw-control-core/utils"
)

type RunnerConfig struct {
	Interface  string
	MapPath    string
	ConfigPath string
}

// Runner owns the fixed-rate control loop and the bus endpoints. A
// background goroutine reads frames and queues decoded telemetry; the loop
// drains that queue at the top of every tick, so telemetry application and
// control computation are strictly interleaved.
type Runner struct {
	cfg    RunnerConfig
	vcfg   Config
	log    *utils.Logger
	bridge *Bridge
	ctrl   *Controller
	opt    Optimizer
	writer utils.CANWriter
	reader utils.CANReader
}

func NewRunner(ctx context.Context, cfg RunnerConfig, opt Optimizer, log *utils.Logger) (*Runner, error) {
	vcfg, err := LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cmap, err := utils.LoadCANMap(cfg.MapPath)
	if err != nil {
		return nil, fmt.Errorf("load can map: %w", err)
	}

	bridge, err := NewBridge(cmap)
	if err != nil {
		return nil, err
	}

	writer, err := utils.NewSocketCANWriter(ctx, cfg.Interface)
	if err != nil {
		return nil, err
	}

	reader, err := utils.NewSocketCANReader(ctx, cfg.Interface)
	if err != nil {
		writer.Close()
		return nil, err
	}

	return &Runner{
		cfg:    cfg,
		vcfg:   vcfg,
		log:    log,
		bridge: bridge,
		ctrl:   NewController(vcfg, opt, log),
		opt:    opt,
		writer: writer,
		reader: reader,
	}, nil
}

func (r *Runner) Close() {
	if r.reader != nil {
		_ = r.reader.Close()
	}
	if r.writer != nil {
		_ = r.writer.Close()
	}
}

// Run drives the loop until ctx is canceled. Each tick dispatches at most
// one steering command plus one of throttle/brake; ticks where the gate or
// pipeline withholds output transmit nothing.
func (r *Runner) Run(ctx context.Context) error {
	period := time.Duration(float64(time.Second) / r.vcfg.LoopHz)
	r.log.Info("Starting control loop: iface=%s rate=%.0fHz latency=%.0fms mass=%.1fkg Lf=%.2fm window=%d",
		r.cfg.Interface, r.vcfg.LoopHz, r.vcfg.ActuationLatencyS*1000,
		r.vcfg.VehicleMassKg, r.vcfg.LfM, r.vcfg.WaypointWindow)

	updates := make(chan Update, 64)
	go r.receiveLoop(ctx, updates)

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	var ticks, dispatched uint64
	for {
		select {
		case <-ctx.Done():
			r.log.Warn("Context canceled; stopping loop")
			r.log.Info("Completed. ticks=%d dispatched=%d", ticks, dispatched)
			return ctx.Err()

		case <-ticker.C:
			ticks++
			cmds := r.ctrl.Tick(updates)
			if cmds.Empty() {
				continue
			}

			frames, err := r.bridge.EncodeCommands(cmds)
			if err != nil {
				r.log.Error("Encode failed: %v", err)
				continue
			}
			for _, f := range frames {
				if err := r.writer.WriteFrame(ctx, f); err != nil {
					r.log.Critical("Transmit failed: %v", err)
					return err
				}
			}
			dispatched++

			if cmds.Steering != nil {
				r.log.Trace("TX steer=%.4frad throttle=%v brake=%v",
					cmds.Steering.Angle, cmds.Throttle != nil, cmds.Brake != nil)
			}
			if dispatched%100 == 0 {
				if s, ok := r.opt.(fmt.Stringer); ok {
					r.log.Debug("optimizer: %s", s)
				}
			}
		}
	}
}

// receiveLoop reads frames off the bus, decodes telemetry, and queues
// updates for the next tick's drain.
func (r *Runner) receiveLoop(ctx context.Context, updates chan<- Update) {
	r.log.Debug("RX loop started")
	defer r.log.Debug("RX loop stopped")

	for {
		frame, err := r.reader.ReadFrame(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			r.log.Error("RX error: %v", err)
			continue
		}

		u, ok, err := r.bridge.Decode(frame)
		if err != nil {
			r.log.Warn("RX decode: %v", err)
			continue
		}
		if !ok {
			continue
		}

		select {
		case updates <- u:
		case <-ctx.Done():
			return
		}
	}
}
