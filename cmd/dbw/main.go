package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"dbw-control-core/dbw"
	"dbw-control-core/mpc"
	"dbw-control-core/utils"
)

func main() {
	var (
		iface    = flag.String("iface", "vcan0", "SocketCAN interface name")
		mapPath  = flag.String("map", "config/can_map.csv", "Path to can_map.csv")
		cfgPath  = flag.String("config", "config/dbw.json", "Vehicle config JSON file")
		logLevel = flag.String("log", "info", "trace|debug|info|warn|error|critical")
	)
	flag.Parse()

	log, err := utils.NewFileLogger("dbw.log", utils.ParseLevel(*logLevel), true)
	if err != nil {
		_, _ = os.Stderr.WriteString("ERROR: cannot open dbw.log: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Close()

	cfg := dbw.RunnerConfig{
		Interface:  *iface,
		MapPath:    *mapPath,
		ConfigPath: *cfgPath,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner, err := dbw.NewRunner(ctx, cfg, mpc.NewSolver(mpc.DefaultConfig()), log)
	if err != nil {
		log.Critical("Startup failed: %v", err)
		os.Exit(1)
	}
	defer runner.Close()

	if err := runner.Run(ctx); err != nil && err != context.Canceled {
		log.Critical("Run failed: %v", err)
		os.Exit(1)
	}
}
