package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"

	"elevatorsim/config"
	"elevatorsim/controller"
	"elevatorsim/monitor"
	"elevatorsim/presenter"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()
	defer glog.Flush()

	cfg, err := flags.Resolve()
	if err != nil {
		glog.Exitf("Configuration: %v", err)
	}
	glog.Infof("Config: %+v", cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl := controller.NewController(cfg, presenter.NewConsole())
	ctrl.StartSimulation(ctx)

	if cfg.MonitorInterval > 0 {
		mon := monitor.NewMonitor(ctrl.RunID().String(), ctrl.Building())
		go mon.Run(ctx, cfg.MonitorInterval)
	}

	signals := make(chan os.Signal, 2)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	<-signals
	glog.Infof("Stopping, waiting for the elevator to empty (signal again to quit now)")
	ctrl.StopSimulation()

	drained := make(chan error, 1)
	go func() { drained <- ctrl.WaitIdle(ctx) }()

	select {
	case <-drained:
		glog.Infof("Final state: %+v", ctrl.Building().Stats())
	case <-signals:
		glog.Warningf("Quitting with passengers still in the building")
	}
}
