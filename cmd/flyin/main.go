// Command flyin routes drones across a topology and prints the turn-by-
// turn movement transcript.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Edugs94/fly-in/internal/config"
	"github.com/Edugs94/fly-in/internal/estimator"
	"github.com/Edugs94/fly-in/internal/mapfile"
	"github.com/Edugs94/fly-in/internal/reservation"
	"github.com/Edugs94/fly-in/internal/route"
	"github.com/Edugs94/fly-in/internal/teg"
	"github.com/Edugs94/fly-in/internal/telemetry"
	"github.com/Edugs94/fly-in/internal/topology"
	"github.com/Edugs94/fly-in/internal/transcript"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "route":
		err = runRoute(os.Args[2:])
	case "validate":
		err = runValidate(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "flyin: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: flyin <route|validate|serve> [flags] <map.yaml>")
}

// pipeline runs the full engine: load, estimate horizon, build the TEG,
// assemble routes, and emit the transcript, logging each stage via
// logger the way the teacher pack's forwarding daemon logs its stages.
func pipeline(logger *logrus.Logger, mapPath string) (*topology.Topology, *teg.Graph, *route.Schedule, *route.Stats, []string, error) {
	start := time.Now()
	topo, err := mapfile.Load(mapPath)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}
	logger.WithFields(logrus.Fields{"hubs": len(topo.HubOrder), "connections": len(topo.Connections)}).Info("loaded map file")

	startHub, _ := topo.StartHub()
	endHub, _ := topo.EndHub()
	if !estimator.HasPath(topo) {
		return nil, nil, nil, nil, nil, &estimator.UnreachableTopologyError{Start: startHub.Name, End: endHub.Name}
	}

	horizon := estimator.Horizon(topo)
	logger.WithField("horizon", horizon).Info("computed horizon")

	g := teg.Build(topo, horizon)
	logger.WithField("nodes", g.NumNodes()).Info("built time-expanded graph")

	tracker := reservation.New()
	schedule, stats, err := route.Assign(topo, g, tracker)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}
	logger.WithFields(logrus.Fields{
		"drones":            topo.NbDrones,
		"last_arrival_turn": stats.LastArrivalTurn,
	}).Info("assembled schedule")

	lines := transcript.Emit(g, schedule)
	logger.WithFields(logrus.Fields{
		"lines":   len(lines),
		"elapsed": time.Since(start),
	}).Info("emitted transcript")

	return topo, g, schedule, stats, lines, nil
}

func runRoute(args []string) error {
	fs := flag.NewFlagSet("route", flag.ExitOnError)
	configPath := fs.String("config", "", "path to a TOML config file")
	outPath := fs.String("out", "", "write transcript to this file instead of stdout")
	summary := fs.Bool("summary", false, "print schedule statistics after the transcript")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("route requires a map file argument")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger, err := telemetry.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}

	_, _, _, stats, lines, err := pipeline(logger, fs.Arg(0))
	if err != nil {
		return err
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("creating output file %s: %w", *outPath, err)
		}
		defer f.Close()
		out = f
	}
	fmt.Fprintln(out, strings.Join(lines, "\n"))

	if *summary {
		fmt.Fprintf(out, "last_arrival_turn=%d priority_entries=%d\n", stats.LastArrivalTurn, stats.TotalPriorityEntries)
	}
	return nil
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("validate requires a map file argument")
	}

	topo, err := mapfile.Load(fs.Arg(0))
	if err != nil {
		return err
	}

	zoneCounts := map[topology.ZoneType]int{}
	for _, name := range topo.HubOrder {
		zoneCounts[topo.Hubs[name].Zone]++
	}

	reachable := estimator.HasPath(topo)
	fmt.Printf("hubs: %d\n", len(topo.HubOrder))
	fmt.Printf("connections: %d\n", len(topo.Connections))
	fmt.Printf("nb_drones: %d\n", topo.NbDrones)
	fmt.Printf("zones: normal=%d blocked=%d restricted=%d priority=%d\n",
		zoneCounts[topology.ZoneNormal], zoneCounts[topology.ZoneBlocked],
		zoneCounts[topology.ZoneRestricted], zoneCounts[topology.ZonePriority])
	fmt.Printf("reachable: %v\n", reachable)
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "path to a TOML config file")
	metricsAddr := fs.String("metrics-addr", "", "override the configured Prometheus listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("serve requires a map file argument")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
	}

	logger, err := telemetry.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}

	_, _, _, stats, lines, err := pipeline(logger, fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Println(strings.Join(lines, "\n"))

	collector, err := telemetry.NewCollector(nil)
	if err != nil {
		return err
	}
	collector.RunsTotal.WithLabelValues("success").Inc()
	collector.LastArrivalTurn.Set(float64(stats.LastArrivalTurn))
	collector.PriorityEntriesTotal.Add(float64(stats.TotalPriorityEntries))

	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	server := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.WithField("addr", cfg.Metrics.Addr).Info("serving /metrics")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("metrics server exited")
		}
	}()

	<-signalChan
	logger.Info("received signal, shutting down")
	return nil
}
