package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"focuslog/internal/config"
	"focuslog/internal/daemon"
	"focuslog/internal/database"
	"focuslog/internal/journal"
	"focuslog/internal/models"
	"focuslog/internal/tracker"
	"focuslog/pkg/detector"
	"focuslog/pkg/window"
)

var (
	version = "0.1.0"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	command := "run"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "run":
		os.Exit(runJournal())
	case "status":
		showStatus()
	case "stop":
		stopJournal()
	case "tail":
		tailJournal()
	case "version":
		fmt.Printf("focuslog version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`focuslog - Window focus journal

Usage:
  focuslog [command]

Commands:
  run                Record focus changes until interrupted (default)
  status             Show whether focuslog is running and what has focus now
  stop               Stop the running focuslog
  tail [n]           Print the last n records from today's log (default 10)
  version            Show version information
  help               Show this help message

Environment Variables:
  FOCUSLOG_DIR               Log directory (default ~/focus_logs)
  FOCUSLOG_POLL_INTERVAL_MS  Poll interval in milliseconds (10-10000)
  FOCUSLOG_ECHO              Echo records to stdout (true/false)
  FOCUSLOG_DB_PATH           Also mirror records into this SQLite file
  FOCUSLOG_PID_FILE          PID file path

Version: %s
`, version)
}

func runJournal() int {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Printf("Invalid configuration: %v", err)
		return 1
	}

	dm := daemon.New(cfg.Daemon.PIDFile)
	if err := dm.Acquire(); err != nil {
		log.Printf("Failed to start: %v", err)
		return 1
	}
	defer dm.RemovePID()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, detector.New); err != nil {
		log.Printf("Focus journal failed: %v", err)
		return 1
	}
	return 0
}

// run records focus changes until ctx is done. It returns nil on
// cancellation and the persistence error otherwise.
func run(ctx context.Context, cfg *config.Config, open tracker.Opener) error {
	hostname, err := os.Hostname()
	if err != nil {
		log.Printf("Failed to resolve hostname: %v", err)
		hostname = "unknown"
	}

	// Without a detector every sample is unknown until one can be opened
	sampler := tracker.NewOpeningSampler(open)
	defer sampler.Close()

	var opts []journal.Option
	if cfg.Journal.Echo {
		opts = append(opts, journal.WithEcho(os.Stdout))
	}
	j := journal.New(cfg.Journal.Dir, opts...)
	sinks := []tracker.Sink{j}

	if cfg.Database.Enabled() {
		db, err := database.Connect(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Initialize(); err != nil {
			return err
		}
		sinks = append(sinks, database.NewRepository(db, j.Path))
	}

	changeLogger := tracker.NewChangeLogger(hostname, sinks...)
	trackerSvc := tracker.NewService(cfg.Tracker.PollInterval, sampler, changeLogger)

	log.Printf("Starting focuslog on %s", hostname)
	log.Printf("Configuration:\n%s", cfg.String())

	err = trackerSvc.Start(ctx)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	last, _ := changeLogger.Current()
	log.Printf("focuslog stopped after %d focus changes (last: %s)", changeLogger.Recorded(), window.String(last))
	return nil
}

func stopJournal() {
	cfg := config.New()
	dm := daemon.New(cfg.Daemon.PIDFile)

	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check status: %v", err)
	}

	if !running {
		fmt.Println("focuslog is not running")
		return
	}

	fmt.Printf("Stopping focuslog (PID: %d)...\n", pid)
	if err := dm.Stop(); err != nil {
		log.Fatalf("Failed to stop focuslog: %v", err)
	}

	fmt.Println("focuslog stopped")
}

func showStatus() {
	cfg := config.New()
	dm := daemon.New(cfg.Daemon.PIDFile)
	j := journal.New(cfg.Journal.Dir)

	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check status: %v", err)
	}

	if !running {
		fmt.Println("Status: Not running")
	} else {
		fmt.Printf("Status: Running (PID: %d)\n", pid)
	}
	fmt.Printf("Poll Interval: %v\n", cfg.Tracker.PollInterval)
	fmt.Printf("Log Directory: %s\n", j.Dir())
	fmt.Printf("Today's Log: %s\n", j.CurrentPath())

	if cfg.Database.Enabled() {
		showMirrorStatus(cfg.Database.Path)
	}

	// Still show current window detection even when not running
	det, err := detector.New()
	if err != nil {
		fmt.Printf("\nCould not detect current window: %v\n", err)
		return
	}
	defer det.Close()

	sample := tracker.NewSampler(det).Sample()
	fmt.Printf("\nCurrent Window:\n")
	fmt.Printf("  Process: %s\n", window.String(sample.ProcessName))
	fmt.Printf("  Title: %s\n", window.String(sample.WindowTitle))
	fmt.Printf("  Display: %s\n", det.GetDisplayServer())

	if chain, ok := det.(interface{ GetStatus() string }); ok {
		fmt.Printf("\nDetectors:\n%s", chain.GetStatus())
	}
}

func showMirrorStatus(path string) {
	db, err := database.Connect(path)
	if err != nil {
		fmt.Printf("Database: %v\n", err)
		return
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		fmt.Printf("Database: %v\n", err)
		return
	}

	repo := database.NewRepository(db, nil)
	count, err := repo.Count()
	if err != nil {
		fmt.Printf("Database: %v\n", err)
		return
	}
	fmt.Printf("Database: %s (%d records)\n", path, count)

	latest, err := repo.GetLatest()
	if err == nil && latest != nil {
		fmt.Printf("  Latest: %s  %s\n",
			latest.Timestamp.Format(models.TimeLayout),
			window.String(latest.ProcessName),
		)
	}
}

func tailJournal() {
	n := 10
	if len(os.Args) > 2 {
		parsed, err := strconv.Atoi(os.Args[2])
		if err != nil || parsed <= 0 {
			log.Fatalf("Invalid record count: %s", os.Args[2])
		}
		n = parsed
	}

	cfg := config.New()
	j := journal.New(cfg.Journal.Dir)

	records, err := j.Tail(time.Now(), n)
	if err != nil {
		log.Fatalf("Failed to read journal: %v", err)
	}

	if len(records) == 0 {
		fmt.Printf("No focus changes recorded today (%s)\n", j.CurrentPath())
		return
	}

	for _, record := range records {
		fmt.Printf("%s  %-24s  %s\n",
			record.Time.Format(time.TimeOnly),
			window.String(record.ProcessName),
			window.String(record.WindowTitle),
		)
	}
}
