// Command netft polls an ATI Net F/T sensor, records calibrated
// readings to SQLite, and serves them over a small HTTP API.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/banshee-data/netft/internal/api"
	"github.com/banshee-data/netft/internal/config"
	"github.com/banshee-data/netft/internal/ftstore"
	"github.com/banshee-data/netft/internal/monitoring"
	"github.com/banshee-data/netft/internal/netft"
)

var (
	host            = flag.String("host", "", "Sensor IP address or hostname (required unless set in -config)")
	udpPort         = flag.Int("udp-port", 0, "RDT streaming UDP port (default 49152)")
	tcpPort         = flag.Int("tcp-port", 0, "Calibration query TCP port (default 49151)")
	timeout         = flag.Duration("timeout", 0, "Response timeout (default 2s)")
	countsPerForce  = flag.Float64("counts-per-force", 0, "Raw counts per force unit")
	countsPerTorque = flag.Float64("counts-per-torque", 0, "Raw counts per torque unit")
	configPath      = flag.String("config", "", "Path to JSON config file")
	interval        = flag.Duration("interval", 0, "Poll interval (default 100ms)")
	dbPath          = flag.String("db", "", "Path to readings database")
	listen          = flag.String("listen", ":8080", "HTTP listen address")
	calibrate       = flag.Bool("calibrate", false, "Derive scale factors from a live calibration query")
	biasOnStart     = flag.Bool("bias", false, "Send a software bias command before polling")
	sessionNote     = flag.String("note", "", "Note stored with the recording session")
	migrationsDir   = flag.String("migrations", "", "Apply schema migrations from this directory before starting")
	migrateAction   = flag.String("migrate", "", "Run a migration action (up, down, version) against -db and exit")
)

// resolveConfig merges the config file (if any) with flag overrides.
func resolveConfig() (netft.Config, time.Duration, string, error) {
	fileCfg := &config.SensorConfig{}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return netft.Config{}, 0, "", err
		}
		fileCfg = loaded
	}

	cfg, err := fileCfg.ClientConfig()
	if err != nil {
		return netft.Config{}, 0, "", err
	}
	if *host != "" {
		cfg.Host = *host
	}
	if *udpPort != 0 {
		cfg.UDPPort = *udpPort
	}
	if *tcpPort != 0 {
		cfg.TCPPort = *tcpPort
	}
	if *timeout != 0 {
		cfg.Timeout = *timeout
	}
	if *countsPerForce != 0 {
		cfg.Scale.CountsPerForce = *countsPerForce
	}
	if *countsPerTorque != 0 {
		cfg.Scale.CountsPerTorque = *countsPerTorque
	}

	pollInterval, err := fileCfg.PollIntervalDuration()
	if err != nil {
		return netft.Config{}, 0, "", err
	}
	if *interval != 0 {
		pollInterval = *interval
	}

	path := fileCfg.DBPathOrDefault()
	if *dbPath != "" {
		path = *dbPath
	}

	return cfg, pollInterval, path, nil
}

func main() {
	flag.Parse()

	cfg, pollInterval, path, err := resolveConfig()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	if *migrateAction != "" {
		dir := *migrationsDir
		if dir == "" {
			dir = "migrations"
		}
		os.Exit(ftstore.RunMigrateCommand(*migrateAction, path, dir))
	}

	if *calibrate {
		// Scale factors come from a live calibration query instead of
		// static configuration. New still validates them, so seed
		// placeholders to get a client for the TCP exchange.
		calCfg := cfg
		calCfg.Scale = netft.ScaleFactors{CountsPerForce: 1, CountsPerTorque: 1}
		calClient, err := netft.New(calCfg)
		if err != nil {
			log.Fatalf("failed to construct client: %v", err)
		}
		info, err := calClient.ReadCalibrationInfo()
		calClient.Close()
		if err != nil {
			log.Fatalf("calibration query failed: %v", err)
		}
		log.Printf("calibration: %s", info.Summary())

		scale, err := info.DerivedScaleFactors()
		if err != nil {
			log.Fatalf("calibration unusable: %v", err)
		}
		cfg.Scale = scale
	}

	client, err := netft.New(cfg)
	if err != nil {
		log.Fatalf("failed to construct client: %v", err)
	}
	defer client.Close()

	store, err := ftstore.Open(path)
	if err != nil {
		log.Fatalf("failed to open readings database: %v", err)
	}
	defer store.Close()

	if *migrationsDir != "" {
		if err := store.MigrateUp(*migrationsDir); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}

	session, err := store.CreateSession(*sessionNote)
	if err != nil {
		log.Fatalf("failed to create session: %v", err)
	}
	log.Printf("recording session %s at %s every %s", session, cfg.Host, pollInterval)

	if *biasOnStart {
		// Best-effort: the command has no acknowledgement, so a send
		// failure is logged and polling proceeds.
		if err := client.Bias(); err != nil {
			monitoring.Logf("bias command failed: %v", err)
		} else {
			log.Print("sent software bias command")
		}
	}

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Poll loop: one read per tick, errors logged and skipped.
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Print("poll loop terminated")
				return
			case <-ticker.C:
				raw, err := client.ReadRawCounts()
				if err != nil {
					monitoring.Logf("read failed: %v", err)
					continue
				}
				reading := raw.Scale(client.ScaleFactors())
				if err := store.RecordReading(session, time.Now().UTC(), raw, reading); err != nil {
					monitoring.Logf("record failed: %v", err)
				}
			}
		}
	}()

	// HTTP server goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()

		mux := api.NewServer(client, store).ServeMux()
		store.AttachAdminRoutes(mux)

		server := &http.Server{
			Addr:    *listen,
			Handler: api.LoggingMiddleware(mux),
		}

		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("failed to start server: %v", err)
			}
		}()

		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()

	wg.Wait()
	log.Print("shutdown complete")
}
