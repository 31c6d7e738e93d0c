package handlers

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/imamik/imageboot/internal/bootstrap"
	"github.com/imamik/imageboot/internal/config"
	"github.com/imamik/imageboot/internal/platform/storage"
	"github.com/imamik/imageboot/internal/readiness"
)

// Factory function variables - replaced in tests.
var (
	newDownloader = func(ctx context.Context, cfg *config.Settings) (bootstrap.Downloader, error) {
		return storage.NewClient(ctx, cfg.StorageEndpoint, cfg.StorageRegion)
	}

	newGate = func(cfg *config.Settings) bootstrap.ReadinessGate {
		return readiness.NewGate(cfg.RunnerTool)
	}

	newScheduler = func() bootstrap.ShutdownScheduler {
		return &bootstrap.Scheduler{Power: bootstrap.SystemPower{}, Logf: log.Printf}
	}

	detectOS = readiness.DetectOS
)

// downloaderFunc adapts a function to the Downloader interface.
type downloaderFunc func(ctx context.Context, source, dir string) error

func (f downloaderFunc) Download(ctx context.Context, source, dir string) error {
	return f(ctx, source, dir)
}

// Run executes the bootstrap: resolve configuration from metadata,
// await readiness, run the customization script, clean up, and power
// off. The machine is shut down on every path; the returned error is
// non-nil only for configuration mistakes that prevent the run from
// starting at all (an unreadable --config file).
func Run(ctx context.Context, configPath string) error {
	cfg := config.Load()
	if configPath != "" {
		if err := cfg.ApplyFile(configPath); err != nil {
			return fmt.Errorf("run aborted: %w", err)
		}
	}

	res := newResolver(cfg)
	scheduler := newScheduler()

	source, err := res.Resolve(ctx, config.KeySourcesPath)
	if err != nil {
		// Without a sources path there is nothing to download or run,
		// but the machine still has to power off so the workflow's
		// serial tail terminates.
		log.Printf("BuildFailed: could not resolve %s from metadata: %v.", config.KeySourcesPath, err)
		scheduler.DrainAndShutdown(config.DefaultShutdownTimer)
		return nil
	}

	drain := resolveDrain(ctx, res)

	downloader, err := newDownloader(ctx, cfg)
	if err != nil {
		// Defer the failure into the pipeline so it is classified and
		// logged as an acquisition failure like any other.
		derr := err
		downloader = downloaderFunc(func(context.Context, string, string) error {
			return derr
		})
	}

	orchestrator := &bootstrap.Orchestrator{
		OSID:  detectOS(),
		Drain: drain,
		Gate:  newGate(cfg),
		Pipeline: &bootstrap.ScriptPipeline{
			Source:      source,
			WorkDir:     cfg.WorkDir,
			EntryScript: cfg.EntryScript,
			Downloader:  downloader,
			Runner:      &bootstrap.ShellRunner{Dir: cfg.WorkDir},
			Logf:        log.Printf,
		},
		Cleanup: &bootstrap.Cleaner{
			Paths: cleanupPaths(cfg),
			Logf:  log.Printf,
		},
		Shutdown: scheduler,
		Logf:     log.Printf,
	}

	orchestrator.Run(ctx)
	return nil
}

// cleanupPaths lists everything scrubbed before the snapshot: cached
// credentials, the downloaded bundle, and the bootstrap's own wrapper
// script.
func cleanupPaths(cfg *config.Settings) []string {
	paths := make([]string, 0, len(cfg.CredentialPaths)+2)
	paths = append(paths, cfg.CredentialPaths...)
	paths = append(paths, cfg.WorkDir, cfg.StartupScript)
	return paths
}

// resolveDrain reads the shutdown timer attribute, falling back to the
// default when it cannot be resolved or parsed.
func resolveDrain(ctx context.Context, res resolver) time.Duration {
	v, err := res.Resolve(ctx, config.KeyShutdownTimer)
	if err != nil {
		log.Printf("could not resolve %s, using default %v: %v", config.KeyShutdownTimer, config.DefaultShutdownTimer, err)
		return config.DefaultShutdownTimer
	}

	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		log.Printf("invalid %s value %q, using default %v", config.KeyShutdownTimer, v, config.DefaultShutdownTimer)
		return config.DefaultShutdownTimer
	}

	return time.Duration(secs) * time.Second
}
