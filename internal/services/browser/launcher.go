package browser

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/common"
	"github.com/ternarybob/indago/internal/interfaces"
)

// pathEngines are the binaries probed on PATH after the configured
// path and chromedp's own discovery have been tried, in order.
var pathEngines = []string{"chromium", "chromium-browser", "google-chrome", "firefox"}

// launchCandidate is one engine configuration to try.
type launchCandidate struct {
	Engine   string
	ExecPath string // empty means chromedp's default discovery
}

// Launcher starts browser sessions, walking an ordered list of engine
// configurations until one launches and passes the startup probe.
type Launcher struct {
	config *common.BrowserConfig
	logger arbor.ILogger

	// start is swapped out by tests to avoid real browser processes
	start func(ctx context.Context, candidate launchCandidate) (*Session, error)
}

// NewLauncher creates a session launcher
func NewLauncher(config *common.BrowserConfig, logger arbor.ILogger) *Launcher {
	l := &Launcher{
		config: config,
		logger: logger,
	}
	l.start = l.startBrowser
	return l
}

var _ interfaces.SessionLauncher = (*Launcher)(nil)

// candidates builds the ordered launch list: the configured binary
// first, then chromedp's default discovery, then known binaries found
// on PATH.
func (l *Launcher) candidates() []launchCandidate {
	var list []launchCandidate
	seen := make(map[string]bool)

	if l.config.ExecPath != "" {
		list = append(list, launchCandidate{Engine: "configured", ExecPath: l.config.ExecPath})
		seen[l.config.ExecPath] = true
	}

	list = append(list, launchCandidate{Engine: "chromium"})

	for _, engine := range pathEngines {
		path, err := exec.LookPath(engine)
		if err != nil || seen[path] {
			continue
		}
		seen[path] = true
		list = append(list, launchCandidate{Engine: engine, ExecPath: path})
	}

	return list
}

// Launch tries each candidate in order and returns the first session
// that passes the startup probe. When every candidate fails the
// returned error is a *LaunchError aggregating all causes.
func (l *Launcher) Launch(ctx context.Context) (interfaces.BrowserSession, error) {
	launchErr := &LaunchError{}

	for _, candidate := range l.candidates() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		session, err := l.start(ctx, candidate)
		if err != nil {
			l.logger.Warn().
				Err(err).
				Str("engine", candidate.Engine).
				Str("exec_path", candidate.ExecPath).
				Msg("Browser launch attempt failed")
			launchErr.Attempts = append(launchErr.Attempts, LaunchAttempt{
				Engine:   candidate.Engine,
				ExecPath: candidate.ExecPath,
				Err:      err,
			})
			continue
		}

		l.logger.Info().
			Str("engine", candidate.Engine).
			Str("exec_path", candidate.ExecPath).
			Msg("Browser session launched")
		return session, nil
	}

	return nil, launchErr
}

// startBrowser launches one engine configuration and probes it with a
// blank navigation before handing the session over.
func (l *Launcher) startBrowser(ctx context.Context, candidate launchCandidate) (*Session, error) {
	opts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", l.config.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(l.config.UserAgent),
		chromedp.WindowSize(1920, 1080),
	)
	if candidate.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(candidate.ExecPath))
	}

	// The allocator is rooted in Background so the session outlives the
	// launch call; Session.Close is the only teardown path.
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	probeTimeout := l.config.LaunchTimeout
	if probeTimeout <= 0 {
		probeTimeout = 30 * time.Second
	}
	probeCtx, probeCancel := context.WithTimeout(tabCtx, probeTimeout)
	defer probeCancel()

	if err := chromedp.Run(probeCtx, chromedp.Navigate("about:blank")); err != nil {
		tabCancel()
		allocCancel()
		return nil, fmt.Errorf("startup probe failed: %w", err)
	}

	return &Session{
		engine:      candidate.Engine,
		tabCtx:      tabCtx,
		tabCancel:   tabCancel,
		allocCancel: allocCancel,
		logger:      l.logger,
	}, nil
}
