// Command clickreplay loads an HTML page, installs the activity tracker on it
// and clicks elements by id, posting activity to a running sink.
//
//	clickreplay -page listings.html -path /listings -click view-more,save
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dhima/activity-logger/internal/logging"
	"github.com/dhima/activity-logger/pkg/config"
	"github.com/dhima/activity-logger/pkg/dom"
	"github.com/dhima/activity-logger/pkg/tracker"
	"go.uber.org/zap"
)

// clickList collects -click values; each may be a comma-separated list.
type clickList []string

func (c *clickList) String() string { return strings.Join(*c, ",") }

func (c *clickList) Set(v string) error {
	for _, id := range strings.Split(v, ",") {
		if id = strings.TrimSpace(id); id != "" {
			*c = append(*c, id)
		}
	}
	return nil
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}
	cfg := config.FromEnv()

	logger, err := logging.New(logging.Options{
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
		Encoding:    cfg.LogEncoding,
	})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := run(os.Args[1:], cfg, logger); err != nil {
		logger.Fatal("click replay failed", zap.Error(err))
	}
}

func run(args []string, cfg config.App, logger logging.Logger) error {
	fs := flag.NewFlagSet("clickreplay", flag.ContinueOnError)
	page := fs.String("page", "", "HTML page to load (- for stdin)")
	path := fs.String("path", "/", "page path and query the clicks happen on")
	origin := fs.String("origin", cfg.ActivityOrigin, "origin the activity endpoint is resolved against")
	trackPageViews := fs.Bool("track-page-views", cfg.TrackPageViews, "report a page view when the tracker is installed")
	timeout := fs.Duration("timeout", 10*time.Second, "per-request HTTP timeout")
	var clicks clickList
	fs.Var(&clicks, "click", "element id to click; repeatable or comma-separated")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *page == "" {
		return errors.New("-page is required")
	}

	src, err := openPage(*page)
	if err != nil {
		return err
	}
	defer src.Close()

	loc, err := dom.ParseLocation(strings.TrimRight(*origin, "/") + *path)
	if err != nil {
		return fmt.Errorf("invalid origin or path: %w", err)
	}
	doc, err := dom.ParseDocument(src, loc)
	if err != nil {
		return fmt.Errorf("failed to parse page: %w", err)
	}

	reporter := tracker.NewReporter(&http.Client{Timeout: *timeout}, logger)
	tracker.Init(doc, reporter, tracker.Options{TrackPageViews: *trackPageViews})

	var missing []string
	for _, id := range clicks {
		target := doc.Root.FindByID(id)
		if target == nil {
			logger.Warn("element not found", zap.String("id", id))
			missing = append(missing, id)
			continue
		}
		doc.Click(target)
	}

	reporter.Wait()
	logger.Info("click replay finished",
		zap.Int("clicked", len(clicks)-len(missing)),
		zap.String("endpoint", loc.Path))

	if len(missing) > 0 {
		return fmt.Errorf("elements not found: %s", strings.Join(missing, ", "))
	}
	return nil
}

func openPage(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return f, nil
}
