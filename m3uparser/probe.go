package m3uparser

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	pb "github.com/cheggaaa/pb/v3"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultProbeDelay is the pause between two probe starts.
const DefaultProbeDelay = 200 * time.Millisecond

// Result - Verdict of one probe.
type Result struct {
	Entry Entry
	Alive bool
}

// Prober - Checks which stream URLs answer. Zero values are replaced with
// defaults: one probe at a time, DefaultProbeDelay between starts and
// DefaultTimeout per request. A negative Delay disables pacing.
type Prober struct {
	Client      *http.Client
	UserAgent   string
	Timeout     time.Duration
	Concurrency int
	Delay       time.Duration
	Logger      log.FieldLogger

	// ProgressBar draws a pb bar on ProgressOutput (stderr when nil).
	ProgressBar    bool
	ProgressOutput io.Writer
}

func (p *Prober) withDefaults() Prober {
	c := *p
	if c.Client == nil {
		c.Client = http.DefaultClient
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 1
	}
	if c.Delay == 0 {
		c.Delay = DefaultProbeDelay
	}
	if c.Logger == nil {
		c.Logger = log.StandardLogger()
	}
	if c.ProgressOutput == nil {
		c.ProgressOutput = os.Stderr
	}
	return c
}

// Probe - Reports whether url answers 200 or 206 within the timeout.
// The body is never read. Every failure counts as not alive.
func (p *Prober) Probe(ctx context.Context, url string) bool {
	c := p.withDefaults()
	return c.probe(ctx, url)
}

func (p *Prober) probe(ctx context.Context, url string) bool {
	resp, cancel, err := get(ctx, p.Client, url, p.UserAgent, p.Timeout)
	if err != nil {
		p.Logger.Debugf("probe %s: %v", url, err)
		return false
	}
	defer cancel()
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusPartialContent
}

// ProbeAll - Probes every entry and returns the verdicts in input order.
// Once ctx is done no further probes start and the remaining entries are
// reported as not alive.
func (p *Prober) ProbeAll(ctx context.Context, entries []Entry) []Result {
	c := p.withDefaults()
	results := make([]Result, len(entries))
	for i, e := range entries {
		results[i].Entry = e
	}

	var limiter *rate.Limiter
	if c.Delay > 0 {
		limiter = rate.NewLimiter(rate.Every(c.Delay), 1)
	}

	var bar *pb.ProgressBar
	if c.ProgressBar {
		bar = pb.New(len(entries))
		bar.SetWriter(c.ProgressOutput)
		bar.Start()
		defer bar.Finish()
	}

	var g errgroup.Group
	g.SetLimit(c.Concurrency)
	total := len(entries)
	for i := range entries {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				break
			}
		} else if ctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			ok := c.probe(ctx, results[i].Entry.URL)
			results[i].Alive = ok
			c.Logger.Infof("[%d/%d] %s %s", i+1, total, verdict(ok), results[i].Entry.Name)
			if bar != nil {
				bar.Increment()
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Alive - Entries whose probe succeeded, in input order.
func (p *Prober) Alive(ctx context.Context, entries []Entry) []Entry {
	var alive []Entry
	for _, r := range p.ProbeAll(ctx, entries) {
		if r.Alive {
			alive = append(alive, r.Entry)
		}
	}
	return alive
}

func verdict(ok bool) string {
	if ok {
		return "OK"
	}
	return "BAD"
}
