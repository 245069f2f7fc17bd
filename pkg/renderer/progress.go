package renderer

import (
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// progress logs how many tasks remain and an ETA from the mean task time.
// It is driven from the collecting goroutine only.
type progress struct {
	total       int
	done        int
	lastPercent int
	start       time.Time
	logger      core.Logger
}

func newProgress(total int, logger core.Logger) *progress {
	return &progress{total: total, lastPercent: -1, start: time.Now(), logger: logger}
}

// taskDone records a finished task, logging at most once per percent
func (p *progress) taskDone() {
	p.done++
	percent := p.done * 100 / p.total
	if percent == p.lastPercent && p.done != p.total {
		return
	}
	p.lastPercent = percent

	remaining := p.total - p.done
	eta := p.eta()
	p.logger.Infof("Remaining: %4d | ETA: %4ds", remaining, int(eta.Seconds()))
}

// eta extrapolates the mean time per finished task over the remaining ones
func (p *progress) eta() time.Duration {
	if p.done == 0 {
		return 0
	}
	perTask := time.Since(p.start) / time.Duration(p.done)
	return perTask * time.Duration(p.total-p.done)
}
