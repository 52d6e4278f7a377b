package registry

import (
	"sync"

	"golang.org/x/time/rate"

	apierrors "apistake/core/errors"
	"apistake/observability"
)

// fishermanGate rate-limits per-fisherman report submissions, mirroring
// the precheck-before-mutate shape of a heartbeat abuse guard: the
// limiter is consulted before any state is touched, so a rejected
// report never leaves a partial write behind. Each fisherman gets an
// independent token bucket, allocated lazily on first report.
type fishermanGate struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

func newFishermanGate(limit rate.Limit, burst int) *fishermanGate {
	return &fishermanGate{limit: limit, burst: burst, limiters: make(map[string]*rate.Limiter)}
}

// Allow reports whether account may submit another report right now,
// consuming a token if so.
func (g *fishermanGate) Allow(account string) bool {
	g.mu.Lock()
	l, ok := g.limiters[account]
	if !ok {
		l = rate.NewLimiter(g.limit, g.burst)
		g.limiters[account] = l
	}
	g.mu.Unlock()
	return l.Allow()
}

// precheck wraps Allow with the engine's sentinel error, recording a
// throttle metric against method (e.g. "submit_project_usage") on
// rejection.
func (g *fishermanGate) precheck(method, account string) error {
	if !g.Allow(account) {
		observability.ModuleMetrics().RecordThrottle(method, "fisherman_rate_limit")
		return apierrors.ErrFishermanRateLimited
	}
	return nil
}
