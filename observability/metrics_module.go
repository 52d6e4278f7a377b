package observability

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type moduleMetrics struct {
	requests  *prometheus.CounterVec
	errors    *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	throttles *prometheus.CounterVec
}

var (
	moduleMetricsOnce sync.Once
	moduleRegistry    *moduleMetrics

	stakingMetricsOnce sync.Once
	stakingRegistry    *StakingMetrics

	registryMetricsOnce sync.Once
	registryRegistry    *RegistryMetrics
)

// ModuleMetrics returns the lazily-initialised extrinsic metrics
// registry used to record dispatch activity across every package the
// runtime wires together (stake, provider, claim, registry alike).
func ModuleMetrics() *moduleMetrics {
	moduleMetricsOnce.Do(func() {
		moduleRegistry = &moduleMetrics{
			requests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "apistake",
				Subsystem: "extrinsic",
				Name:      "calls_total",
				Help:      "Total extrinsic calls segmented by method and outcome.",
			}, []string{"method", "outcome"}),
			errors: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "apistake",
				Subsystem: "extrinsic",
				Name:      "errors_total",
				Help:      "Total extrinsic failures segmented by method and error.",
			}, []string{"method", "error"}),
			latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "apistake",
				Subsystem: "extrinsic",
				Name:      "call_duration_seconds",
				Help:      "Latency distribution for extrinsic dispatch.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"method"}),
			throttles: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "apistake",
				Subsystem: "extrinsic",
				Name:      "throttles_total",
				Help:      "Count of extrinsic calls rejected by the fisherman rate limiter.",
			}, []string{"method", "reason"}),
		}
		prometheus.MustRegister(
			moduleRegistry.requests,
			moduleRegistry.errors,
			moduleRegistry.latency,
			moduleRegistry.throttles,
		)
	})
	return moduleRegistry
}

// Observe records the outcome of a single extrinsic call.
func (m *moduleMetrics) Observe(method string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	if method = strings.TrimSpace(method); method == "" {
		method = "unknown"
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
		reason := strings.TrimSpace(err.Error())
		if reason == "" {
			reason = "unknown"
		}
		m.errors.WithLabelValues(method, reason).Inc()
	}
	m.requests.WithLabelValues(method, outcome).Inc()
	m.latency.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordThrottle increments the throttle counter for the supplied
// method and reason. Reasons should be stable strings such as
// "fisherman_rate_limit" so dashboards and alerts remain consistent.
func (m *moduleMetrics) RecordThrottle(method, reason string) {
	if m == nil {
		return
	}
	if method = strings.TrimSpace(method); method == "" {
		method = "unknown"
	}
	if reason = strings.TrimSpace(reason); reason == "" {
		reason = "unspecified"
	}
	m.throttles.WithLabelValues(method, reason).Inc()
}

// StakingMetrics tracks the era/reward/claim lifecycle the staking
// engine drives every block.
type StakingMetrics struct {
	currentEra     prometheus.Gauge
	rewardMinted   prometheus.Counter
	claimedTotal   *prometheus.CounterVec
	totalStaked    prometheus.Gauge
	unbondingTotal prometheus.Gauge
}

// Staking returns the singleton staking-lifecycle metrics registry.
func Staking() *StakingMetrics {
	stakingMetricsOnce.Do(func() {
		stakingRegistry = &StakingMetrics{
			currentEra: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "apistake",
				Subsystem: "staking",
				Name:      "current_era",
				Help:      "The era the staking clock most recently advanced into.",
			}),
			rewardMinted: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "apistake",
				Subsystem: "staking",
				Name:      "reward_minted_total",
				Help:      "Cumulative block reward minted into the staking pool account.",
			}),
			claimedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "apistake",
				Subsystem: "staking",
				Name:      "claimed_total",
				Help:      "Cumulative reward paid out by claim, segmented by recipient share.",
			}, []string{"share"}),
			totalStaked: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "apistake",
				Subsystem: "staking",
				Name:      "total_staked",
				Help:      "Sum of stake locked across every provider as of the last era snapshot.",
			}),
			unbondingTotal: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "apistake",
				Subsystem: "staking",
				Name:      "unbonding_total",
				Help:      "Sum of value currently sitting in unbonding queues.",
			}),
		}
		prometheus.MustRegister(
			stakingRegistry.currentEra,
			stakingRegistry.rewardMinted,
			stakingRegistry.claimedTotal,
			stakingRegistry.totalStaked,
			stakingRegistry.unbondingTotal,
		)
	})
	return stakingRegistry
}

// RecordEraAdvance updates the current-era gauge after OnInitialize
// closes a boundary.
func (m *StakingMetrics) RecordEraAdvance(era uint64) {
	if m == nil {
		return
	}
	m.currentEra.Set(float64(era))
}

// RecordRewardMinted adds amount to the cumulative reward-minted
// counter after on_timestamp_set.
func (m *StakingMetrics) RecordRewardMinted(amount uint64) {
	if m == nil {
		return
	}
	m.rewardMinted.Add(float64(amount))
}

// RecordClaim adds an operator or staker payout to the cumulative
// claimed counter. share should be "operator" or "staker".
func (m *StakingMetrics) RecordClaim(share string, amount uint64) {
	if m == nil {
		return
	}
	if share = strings.TrimSpace(share); share == "" {
		share = "unknown"
	}
	m.claimedTotal.WithLabelValues(share).Add(float64(amount))
}

// SetTotalStaked and SetUnbondingTotal record point-in-time aggregate
// gauges, refreshed by the stake engine after every bond, unstake and
// unbonded withdrawal.
func (m *StakingMetrics) SetTotalStaked(total uint64) {
	if m == nil {
		return
	}
	m.totalStaked.Set(float64(total))
}

func (m *StakingMetrics) SetUnbondingTotal(total uint64) {
	if m == nil {
		return
	}
	m.unbondingTotal.Set(float64(total))
}

// RegistryMetrics tracks provider and project registry population and
// the fisherman-reporting surface layered over them.
type RegistryMetrics struct {
	providersRegistered prometheus.Gauge
	projectsRegistered  prometheus.Gauge
	usageReported       *prometheus.CounterVec
	quotaReached        prometheus.Counter
	providerReports     *prometheus.CounterVec
}

// Registry returns the singleton provider/project registry metrics.
func Registry() *RegistryMetrics {
	registryMetricsOnce.Do(func() {
		registryRegistry = &RegistryMetrics{
			providersRegistered: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "apistake",
				Subsystem: "registry",
				Name:      "providers_registered",
				Help:      "Count of providers currently in the Registered lifecycle state.",
			}),
			projectsRegistered: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "apistake",
				Subsystem: "registry",
				Name:      "projects_registered",
				Help:      "Count of consumer projects currently registered.",
			}),
			usageReported: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "apistake",
				Subsystem: "registry",
				Name:      "usage_reported_total",
				Help:      "Cumulative usage units reported against project quotas.",
			}, []string{"chain_id"}),
			quotaReached: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "apistake",
				Subsystem: "registry",
				Name:      "quota_reached_total",
				Help:      "Count of submit_project_usage calls that clamped a project at its quota.",
			}),
			providerReports: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "apistake",
				Subsystem: "registry",
				Name:      "provider_reports_total",
				Help:      "Count of fisherman provider-quality reports, segmented by outcome.",
			}, []string{"outcome"}),
		}
		prometheus.MustRegister(
			registryRegistry.providersRegistered,
			registryRegistry.projectsRegistered,
			registryRegistry.usageReported,
			registryRegistry.quotaReached,
			registryRegistry.providerReports,
		)
	})
	return registryRegistry
}

// SetProvidersRegistered and SetProjectsRegistered record the current
// population of each registry, typically refreshed on add/remove.
func (m *RegistryMetrics) SetProvidersRegistered(count int) {
	if m == nil {
		return
	}
	m.providersRegistered.Set(float64(count))
}

func (m *RegistryMetrics) SetProjectsRegistered(count int) {
	if m == nil {
		return
	}
	m.projectsRegistered.Set(float64(count))
}

// RecordUsage records a submit_project_usage call, and whether it
// clamped the project at its quota.
func (m *RegistryMetrics) RecordUsage(chainID string, amount uint64, reachedQuota bool) {
	if m == nil {
		return
	}
	if chainID = strings.TrimSpace(chainID); chainID == "" {
		chainID = "unknown"
	}
	m.usageReported.WithLabelValues(chainID).Add(float64(amount))
	if reachedQuota {
		m.quotaReached.Inc()
	}
}

// RecordProviderReport records a submit_provider_report call's
// outcome, e.g. "forced_exit". Rate-limited reports are counted by
// ModuleMetrics().RecordThrottle instead.
func (m *RegistryMetrics) RecordProviderReport(outcome string) {
	if m == nil {
		return
	}
	if outcome = strings.TrimSpace(outcome); outcome == "" {
		outcome = "unknown"
	}
	m.providerReports.WithLabelValues(outcome).Inc()
}
