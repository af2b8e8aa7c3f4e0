package kadmin

import "time"

// Opt configures a Client. The pattern mirrors pkg/kgo's functional
// options (WithXxx constructors returning an Opt, applied in NewClient).
type Opt interface {
	apply(*cfg)
}

type clientOpt struct{ fn func(*cfg) }

func (o clientOpt) apply(c *cfg) { o.fn(c) }

type cfg struct {
	logger                Logger
	metricsRegisterer     prometheusRegisterer
	defaultRequestTimeout time.Duration
	seedBrokers           []string
}

func defaultCfg() cfg {
	return cfg{
		logger:                nopLogger{},
		defaultRequestTimeout: 30 * time.Second,
	}
}

// WithLogger sets the Logger the driver uses for diagnostic output
// (dropped replies, unknown resource types, full reply channels).
func WithLogger(l Logger) Opt {
	return clientOpt{func(c *cfg) { c.logger = l }}
}

// WithDefaultRequestTimeout sets the request_timeout used when a
// submission does not supply its own AdminOptions.
func WithDefaultRequestTimeout(d time.Duration) Opt {
	return clientOpt{func(c *cfg) { c.defaultRequestTimeout = d }}
}

// WithMetrics registers the Client's request-latency, in-flight, and
// throttle metrics against reg. A nil reg (the default) disables metrics
// registration entirely.
func WithMetrics(reg prometheusRegisterer) Opt {
	return clientOpt{func(c *cfg) { c.metricsRegisterer = reg }}
}

// WithSeedBrokers sets the initial broker addresses a connection manager
// should dial to discover the cluster, overriding the default of none.
// Mirrors pkg/kgo's WithSeedBrokers, but the admin driver itself never
// dials anything: it has no connection-management surface (spec §1
// Non-goals). The seeds are only stored and handed back through
// Client.SeedBrokers, for whatever external connection manager populates
// the brokerWaiter passed to NewClient to read and act on.
func WithSeedBrokers(seeds ...string) Opt {
	return clientOpt{func(c *cfg) { c.seedBrokers = append(c.seedBrokers[:0:0], seeds...) }}
}
