// Package di provides dependency injection container
package di

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/ssargent/gs1kit/pkg/config"
	"github.com/ssargent/gs1kit/pkg/metrics"
	"github.com/ssargent/gs1kit/pkg/parser"
)

// Container holds all the dependencies for the application. Components are
// built lazily from the configuration on first use.
type Container struct {
	mu sync.Mutex

	config    *config.Config
	logOutput io.Writer
	logger    *slog.Logger
	registry  *prometheus.Registry
	metrics   *metrics.Metrics
	parser    *parser.Parser
}

// NewContainer creates a new dependency injection container over cfg. A nil
// cfg uses config.DefaultConfig().
func NewContainer(cfg *config.Config) *Container {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Container{
		config:    cfg,
		logOutput: os.Stderr,
	}
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config
}

// SetConfig replaces the configuration and drops every component built from
// the previous one
func (c *Container) SetConfig(cfg *config.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config = cfg
	c.logger = nil
	c.parser = nil
}

// SetLogOutput allows overriding where logs are written (for testing)
func (c *Container) SetLogOutput(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logOutput = w
	c.logger = nil
	c.parser = nil
}

// GetLogger returns the structured logger configured by the logging section
func (c *Container) GetLogger() (*slog.Logger, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loggerLocked()
}

func (c *Container) loggerLocked() (*slog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}

	level, err := c.config.Logging.SlogLevel()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch c.config.Logging.Format {
	case "json":
		handler = slog.NewJSONHandler(c.logOutput, opts)
	case "text", "":
		handler = slog.NewTextHandler(c.logOutput, opts)
	default:
		return nil, fmt.Errorf("invalid logging format %q: want text or json", c.config.Logging.Format)
	}

	c.logger = slog.New(handler)
	return c.logger, nil
}

// GetMetricsRegistry returns the prometheus registry parse metrics are
// registered on
func (c *Container) GetMetricsRegistry() *prometheus.Registry {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metricsLocked()
	return c.registry
}

// GetMetrics returns the parse metrics
func (c *Container) GetMetrics() *metrics.Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.metricsLocked()
}

func (c *Container) metricsLocked() *metrics.Metrics {
	if c.metrics == nil {
		c.registry = prometheus.NewRegistry()
		c.metrics = metrics.NewMetrics(c.registry)
	}
	return c.metrics
}

// GetParser returns the parser built from the configuration, with the
// container's logger and metrics injected
func (c *Container) GetParser() (*parser.Parser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.parser != nil {
		return c.parser, nil
	}

	pc, err := c.config.ParserConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to configure parser: %w", err)
	}

	logger, err := c.loggerLocked()
	if err != nil {
		return nil, fmt.Errorf("failed to configure logger: %w", err)
	}
	pc.Logger = logger
	pc.Metrics = c.metricsLocked()

	c.parser = parser.New(pc)
	return c.parser, nil
}

// SetParser allows overriding the parser (for testing)
func (c *Container) SetParser(p *parser.Parser) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.parser = p
}
