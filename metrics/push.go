package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// PushConfig configures a one-shot push of all registered metrics to a pushgateway.
type PushConfig struct {
	URL      string            `mapstructure:"url"`
	Job      string            `mapstructure:"job"`
	Username string            `mapstructure:"username"`
	Password string            `mapstructure:"password"`
	Headers  map[string]string `mapstructure:"headers"`
}

// Push sends the metrics of the default registry to the pushgateway,
// grouped by network. It is a no-op when no URL is configured.
func Push(cfg PushConfig, network string) error {
	if cfg.URL == "" {
		return nil
	}
	job := cfg.Job
	if job == "" {
		job = Namespace
	}
	header := http.Header{}
	for k, v := range cfg.Headers {
		header.Add(k, v)
	}
	pusher := push.New(cfg.URL, job).
		Gatherer(prometheus.DefaultGatherer).
		Grouping("network", network).
		Header(header)
	if cfg.Username != "" && cfg.Password != "" {
		pusher = pusher.BasicAuth(cfg.Username, cfg.Password)
	}
	if err := pusher.Push(); err != nil {
		return fmt.Errorf("push metrics to %s: %w", cfg.URL, err)
	}
	return nil
}
