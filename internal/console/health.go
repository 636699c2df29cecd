package console

import (
	"context"
	"time"

	"prison-admin/internal/apiclient"
)

// CheckHealth probes the backend and records the outcome.
func (c *Console) CheckHealth(ctx context.Context) error {
	var body map[string]any
	if err := c.api.Get(ctx, "/api/health", &body); err != nil {
		c.state.SetAPIHealth("failed", apiclient.Message(err))
		c.logError("Backend health check failed", "error", err)
		return err
	}
	c.state.SetAPIHealth("healthy", "")
	c.logDebug("Backend healthy")
	return nil
}

// MonitorHealth checks the backend immediately and then every interval
// until ctx is done.
func (c *Console) MonitorHealth(ctx context.Context, interval time.Duration) {
	_ = c.CheckHealth(ctx)
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = c.CheckHealth(ctx)
		}
	}
}
