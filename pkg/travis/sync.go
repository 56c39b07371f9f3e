package travis

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sgaunet/gitci/internal/timeutil"
	"github.com/sgaunet/gitci/pkg/endpoint"
)

// PollConfig bounds the wait for a blocking sync. The zero value uses the
// defaults below: 50 attempts at a flat 10ms cadence, matching the
// historical worst case of roughly half a second. Raising MaxInterval
// above InitialInterval turns the cadence into capped exponential backoff.
type PollConfig struct {
	// MaxAttempts is the number of status checks before giving up.
	MaxAttempts int

	// InitialInterval is the delay before the second check.
	InitialInterval time.Duration

	// MaxInterval caps the growing delay.
	MaxInterval time.Duration

	// Multiplier grows the delay after each check.
	Multiplier float64
}

const (
	defaultMaxAttempts     = 50
	defaultInitialInterval = 10 * time.Millisecond
	defaultMultiplier      = 2.0
)

func (p PollConfig) withDefaults() PollConfig {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = defaultMaxAttempts
	}
	if p.InitialInterval <= 0 {
		p.InitialInterval = defaultInitialInterval
	}
	if p.MaxInterval <= 0 {
		p.MaxInterval = p.InitialInterval
	}
	if p.Multiplier < 1 {
		p.Multiplier = defaultMultiplier
	}
	return p
}

// Sync asks Travis to re-scan the user's repositories. The request itself
// accepts both 200 and 409 ("sync already running") as valid starts; any
// other status fails with a [endpoint.StatusError].
//
// With block set, Sync polls the account's sync flag on the configured
// cadence until it clears, honoring ctx cancellation, and returns
// ErrSyncTimeout when the poll budget runs out. Pass PollConfig{} for the
// defaults.
func (c *Client) Sync(ctx context.Context, block bool, poll PollConfig) error {
	if err := c.ensureAuthenticated(); err != nil {
		return err
	}

	response, err := c.endpoint.Do(ctx, "/users/sync", endpoint.Options{Method: http.MethodPost})
	if err != nil {
		return fmt.Errorf("requesting sync: %w", err)
	}
	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusConflict {
		return endpoint.NewStatusError("sync", "/users/sync", response)
	}

	if !block {
		return nil
	}
	return c.waitForSync(ctx, poll.withDefaults())
}

// IsSynced checks the account's sync flag once.
func (c *Client) IsSynced(ctx context.Context) (bool, error) {
	if err := c.ensureAuthenticated(); err != nil {
		return false, err
	}

	user, err := c.fetchSyncState(ctx)
	if err != nil {
		return false, err
	}
	if user.IsSyncing {
		c.log.Info("Still waiting for travis to synchronise")
		return false, nil
	}
	return true, nil
}

// waitForSync polls the sync flag until it clears or the budget runs out.
func (c *Client) waitForSync(ctx context.Context, poll PollConfig) error {
	start := time.Now()
	interval := poll.InitialInterval

	for attempt := range poll.MaxAttempts {
		user, err := c.fetchSyncState(ctx)
		if err != nil {
			return err
		}
		if !user.IsSyncing {
			c.log.Info(fmt.Sprintf("Synchronised at %s (%d polls, %s)",
				user.SyncedAt, attempt+1, timeutil.FormatDuration(time.Since(start))))
			return nil
		}

		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return ctx.Err()
		}

		interval = time.Duration(float64(interval) * poll.Multiplier)
		if interval > poll.MaxInterval {
			interval = poll.MaxInterval
		}
	}

	return fmt.Errorf("%w: %d polls over %s",
		errSyncTimeout, poll.MaxAttempts, timeutil.FormatDuration(time.Since(start)))
}

// fetchSyncState reads the sync slice of the current user record.
func (c *Client) fetchSyncState(ctx context.Context) (*syncUser, error) {
	response, err := c.endpoint.Do(ctx, "/users/", endpoint.Options{})
	if err != nil {
		return nil, fmt.Errorf("fetching sync state: %w", err)
	}

	var wrapped userResponse
	if err := response.Decode(&wrapped); err != nil {
		return nil, fmt.Errorf("decoding sync state: %w", err)
	}
	return &wrapped.User, nil
}
