package workspace

import (
	"time"

	"github.com/joeycumines/go-solutioncache/wslog"
)

// Config models optional configuration for New. A nil Config, or a zero
// value of any individual field, selects the documented default -- the
// same nil-safe, documented-per-field-default shape this corpus uses for
// its other optional-configuration types.
type Config struct {
	// Updater performs solution materialization (incremental rebase
	// decisions and snapshot construction). Required: New panics if it is
	// nil, or if the Config itself is nil.
	Updater Updater

	// Logger receives structured events for materialization failures.
	// Promotions are not logged. Defaults to a discarding logger if nil.
	Logger wslog.Logger

	// Clock returns the current time. Defaults to time.Now. Tests that
	// need deterministic timestamps in logged events may override it.
	Clock func() time.Time

	// AssetSyncConcurrency bounds the number of concurrent per-project
	// asset-sync calls made against an AssetProvider implementing
	// asset.ProjectSynchronizer (see computeSnapshot). Defaults to 8, if
	// not positive.
	AssetSyncConcurrency int
}

func (c *Config) updater() Updater {
	if c == nil {
		return nil
	}
	return c.Updater
}

func (c *Config) logger() wslog.Logger {
	if c == nil || c.Logger == nil {
		return wslog.NewDiscard()
	}
	return c.Logger
}

func (c *Config) clock() func() time.Time {
	if c == nil || c.Clock == nil {
		return time.Now
	}
	return c.Clock
}

func (c *Config) assetSyncConcurrency() int {
	if c == nil || c.AssetSyncConcurrency <= 0 {
		return 8
	}
	return c.AssetSyncConcurrency
}
