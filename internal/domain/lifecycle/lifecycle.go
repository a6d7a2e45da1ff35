// Package lifecycle holds shared start-up and shutdown settings for fx hooks.
package lifecycle

import "time"

// DefaultTimeout bounds a single lifecycle hook such as a database ping or a server shutdown.
const DefaultTimeout = 10 * time.Second
