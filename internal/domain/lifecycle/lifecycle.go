// Package lifecycle holds the timeouts shared by start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds a single lifecycle hook such as a database ping.
const DefaultTimeout = 10 * time.Second
