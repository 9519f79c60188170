// Package linkguard exposes assets embedded at the module root.
package linkguard

import "embed"

// Migrations holds the goose SQL migrations applied by the migrate command.
//
//go:embed migrations
var Migrations embed.FS
