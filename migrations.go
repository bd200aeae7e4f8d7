// Package domainshop embeds the database migrations shipped with the
// storefront binary.
package domainshop

import "embed"

// Migrations holds the goose SQL migrations under migrations/.
//
//go:embed migrations/*.sql
var Migrations embed.FS
