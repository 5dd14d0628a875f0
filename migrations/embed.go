// Package migrations embeds the SQL schema migrations for both storage
// backends. The sqlite and postgres subdirectories carry the same schema in
// each dialect and must stay in lockstep.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
