package appfs

import "embed"

// FS carries the SQL migrations so the binaries stay self-contained.
//
//go:embed migrations
var FS embed.FS
