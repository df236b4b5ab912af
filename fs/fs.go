package appfs

import "embed"

// FS embeds runtime assets (goose migrations).
//go:embed migrations
var FS embed.FS
