package adrift

import _ "embed"

// Version is the release of the adrift module.
//
//go:embed VERSION
var Version string
