package relaypath

import "github.com/relaypath/relaypath/internal/reqparser"

// Version is the HTTP version carried by a parsed request, re-exported from
// internal/reqparser so the root package and the parser share one type.
type Version = reqparser.Version
