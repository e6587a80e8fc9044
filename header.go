package relaypath

import "github.com/relaypath/relaypath/internal/reqparser"

// Header is the ordered, case-sensitive header representation produced by
// the request parser, re-exported here so handlers never need to import
// internal/reqparser directly. See internal/reqparser.Header for the
// documented case-sensitivity deviation from RFC 7230.
type Header = reqparser.Header

// HeaderField is one (name, value) pair of a Header, in parse order.
type HeaderField = reqparser.Field
