package relaypath

import "github.com/relaypath/relaypath/internal/reqparser"

// Method is the closed enumeration of request methods the parser and router
// recognize. It is a re-export of internal/reqparser.Method so that
// handlers and route registration share exactly one definition with the
// parser that produces it.
type Method = reqparser.Method

const (
	Undetermined = reqparser.Undetermined
	Get          = reqparser.Get
	Head         = reqparser.Head
	Post         = reqparser.Post
	Put          = reqparser.Put
	Patch        = reqparser.Patch
	Delete       = reqparser.Delete
	Connect      = reqparser.Connect
	Options      = reqparser.Options
	Trace        = reqparser.Trace
)
