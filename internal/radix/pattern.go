package radix

import (
	"strings"

	"github.com/relaypath/relaypath/internal/strkernel"
)

// FindPattern performs a pattern-aware lookup: at each node, every outgoing
// edge's label is matched against the remaining query via
// strkernel.MatchRoute, which treats a '<' byte as opening a placeholder
// rather than requiring a literal match. A label is not
// necessarily pure literal or pure placeholder — "/user/<id>" is one edge
// that matches five literal bytes before opening a placeholder — so the
// match is evaluated edge by edge rather than by inspecting an edge's first
// byte. Bindings accumulated along the descent are returned in
// root-to-leaf order.
//
// Ordering & tie-breaks: among edges whose label is fully consumed by the
// match (the only kind worth descending into or stopping at), the one with
// the longest literal prefix before its first placeholder wins — a pure
// literal edge (no '<' at all) has the longest possible literal prefix, so
// this also covers "literal beats placeholder" as a special case without
// treating it separately. Among edges tied on literal-prefix length, the
// one registered first (smallest edge creation order) wins.
func (t *Trie[T]) FindPattern(key string) (*Node[T], []strkernel.Binding, bool) {
	cur := t.root
	remaining := key
	var bindings []strkernel.Binding

	for {
		if remaining == "" {
			if cur.HasValue {
				return cur, bindings, true
			}
			return nil, nil, false
		}

		edge, newBindings, residual, ok := bestEdgeMatch(cur.Edges, remaining)
		if !ok {
			return nil, nil, false
		}
		bindings = append(bindings, newBindings...)
		remaining = residual
		cur = edge.Child
	}
}

// bestEdgeMatch picks the edge to descend into for the remaining query,
// among every edge whose label is fully consumed by strkernel.MatchRoute.
// The winner is the one with the longest literal prefix (see
// literalPrefixLen); ties go to the smallest creation order.
//
// Comparing literal-prefix length rather than just "used a placeholder or
// not" matters once a node has more than one placeholder-bearing edge: at
// a split like <author> vs publish_date/<date>, both can fully consume a
// residual such as "publish_date/2004" (the former by binding author to
// the whole first segment), but only the one with the longer literal
// prefix — publish_date/<date> — is the intended match, since "/2004" is
// a literal continuation no earlier-registered edge can consume.
func bestEdgeMatch[T any](edges []Edge[T], query string) (edge *Edge[T], bindings []strkernel.Binding, residual string, ok bool) {
	var best *Edge[T]
	var bestBindings []strkernel.Binding
	var bestResidual string
	bestLiteralLen := -1

	for i := range edges {
		label := edges[i].Label
		pConsumed, qConsumed, bs := strkernel.MatchRoute(label, query)
		if pConsumed != len(label) {
			continue
		}
		literalLen := literalPrefixLen(label)
		if literalLen > bestLiteralLen || (literalLen == bestLiteralLen && edges[i].order < best.order) {
			best = &edges[i]
			bestBindings = bs
			bestResidual = query[qConsumed:]
			bestLiteralLen = literalLen
		}
	}

	if best == nil {
		return nil, nil, "", false
	}
	return best, bestBindings, bestResidual, true
}

// literalPrefixLen returns the number of bytes in label before its first
// placeholder, or len(label) if label has none.
func literalPrefixLen(label string) int {
	if idx := strings.IndexByte(label, '<'); idx >= 0 {
		return idx
	}
	return len(label)
}
