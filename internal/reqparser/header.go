package reqparser

// Field is one (name, value) pair of a Header, in the order it was parsed
// or inserted.
type Field struct {
	Name  string
	Value string
}

// Header is an ordered sequence of (name, value) pairs. Insertion order is
// preserved and observable by iterating the slice directly.
//
// Name lookup is case-sensitive: RFC 7230 specifies case-insensitive header
// names, but this type compares byte-wise, a deliberate deviation. A caller
// that needs RFC-conforming lookup should normalize names to a single case
// before calling Add/Get/SetHeader/RemoveHeader.
type Header []Field

// Add appends a (name, value) pair unconditionally, even if name already
// has one or more values.
func (h *Header) Add(name, value string) {
	*h = append(*h, Field{Name: name, Value: value})
}

// Get returns the value of the first field whose name matches exactly, and
// whether any such field exists.
func (h Header) Get(name string) (string, bool) {
	for _, f := range h {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Values returns every value associated with name, in insertion order.
func (h Header) Values(name string) []string {
	var values []string
	for _, f := range h {
		if f.Name == name {
			values = append(values, f.Value)
		}
	}
	return values
}

// SetHeader replaces the value of the first field named name, or appends a
// new field if none exists. It never removes the later duplicates.
func (h *Header) SetHeader(name, value string) {
	for i, f := range *h {
		if f.Name == name {
			(*h)[i].Value = value
			return
		}
	}
	h.Add(name, value)
}

// RemoveHeader removes every field named name.
func (h *Header) RemoveHeader(name string) {
	out := (*h)[:0]
	for _, f := range *h {
		if f.Name != name {
			out = append(out, f)
		}
	}
	*h = out
}
