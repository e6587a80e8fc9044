package reqparser

// Version is the HTTP version tagged variant. Major/Minor are -1 while the
// version is undetermined (before "HTTP/M.m" has been fully read).
type Version struct {
	Major int
	Minor int
}

// Undetermined reports whether the version has not yet been parsed.
func (v Version) Undetermined() bool { return v.Major < 0 || v.Minor < 0 }

func (v Version) String() string {
	if v.Undetermined() {
		return "undetermined"
	}
	digits := [10]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9'}
	buf := [3]byte{0, '.', 0}
	buf[0] = digits[v.Major%10]
	buf[2] = digits[v.Minor%10]
	return string(buf[:])
}
