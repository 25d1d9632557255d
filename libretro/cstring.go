package libretro

import "unsafe"

// GoString copies a NUL-terminated C string into a Go string.
// A nil pointer yields "".
func GoString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	if n == 0 {
		return ""
	}
	return string(unsafe.Slice(p, n))
}

// CString returns s as a NUL-terminated byte slice. The address of the first
// element can be handed to a core as a C string; the slice must be kept
// reachable for as long as the core may read it.
func CString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}
