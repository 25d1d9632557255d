package host

import "unsafe"

// videoRefresh converts the core's push-style frame delivery into the owned
// framebuffer. Null data means "repeat last frame" and leaves both the
// buffer and its geometry untouched. The copy spans full padded rows
// (height*pitch bytes), not the packed width.
func (h *Host) videoRefresh(data unsafe.Pointer, width, height, pitch int) {
	if data == nil {
		return
	}

	required := height * pitch
	if required <= 0 {
		return
	}
	if required > len(h.fb) {
		h.fb = make([]byte, required)
	}
	copy(h.fb, unsafe.Slice((*byte)(data), required))

	h.fbWidth = width
	h.fbHeight = height
	h.fbPitch = pitch
}

// Framebuffer returns the last produced frame and its geometry. The slice
// aliases host-owned storage valid until the next RunFrame or unload; it is
// nil before the core has produced any frame.
func (h *Host) Framebuffer() (pixels []byte, width, height, pitch int) {
	if h.fb == nil {
		return nil, 0, 0, 0
	}
	return h.fb[:h.fbHeight*h.fbPitch], h.fbWidth, h.fbHeight, h.fbPitch
}

// Width returns the current video width in pixels.
func (h *Host) Width() int {
	return h.fbWidth
}

// Height returns the current video height in pixels.
func (h *Host) Height() int {
	return h.fbHeight
}

// Pitch returns the framebuffer row stride in bytes.
func (h *Host) Pitch() int {
	return h.fbPitch
}
