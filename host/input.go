package host

import "github.com/user-none/retrohost/libretro"

// The input matrix has multiple external writers (typically a UI thread)
// and one reader, the core's input-state query during RunFrame. Writes are
// last-write-wins with no buffering, guarded by a mutex so setters may run
// on another goroutine.

// SetButton sets or clears one button. Out-of-range ports and buttons are
// ignored.
func (h *Host) SetButton(port, button int, pressed bool) {
	if port < 0 || port >= MaxPorts || button < 0 || button >= MaxButtons {
		return
	}
	h.inputMu.Lock()
	h.pressed[port][button] = pressed
	h.inputMu.Unlock()
}

// ClearInput releases every button on every port.
func (h *Host) ClearInput() {
	h.inputMu.Lock()
	h.pressed = [MaxPorts][MaxButtons]bool{}
	h.inputMu.Unlock()
}

// inputPoll is a required-but-no-op callback: state is sampled directly by
// inputState.
func (h *Host) inputPoll() {}

// inputState answers the core's pull-style query. Non-joypad devices,
// out-of-range ports and out-of-range button IDs read 0 rather than fail.
func (h *Host) inputState(port, device, index, id uint32) int16 {
	if port >= MaxPorts || device != libretro.DeviceJoypad || id >= MaxButtons {
		return 0
	}
	h.inputMu.Lock()
	pressed := h.pressed[port][id]
	h.inputMu.Unlock()
	if pressed {
		return 1
	}
	return 0
}
