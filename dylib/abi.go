//go:build darwin || freebsd || linux

package dylib

import "unsafe"

// C struct mirrors for the libretro ABI on 64-bit platforms. Field order,
// size and alignment must match the C declarations exactly; abi_test.go
// pins the layout.

// systemInfo mirrors struct retro_system_info.
type systemInfo struct {
	libraryName     *byte
	libraryVersion  *byte
	validExtensions *byte
	needFullpath    bool
	blockExtract    bool
}

// avInfo mirrors struct retro_system_av_info: a 20-byte geometry struct,
// 4 bytes of padding, then the 8-byte-aligned timing struct.
type avInfo struct {
	geometry struct {
		baseWidth   uint32
		baseHeight  uint32
		maxWidth    uint32
		maxHeight   uint32
		aspectRatio float32
	}
	_      [4]byte
	timing struct {
		fps        float64
		sampleRate float64
	}
}

// gameInfo mirrors struct retro_game_info.
type gameInfo struct {
	path *byte
	data unsafe.Pointer
	size uintptr
	meta *byte
}

// logCallback mirrors struct retro_log_callback.
type logCallback struct {
	log uintptr
}
