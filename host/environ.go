package host

import (
	"log"
	"unsafe"

	"github.com/user-none/retrohost/libretro"
)

// environment answers the core's negotiation queries. Unknown commands are
// reported as unsupported, never as errors; cores are expected to degrade.
func (h *Host) environment(cmd uint32, data unsafe.Pointer) bool {
	switch cmd {
	case libretro.EnvGetLogInterface:
		// Acknowledged here; the binding layer fills in the C-callable
		// sink that forwards to logSink.
		return true

	case libretro.EnvGetCanDupe:
		// The core may pass null video data to repeat the last frame.
		if data != nil {
			*(*bool)(data) = true
		}
		return true

	case libretro.EnvSetPixelFormat:
		// Recorded unvalidated: the format only matters to whoever
		// interprets the framebuffer.
		if data == nil {
			return false
		}
		h.pixelFormat = libretro.PixelFormat(*(*int32)(data))
		log.Printf("Pixel format set to %d", h.pixelFormat)
		return true

	case libretro.EnvGetSystemDirectory, libretro.EnvGetCoreAssetsDirectory:
		if data == nil {
			return false
		}
		*(**byte)(data) = &h.systemDir[0]
		return true

	case libretro.EnvGetSaveDirectory:
		if data == nil {
			return false
		}
		*(**byte)(data) = &h.saveDir[0]
		return true

	case libretro.EnvSetSupportNoGame, libretro.EnvSetVariables, libretro.EnvSetCoreOptionsV2:
		return true

	case libretro.EnvGetVariable:
		// No variable store: deny every lookup.
		if v := (*libretro.Variable)(data); v != nil {
			v.Value = nil
		}
		return false

	case libretro.EnvGetVariableUpdate:
		if data != nil {
			*(*bool)(data) = false
		}
		return true

	default:
		return false
	}
}
