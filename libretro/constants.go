// Package libretro defines the frontend-side libretro plugin ABI: the
// constants and structures of the wire contract, the Core entry-point
// table interface, and the callback types a host registers on a core.
package libretro

// APIVersion is the libretro API version this host speaks.
const APIVersion = 1

// PixelFormat identifies the framebuffer pixel encoding negotiated by a core.
type PixelFormat int32

// Pixel formats (RETRO_PIXEL_FORMAT_*).
const (
	PixelFormat0RGB1555 PixelFormat = 0
	PixelFormatXRGB8888 PixelFormat = 1
	PixelFormatRGB565   PixelFormat = 2
)

// Input device types (RETRO_DEVICE_*).
const (
	DeviceNone     = 0
	DeviceJoypad   = 1
	DeviceMouse    = 2
	DeviceKeyboard = 3
	DeviceLightgun = 4
	DeviceAnalog   = 5
	DevicePointer  = 6
)

// Joypad button IDs (RETRO_DEVICE_ID_JOYPAD_*).
const (
	JoypadB      = 0
	JoypadY      = 1
	JoypadSelect = 2
	JoypadStart  = 3
	JoypadUp     = 4
	JoypadDown   = 5
	JoypadLeft   = 6
	JoypadRight  = 7
	JoypadA      = 8
	JoypadX      = 9
	JoypadL      = 10
	JoypadR      = 11
	JoypadL2     = 12
	JoypadR2     = 13
	JoypadL3     = 14
	JoypadR3     = 15
)

// Environment commands (RETRO_ENVIRONMENT_*). Cores issue these through the
// environment callback; commands the host does not implement are answered
// as unsupported, not as errors.
const (
	EnvSetRotation                   = 1
	EnvGetOverscan                   = 2
	EnvGetCanDupe                    = 3
	EnvSetMessage                    = 6
	EnvShutdown                      = 7
	EnvSetPerformanceLevel           = 8
	EnvGetSystemDirectory            = 9
	EnvSetPixelFormat                = 10
	EnvSetInputDescriptors           = 11
	EnvSetKeyboardCallback           = 12
	EnvGetVariable                   = 15
	EnvSetVariables                  = 16
	EnvGetVariableUpdate             = 17
	EnvSetSupportNoGame              = 18
	EnvGetLibretroPath               = 19
	EnvSetFrameTimeCallback          = 21
	EnvSetAudioCallback              = 22
	EnvGetRumbleInterface            = 23
	EnvGetInputDeviceCapabilities    = 24
	EnvGetLogInterface               = 27
	EnvGetPerfInterface              = 28
	EnvGetCoreAssetsDirectory        = 30
	EnvGetSaveDirectory              = 31
	EnvSetSystemAVInfo               = 32
	EnvSetGeometry                   = 37
	EnvGetCurrentSoftwareFramebuffer = 40
	EnvSetCoreOptionsV2              = 67
)

// Memory region IDs (RETRO_MEMORY_*).
const (
	MemorySaveRAM   = 0
	MemoryRTC       = 1
	MemorySystemRAM = 2
	MemoryVideoRAM  = 3
)

// LogLevel is the severity a core attaches to a log message.
type LogLevel int32

// Log levels (RETRO_LOG_*).
const (
	LogDebug LogLevel = 0
	LogInfo  LogLevel = 1
	LogWarn  LogLevel = 2
	LogError LogLevel = 3
)

// String returns the level name used in log output.
func (l LogLevel) String() string {
	switch l {
	case LogDebug:
		return "DEBUG"
	case LogWarn:
		return "WARN"
	case LogError:
		return "ERROR"
	default:
		return "INFO"
	}
}
