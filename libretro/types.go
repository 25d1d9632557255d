package libretro

import (
	"strings"
	"unsafe"
)

// SystemInfo is the static core metadata reported by retro_get_system_info.
// It is captured once at load and stays valid until the core is unloaded.
type SystemInfo struct {
	Name            string
	Version         string
	ValidExtensions string // pipe-separated, without dots (e.g. "sms|gg")
	NeedFullpath    bool   // core wants a path, not embedded content bytes
	BlockExtract    bool   // frontend must not extract compressed content
}

// ExtensionList returns the valid extensions as dotted, lowercase file
// extensions (e.g. ".sms"). Returns nil when the core declares none.
func (si SystemInfo) ExtensionList() []string {
	if si.ValidExtensions == "" {
		return nil
	}
	parts := strings.Split(si.ValidExtensions, "|")
	exts := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		exts = append(exts, "."+strings.ToLower(p))
	}
	return exts
}

// GameGeometry describes the core's video dimensions and aspect ratio.
type GameGeometry struct {
	BaseWidth   int
	BaseHeight  int
	MaxWidth    int
	MaxHeight   int
	AspectRatio float32
}

// SystemTiming describes the core's frame rate and audio sample rate.
type SystemTiming struct {
	FPS        float64
	SampleRate float64
}

// SystemAVInfo is the geometry and timing reported by
// retro_get_system_av_info, refreshed after content is loaded.
type SystemAVInfo struct {
	Geometry GameGeometry
	Timing   SystemTiming
}

// GameInfo is the content handed to retro_load_game. Data is nil when the
// core asked for a full path instead of embedded bytes.
type GameInfo struct {
	Path string
	Data []byte
	Meta string
}

// Variable is the raw retro_variable key/value pair as the core sees it in
// memory. The environment handler writes Value in place; a nil Value with a
// false return denies the query.
type Variable struct {
	Key   *byte
	Value *byte
}

// EnvironmentFunc answers a core's environment query. The payload is a raw
// pointer whose meaning depends on cmd; the return reports whether the
// command is supported.
type EnvironmentFunc func(cmd uint32, data unsafe.Pointer) bool

// LogFunc receives log messages a core sends through the log interface.
type LogFunc func(level LogLevel, msg string)

// VideoRefreshFunc receives one frame of video. data is nil when the core
// signals "repeat last frame"; otherwise it points at height*pitch bytes.
type VideoRefreshFunc func(data unsafe.Pointer, width, height, pitch int)

// AudioSampleFunc receives a single stereo sample pair.
type AudioSampleFunc func(left, right int16)

// AudioSampleBatchFunc receives interleaved stereo frames starting at
// data and returns how many frames were accepted. The core must honor the
// return value; excess frames are dropped.
type AudioSampleBatchFunc func(data *int16, frames int) int

// InputPollFunc is called by the core once per frame before input queries.
type InputPollFunc func()

// InputStateFunc reports the state of one input. Digital joypad queries
// return 0 or 1; anything out of range reads 0.
type InputStateFunc func(port, device, index, id uint32) int16

// FrameCallbacks are the per-frame handlers registered on a core after
// initialization.
type FrameCallbacks struct {
	VideoRefresh     VideoRefreshFunc
	AudioSample      AudioSampleFunc
	AudioSampleBatch AudioSampleBatchFunc
	InputPoll        InputPollFunc
	InputState       InputStateFunc
}
