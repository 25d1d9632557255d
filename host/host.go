// Package host drives a loaded libretro core: it sequences the load
// lifecycle, answers the core's environment negotiation, converts the
// push-style video/audio callbacks into owned buffers the application can
// poll frame by frame, and shuttles externally written input state to the
// core's pull-style queries.
//
// A Host is single-threaded by contract: every operation and every callback
// the core issues runs synchronously inside the call that triggered it.
// Callers driving a Host from multiple goroutines must serialize all calls;
// only SetButton/ClearInput are safe to call concurrently with RunFrame.
package host

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/user-none/retrohost/content"
	"github.com/user-none/retrohost/dylib"
	"github.com/user-none/retrohost/libretro"
)

// Capacity limits of the per-frame bridges.
const (
	// MaxAudioFrames is the capacity of the per-frame audio queue in
	// stereo frames. Audio past this point within one frame is dropped.
	MaxAudioFrames = 8192

	// MaxPorts is the number of controller ports tracked by the host.
	MaxPorts = 4

	// MaxButtons is the number of buttons tracked per port.
	MaxButtons = 16
)

var (
	// ErrNoCore is returned by operations that require a loaded core.
	ErrNoCore = errors.New("no core loaded")

	// ErrNoGame is returned by operations that require loaded content.
	ErrNoGame = errors.New("no game loaded")

	// ErrGameLoaded is returned by LoadGame when content is already loaded.
	ErrGameLoaded = errors.New("a game is already loaded")

	// ErrContentRejected is returned when the core refuses the content.
	ErrContentRejected = errors.New("core rejected the content")
)

// coreState is the lifecycle position of a Host.
type coreState int

const (
	stateUnloaded coreState = iota
	stateCoreLoaded
	stateGameLoaded
)

// Host owns one loaded core and all buffers bridging its callbacks.
// Multiple independent Hosts may exist per process, though the dylib
// binding itself supports a single open shared library at a time.
type Host struct {
	state coreState
	core  libretro.Core

	info libretro.SystemInfo
	av   libretro.SystemAVInfo

	pixelFormat libretro.PixelFormat

	// NUL-terminated directory strings handed to the core by pointer.
	// Kept alive for the lifetime of the Host.
	systemDir []byte
	saveDir   []byte

	// Framebuffer: grows to the largest height*pitch seen, never shrinks.
	fb       []byte
	fbWidth  int
	fbHeight int
	fbPitch  int

	// Audio queue: interleaved stereo int16, reset every frame.
	audio       []int16
	audioFrames int

	inputMu sync.Mutex
	pressed [MaxPorts][MaxButtons]bool

	// Registered on the core after Init; the pointer must stay stable.
	frameCb libretro.FrameCallbacks
}

// New creates an empty Host. Directories default to "." and the pixel
// format to XRGB8888 until a core negotiates otherwise.
func New() *Host {
	return &Host{
		pixelFormat: libretro.PixelFormatXRGB8888,
		systemDir:   libretro.CString("."),
		saveDir:     libretro.CString("."),
	}
}

// LoadCore opens the shared library at path and attaches it. An already
// loaded core (and any game) is unloaded first, so reloading is idempotent.
func (h *Host) LoadCore(path string) error {
	if h.state != stateUnloaded {
		h.UnloadCore()
	}
	core, err := dylib.Open(path)
	if err != nil {
		return err
	}
	return h.AttachCore(core)
}

// AttachCore binds an already opened core to the host and runs the load
// sequence: environment registration, initialization, frame-callback
// registration, metadata capture and audio-queue allocation. The split from
// LoadCore lets tests and embedders supply in-process Core implementations.
func (h *Host) AttachCore(core libretro.Core) error {
	if core == nil {
		return errors.New("nil core")
	}
	if h.state != stateUnloaded {
		h.UnloadCore()
	}
	h.core = core

	// The environment handler must be live before Init: cores commonly
	// negotiate pixel format and directories during initialization.
	core.SetEnvironment(h.environment, h.logSink)
	core.Init()

	h.frameCb = libretro.FrameCallbacks{
		VideoRefresh:     h.videoRefresh,
		AudioSample:      h.audioSample,
		AudioSampleBatch: h.audioSampleBatch,
		InputPoll:        h.inputPoll,
		InputState:       h.inputState,
	}
	core.SetFrameCallbacks(&h.frameCb)

	h.info = core.SystemInfo()
	if v := core.APIVersion(); v != 0 && v != libretro.APIVersion {
		log.Printf("Warning: core reports libretro API %d, expected %d", v, libretro.APIVersion)
	}

	h.audio = make([]int16, MaxAudioFrames*2)
	h.state = stateCoreLoaded
	log.Printf("Loaded core: %s %s", h.info.Name, h.info.Version)
	return nil
}

// UnloadCore tears the host down to the unloaded state: active content is
// unloaded, the core is deinitialized and closed, and every buffer and
// cached value is released. Idempotent.
func (h *Host) UnloadCore() {
	if h.state == stateUnloaded {
		return
	}
	h.UnloadGame()

	h.core.Deinit()
	if err := h.core.Close(); err != nil {
		log.Printf("Warning: failed to close core: %v", err)
	}
	h.core = nil
	h.info = libretro.SystemInfo{}
	h.av = libretro.SystemAVInfo{}
	h.fb = nil
	h.fbWidth, h.fbHeight, h.fbPitch = 0, 0, 0
	h.audio = nil
	h.audioFrames = 0
	h.state = stateUnloaded
}

// LoadGame hands the content at path to the core. When the core does not
// require a full path the content bytes are embedded, transparently
// extracting compressed archives unless the core blocks extraction. On
// rejection the host stays in the core-loaded state.
func (h *Host) LoadGame(path string) error {
	switch h.state {
	case stateUnloaded:
		return ErrNoCore
	case stateGameLoaded:
		return ErrGameLoaded
	}

	game := libretro.GameInfo{Path: path}
	if !h.info.NeedFullpath {
		data, name, err := content.Load(path, h.info.ExtensionList(), h.info.BlockExtract)
		if err != nil {
			return fmt.Errorf("failed to load content: %w", err)
		}
		game.Data = data
		game.Meta = name
	}

	if !h.core.LoadGame(&game) {
		return ErrContentRejected
	}

	h.av = h.core.SystemAVInfo()
	h.fbWidth = h.av.Geometry.BaseWidth
	h.fbHeight = h.av.Geometry.BaseHeight

	h.core.SetControllerPortDevice(0, libretro.DeviceJoypad)
	h.core.SetControllerPortDevice(1, libretro.DeviceJoypad)

	h.state = stateGameLoaded
	log.Printf("Game loaded: %dx%d @ %.2f fps, audio %.0f Hz",
		h.av.Geometry.BaseWidth, h.av.Geometry.BaseHeight,
		h.av.Timing.FPS, h.av.Timing.SampleRate)
	return nil
}

// UnloadGame unloads the current content, returning to the core-loaded
// state. A no-op when no game is loaded.
func (h *Host) UnloadGame() {
	if h.state != stateGameLoaded {
		return
	}
	h.core.UnloadGame()
	h.state = stateCoreLoaded
}

// RunFrame executes one frame. The audio queue is reset before the core
// runs, so one queue of samples corresponds to one emulated frame; a
// consumer that does not drain before the next call loses unread samples.
func (h *Host) RunFrame() error {
	if h.state != stateGameLoaded {
		return ErrNoGame
	}
	h.audioFrames = 0
	h.core.Run()
	return nil
}

// Reset resets the running game.
func (h *Host) Reset() error {
	if h.state != stateGameLoaded {
		return ErrNoGame
	}
	h.core.Reset()
	return nil
}

// IsLoaded reports whether a core is loaded.
func (h *Host) IsLoaded() bool {
	return h.state != stateUnloaded
}

// IsGameLoaded reports whether content is loaded.
func (h *Host) IsGameLoaded() bool {
	return h.state == stateGameLoaded
}

// Name returns the loaded core's library name.
func (h *Host) Name() string {
	return h.info.Name
}

// Version returns the loaded core's library version.
func (h *Host) Version() string {
	return h.info.Version
}

// Extensions returns the core's pipe-separated valid content extensions.
func (h *Host) Extensions() string {
	return h.info.ValidExtensions
}

// SystemInfo returns the cached core metadata.
func (h *Host) SystemInfo() libretro.SystemInfo {
	return h.info
}

// AVInfo returns the geometry and timing captured when content was loaded.
func (h *Host) AVInfo() libretro.SystemAVInfo {
	return h.av
}

// FPS returns the core's frame rate, defaulting to 60 before content
// reports its timing.
func (h *Host) FPS() float64 {
	if h.av.Timing.FPS > 0 {
		return h.av.Timing.FPS
	}
	return 60
}

// SampleRate returns the core's audio sample rate, defaulting to 44100.
func (h *Host) SampleRate() float64 {
	if h.av.Timing.SampleRate > 0 {
		return h.av.Timing.SampleRate
	}
	return 44100
}

// PixelFormat returns the most recently negotiated framebuffer format.
func (h *Host) PixelFormat() libretro.PixelFormat {
	return h.pixelFormat
}

// SetSystemDirectory sets the directory reported for system-directory and
// assets-directory queries. An empty path resets to ".".
func (h *Host) SetSystemDirectory(path string) {
	if path == "" {
		path = "."
	}
	h.systemDir = libretro.CString(path)
}

// SetSaveDirectory sets the directory reported for save-directory queries.
// An empty path resets to ".".
func (h *Host) SetSaveDirectory(path string) {
	if path == "" {
		path = "."
	}
	h.saveDir = libretro.CString(path)
}

// logSink renders core log messages through the standard logger.
func (h *Host) logSink(level libretro.LogLevel, msg string) {
	log.Printf("[Libretro %s] %s", level, strings.TrimRight(msg, "\n"))
}
