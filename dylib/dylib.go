//go:build darwin || freebsd || linux

package dylib

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/user-none/retrohost/libretro"
)

// Core is a libretro module bound from a shared library. Only one Core may
// be open per process at a time: the Go-to-C callback trampolines are
// process-wide singletons (purego callbacks cannot be released) and route
// to the currently open core.
type Core struct {
	handle uintptr

	// Mandatory entry points; presence is verified in Open.
	init     func()
	deinit   func()
	run      func()
	loadGame func(*gameInfo) bool

	// Optional entry points; nil when the module does not export them.
	setEnvironment          func(uintptr)
	setVideoRefresh         func(uintptr)
	setAudioSample          func(uintptr)
	setAudioSampleBatch     func(uintptr)
	setInputPoll            func(uintptr)
	setInputState           func(uintptr)
	apiVersion              func() uint32
	getSystemInfo           func(*systemInfo)
	getSystemAVInfo         func(*avInfo)
	setControllerPortDevice func(uint32, uint32)
	reset                   func()
	serializeSize           func() uintptr
	serialize               func(unsafe.Pointer, uintptr) bool
	unserialize             func(unsafe.Pointer, uintptr) bool
	unloadGame              func()
	getMemoryData           func(uint32) unsafe.Pointer
	getMemorySize           func(uint32) uintptr

	env   libretro.EnvironmentFunc
	log   libretro.LogFunc
	frame *libretro.FrameCallbacks
}

var _ libretro.Core = (*Core)(nil)

var (
	activeMu sync.Mutex
	active   *Core
)

// Open loads the shared library at path and binds its retro_* entry points.
// A module missing any mandatory entry point is rejected with
// libretro.ErrMissingEntryPoints and its handle is closed.
func Open(path string) (libretro.Core, error) {
	activeMu.Lock()
	defer activeMu.Unlock()
	if active != nil {
		return nil, errors.New("a core is already open")
	}

	handle, err := purego.Dlopen(path, purego.RTLD_LAZY)
	if err != nil {
		return nil, fmt.Errorf("failed to open core: %w", err)
	}

	syms := make(map[string]uintptr)
	for _, name := range requiredSymbols {
		if addr, err := purego.Dlsym(handle, name); err == nil {
			syms[name] = addr
		}
	}
	for _, name := range optionalSymbols {
		if addr, err := purego.Dlsym(handle, name); err == nil {
			syms[name] = addr
		}
	}

	if missing := missingRequired(syms); len(missing) > 0 {
		purego.Dlclose(handle)
		return nil, fmt.Errorf("%w: %s", libretro.ErrMissingEntryPoints, strings.Join(missing, ", "))
	}

	c := &Core{handle: handle}
	bind := func(fptr any, name string) {
		if addr := syms[name]; addr != 0 {
			purego.RegisterFunc(fptr, addr)
		}
	}
	bind(&c.init, "retro_init")
	bind(&c.deinit, "retro_deinit")
	bind(&c.run, "retro_run")
	bind(&c.loadGame, "retro_load_game")
	bind(&c.setEnvironment, "retro_set_environment")
	bind(&c.setVideoRefresh, "retro_set_video_refresh")
	bind(&c.setAudioSample, "retro_set_audio_sample")
	bind(&c.setAudioSampleBatch, "retro_set_audio_sample_batch")
	bind(&c.setInputPoll, "retro_set_input_poll")
	bind(&c.setInputState, "retro_set_input_state")
	bind(&c.apiVersion, "retro_api_version")
	bind(&c.getSystemInfo, "retro_get_system_info")
	bind(&c.getSystemAVInfo, "retro_get_system_av_info")
	bind(&c.setControllerPortDevice, "retro_set_controller_port_device")
	bind(&c.reset, "retro_reset")
	bind(&c.serializeSize, "retro_serialize_size")
	bind(&c.serialize, "retro_serialize")
	bind(&c.unserialize, "retro_unserialize")
	bind(&c.unloadGame, "retro_unload_game")
	bind(&c.getMemoryData, "retro_get_memory_data")
	bind(&c.getMemorySize, "retro_get_memory_size")

	active = c
	return c, nil
}

// SetEnvironment registers the environment handler and log sink. Must be
// called before Init so the core can negotiate during initialization.
func (c *Core) SetEnvironment(env libretro.EnvironmentFunc, log libretro.LogFunc) {
	c.env = env
	c.log = log
	if c.setEnvironment == nil {
		return
	}
	ensureTrampolines()
	c.setEnvironment(trampolines.environment)
}

// Init initializes the core.
func (c *Core) Init() {
	c.init()
}

// SetFrameCallbacks registers the per-frame handlers on the core.
func (c *Core) SetFrameCallbacks(cb *libretro.FrameCallbacks) {
	c.frame = cb
	ensureTrampolines()
	if c.setVideoRefresh != nil {
		c.setVideoRefresh(trampolines.video)
	}
	if c.setAudioSample != nil {
		c.setAudioSample(trampolines.audioSample)
	}
	if c.setAudioSampleBatch != nil {
		c.setAudioSampleBatch(trampolines.audioBatch)
	}
	if c.setInputPoll != nil {
		c.setInputPoll(trampolines.inputPoll)
	}
	if c.setInputState != nil {
		c.setInputState(trampolines.inputState)
	}
}

// Deinit shuts the core down.
func (c *Core) Deinit() {
	c.deinit()
}

// APIVersion returns the core's libretro API version, or 0 when the module
// does not export retro_api_version.
func (c *Core) APIVersion() uint32 {
	if c.apiVersion == nil {
		return 0
	}
	return c.apiVersion()
}

// SystemInfo reads the core's static metadata. The core owns the string
// memory; the values are copied into Go strings immediately.
func (c *Core) SystemInfo() libretro.SystemInfo {
	var si libretro.SystemInfo
	if c.getSystemInfo == nil {
		return si
	}
	var raw systemInfo
	c.getSystemInfo(&raw)
	si.Name = libretro.GoString(raw.libraryName)
	si.Version = libretro.GoString(raw.libraryVersion)
	si.ValidExtensions = libretro.GoString(raw.validExtensions)
	si.NeedFullpath = raw.needFullpath
	si.BlockExtract = raw.blockExtract
	return si
}

// SystemAVInfo reads the core's geometry and timing.
func (c *Core) SystemAVInfo() libretro.SystemAVInfo {
	var out libretro.SystemAVInfo
	if c.getSystemAVInfo == nil {
		return out
	}
	var raw avInfo
	c.getSystemAVInfo(&raw)
	out.Geometry = libretro.GameGeometry{
		BaseWidth:   int(raw.geometry.baseWidth),
		BaseHeight:  int(raw.geometry.baseHeight),
		MaxWidth:    int(raw.geometry.maxWidth),
		MaxHeight:   int(raw.geometry.maxHeight),
		AspectRatio: raw.geometry.aspectRatio,
	}
	out.Timing = libretro.SystemTiming{
		FPS:        raw.timing.fps,
		SampleRate: raw.timing.sampleRate,
	}
	return out
}

// SetControllerPortDevice assigns a device type to a controller port.
func (c *Core) SetControllerPortDevice(port, device uint32) {
	if c.setControllerPortDevice != nil {
		c.setControllerPortDevice(port, device)
	}
}

// Reset resets the running game.
func (c *Core) Reset() {
	if c.reset != nil {
		c.reset()
	}
}

// Run executes one frame.
func (c *Core) Run() {
	c.run()
}

// SerializeSize returns the save-state size in bytes, or 0 when the module
// does not support serialization.
func (c *Core) SerializeSize() int {
	if c.serializeSize == nil {
		return 0
	}
	return int(c.serializeSize())
}

// Serialize writes the current state into buf.
func (c *Core) Serialize(buf []byte) bool {
	if c.serialize == nil || len(buf) == 0 {
		return false
	}
	return c.serialize(unsafe.Pointer(&buf[0]), uintptr(len(buf)))
}

// Unserialize restores state from data.
func (c *Core) Unserialize(data []byte) bool {
	if c.unserialize == nil || len(data) == 0 {
		return false
	}
	return c.unserialize(unsafe.Pointer(&data[0]), uintptr(len(data)))
}

// LoadGame hands content to the core. Path, meta and data memory is pinned
// for the duration of the call.
func (c *Core) LoadGame(game *libretro.GameInfo) bool {
	if game == nil {
		return false
	}

	var pin runtime.Pinner
	defer pin.Unpin()

	var gi gameInfo
	if game.Path != "" {
		p := libretro.CString(game.Path)
		pin.Pin(&p[0])
		gi.path = &p[0]
	}
	if game.Meta != "" {
		m := libretro.CString(game.Meta)
		pin.Pin(&m[0])
		gi.meta = &m[0]
	}
	if len(game.Data) > 0 {
		pin.Pin(&game.Data[0])
		gi.data = unsafe.Pointer(&game.Data[0])
		gi.size = uintptr(len(game.Data))
	}
	return c.loadGame(&gi)
}

// UnloadGame unloads the current content.
func (c *Core) UnloadGame() {
	if c.unloadGame != nil {
		c.unloadGame()
	}
}

// MemoryData returns a pointer to a core-owned memory region, or nil.
func (c *Core) MemoryData(id uint32) unsafe.Pointer {
	if c.getMemoryData == nil {
		return nil
	}
	return c.getMemoryData(id)
}

// MemorySize returns the byte size of a core memory region.
func (c *Core) MemorySize(id uint32) int {
	if c.getMemorySize == nil {
		return 0
	}
	return int(c.getMemorySize(id))
}

// Close releases the module handle. Idempotent.
func (c *Core) Close() error {
	activeMu.Lock()
	defer activeMu.Unlock()
	if c.handle == 0 {
		return nil
	}
	if active == c {
		active = nil
	}
	err := purego.Dlclose(c.handle)
	c.handle = 0
	c.env = nil
	c.log = nil
	c.frame = nil
	if err != nil {
		return fmt.Errorf("failed to close core: %w", err)
	}
	return nil
}

// trampolines are the process-wide C-callable callbacks handed to cores.
// They are created once and dispatch through the active core.
var trampolines struct {
	once        sync.Once
	environment uintptr
	log         uintptr
	video       uintptr
	audioSample uintptr
	audioBatch  uintptr
	inputPoll   uintptr
	inputState  uintptr
}

func ensureTrampolines() {
	trampolines.once.Do(func() {
		trampolines.log = purego.NewCallback(func(level int32, format *byte) {
			c := active
			if c == nil || c.log == nil {
				return
			}
			// Varargs cannot cross the purego boundary; the format
			// string is forwarded unformatted.
			c.log(libretro.LogLevel(level), libretro.GoString(format))
		})
		trampolines.environment = purego.NewCallback(func(cmd uint32, data unsafe.Pointer) uintptr {
			c := active
			if c == nil || c.env == nil {
				return 0
			}
			if !c.env(cmd, data) {
				return 0
			}
			// The host acknowledges the log interface; the C-callable
			// sink has to be filled in here.
			if cmd == libretro.EnvGetLogInterface && data != nil {
				(*logCallback)(data).log = trampolines.log
			}
			return 1
		})
		trampolines.video = purego.NewCallback(func(data unsafe.Pointer, width, height uint32, pitch uintptr) {
			c := active
			if c == nil || c.frame == nil || c.frame.VideoRefresh == nil {
				return
			}
			c.frame.VideoRefresh(data, int(width), int(height), int(pitch))
		})
		trampolines.audioSample = purego.NewCallback(func(left, right int16) {
			c := active
			if c == nil || c.frame == nil || c.frame.AudioSample == nil {
				return
			}
			c.frame.AudioSample(left, right)
		})
		trampolines.audioBatch = purego.NewCallback(func(data unsafe.Pointer, frames uintptr) uintptr {
			c := active
			if c == nil || c.frame == nil || c.frame.AudioSampleBatch == nil {
				return 0
			}
			return uintptr(c.frame.AudioSampleBatch((*int16)(data), int(frames)))
		})
		trampolines.inputPoll = purego.NewCallback(func() {
			c := active
			if c == nil || c.frame == nil || c.frame.InputPoll == nil {
				return
			}
			c.frame.InputPoll()
		})
		trampolines.inputState = purego.NewCallback(func(port, device, index, id uint32) uintptr {
			c := active
			if c == nil || c.frame == nil || c.frame.InputState == nil {
				return 0
			}
			return uintptr(c.frame.InputState(port, device, index, id))
		})
	})
}
