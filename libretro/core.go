package libretro

import (
	"errors"
	"unsafe"
)

// ErrMissingEntryPoints is returned when a shared library does not export
// all mandatory retro_* entry points (init, deinit, run, load_game).
var ErrMissingEntryPoints = errors.New("core is missing required entry points")

// Core is the bound entry-point table of a loaded libretro module. The dylib
// package provides the dynamic-library implementation; tests use in-process
// stand-ins. Optional entry points the module does not export behave as
// no-ops returning zero values.
//
// Call order matters: SetEnvironment must precede Init (a core may issue
// environment queries during its own initialization), and SetFrameCallbacks
// must follow Init. The host package enforces this sequencing.
type Core interface {
	// SetEnvironment registers the environment handler and log sink.
	SetEnvironment(env EnvironmentFunc, log LogFunc)

	// Init initializes the core. Called exactly once after SetEnvironment.
	Init()

	// SetFrameCallbacks registers the per-frame handlers. The callbacks
	// struct must stay valid until the core is closed.
	SetFrameCallbacks(cb *FrameCallbacks)

	// Deinit shuts the core down.
	Deinit()

	// APIVersion returns the libretro API version the core implements.
	APIVersion() uint32

	// SystemInfo returns the core's static metadata.
	SystemInfo() SystemInfo

	// SystemAVInfo returns geometry and timing. Only meaningful once
	// content has been accepted.
	SystemAVInfo() SystemAVInfo

	// SetControllerPortDevice assigns a device type to a controller port.
	SetControllerPortDevice(port, device uint32)

	// Reset resets the running game.
	Reset()

	// Run executes one frame. The core may invoke the registered video,
	// audio and input callbacks any number of times during this call.
	Run()

	// SerializeSize returns the byte size of a serialized save state,
	// or 0 when the core does not support save states.
	SerializeSize() int

	// Serialize writes the current state into buf.
	Serialize(buf []byte) bool

	// Unserialize restores state from data.
	Unserialize(data []byte) bool

	// LoadGame hands content to the core. A false return means the core
	// rejected the content.
	LoadGame(game *GameInfo) bool

	// UnloadGame unloads the current content.
	UnloadGame()

	// MemoryData returns a pointer to the core-owned memory region, or nil.
	MemoryData(id uint32) unsafe.Pointer

	// MemorySize returns the byte size of a core memory region.
	MemorySize(id uint32) int

	// Close releases the underlying module handle.
	Close() error
}
