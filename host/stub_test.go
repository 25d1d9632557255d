package host

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/user-none/retrohost/libretro"
)

// stubCore is an in-process libretro.Core used to drive the host without a
// real shared library. Run dispatches to onRun so tests can script the
// callbacks a core would fire during one frame.
type stubCore struct {
	env   libretro.EnvironmentFunc
	log   libretro.LogFunc
	frame *libretro.FrameCallbacks

	info libretro.SystemInfo
	av   libretro.SystemAVInfo

	initCalled   bool
	deinitCalled bool
	closed       bool

	envSetBeforeInit   bool
	framesSetAfterInit bool

	loadGameOK   bool
	lastGame     libretro.GameInfo
	gameUnloaded bool
	resetCalled  bool
	runCalled    int

	ports map[uint32]uint32

	onRun func(c *stubCore)

	counter uint32 // round-tripped through Serialize/Unserialize
	sram    []byte
}

func newStubCore() *stubCore {
	return &stubCore{
		loadGameOK: true,
		ports:      make(map[uint32]uint32),
		info: libretro.SystemInfo{
			Name:            "StubCore",
			Version:         "1.0",
			ValidExtensions: "bin|rom",
			NeedFullpath:    true,
		},
		av: libretro.SystemAVInfo{
			Geometry: libretro.GameGeometry{
				BaseWidth:   320,
				BaseHeight:  240,
				MaxWidth:    320,
				MaxHeight:   240,
				AspectRatio: 4.0 / 3.0,
			},
			Timing: libretro.SystemTiming{FPS: 60, SampleRate: 44100},
		},
	}
}

func (c *stubCore) SetEnvironment(env libretro.EnvironmentFunc, log libretro.LogFunc) {
	c.env = env
	c.log = log
	if !c.initCalled {
		c.envSetBeforeInit = true
	}
}

func (c *stubCore) Init() {
	c.initCalled = true
}

func (c *stubCore) SetFrameCallbacks(cb *libretro.FrameCallbacks) {
	c.frame = cb
	if c.initCalled {
		c.framesSetAfterInit = true
	}
}

func (c *stubCore) Deinit() {
	c.deinitCalled = true
}

func (c *stubCore) APIVersion() uint32 {
	return libretro.APIVersion
}

func (c *stubCore) SystemInfo() libretro.SystemInfo {
	return c.info
}

func (c *stubCore) SystemAVInfo() libretro.SystemAVInfo {
	return c.av
}

func (c *stubCore) SetControllerPortDevice(port, device uint32) {
	c.ports[port] = device
}

func (c *stubCore) Reset() {
	c.resetCalled = true
}

func (c *stubCore) Run() {
	c.runCalled++
	if c.onRun != nil {
		c.onRun(c)
	}
}

func (c *stubCore) SerializeSize() int {
	return 4
}

func (c *stubCore) Serialize(buf []byte) bool {
	if len(buf) < 4 {
		return false
	}
	binary.LittleEndian.PutUint32(buf, c.counter)
	return true
}

func (c *stubCore) Unserialize(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	c.counter = binary.LittleEndian.Uint32(data)
	return true
}

func (c *stubCore) LoadGame(game *libretro.GameInfo) bool {
	if game != nil {
		c.lastGame = *game
	}
	return c.loadGameOK
}

func (c *stubCore) UnloadGame() {
	c.gameUnloaded = true
}

func (c *stubCore) MemoryData(id uint32) unsafe.Pointer {
	if id != libretro.MemorySaveRAM || len(c.sram) == 0 {
		return nil
	}
	return unsafe.Pointer(&c.sram[0])
}

func (c *stubCore) MemorySize(id uint32) int {
	if id != libretro.MemorySaveRAM {
		return 0
	}
	return len(c.sram)
}

func (c *stubCore) Close() error {
	c.closed = true
	return nil
}

// newLoadedHost attaches the stub and loads a game, failing the test on
// any error.
func newLoadedHost(t *testing.T, c *stubCore) *Host {
	t.Helper()
	h := New()
	if err := h.AttachCore(c); err != nil {
		t.Fatalf("AttachCore failed: %v", err)
	}
	if err := h.LoadGame("game.bin"); err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}
	return h
}
