package host

import (
	"errors"
	"fmt"
	"log"
	"os"
	"unsafe"

	"github.com/user-none/retrohost/libretro"
)

// Save states and SRAM are pass-throughs: the core defines the formats and
// sizes, the host only moves bytes. Everything here requires loaded content.

// SaveStateSize returns the core-reported save-state size, or 0 outside the
// game-loaded state.
func (h *Host) SaveStateSize() int {
	if h.state != stateGameLoaded {
		return 0
	}
	return h.core.SerializeSize()
}

// SaveState serializes the current state into a buffer sized exactly to the
// core-reported requirement.
func (h *Host) SaveState() ([]byte, error) {
	if h.state != stateGameLoaded {
		return nil, ErrNoGame
	}
	size := h.core.SerializeSize()
	if size <= 0 {
		return nil, errors.New("core does not support save states")
	}
	buf := make([]byte, size)
	if !h.core.Serialize(buf) {
		return nil, errors.New("core failed to serialize state")
	}
	return buf, nil
}

// LoadState restores previously serialized state.
func (h *Host) LoadState(data []byte) error {
	if h.state != stateGameLoaded {
		return ErrNoGame
	}
	if len(data) == 0 {
		return errors.New("empty state data")
	}
	if !h.core.Unserialize(data) {
		return errors.New("core rejected state data")
	}
	return nil
}

// SaveStateToFile writes the current state to path. The file is an opaque
// blob with no host-imposed header.
func (h *Host) SaveStateToFile(path string) error {
	state, err := h.SaveState()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, state, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// LoadStateFromFile restores state from a file written by SaveStateToFile.
func (h *Host) LoadStateFromFile(path string) error {
	if h.state != stateGameLoaded {
		return ErrNoGame
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read state file: %w", err)
	}
	return h.LoadState(data)
}

// SRAM returns a view over the core-owned battery-backed memory region.
// The bytes are not copied: writes through the slice land in core memory,
// and the slice is invalid once the core is unloaded. Returns nil when the
// core exposes no such region.
func (h *Host) SRAM() []byte {
	if h.state == stateUnloaded {
		return nil
	}
	size := h.core.MemorySize(libretro.MemorySaveRAM)
	ptr := h.core.MemoryData(libretro.MemorySaveRAM)
	if ptr == nil || size <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(ptr), size)
}

// SaveSRAM dumps the battery-backed memory region to path. A core without
// SRAM makes this a silent no-op.
func (h *Host) SaveSRAM(path string) error {
	sram := h.SRAM()
	if len(sram) == 0 {
		return nil
	}
	if err := os.WriteFile(path, sram, 0644); err != nil {
		return fmt.Errorf("failed to write SRAM file: %w", err)
	}
	log.Printf("Saved SRAM to %s (%d bytes)", path, len(sram))
	return nil
}

// LoadSRAM reads a previously dumped file directly into the core-owned
// region, copying at most the region size. A core without SRAM makes this
// a silent no-op.
func (h *Host) LoadSRAM(path string) error {
	sram := h.SRAM()
	if len(sram) == 0 {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read SRAM file: %w", err)
	}
	copy(sram, data)
	log.Printf("Loaded SRAM from %s (%d bytes)", path, len(sram))
	return nil
}
