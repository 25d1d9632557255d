// retrorun is a headless libretro core runner: it loads a core and content,
// runs a fixed number of frames, and can dump the final frame, a save state
// and SRAM to files. It is the reference consumer of the host package; how
// frames are displayed or audio is played back is up to a real frontend.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"

	"github.com/user-none/retrohost/host"
	"github.com/user-none/retrohost/libretro"
)

func main() {
	corePath := flag.String("core", "", "path to a libretro core shared library")
	contentPath := flag.String("content", "", "path to the content to load")
	frames := flag.Int("frames", 60, "number of frames to run")
	systemDir := flag.String("system-dir", "", "system directory reported to the core")
	saveDir := flag.String("save-dir", "", "save directory reported to the core")
	statePath := flag.String("state", "", "write a save state to this file after the run")
	sramPath := flag.String("sram", "", "load SRAM from this file before the run and save it after")
	screenshotPath := flag.String("screenshot", "", "write the final frame to this file as PNG")
	flag.Parse()

	if *corePath == "" || *contentPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	h := host.New()
	h.SetSystemDirectory(*systemDir)
	h.SetSaveDirectory(*saveDir)

	if err := h.LoadCore(*corePath); err != nil {
		log.Fatalf("Failed to load core: %v", err)
	}
	defer h.UnloadCore()

	log.Printf("Core: %s %s (extensions: %s)", h.Name(), h.Version(), h.Extensions())

	if err := h.LoadGame(*contentPath); err != nil {
		log.Fatalf("Failed to load content: %v", err)
	}

	if *sramPath != "" {
		if err := h.LoadSRAM(*sramPath); err != nil {
			log.Printf("Warning: SRAM load failed: %v", err)
		}
	}

	var audioTotal int
	for i := 0; i < *frames; i++ {
		if err := h.RunFrame(); err != nil {
			log.Fatalf("Frame %d failed: %v", i, err)
		}
		audioTotal += h.AudioFrames()
	}

	log.Printf("Ran %d frames: %dx%d @ %.2f fps, %d audio frames (%.0f Hz)",
		*frames, h.Width(), h.Height(), h.FPS(), audioTotal, h.SampleRate())

	if *screenshotPath != "" {
		if err := writeScreenshot(h, *screenshotPath); err != nil {
			log.Printf("Screenshot failed: %v", err)
		}
	}

	if *statePath != "" {
		if err := h.SaveStateToFile(*statePath); err != nil {
			log.Printf("Warning: state save failed: %v", err)
		} else {
			log.Printf("Saved state to %s (%d bytes)", *statePath, h.SaveStateSize())
		}
	}

	if *sramPath != "" {
		if err := h.SaveSRAM(*sramPath); err != nil {
			log.Printf("Warning: SRAM save failed: %v", err)
		}
	}
}

// writeScreenshot converts the last frame to RGBA and writes it as a PNG.
func writeScreenshot(h *host.Host, path string) error {
	pixels, width, height, pitch := h.Framebuffer()
	if pixels == nil {
		return fmt.Errorf("no frame produced")
	}

	img, err := libretro.FrameToRGBA(pixels, h.PixelFormat(), width, height, pitch)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create screenshot file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode screenshot: %w", err)
	}
	return nil
}
