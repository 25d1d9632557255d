// Package dylib binds libretro modules from shared libraries at runtime
// using purego's dlopen/dlsym, exposing them through the libretro.Core
// interface.
package dylib

// The four entry points every loadable module must export. A module missing
// any of these cannot be driven and is rejected at open time.
var requiredSymbols = []string{
	"retro_init",
	"retro_deinit",
	"retro_run",
	"retro_load_game",
}

// Entry points a module may export. Missing optional symbols leave nil
// bindings that every call site guards.
var optionalSymbols = []string{
	"retro_set_environment",
	"retro_set_video_refresh",
	"retro_set_audio_sample",
	"retro_set_audio_sample_batch",
	"retro_set_input_poll",
	"retro_set_input_state",
	"retro_api_version",
	"retro_get_system_info",
	"retro_get_system_av_info",
	"retro_set_controller_port_device",
	"retro_reset",
	"retro_serialize_size",
	"retro_serialize",
	"retro_unserialize",
	"retro_unload_game",
	"retro_get_memory_data",
	"retro_get_memory_size",
}

// missingRequired returns the mandatory entry points absent from syms.
func missingRequired(syms map[string]uintptr) []string {
	var missing []string
	for _, name := range requiredSymbols {
		if syms[name] == 0 {
			missing = append(missing, name)
		}
	}
	return missing
}
