package host

import "unsafe"

// audioSample appends one stereo sample pair, silently dropping it once the
// queue holds MaxAudioFrames frames for this cycle.
func (h *Host) audioSample(left, right int16) {
	if h.audio == nil || h.audioFrames >= MaxAudioFrames {
		return
	}
	i := h.audioFrames * 2
	h.audio[i] = left
	h.audio[i+1] = right
	h.audioFrames++
}

// audioSampleBatch accepts up to the remaining queue capacity and returns
// the number of frames actually stored. The core must honor the return
// value; frames past it are lost without diagnostic.
func (h *Host) audioSampleBatch(data *int16, frames int) int {
	if h.audio == nil || data == nil || frames <= 0 {
		return 0
	}
	n := MaxAudioFrames - h.audioFrames
	if frames < n {
		n = frames
	}
	if n <= 0 {
		return 0
	}
	copy(h.audio[h.audioFrames*2:], unsafe.Slice(data, n*2))
	h.audioFrames += n
	return n
}

// AudioSamples returns the interleaved stereo samples produced during the
// last frame. The slice aliases host-owned storage and is overwritten by
// the next RunFrame.
func (h *Host) AudioSamples() []int16 {
	if h.audio == nil {
		return nil
	}
	return h.audio[:h.audioFrames*2]
}

// AudioFrames returns the number of stereo frames currently queued.
func (h *Host) AudioFrames() int {
	return h.audioFrames
}

// ClearAudio drops any queued samples.
func (h *Host) ClearAudio() {
	h.audioFrames = 0
}
