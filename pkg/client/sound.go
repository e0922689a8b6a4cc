package client

import "sync"

// Cue names an audio asset class, not a concrete file.
type Cue string

const (
	CueEmergency    Cue = "emergency"
	CueNotification Cue = "notification"
)

// SoundPlayer actually emits audio. Implementations range from a real
// audio backend to a no-op in headless deployments.
type SoundPlayer interface {
	Play(path string) error
}

// SoundManager owns the mute switch and the cue-to-asset mapping. It is
// an explicit dependency: construct one and pass it where needed.
type SoundManager struct {
	player SoundPlayer

	mu    sync.Mutex
	muted bool
	cues  map[Cue]string
}

func NewSoundManager(player SoundPlayer) *SoundManager {
	return &SoundManager{
		player: player,
		cues: map[Cue]string{
			CueEmergency:    "sounds/emergency.mp3",
			CueNotification: "sounds/notification.mp3",
		},
	}
}

// SetCue overrides the asset path for a cue.
func (m *SoundManager) SetCue(cue Cue, path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cues[cue] = path
}

// Toggle flips the mute switch and returns the new muted state.
func (m *SoundManager) Toggle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = !m.muted
	return m.muted
}

func (m *SoundManager) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

// Play emits the cue unless muted. Unknown cues and playback errors are
// swallowed: audio must never break the message path.
func (m *SoundManager) Play(cue Cue) {
	m.mu.Lock()
	muted := m.muted
	path, ok := m.cues[cue]
	m.mu.Unlock()

	if muted || !ok || m.player == nil {
		return
	}
	m.player.Play(path)
}
