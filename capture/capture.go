// Package capture records microphone audio by supervising an external
// parecord process that writes 16 kHz mono s16le WAV to a temp file.
package capture

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// WAVHeaderSize is the size of a WAV file containing no samples.
const WAVHeaderSize = 44

// stopGrace bounds the wait for parecord to exit after SIGINT before we kill it.
const stopGrace = 2 * time.Second

func parecordArgs(outPath string) []string {
	return []string{
		"parecord",
		"--format=s16le",
		"--rate=16000",
		"--channels=1",
		"--file-format=wav",
		outPath,
	}
}

// Recorder owns at most one recording process and its temp file.
type Recorder struct {
	mu      sync.Mutex
	cmd     *exec.Cmd
	path    string
	started time.Time

	tempDir string
	argv    func(outPath string) []string
}

func New() *Recorder {
	return &Recorder{argv: parecordArgs}
}

// NewWithCommand builds a recorder around an arbitrary command line.
// Used by tests and the doctor checks.
func NewWithCommand(tempDir string, argv func(outPath string) []string) *Recorder {
	return &Recorder{tempDir: tempDir, argv: argv}
}

// Start spawns the recording process writing to a fresh temp file.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd != nil {
		return fmt.Errorf("recording already in progress")
	}

	dir := r.tempDir
	if dir == "" {
		dir = os.TempDir()
	}
	id := strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	path := filepath.Join(dir, "voice_"+id+".wav")

	argv := r.argv(path)
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawning %s: %w", argv[0], err)
	}

	r.cmd = cmd
	r.path = path
	r.started = time.Now()
	return nil
}

// Stop terminates the recording process (SIGINT, then kill after the grace
// period) and returns the temp file path, or "" when the file holds no audio
// beyond the WAV header. Header-only files are deleted before returning.
func (r *Recorder) Stop() string {
	r.mu.Lock()
	cmd := r.cmd
	path := r.path
	r.cmd = nil
	r.path = ""
	r.mu.Unlock()

	if cmd == nil {
		return ""
	}

	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		cmd.Process.Kill()
	}
	done := make(chan struct{})
	go func() {
		cmd.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(stopGrace):
		cmd.Process.Kill()
		<-done
	}

	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	if info.Size() <= WAVHeaderSize {
		os.Remove(path)
		return ""
	}
	return path
}

// Active reports whether a recording process is currently running.
func (r *Recorder) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cmd != nil
}

// StartedAt returns when the current recording began, zero when idle.
func (r *Recorder) StartedAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cmd == nil {
		return time.Time{}
	}
	return r.started
}

// CheckCommand verifies the recording binary is installed.
func CheckCommand() error {
	if _, err := exec.LookPath("parecord"); err != nil {
		return fmt.Errorf("parecord not found (install pulseaudio-utils)")
	}
	return nil
}
