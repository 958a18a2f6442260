package capture

import (
	"os"
	"testing"
	"time"
)

// scriptRecorder builds a recorder whose "capture process" is a shell
// script writing n bytes to the output path, then sleeping until signaled.
func scriptRecorder(t *testing.T, script string) *Recorder {
	t.Helper()
	return NewWithCommand(t.TempDir(), func(outPath string) []string {
		return []string{"sh", "-c", script, outPath}
	})
}

func waitForFile(t *testing.T, r *Recorder, size int64) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		r.mu.Lock()
		path := r.path
		r.mu.Unlock()
		if info, err := os.Stat(path); err == nil && info.Size() >= size {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("capture file never reached expected size")
}

func TestStopReturnsPathForRealAudio(t *testing.T) {
	r := scriptRecorder(t, `head -c 32000 /dev/zero > "$0"; sleep 30`)
	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !r.Active() {
		t.Error("Active() should be true while recording")
	}
	waitForFile(t, r, 32000)

	path := r.Stop()
	if path == "" {
		t.Fatal("Stop returned empty path for 32000-byte capture")
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("capture file missing after Stop: %v", err)
	}
	if info.Size() != 32000 {
		t.Errorf("capture file size = %d, want 32000", info.Size())
	}
	if r.Active() {
		t.Error("Active() should be false after Stop")
	}
	os.Remove(path)
}

func TestStopDiscardsHeaderOnlyFile(t *testing.T) {
	r := scriptRecorder(t, `head -c 44 /dev/zero > "$0"; sleep 30`)
	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitForFile(t, r, 44)

	r.mu.Lock()
	path := r.path
	r.mu.Unlock()

	if got := r.Stop(); got != "" {
		t.Errorf("Stop = %q, want empty for header-only file", got)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("header-only file should be deleted by Stop")
	}
}

func TestStartFailsForMissingBinary(t *testing.T) {
	r := NewWithCommand(t.TempDir(), func(outPath string) []string {
		return []string{"definitely-not-a-real-recorder", outPath}
	})
	if err := r.Start(); err == nil {
		t.Fatal("expected error spawning nonexistent binary")
	}
	if r.Active() {
		t.Error("Active() should be false after failed Start")
	}
}

func TestDoubleStartRejected(t *testing.T) {
	r := scriptRecorder(t, `head -c 100 /dev/zero > "$0"; sleep 30`)
	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer r.Stop()
	if err := r.Start(); err == nil {
		t.Error("second Start should fail while recording")
	}
}

func TestStopWhenIdle(t *testing.T) {
	r := New()
	if got := r.Stop(); got != "" {
		t.Errorf("Stop on idle recorder = %q, want empty", got)
	}
}

func TestStartedAt(t *testing.T) {
	r := scriptRecorder(t, `head -c 100 /dev/zero > "$0"; sleep 30`)
	if !r.StartedAt().IsZero() {
		t.Error("StartedAt should be zero when idle")
	}
	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer r.Stop()
	if r.StartedAt().IsZero() {
		t.Error("StartedAt should be set while recording")
	}
}
