package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"empty", "", 10, []string{""}},
		{"fits", "hello", 10, []string{"hello"}},
		{"wraps at space", "hello world again", 11, []string{"hello world", "again"}},
		{"long word hard break", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(tt.text, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d lines %q, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func applyTUI(t *testing.T, m tuiModel, msgs ...tea.Msg) tuiModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(tuiModel)
	}
	return m
}

func TestTUIModelRecordingCycle(t *testing.T) {
	m := tuiModel{}

	m = applyTUI(t, m, RecordingStartMsg{})
	if m.state != tuiStateRecording {
		t.Fatalf("state = %v, want recording", m.state)
	}
	if m.recordingStart.IsZero() {
		t.Error("recordingStart not set")
	}

	m = applyTUI(t, m, RecordingStopMsg{}, StatusMsg{Text: "Transcribing..."})
	if m.state != tuiStateIdle {
		t.Errorf("state = %v, want idle", m.state)
	}
	if m.statusLine != "Transcribing..." {
		t.Errorf("statusLine = %q", m.statusLine)
	}

	m = applyTUI(t, m, TranscriptMsg{Text: "hello world", Copied: true})
	if m.lastText != "hello world" || !m.copied || m.msgCount != 1 {
		t.Errorf("transcript not applied: %+v", m)
	}
	if m.statusLine != "" {
		t.Errorf("statusLine should clear, got %q", m.statusLine)
	}
}

func TestTUIModelErrorClearsStatus(t *testing.T) {
	m := applyTUI(t, tuiModel{},
		StatusMsg{Text: "Transcribing..."},
		ErrorMsg{Text: "Transcription failed: api down"},
	)
	if m.statusLine != "" {
		t.Errorf("statusLine = %q, want empty", m.statusLine)
	}
	if !strings.Contains(m.errorLine, "api down") {
		t.Errorf("errorLine = %q", m.errorLine)
	}
}

func TestTUIModelCleanedTranscript(t *testing.T) {
	m := applyTUI(t, tuiModel{},
		TranscriptMsg{Text: "um hello", Copied: true},
		StatusMsg{Text: "Cleaning up..."},
		TranscriptMsg{Text: "Hello.", Copied: true, Cleaned: true},
	)
	if m.lastText != "Hello." || !m.lastCleaned {
		t.Errorf("cleaned transcript not applied: lastText=%q cleaned=%v", m.lastText, m.lastCleaned)
	}
}

func TestTUIModelClearKey(t *testing.T) {
	m := applyTUI(t, tuiModel{}, TranscriptMsg{Text: "something", Copied: true})
	m = applyTUI(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if m.lastText != "" || m.copied {
		t.Errorf("clear key did not reset transcript: %+v", m)
	}
}
