package ui

import (
	"testing"

	"github.com/ytget/hz-tuner/internal/model"
)

func TestLocalization_AllLanguagesHaveAllKeys(t *testing.T) {
	l := NewLocalization()
	english := l.texts["en"]
	for lang := range l.GetAvailableLanguages() {
		texts, ok := l.texts[lang]
		if !ok {
			t.Fatalf("language %s has no texts", lang)
		}
		for key := range english {
			if texts[key] == "" {
				t.Errorf("language %s is missing key %s", lang, key)
			}
		}
	}
}

func TestLocalization_SetLanguage(t *testing.T) {
	l := NewLocalization()

	l.SetLanguage("ru")
	if got := l.GetText(KeyStop); got != "Стоп" {
		t.Errorf("ru stop = %q", got)
	}

	// Unknown languages keep the current one
	l.SetLanguage("xx")
	if l.GetCurrentLanguage() != "ru" {
		t.Errorf("current language = %s, want ru", l.GetCurrentLanguage())
	}

	if got := l.GetText("no_such_key"); got != "no_such_key" {
		t.Errorf("missing key = %q, want the key itself", got)
	}
}

func TestLocalization_SystemLanguage(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LANG", "pt_BR.UTF-8")

	l := NewLocalization()
	l.SetLanguage("system")
	if l.GetCurrentLanguage() != "pt" {
		t.Errorf("current language = %s, want pt", l.GetCurrentLanguage())
	}

	t.Setenv("LANG", "C")
	if got := systemLanguage(); got != "en" {
		t.Errorf("systemLanguage() with LANG=C = %s, want en", got)
	}
}

func TestLocalization_StatusText(t *testing.T) {
	l := NewLocalization()
	tests := []struct {
		status model.JobStatus
		want   string
	}{
		{model.JobStatusPending, "Pending"},
		{model.JobStatusRunning, "Tuning"},
		{model.JobStatusPlanned, "Planned"},
		{model.JobStatusStopped, "Stopped"},
		{model.JobStatusCompleted, "Done"},
		{model.JobStatusError, "Error"},
	}
	for _, tt := range tests {
		if got := l.StatusText(tt.status); got != tt.want {
			t.Errorf("StatusText(%s) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
