package models

import "testing"

func TestMovieYear(t *testing.T) {
	tc := []struct {
		name    string
		release string
		want    string
	}{
		{name: "full date", release: "2014-11-05", want: "2014"},
		{name: "empty", release: "", want: ""},
		{name: "short", release: "20", want: ""},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			m := Movie{ReleaseDate: tt.release}
			if got := m.Year(); got != tt.want {
				t.Errorf("Year() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMovieTrailer(t *testing.T) {
	t.Run("no videos", func(t *testing.T) {
		m := Movie{}
		if m.Trailer() != nil {
			t.Error("expected nil trailer when videos are absent")
		}
	})

	t.Run("prefers first trailer or teaser", func(t *testing.T) {
		m := Movie{Videos: &VideoPage{Results: []Video{
			{Key: "a", Type: "Clip"},
			{Key: "b", Type: "Teaser"},
			{Key: "c", Type: "Trailer"},
		}}}
		tr := m.Trailer()
		if tr == nil || tr.Key != "b" {
			t.Errorf("expected teaser b, got %+v", tr)
		}
	})
}

func TestHistoryEntryValidate(t *testing.T) {
	entry := NewHistoryEntry(1, 42, "Interstellar", "/poster.jpg")
	if err := entry.Validate(); err != nil {
		t.Errorf("valid entry should pass validation: %v", err)
	}

	missing := NewHistoryEntry(1, 0, "Interstellar", "")
	if err := missing.Validate(); err == nil {
		t.Error("entry without movie id should fail validation")
	}

	untitled := NewHistoryEntry(1, 42, "", "")
	if err := untitled.Validate(); err == nil {
		t.Error("entry without title should fail validation")
	}
}
