package formatter

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/mvx/internal/models"
	th "github.com/desertthunder/mvx/internal/testing"
)

func sampleWishlist() []models.Movie {
	return []models.Movie{
		{
			ID:               603,
			Title:            "The Matrix",
			ReleaseDate:      "1999-03-31",
			VoteAverage:      8.2,
			OriginalLanguage: "en",
			Overview:         "A computer hacker learns the truth.",
		},
		{
			ID:               550,
			Title:            "Fight Club",
			ReleaseDate:      "1999-10-15",
			VoteAverage:      8.4,
			OriginalLanguage: "en",
			Overview:         "An insomniac office worker.",
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleWishlist())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "ID,Title,Year,Rating,Language,Overview") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "603") {
			t.Errorf("CSV missing movie ID")
		}
		if !strings.Contains(output, "The Matrix") {
			t.Errorf("CSV missing title")
		}
		if !strings.Contains(output, "1999") {
			t.Errorf("CSV missing year")
		}
		if !strings.Contains(output, "8.2") {
			t.Errorf("CSV missing rating")
		}
	})

	t.Run("ExportToCSV Empty Wishlist", func(t *testing.T) {
		data, err := ExportToCSV(nil)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 1 {
			t.Errorf("expected header only, got %d lines", len(lines))
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		t.Run("without poster image", func(t *testing.T) {
			data, err := ExportToMarkdown(sampleWishlist(), "")
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			output := string(data)

			if !strings.Contains(output, "# Wishlist") {
				t.Errorf("Markdown missing title")
			}
			if !strings.Contains(output, "**Movies**: 2") {
				t.Errorf("Markdown missing movie count")
			}
			if !strings.Contains(output, "1. The Matrix (1999) [8.2]") {
				t.Errorf("Markdown missing first movie line, got: %s", output)
			}
			if strings.Contains(output, "![Poster]") {
				t.Errorf("Markdown should not reference a poster image")
			}
		})

		t.Run("with poster image", func(t *testing.T) {
			data, err := ExportToMarkdown(sampleWishlist(), "poster.jpg")
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			if !strings.Contains(string(data), "![Poster](poster.jpg)") {
				t.Errorf("Markdown missing poster reference")
			}
		})

		t.Run("missing release date", func(t *testing.T) {
			data, err := ExportToMarkdown([]models.Movie{{ID: 1, Title: "Untitled"}}, "")
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			if !strings.Contains(string(data), "1. Untitled [0.0]") {
				t.Errorf("expected no year parenthetical, got: %s", data)
			}
		})
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleWishlist())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Wishlist: 2 movies") {
			t.Errorf("text missing count header")
		}
		if !strings.Contains(output, "2. Fight Club (1999)") {
			t.Errorf("text missing second movie line, got: %s", output)
		}
	})
}

func TestWriteExports(t *testing.T) {
	t.Run("WriteCSVExport", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "export")

		result, err := WriteCSVExport(sampleWishlist(), base)
		if err != nil {
			t.Fatalf("WriteCSVExport failed: %v", err)
		}

		th.AssertFileExists(t, result.MoviesFile)
		th.AssertFileExists(t, result.MetadataFile)

		if !strings.Contains(th.MustReadFile(t, result.MetadataFile), `"count": 2`) {
			t.Errorf("metadata missing count")
		}
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "wishlist")

		result, err := WriteMarkdownExport(sampleWishlist(), dir, "")
		if err != nil {
			t.Fatalf("WriteMarkdownExport failed: %v", err)
		}

		if result.Directory != dir {
			t.Errorf("expected directory %s, got %s", dir, result.Directory)
		}
		th.AssertFileExists(t, filepath.Join(dir, "README.md"))
		if result.PosterImage != "" {
			t.Errorf("no poster expected without an image URL")
		}
	})

	t.Run("WriteTextExport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "list.txt")

		written, err := WriteTextExport(sampleWishlist(), path)
		if err != nil {
			t.Fatalf("WriteTextExport failed: %v", err)
		}
		if written != path {
			t.Errorf("expected path %s, got %s", path, written)
		}
		th.AssertFileExists(t, path)
	})
}

func TestDownloadImage(t *testing.T) {
	if _, err := DownloadImage(""); err == nil {
		t.Error("expected error for empty URL")
	}
}
