// package formatter provides functions to export wishlist data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

// ExportToCSV converts a wishlist to CSV format with columns: ID, Title, Year, Rating, Language, Overview
func ExportToCSV(movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Year", "Rating", "Language", "Overview"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, movie := range movies {
		record := []string{
			strconv.FormatInt(movie.ID, 10),
			movie.Title,
			movie.Year(),
			strconv.FormatFloat(movie.VoteAverage, 'f', 1, 64),
			movie.OriginalLanguage,
			movie.Overview,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a wishlist to Markdown format with an optional poster image
func ExportToMarkdown(movies []models.Movie, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Wishlist\n\n")

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Poster](%s)\n\n", imageFilename))
	}

	buf.WriteString(fmt.Sprintf("**Movies**: %d\n\n", len(movies)))

	buf.WriteString("## Movies\n\n")
	for i, movie := range movies {
		yearPart := ""
		if year := movie.Year(); year != "" {
			yearPart = fmt.Sprintf(" (%s)", year)
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s [%.1f]\n", i+1, movie.Title, yearPart, movie.VoteAverage))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a wishlist to plain text format
func ExportToText(movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Wishlist: %d movies\n\n", len(movies)))

	for i, movie := range movies {
		buf.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, movie.Title, movie.Year()))
	}

	return buf.Bytes(), nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	MoviesFile   string
	MetadataFile string
}

// exportMetadata summarizes a wishlist export alongside the data file.
type exportMetadata struct {
	Count      int       `json:"count"`
	ExportedAt time.Time `json:"exported_at"`
}

// WriteCSVExport exports a wishlist to CSV format with an accompanying metadata JSON file.
//
// Creates {base}_movies.csv and {base}_metadata.json
func WriteCSVExport(movies []models.Movie, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = "wishlist"
	}

	csvData, err := ExportToCSV(movies)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	moviesFile := baseFilepath + "_movies.csv"
	if err := os.WriteFile(moviesFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := shared.MarshalJSON(exportMetadata{Count: len(movies), ExportedAt: time.Now()}, true)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		MoviesFile:   moviesFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory   string
	Files       []string
	PosterImage string
}

// WriteMarkdownExport exports a wishlist to Markdown format in a dedicated directory.
//
// The imageURL parameter is optional - if provided, attempts to download the
// first movie's poster. Creates a directory structure: {dir}/README.md and
// optionally {dir}/poster.jpg
func WriteMarkdownExport(movies []models.Movie, outputDir string, imageURL string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = "wishlist"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var posterFilename string
	if imageURL != "" {
		imageData, err := DownloadImage(imageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download poster image: %v\n", err)
		} else {
			posterFilename = "poster.jpg"
			posterPath := fmt.Sprintf("%s/%s", outputDir, posterFilename)
			if err := os.WriteFile(posterPath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save poster image: %v\n", err)
				posterFilename = ""
			} else {
				result.PosterImage = posterPath
				result.Files = append(result.Files, posterPath)
			}
		}
	}

	mdData, err := ExportToMarkdown(movies, posterFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteTextExport exports a wishlist to plain text format.
//
// Defaults to wishlist_movies.txt as the filename.
func WriteTextExport(movies []models.Movie, filepath string) (string, error) {
	if filepath == "" {
		filepath = "wishlist_movies.txt"
	}

	textData, err := ExportToText(movies)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
