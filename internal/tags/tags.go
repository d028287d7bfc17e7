// Package tags extracts per-file metadata facts from music files.
// It consolidates the two tagging schemes found in a typical iTunes-era
// library: the atom-style scheme of MP4 containers (.m4a, .m4p) and the
// frame-style ID3 scheme of MP3 files. Fields are read from the atom
// scheme first with a per-field fallback to the frame scheme.
package tags

import (
	"fmt"
	"strings"
)

// File extensions handled by the extractor.
const (
	ExtM4A = ".m4a"
	ExtM4P = ".m4p"
	ExtMP3 = ".mp3"
)

// companionExts are video and document files that legitimately sit next to
// purchased albums (iTunes Extras, music videos). They are still recorded as
// unsupported so stray files surface in reports, but an album consisting of
// nothing else is not flagged.
var companionExts = map[string]bool{
	".mov":  true,
	".m4v":  true,
	".mpeg": true,
	".mpg":  true,
	".mp4":  true,
}

// IsAudioFile returns true if the file name has a supported audio extension.
func IsAudioFile(name string) bool {
	switch Ext(name) {
	case ExtM4A, ExtM4P, ExtMP3:
		return true
	}
	return false
}

// IsCompanionFile returns true if the file name has a video or document
// extension expected alongside purchased albums.
func IsCompanionFile(name string) bool {
	return companionExts[Ext(name)]
}

// Ext returns the lower-cased extension of name, including the dot.
func Ext(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return strings.ToLower(name[idx:])
	}
	return ""
}

// SongFacts holds everything the classifier needs to know about one file.
// A SongFacts value is built once during extraction and never mutated.
// When Error is non-empty the file could not be parsed (or has an
// unsupported type) and the remaining fields carry no meaning.
type SongFacts struct {
	FileName string
	FileType string // lower-cased extension, e.g. ".mp3"

	// PurchaseID identifies the iTunes store account that bought the file.
	// Empty for files that were not purchased.
	PurchaseID string

	AlbumArtist     string
	Artist          string
	Album           string
	SortAlbumArtist string
	SortArtist      string
	SortAlbum       string
	Compilation     bool

	Covers []Artwork

	Error string
}

// Valid returns true if the file parsed cleanly.
func (s *SongFacts) Valid() bool {
	return s.Error == ""
}

// Purchased returns true if the song carries a store purchaser id.
func (s *SongFacts) Purchased() bool {
	return s.PurchaseID != ""
}

// HasCover returns true if the song has at least one embedded cover.
func (s *SongFacts) HasCover() bool {
	return len(s.Covers) > 0
}

// ImageFormat classifies an embedded cover image.
type ImageFormat int

// Image formats. The zero value is the unknown format.
const (
	FormatUnknown ImageFormat = iota
	FormatPNG
	FormatJPEG
)

// String returns the format name for reports.
func (f ImageFormat) String() string {
	switch f {
	case FormatPNG:
		return "PNG"
	case FormatJPEG:
		return "JPEG"
	default:
		return "UNKNOWN"
	}
}

// Artwork describes one embedded cover image. Two Artwork values refer to
// the same image iff their ContentHash matches; the hash covers the raw
// bytes, so re-encodes of the same picture count as distinct artworks.
type Artwork struct {
	Format      ImageFormat
	ContentHash string
	Width       int // 0 if the image could not be decoded
	Height      int // 0 if the image could not be decoded
}

// Size renders the pixel dimensions as "WxH".
func (a Artwork) Size() string {
	return fmt.Sprintf("%dx%d", a.Width, a.Height)
}
