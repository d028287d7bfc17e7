package library

import (
	"testing"

	"github.com/sorenlind/preservationist/internal/tags"
)

// okAlbum builds a two-song album that passes all three chains.
func okAlbum() []*tags.SongFacts {
	a := withCover(song("The Band", "The Band", "First Album"), jpegCover("h1"))
	b := withCover(song("The Band", "The Band", "First Album"), jpegCover("h1"))
	return []*tags.SongFacts{a, b}
}

func TestClassify_CleanAlbum(t *testing.T) {
	album := NewAlbum("The Band", "First Album", okAlbum())
	if !album.OK() {
		t.Errorf("OK() = false: file=%q artwork=%q naming=%q",
			album.FileMessage, album.ArtworkMessage, album.NamingMessage)
	}
}

func TestFileRules(t *testing.T) {
	tests := []struct {
		name     string
		facts    []*tags.SongFacts
		expected string
	}{
		{
			name:     "empty folder",
			facts:    nil,
			expected: "Empty album",
		},
		{
			name: "companion files only",
			facts: []*tags.SongFacts{
				erroneous("bonus.mov", "unsupported file type .mov"),
				erroneous("bonus.m4v", "unsupported file type .m4v"),
			},
			expected: "",
		},
		{
			name: "companion mixed with stray file",
			facts: []*tags.SongFacts{
				erroneous("bonus.mov", "unsupported file type .mov"),
				erroneous("booklet.pdf", "unsupported file type .pdf"),
			},
			expected: "unsupported file type .mov, unsupported file type .pdf",
		},
		{
			name: "companion next to songs is reported",
			facts: []*tags.SongFacts{
				song("The Band", "The Band", "First Album"),
				erroneous("bonus.mov", "unsupported file type .mov"),
			},
			expected: "unsupported file type .mov",
		},
		{
			name: "parse errors deduplicated",
			facts: []*tags.SongFacts{
				erroneous("a.mp3", "can't sync to MPEG frame"),
				erroneous("b.mp3", "can't sync to MPEG frame"),
			},
			expected: "can't sync to MPEG frame",
		},
		{
			name: "mixed file type",
			facts: []*tags.SongFacts{
				song("The Band", "The Band", "First Album"),
				func() *tags.SongFacts {
					s := song("The Band", "The Band", "First Album")
					s.FileType = ".mp3"
					return s
				}(),
			},
			expected: "Mixed file type: .m4a, .mp3",
		},
		{
			name:     "uniform type",
			facts:    []*tags.SongFacts{song("b", "b", "n"), song("b", "b", "n")},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			album := NewAlbum("x", "y", tt.facts)
			if album.FileMessage != tt.expected {
				t.Errorf("FileMessage = %q, want %q", album.FileMessage, tt.expected)
			}
		})
	}
}

func TestArtworkRules(t *testing.T) {
	pngCover := tags.Artwork{Format: tags.FormatPNG, ContentHash: "p1", Width: 600, Height: 600}
	unknownCover := tags.Artwork{Format: tags.FormatUnknown, ContentHash: "u1", Width: 600, Height: 600}
	oddSize := tags.Artwork{Format: tags.FormatJPEG, ContentHash: "h1", Width: 500, Height: 500}

	tests := []struct {
		name     string
		facts    []*tags.SongFacts
		expected string
	}{
		{
			name:     "empty album unflagged",
			facts:    nil,
			expected: "",
		},
		{
			name: "no artwork",
			facts: []*tags.SongFacts{
				song("b", "b", "n"),
				song("b", "b", "n"),
			},
			expected: "No artwork",
		},
		{
			name: "some artwork missing",
			facts: []*tags.SongFacts{
				withCover(song("b", "b", "n"), jpegCover("h1")),
				song("b", "b", "n"),
			},
			expected: "Some artwork missing",
		},
		{
			name: "multiple covers per file",
			facts: []*tags.SongFacts{
				withCover(song("b", "b", "n"), jpegCover("h1"), jpegCover("h2")),
			},
			expected: "Multiple covers per file",
		},
		{
			name: "differing hashes",
			facts: []*tags.SongFacts{
				withCover(song("b", "b", "n"), jpegCover("h1")),
				withCover(song("b", "b", "n"), jpegCover("h2")),
			},
			expected: "Multiple covers",
		},
		{
			// Differing formats imply differing bytes, so the hash rule
			// speaks first.
			name: "differing formats also differ in hash",
			facts: []*tags.SongFacts{
				withCover(song("b", "b", "n"), jpegCover("h1")),
				withCover(song("b", "b", "n"), pngCover),
			},
			expected: "Multiple covers",
		},
		{
			name: "png artwork",
			facts: []*tags.SongFacts{
				withCover(song("b", "b", "n"), pngCover),
			},
			expected: "PNG artwork",
		},
		{
			name: "unknown format",
			facts: []*tags.SongFacts{
				withCover(song("b", "b", "n"), unknownCover),
			},
			expected: "Unknown artwork format",
		},
		{
			name: "bad size",
			facts: []*tags.SongFacts{
				withCover(song("b", "b", "n"), oddSize),
			},
			expected: "Bad artwork size",
		},
		{
			name: "large canonical size accepted",
			facts: []*tags.SongFacts{
				withCover(song("b", "b", "n"), tags.Artwork{
					Format: tags.FormatJPEG, ContentHash: "h1", Width: 1400, Height: 1400,
				}),
			},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			album := NewAlbum("x", "y", tt.facts)
			if album.ArtworkMessage != tt.expected {
				t.Errorf("ArtworkMessage = %q, want %q", album.ArtworkMessage, tt.expected)
			}
		})
	}
}

func TestNamingRules(t *testing.T) {
	compilationSong := func(artist string) *tags.SongFacts {
		s := song(variousArtists, artist, "Hits")
		s.Compilation = true
		return s
	}

	tests := []struct {
		name     string
		facts    []*tags.SongFacts
		expected string
	}{
		{
			name:     "empty album unflagged",
			facts:    nil,
			expected: "",
		},
		{
			name: "some set as compilation",
			facts: []*tags.SongFacts{
				compilationSong("One"),
				song(variousArtists, "Two", "Hits"),
			},
			expected: "Some set as compilation",
		},
		{
			name: "compilation with named album artist",
			facts: []*tags.SongFacts{
				func() *tags.SongFacts {
					s := song("The Band", "One", "Hits")
					s.Compilation = true
					return s
				}(),
			},
			expected: "Unexpected album artist for compilation: The Band",
		},
		{
			name: "compilation with a single artist",
			facts: []*tags.SongFacts{
				compilationSong("Same"),
				compilationSong("Same"),
			},
			expected: "Expected multiple artists for compilation",
		},
		{
			name: "clean compilation",
			facts: []*tags.SongFacts{
				compilationSong("One"),
				compilationSong("Two"),
			},
			expected: "",
		},
		{
			name: "various artists without compilation flag",
			facts: []*tags.SongFacts{
				song(variousArtists, "One", "Hits"),
				song(variousArtists, "Two", "Hits"),
			},
			expected: "Unexpected album artist for non-compilation",
		},
		{
			name: "album artist differs by case only",
			facts: []*tags.SongFacts{
				song("The Band", "The Band", "n"),
				song("the band", "the band", "n"),
			},
			// The two case-only labels are swapped on purpose, see
			// namingRules.
			expected: "Artist differs by case only: The Band, the band",
		},
		{
			name: "artist differs by case only",
			facts: []*tags.SongFacts{
				song("The Band", "The Band", "n"),
				song("The Band", "the band", "n"),
			},
			expected: "Album artist differs by case only: The Band, the band",
		},
		{
			name: "featured guests extend the album artist",
			facts: []*tags.SongFacts{
				song("The Band", "The Band", "n"),
				song("The Band", "The Band feat. Guest", "n"),
			},
			expected: "",
		},
		{
			name: "song artists contained in the album artist",
			facts: []*tags.SongFacts{
				song("Duo & Partner", "Duo", "n"),
				song("Duo & Partner", "Partner", "n"),
			},
			expected: "",
		},
		{
			name: "unrelated artists on a non-compilation",
			facts: []*tags.SongFacts{
				song("The Band", "The Band", "n"),
				song("The Band", "Somebody Else", "n"),
			},
			expected: "Expected single artist for non-compilation: Somebody Else, The Band",
		},
		{
			name: "mixed album name",
			facts: []*tags.SongFacts{
				song("The Band", "The Band", "First"),
				song("The Band", "The Band", "Second"),
			},
			expected: "Mixed album: First, Second",
		},
		{
			name: "mixed sort album",
			facts: []*tags.SongFacts{
				func() *tags.SongFacts {
					s := song("The Band", "The Band", "n")
					s.SortAlbum = "A"
					return s
				}(),
				func() *tags.SongFacts {
					s := song("The Band", "The Band", "n")
					s.SortAlbum = "B"
					return s
				}(),
			},
			expected: "Mixed sort album: A, B",
		},
		{
			name: "mixed album artist",
			facts: []*tags.SongFacts{
				song("One", "One", "n"),
				song("Two", "One", "n"),
			},
			expected: "Mixed album artist: One, Two",
		},
		{
			name: "mixed sort album artist",
			facts: []*tags.SongFacts{
				func() *tags.SongFacts {
					s := song("The Band", "The Band", "n")
					s.SortAlbumArtist = "Band, The"
					return s
				}(),
				song("The Band", "The Band", "n"),
			},
			expected: "Mixed sort album artist: Band, The, [None]",
		},
		{
			name: "no album artist",
			facts: []*tags.SongFacts{
				song("", "The Band", "n"),
			},
			expected: "No album artist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			album := NewAlbum("x", "y", tt.facts)
			if album.NamingMessage != tt.expected {
				t.Errorf("NamingMessage = %q, want %q", album.NamingMessage, tt.expected)
			}
		})
	}
}
