package tags

import (
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// frameReader reads the frame-style ID3 scheme of MP3 files. Frames are
// collected eagerly so the file handle can be closed immediately.
type frameReader struct {
	text   map[string]string
	covers []Artwork
}

// frame ids for the fields the diagnosis cares about.
var frameIDs = []string{
	"TPE1", // artist
	"TPE2", // album artist
	"TOPE", // original artist, preferred over TPE1
	"TALB", // album
	"TSO2", // sort album artist
	"TSOP", // sort artist
	"TSOA", // sort album
	"TCMP", // compilation flag
}

// newFrameReader parses the ID3 tag of the file at path. A file without an
// ID3 tag yields a reader with every field absent.
func newFrameReader(path string) (*frameReader, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	r := &frameReader{text: make(map[string]string)}
	for _, id := range frameIDs {
		if v, ok := getID3TextFrame(id3tag, id); ok {
			r.text[id] = v
		}
	}

	// Every APIC frame counts as one cover.
	for _, f := range id3tag.GetFrames(id3tag.CommonID("Attached picture")) {
		if pic, ok := f.(id3v2.PictureFrame); ok {
			r.covers = append(r.covers, InspectFrameCover(pic.Picture, pic.MimeType))
		}
	}

	return r, nil
}

// getID3TextFrame reads a text frame value from an ID3v2 tag.
func getID3TextFrame(id3tag *id3v2.Tag, frameID string) (string, bool) {
	frames := id3tag.GetFrames(frameID)
	if len(frames) == 0 {
		return "", false
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return tf.Text, true
	}
	return "", false
}

func (r *frameReader) textField(id string) (string, bool) {
	v, ok := r.text[id]
	return v, ok
}

func (r *frameReader) AlbumArtist() (string, bool) { return r.textField("TPE2") }

// Artist prefers the original-performer frame and falls back to TPE1.
func (r *frameReader) Artist() (string, bool) {
	if v, ok := r.textField("TOPE"); ok {
		return v, true
	}
	return r.textField("TPE1")
}

func (r *frameReader) Album() (string, bool) { return r.textField("TALB") }

func (r *frameReader) SortAlbumArtist() (string, bool) { return r.textField("TSO2") }
func (r *frameReader) SortArtist() (string, bool)      { return r.textField("TSOP") }
func (r *frameReader) SortAlbum() (string, bool)       { return r.textField("TSOA") }

// Compilation parses the TCMP frame, a stringified integer.
func (r *frameReader) Compilation() (bool, bool) {
	v, ok := r.textField("TCMP")
	if !ok {
		return false, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return false, true
	}
	return n != 0, true
}

// PurchaserIDs always returns nil: the frame scheme has no purchaser field.
func (r *frameReader) PurchaserIDs() []string { return nil }

func (r *frameReader) Covers() []Artwork { return r.covers }
