package tags

import (
	"os"

	mp4 "github.com/abema/go-mp4"
)

// ilst atom names for the fields the diagnosis cares about.
var (
	atomAlbumArtist     = mp4.StrToBoxType("aART")
	atomArtist          = mp4.StrToBoxType("\xa9ART")
	atomAlbum           = mp4.StrToBoxType("\xa9alb")
	atomSortAlbumArtist = mp4.StrToBoxType("soaa")
	atomSortArtist      = mp4.StrToBoxType("soar")
	atomSortAlbum       = mp4.StrToBoxType("soal")
	atomCompilation     = mp4.StrToBoxType("cpil")
	atomPurchaser       = mp4.StrToBoxType("apID")
	atomCover           = mp4.StrToBoxType("covr")
)

// atomReader reads the atom-style scheme of MP4 containers. All atoms are
// collected in a single pass over the box structure.
type atomReader struct {
	text        map[mp4.BoxType]string
	compilation *bool
	purchasers  []string
	covers      []Artwork
}

// newAtomReader parses the ilst metadata of the file at path.
func newAtomReader(path string) (*atomReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := &atomReader{text: make(map[mp4.BoxType]string)}

	// The current ilst atom, so data boxes can be attributed to it.
	var current mp4.BoxType

	_, err = mp4.ReadBoxStructure(f, func(h *mp4.ReadHandle) (any, error) {
		if !h.BoxInfo.IsSupportedType() {
			return nil, nil
		}

		switch h.BoxInfo.Type {
		case mp4.BoxTypeMoov(), mp4.BoxTypeUdta(), mp4.BoxTypeMeta(), mp4.BoxTypeIlst():
			return h.Expand()
		case atomAlbumArtist, atomArtist, atomAlbum,
			atomSortAlbumArtist, atomSortArtist, atomSortAlbum,
			atomCompilation, atomPurchaser, atomCover:
			current = h.BoxInfo.Type
			return h.Expand()
		case mp4.BoxTypeData():
			box, _, err := h.ReadPayload()
			if err != nil {
				return nil, err
			}
			if data, ok := box.(*mp4.Data); ok {
				r.addData(current, data)
			}
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// addData records one data payload under the given ilst atom.
func (r *atomReader) addData(atom mp4.BoxType, data *mp4.Data) {
	switch atom {
	case atomAlbumArtist, atomArtist, atomAlbum,
		atomSortAlbumArtist, atomSortArtist, atomSortAlbum:
		// First entry wins for text atoms.
		if _, ok := r.text[atom]; !ok {
			r.text[atom] = string(data.Data)
		}
	case atomCompilation:
		v := intAtomBool(data.Data)
		if r.compilation == nil {
			r.compilation = &v
		}
	case atomPurchaser:
		r.purchasers = append(r.purchasers, string(data.Data))
	case atomCover:
		r.covers = append(r.covers, InspectAtomCover(data.Data, data.DataType))
	}
}

// intAtomBool interprets an integer atom payload as a boolean.
func intAtomBool(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return true
		}
	}
	return false
}

func (r *atomReader) textField(atom mp4.BoxType) (string, bool) {
	v, ok := r.text[atom]
	return v, ok
}

func (r *atomReader) AlbumArtist() (string, bool) { return r.textField(atomAlbumArtist) }
func (r *atomReader) Artist() (string, bool)      { return r.textField(atomArtist) }
func (r *atomReader) Album() (string, bool)       { return r.textField(atomAlbum) }

func (r *atomReader) SortAlbumArtist() (string, bool) { return r.textField(atomSortAlbumArtist) }
func (r *atomReader) SortArtist() (string, bool)      { return r.textField(atomSortArtist) }
func (r *atomReader) SortAlbum() (string, bool)       { return r.textField(atomSortAlbum) }

func (r *atomReader) Compilation() (bool, bool) {
	if r.compilation == nil {
		return false, false
	}
	return *r.compilation, true
}

func (r *atomReader) PurchaserIDs() []string { return r.purchasers }
func (r *atomReader) Covers() []Artwork      { return r.covers }
