package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/sorenlind/preservationist/internal/library"
)

// csvHeader lists the columns of a CSV report, one row per album.
var csvHeader = []string{
	"artist_folder",
	"album_folder",
	"ok",
	"file_message",
	"artwork_message",
	"naming_message",
	"album_artist",
	"artist",
	"album",
	"sort_album_artist",
	"sort_artist",
	"sort_album",
	"compilation",
	"file_type",
	"artwork_size",
	"purchased_by",
}

// WriteCSV writes every album, including the healthy ones, as CSV.
func WriteCSV(w io.Writer, albums []*library.Album) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, a := range albums {
		row := []string{
			a.ArtistFolder,
			a.AlbumFolder,
			strconv.FormatBool(a.OK()),
			a.FileMessage,
			a.ArtworkMessage,
			a.NamingMessage,
			a.AlbumArtist,
			a.Artist,
			a.Name,
			a.SortAlbumArtist,
			a.SortArtist,
			a.SortAlbum,
			a.Compilation,
			a.FileType,
			a.ArtworkSize,
			strings.Join(a.PurchasedBy, ", "),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
