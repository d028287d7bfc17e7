package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sorenlind/preservationist/internal/library"
)

// Fixed column widths of the console layout.
const (
	artistWidth    = 35
	albumWidth     = 50
	okWidth        = 3
	purchasedWidth = 20
)

var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	summaryStyle = lipgloss.NewStyle().Faint(true)
)

// Console writes one line per album in a fixed-column layout. Albums that
// pass every check are skipped unless Verbose is set.
type Console struct {
	Out     io.Writer
	Verbose bool
}

// WriteAlbum renders one album, returning false if the line was skipped.
func (c *Console) WriteAlbum(a *library.Album) bool {
	if a.OK() && !c.Verbose {
		return false
	}

	ok := ""
	if a.OK() {
		ok = okStyle.Render("OK ")
	} else {
		ok = Pad(ok, okWidth)
	}

	fmt.Fprintf(c.Out, "%s| %s| %s| %s| %s\n",
		Column(a.ArtistFolder, artistWidth),
		Column(a.AlbumFolder, albumWidth),
		ok,
		Column(strings.Join(a.PurchasedBy, ", "), purchasedWidth),
		messageStyle.Render(Sanitize(Messages(a))),
	)
	return true
}

// WriteSummary renders the end-of-scan counts.
func (c *Console) WriteSummary(albums []*library.Album) {
	flagged := 0
	songs := 0
	for _, a := range albums {
		if !a.OK() {
			flagged++
		}
		songs += len(a.Songs) + len(a.Erroneous)
	}
	fmt.Fprintln(c.Out, summaryStyle.Render(fmt.Sprintf(
		"%s albums (%s files) scanned, %s flagged",
		humanize.Comma(int64(len(albums))),
		humanize.Comma(int64(songs)),
		humanize.Comma(int64(flagged)),
	)))
}

// Messages joins an album's non-empty diagnostic messages.
func Messages(a *library.Album) string {
	var parts []string
	for _, m := range []string{a.FileMessage, a.ArtworkMessage, a.NamingMessage} {
		if m != "" {
			parts = append(parts, m)
		}
	}
	return strings.Join(parts, "; ")
}
