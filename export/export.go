// Package export replays committed annotations into an output PDF through
// pdfcpu. The baseline replays text annotations only; shapes and freehand
// marks stay on-screen artifacts.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"

	"github.com/pagemark/pagemark/annotation"
	"github.com/pagemark/pagemark/log"
)

// ErrExportInFlight is returned when an export is requested while another
// one is still materializing its output.
var ErrExportInFlight = errors.New("an export is already running")

// Source is the document being exported.
type Source interface {
	Reader() io.ReadSeeker
	PageCount() int
	PageSize(page int) (w, h float64, err error)
}

// Options control a single export run.
type Options struct {
	// ThumbnailPath, when set, additionally writes a JPEG thumbnail of the
	// exported artifact's first page. Thumbnail failure is logged, never
	// fatal.
	ThumbnailPath string
}

// Exporter folds a session's annotations into an output PDF. At most one
// export runs at a time; the store and history are never touched, so a
// failed export can simply be retried.
type Exporter struct {
	conf *model.Configuration
	sem  *semaphore.Weighted
}

// NewExporter returns a ready exporter.
func NewExporter() *Exporter {
	return &Exporter{
		conf: model.NewDefaultConfiguration(),
		sem:  semaphore.NewWeighted(1),
	}
}

// placement is one draw-text call handed to the mutation backend, with
// coordinates already converted to its bottom-left convention.
type placement struct {
	page  int
	x, y  float64
	text  string
	font  string
	size  float64
	color string
}

// Export writes the annotated document to outPath. Output is
// all-or-nothing: the file appears complete or not at all.
func (e *Exporter) Export(src Source, store *annotation.Store, outPath string, opts Options) error {
	if !e.sem.TryAcquire(1) {
		return ErrExportInFlight
	}
	defer e.sem.Release(1)

	marks, err := placements(src, store)
	if err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp("", "pagemark-export-*.pdf")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(tmpPath)

	if len(marks) == 0 {
		// Nothing to replay: the artifact is the source itself.
		if err := drainTo(src.Reader(), tmpPath); err != nil {
			return err
		}
	} else {
		if err := e.stamp(src, marks, tmpPath); err != nil {
			return err
		}
	}

	if err := copyFile(tmpPath, outPath); err != nil {
		return errors.Wrap(err, "failed to write output")
	}
	log.Info.Printf("exported %d text annotation(s) to %s", len(marks), outPath)

	if opts.ThumbnailPath != "" {
		if err := writeThumbnail(tmpPath, opts.ThumbnailPath); err != nil {
			log.Error.Println("cannot generate thumbnail", err)
		}
	}
	return nil
}

func (e *Exporter) stamp(src Source, marks []placement, outPath string) error {
	wms := make(map[int][]*model.Watermark, len(marks))
	for _, p := range marks {
		desc := fmt.Sprintf(
			"fontname:%s, points:%.0f, scale:1 abs, pos:bl, off:%.2f %.2f, rot:0, fillcolor:%s, opacity:1",
			p.font, p.size, p.x, p.y, p.color)
		wm, err := api.TextWatermark(p.text, desc, true, false, types.POINTS)
		if err != nil {
			return errors.Wrapf(err, "failed to build draw-text call for page %d", p.page)
		}
		wms[p.page] = append(wms[p.page], wm)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrap(err, "failed to create output file")
	}
	defer out.Close()

	if err := api.AddWatermarksSliceMap(src.Reader(), out, wms, e.conf); err != nil {
		return errors.Wrap(err, "backend rejected the draw-text calls")
	}
	return nil
}

// placements walks all committed annotations and converts each text
// annotation with content into a backend draw call. Stored geometry uses
// a top-left origin; the backend wants bottom-left, hence the flip.
func placements(src Source, store *annotation.Store) ([]placement, error) {
	var marks []placement
	for _, page := range store.Pages() {
		if page > src.PageCount() {
			continue
		}
		_, pageHeight, err := src.PageSize(page)
		if err != nil {
			return nil, err
		}
		for _, a := range store.Page(page) {
			if a.Type != annotation.TypeText || strings.TrimSpace(a.Text) == "" {
				continue
			}
			marks = append(marks, placement{
				page:  page,
				x:     a.Start.X,
				y:     pageHeight - a.Start.Y,
				text:  a.Text,
				font:  coreFontName(a.Style),
				size:  fontSize(a.Style),
				color: fillColor(a.Style),
			})
		}
	}
	return marks, nil
}

// coreFontName maps the annotation's typography onto the closest core-14
// font the backend is guaranteed to know.
func coreFontName(s annotation.Style) string {
	family := strings.ToLower(s.FontFamily)
	base, bold, italic := "Helvetica", "Helvetica-Bold", "Helvetica-Oblique"
	boldItalic := "Helvetica-BoldOblique"
	switch {
	case strings.Contains(family, "times"), strings.Contains(family, "georgia"),
		strings.Contains(family, "garamond"):
		base, bold, italic, boldItalic = "Times-Roman", "Times-Bold", "Times-Italic", "Times-BoldItalic"
	case strings.Contains(family, "courier"), strings.Contains(family, "mono"):
		base, bold, italic, boldItalic = "Courier", "Courier-Bold", "Courier-Oblique", "Courier-BoldOblique"
	}
	switch {
	case s.Bold && s.Italic:
		return boldItalic
	case s.Bold:
		return bold
	case s.Italic:
		return italic
	default:
		return base
	}
}

func fontSize(s annotation.Style) float64 {
	if s.FontSize > 0 {
		return s.FontSize
	}
	return 12
}

func fillColor(s annotation.Style) string {
	if strings.HasPrefix(s.Color, "#") && (len(s.Color) == 7 || len(s.Color) == 4) {
		return s.Color
	}
	return "#000000"
}

func drainTo(r io.Reader, path string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "failed to read source document")
	}
	return os.WriteFile(path, data, 0644)
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}
