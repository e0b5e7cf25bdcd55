// Package document wraps the source PDF the session annotates: raw bytes
// for the export pass, page geometry, and font resources for the layout
// analyzer. It never mutates the source.
package document

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/pkg/errors"

	"github.com/pagemark/pagemark/log"
)

// Document is an immutable handle on the loaded source PDF.
type Document struct {
	name string
	data []byte
	conf *model.Configuration
	dims []types.Dim

	mu  sync.Mutex
	ctx *model.Context
}

// Load reads and validates a PDF from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open source document")
	}
	return FromBytes(data, path)
}

// FromBytes validates a PDF held in memory.
func FromBytes(data []byte, name string) (*Document, error) {
	conf := model.NewDefaultConfiguration()

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read PDF")
	}
	if ctx.XRefTable.Encrypt != nil {
		log.Info.Println("PDF is encrypted - pdfcpu will handle decryption")
	}

	dims, err := api.PageDims(bytes.NewReader(data), conf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read page dimensions")
	}
	if len(dims) == 0 {
		return nil, errors.New("the document has no pages")
	}

	return &Document{name: name, data: data, conf: conf, dims: dims, ctx: ctx}, nil
}

// Name returns the path or label the document was loaded from.
func (d *Document) Name() string { return d.name }

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return len(d.dims) }

// PageSize returns the width and height of a page in points.
func (d *Document) PageSize(page int) (w, h float64, err error) {
	if page < 1 || page > len(d.dims) {
		return 0, 0, errors.Errorf("page %d out of range 1..%d", page, len(d.dims))
	}
	dim := d.dims[page-1]
	return dim.Width, dim.Height, nil
}

// Reader returns a fresh reader over the source bytes. Each call gets its
// own reader so concurrent consumers never share seek state.
func (d *Document) Reader() io.ReadSeeker {
	return bytes.NewReader(d.data)
}

// Bytes returns the raw source PDF.
func (d *Document) Bytes() []byte { return d.data }

// PageContent returns the decoded content stream of a page. A page without
// content yields nil.
func (d *Document) PageContent(page int) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	r, err := pdfcpu.ExtractPageContent(d.ctx, page)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to extract page %d content", page)
	}
	if r == nil {
		return nil, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read page %d content", page)
	}
	return data, nil
}

// PageFonts maps a page's font resource names (the operand of a Tf
// operator, without the leading slash) to their BaseFont names.
func (d *Document) PageFonts(page int) (map[string]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	faces := make(map[string]string)

	_, _, inh, err := d.ctx.PageDict(page, false)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve page %d dictionary", page)
	}
	if inh == nil || inh.Resources == nil {
		return faces, nil
	}
	obj, found := inh.Resources.Find("Font")
	if !found {
		return faces, nil
	}
	fontDict, err := d.ctx.DereferenceDict(obj)
	if err != nil || fontDict == nil {
		return faces, nil
	}
	for name, entry := range fontDict {
		fd, err := d.ctx.DereferenceDict(entry)
		if err != nil || fd == nil {
			continue
		}
		if base := fd.NameEntry("BaseFont"); base != nil {
			faces[name] = *base
		}
	}
	return faces, nil
}
