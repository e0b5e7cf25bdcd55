package export

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"
	"os"
	"os/exec"

	"github.com/nfnt/resize"
)

const (
	thumbWidth  = 280
	thumbHeight = 374
)

// writeThumbnail renders the first page of an exported PDF with pdftoppm
// and writes a JPEG thumbnail next to the artifact.
func writeThumbnail(pdfPath, outPath string) error {
	// pdftoppm writes <prefix>.png with -singlefile
	imgPath := pdfPath + ".png"
	defer os.Remove(imgPath)

	cmd := exec.Command("pdftoppm",
		"-png",
		"-singlefile",
		"-f", "1",
		"-l", "1",
		"-scale-to", "800",
		pdfPath,
		pdfPath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pdftoppm failed: %w\nStderr: %s\nEnsure 'pdftoppm' is installed (part of poppler-utils)", err, stderr.String())
	}

	imgFile, err := os.Open(imgPath)
	if err != nil {
		return fmt.Errorf("failed to open rendered image: %w", err)
	}
	defer imgFile.Close()

	img, err := png.Decode(imgFile)
	if err != nil {
		return fmt.Errorf("failed to decode PNG: %w", err)
	}

	thumbnail := resize.Resize(thumbWidth, thumbHeight, img, resize.Lanczos3)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create thumbnail file: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, thumbnail, nil); err != nil {
		return fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return nil
}
