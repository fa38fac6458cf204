package extract

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/wudi/docaudit/observability"
)

// pdfTextLines walks pages in order and records every kept line with its
// page number.
func pdfTextLines(path string, trail *observability.Trail) (lines []string, err error) {
	// The pdf library panics on some malformed files; fold that into the
	// unreadable-input error path instead of crashing the analysis.
	defer func() {
		if r := recover(); r != nil {
			lines, err = nil, fmt.Errorf("parse pdf %s: %v", path, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			trail.Addf("Failed to extract text from PDF page %d: %v", pageNum, err)
			continue
		}
		for _, line := range splitLines(text) {
			lines = append(lines, line)
			trail.Addf("[Page %d] %s", pageNum, line)
		}
	}
	return lines, nil
}

// pdfImages lifts embedded image XObjects via pdfcpu, labelled by page and
// per-page index.
func pdfImages(path string, trail *observability.Trail) []*Image {
	f, err := os.Open(path)
	if err != nil {
		trail.Addf("Failed to open PDF for image extraction: %v", err)
		return nil
	}
	defer f.Close()

	pages, err := api.ExtractImagesRaw(f, nil, nil)
	if err != nil {
		trail.Addf("Failed to extract images from PDF: %v", err)
		return nil
	}

	var images []*Image
	for _, pageImages := range pages {
		objNrs := make([]int, 0, len(pageImages))
		for objNr := range pageImages {
			objNrs = append(objNrs, objNr)
		}
		sort.Ints(objNrs)

		for idx, objNr := range objNrs {
			img := pageImages[objNr]
			data, err := io.ReadAll(img)
			if err != nil || len(data) == 0 {
				trail.Addf("Failed to read image %s on page %d", img.Name, img.PageNr)
				continue
			}
			images = append(images, &Image{
				Data:   data,
				Format: strings.ToLower(img.FileType),
				Origin: fmt.Sprintf("PDF page %d · image %d", img.PageNr, idx+1),
			})
			trail.Addf("Extracted image %d from page %d", idx+1, img.PageNr)
		}
	}
	return images
}
