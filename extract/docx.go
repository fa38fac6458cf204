package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"image"
	"io"
	"strings"

	// Decoders for media formats commonly embedded by word processors.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/wudi/docaudit/observability"
)

const docxMediaPrefix = "word/media/"

// docxTextLines reads word/document.xml and emits one line per non-empty
// paragraph.
func docxTextLines(path string, trail *observability.Trail) ([]string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open docx %s: %w", path, err)
	}
	defer archive.Close()

	var doc io.ReadCloser
	for _, entry := range archive.File {
		if entry.Name == "word/document.xml" {
			doc, err = entry.Open()
			if err != nil {
				return nil, fmt.Errorf("open docx body: %w", err)
			}
			break
		}
	}
	if doc == nil {
		return nil, fmt.Errorf("docx %s has no word/document.xml", path)
	}
	defer doc.Close()

	lines, err := docxParagraphs(doc)
	if err != nil {
		return nil, fmt.Errorf("parse docx body: %w", err)
	}
	for _, line := range lines {
		trail.Addf("[Paragraph] %s", line)
	}
	return lines, nil
}

// docxParagraphs walks the WordprocessingML token stream, flushing a line at
// every paragraph boundary. Tabs and breaks inside a paragraph become spaces.
func docxParagraphs(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)

	var (
		lines     []string
		paragraph strings.Builder
		inText    bool
	)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch tok := token.(type) {
		case xml.StartElement:
			switch tok.Name.Local {
			case "t":
				inText = true
			case "tab", "br":
				paragraph.WriteByte(' ')
			}
		case xml.EndElement:
			switch tok.Name.Local {
			case "t":
				inText = false
			case "p":
				if line := strings.TrimSpace(paragraph.String()); line != "" {
					lines = append(lines, line)
				}
				paragraph.Reset()
			}
		case xml.CharData:
			if inText {
				paragraph.Write(tok)
			}
		}
	}
	if line := strings.TrimSpace(paragraph.String()); line != "" {
		lines = append(lines, line)
	}
	return lines, nil
}

// docxImages treats every archive entry under the media path as an image.
// Entries that do not decode are logged and skipped, never fatal.
func docxImages(path string, trail *observability.Trail) []*Image {
	archive, err := zip.OpenReader(path)
	if err != nil {
		trail.Addf("Failed to open DOCX for image extraction: %v", err)
		return nil
	}
	defer archive.Close()

	var images []*Image
	for _, entry := range archive.File {
		if !strings.HasPrefix(entry.Name, docxMediaPrefix) {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			trail.Addf("Failed to read archive entry %s", entry.Name)
			continue
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			trail.Addf("Failed to read archive entry %s", entry.Name)
			continue
		}
		_, format, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			trail.Addf("Failed to decode image %s", entry.Name)
			continue
		}
		images = append(images, &Image{
			Data:   data,
			Format: format,
			Origin: fmt.Sprintf("DOCX asset %s", entry.Name),
		})
		trail.Addf("Extracted image from %s", entry.Name)
	}
	return images
}
