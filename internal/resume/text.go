package resume

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/rajanimaurya/internship-recommender/internal/common"
)

// ExtractText pulls plain text out of a resume payload based on its declared
// MIME type. Image payloads are rejected here: they pass upload validation
// but carry no extractable text.
func ExtractText(mimeType string, data []byte) (string, error) {
	switch mimeType {
	case common.MIMEText:
		return string(data), nil

	case common.MIMEPDF:
		return extractPDFText(data)

	case common.MIMEDocx, common.MIMEDoc:
		return extractDocxText(data)

	default:
		return "", fmt.Errorf("no text extractor for type %s", mimeType)
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: pdf: %v", common.ErrUnreadableFile, err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		// Legacy .doc payloads land here too: they pass the upload
		// allow-list but are OLE binaries, not zip archives.
		return "", fmt.Errorf("%w: docx: %v", common.ErrUnreadableFile, err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}
