package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/inboxflow/inboxflow-api/internal/core/domain"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// DOCX renders the task as a minimal WordprocessingML package: one fixed
// document part inside the OOXML zip container. File headers carry no
// timestamps, keeping the output deterministic.
func DOCX(task *domain.Task) ([]byte, error) {
	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	writeParagraph(&body, heading, paragraphOpts{bold: true, center: true, halfPointSize: 32})
	writeParagraph(&body, "", paragraphOpts{})
	for _, line := range infoLines(task) {
		writeParagraph(&body, line, paragraphOpts{})
	}
	writeParagraph(&body, "", paragraphOpts{})
	writeParagraph(&body, descriptionHeading, paragraphOpts{bold: true, underline: true})
	writeParagraph(&body, description(task), paragraphOpts{})

	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct {
		name, content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", body.String()},
	}
	for _, p := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate})
		if err != nil {
			return nil, fmt.Errorf("render docx: %w", err)
		}
		if _, err := w.Write([]byte(p.content)); err != nil {
			return nil, fmt.Errorf("render docx: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("render docx: %w", err)
	}
	return buf.Bytes(), nil
}

type paragraphOpts struct {
	bold          bool
	underline     bool
	center        bool
	halfPointSize int
}

func writeParagraph(sb *strings.Builder, text string, opts paragraphOpts) {
	sb.WriteString("<w:p>")
	if opts.center {
		sb.WriteString(`<w:pPr><w:jc w:val="center"/></w:pPr>`)
	}
	if text != "" {
		sb.WriteString("<w:r>")
		if opts.bold || opts.underline || opts.halfPointSize > 0 {
			sb.WriteString("<w:rPr>")
			if opts.bold {
				sb.WriteString("<w:b/>")
			}
			if opts.underline {
				sb.WriteString(`<w:u w:val="single"/>`)
			}
			if opts.halfPointSize > 0 {
				fmt.Fprintf(sb, `<w:sz w:val="%d"/>`, opts.halfPointSize)
			}
			sb.WriteString("</w:rPr>")
		}
		sb.WriteString(`<w:t xml:space="preserve">`)
		_ = xml.EscapeText(sb, []byte(text))
		sb.WriteString("</w:t></w:r>")
	}
	sb.WriteString("</w:p>")
}
