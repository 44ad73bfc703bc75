package studyaids

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	docxFont     = "Times New Roman"
	docxFontSize = 12
)

var (
	reHeading  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet   = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reNumbered = regexp.MustCompile(`^\d+\.\s+(.+)$`)
)

// WriteSummaryDocx renders the summary's markdown into a styled docx file.
func WriteSummaryDocx(s *Summary, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	writeRun(doc.AddParagraph(""), s.Title, true, 16)
	writeRun(doc.AddParagraph(""), s.GeneratedAt.Format("2006-01-02 15:04"), false, docxFontSize)
	doc.AddParagraph("")

	writeMarkdown(doc, s.Text)

	return doc.SaveTo(outputPath)
}

// WriteDeckDocx renders the deck as a printable question/answer sheet.
func WriteDeckDocx(d *Deck, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	writeRun(doc.AddParagraph(""), d.Title, true, 16)
	writeRun(doc.AddParagraph(""), d.GeneratedAt.Format("2006-01-02 15:04"), false, docxFontSize)
	doc.AddParagraph("")

	for i, c := range d.Cards {
		writeRun(doc.AddParagraph(""), fmt.Sprintf("%d. %s", i+1, c.Front), true, docxFontSize)
		writeRun(doc.AddParagraph(""), c.Back, false, docxFontSize)
		if c.Hint != "" {
			writeRun(doc.AddParagraph(""), "Hint: "+c.Hint, false, docxFontSize)
		}
		if len(c.Tags) > 0 {
			writeRun(doc.AddParagraph(""), "Tags: "+strings.Join(c.Tags, ", "), false, docxFontSize)
		}
		doc.AddParagraph("")
	}

	return doc.SaveTo(outputPath)
}

// writeMarkdown walks markdown line by line, mapping headings, bullets and
// bold spans onto docx runs.
func writeMarkdown(doc *docx.RootDoc, markdown string) {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			writeRun(doc.AddParagraph(""), m[2], true, headingSize(len(m[1])))
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			writeSpans(doc.AddParagraph(""), "• "+m[1])
			continue
		}

		if m := reNumbered.FindStringSubmatch(trimmed); m != nil {
			writeSpans(doc.AddParagraph(""), trimmed)
			continue
		}

		writeSpans(doc.AddParagraph(""), trimmed)
	}
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return docxFontSize
	}
}

// writeSpans splits **bold** spans out of the line so they keep their weight.
func writeSpans(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			writeRun(p, part, false, docxFontSize)
		}
		if i < len(matches) {
			writeRun(p, matches[i][1], true, docxFontSize)
		}
	}
}

func writeRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = stripInlineMarkdown(text)
	run := p.AddText(text).Font(docxFont).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func stripInlineMarkdown(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
