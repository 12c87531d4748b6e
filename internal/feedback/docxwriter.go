package feedback

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/nguyentantai21042004/debate-flow/internal/speech"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

var reBold = regexp.MustCompile(`\*\*(.+?)\*\*`)

// WriteDocx renders a report as a styled feedback document.
func WriteDocx(title string, r *Report, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)
	if r.Motion != "" {
		addRichText(doc.AddParagraph(""), "**Motion:** "+r.Motion)
	}
	addRichText(doc.AddParagraph(""), fmt.Sprintf("**Speaker:** %s (%s)", r.Primary.Speaker, r.Position))
	addRichText(doc.AddParagraph(""), fmt.Sprintf("**Recording time:** %s - %s",
		speech.FormatClock(r.Primary.StartMs), speech.FormatClock(r.Primary.EndMs)))
	addRichText(doc.AddParagraph(""), fmt.Sprintf("**Speaking time:** %s",
		speech.FormatClock(r.Primary.DurationMs)))
	doc.AddParagraph("")

	if r.Overview != nil {
		addStyledRun(doc.AddParagraph(""), "Strategic Overview", true, headingSize(2))
		addSection(doc, "Hook and signposting", r.Overview.HookAndSignposting)
		addSection(doc, "Strategic assessment", r.Overview.StrategicAssessment)
		addSection(doc, "Missing arguments", r.Overview.MissingArguments)
	}

	if len(r.Moments) > 0 {
		addStyledRun(doc.AddParagraph(""), "Playable Moments", true, headingSize(2))
		for i, m := range r.Moments {
			heading := fmt.Sprintf("%d. [%s - %s] %s / %s (recording %s)",
				i+1, m.StartTime, m.EndTime, m.Severity, m.Category,
				speech.FormatClock(m.StartSeconds*1000))
			addStyledRun(doc.AddParagraph(""), heading, true, headingSize(3))
			addRichText(doc.AddParagraph(""), "**What they said:** "+m.WhatTheySaid)
			addRichText(doc.AddParagraph(""), "**Issue:** "+m.Issue)
			if m.Recommendation != "" {
				addRichText(doc.AddParagraph(""), "**Recommendation:** "+m.Recommendation)
			}
		}
	}

	return doc.SaveTo(outputPath)
}

func addSection(doc *docx.RootDoc, heading, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	addStyledRun(doc.AddParagraph(""), heading, true, headingSize(3))
	for _, line := range strings.Split(body, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			addRichText(doc.AddParagraph(""), trimmed)
		}
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
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			clean := cleanMarkdownInline(part)
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			clean := cleanMarkdownInline(matches[i][1])
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
