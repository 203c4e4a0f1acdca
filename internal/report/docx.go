package report

import (
	"fmt"
	"math"
	"time"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/skill-flow/internal/conversation"
)

const (
	fontName    = "Times New Roman"
	fontSize    = 13
	titleSize   = 16
	headingSize = 14
	textColor   = "000000"
)

// WriteDocx renders res as a Word document: metadata, the speaker timeline,
// a per-speaker view and the memory context used for diarization.
func WriteDocx(path, title string, res conversation.Result, generated time.Time) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	addRun(doc.AddParagraph(""), "Conversation Analysis: "+title, true, titleSize)
	addRun(doc.AddParagraph(""), generated.Format("2006-01-02 15:04"), false, fontSize)

	if res.Error != "" {
		p := doc.AddParagraph("")
		addRun(p, "Analysis failed: ", true, fontSize)
		addRun(p, res.Error, false, fontSize)
		return save(doc, path)
	}

	addField(doc.AddParagraph(""), "Duration", formatClock(res.AudioDuration))
	addField(doc.AddParagraph(""), "Speakers", fmt.Sprintf("%d", res.NumSpeakers))
	if res.RequestID != "" {
		addField(doc.AddParagraph(""), "Request", res.RequestID)
	}

	addRun(doc.AddParagraph(""), "Timeline", true, headingSize)
	for _, s := range res.SpeakerSegments {
		p := doc.AddParagraph("")
		addRun(p, fmt.Sprintf("[%s-%s] ", formatClock(s.StartTime), formatClock(s.EndTime)), false, fontSize)
		addRun(p, s.Speaker, true, fontSize)
		addRun(p, ": "+s.Text, false, fontSize)
	}

	addRun(doc.AddParagraph(""), "By speaker", true, headingSize)
	for _, tl := range conversation.GroupBySpeaker(res.SpeakerSegments) {
		addRun(doc.AddParagraph(""), tl.Speaker, true, fontSize)
		for _, e := range tl.Segments {
			addRun(doc.AddParagraph(""), "• "+e.Text, false, fontSize)
		}
	}

	addRun(doc.AddParagraph(""), "Transcript", true, headingSize)
	addRun(doc.AddParagraph(""), res.Transcript, false, fontSize)

	if len(res.MemoryContext) > 0 {
		addRun(doc.AddParagraph(""), "Previous conversations", true, headingSize)
		for _, s := range res.MemoryContext {
			addRun(doc.AddParagraph(""), "• "+s, false, fontSize)
		}
	}

	return save(doc, path)
}

// saver is the document root returned by godocx.NewDocument.
type saver interface {
	SaveTo(path string) error
}

func save(doc saver, path string) error {
	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func addField(p *docx.Paragraph, label, value string) {
	addRun(p, label+": ", true, fontSize)
	addRun(p, value, false, fontSize)
}

func addRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color(textColor)
	if bold {
		run.Bold(true)
	}
}

// formatClock renders seconds as mm:ss, rounding to the nearest second.
func formatClock(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int(math.Round(seconds))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
