package relayout

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/tsawler/relayout/model"
	"github.com/tsawler/relayout/recognize"
	"github.com/tsawler/relayout/sections"
)

func paragraphWords(confidence float64) []recognize.Word {
	return []recognize.Word{
		word("Lorem", 50, 100, 60, 12, confidence),
		word("ipsum", 120, 100, 60, 12, confidence),
	}
}

func TestRun_SingleCenteredLineBecomesTitle(t *testing.T) {
	engine := &fakeEngine{byWidth: map[int][]recognize.Word{
		600: {
			word("Annual", 200, 50, 90, 32, 0.95),
			word("Report", 300, 50, 90, 32, 0.95),
		},
	}}

	result, err := FromImages(blankPage(600, 800)).
		WithEngine(engine).
		Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Sections) != 1 {
		t.Fatalf("Expected 1 section, got %d", len(result.Sections))
	}
	s := result.Sections[0]
	if s.Type != "title" {
		t.Errorf("Expected type title, got %s", s.Type)
	}
	if s.Content != "Annual Report" {
		t.Errorf("Expected content %q, got %q", "Annual Report", s.Content)
	}
	if s.StyleToken != sections.TokenTitle {
		t.Errorf("Expected title style token, got %s", s.StyleToken)
	}
	if _, ok := result.StyleCatalog[s.StyleToken]; !ok {
		t.Error("Style catalog should resolve the title token")
	}
	if result.Metadata.PageStatuses[0].State != model.PageOK {
		t.Errorf("Expected page ok, got %s", result.Metadata.PageStatuses[0].State)
	}
	if result.Metadata.PageStatuses[0].FragmentCount != 2 {
		t.Errorf("Expected 2 fragments, got %d", result.Metadata.PageStatuses[0].FragmentCount)
	}
}

func headingAndParagraphsWords() []recognize.Word {
	words := []recognize.Word{
		word("Results", 50, 50, 120, 24, 0.9),
	}
	texts := [][3]string{
		{"The", "first", "paragraph"},
		{"The", "second", "paragraph"},
		{"The", "third", "paragraph"},
	}
	for i, line := range texts {
		y := 100.0 + float64(i)*40
		words = append(words,
			word(line[0], 50, y, 40, 12, 0.9),
			word(line[1], 100, y, 60, 12, 0.9),
			word(line[2], 170, y, 90, 12, 0.9),
		)
	}
	return words
}

func TestRun_HeadingThenParagraphs(t *testing.T) {
	engine := &fakeEngine{byWidth: map[int][]recognize.Word{
		601: headingAndParagraphsWords(),
	}}

	result, err := FromImages(blankPage(601, 800)).
		WithEngine(engine).
		Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := []string{"heading_1", "paragraph", "paragraph", "paragraph"}
	if len(result.Sections) != len(want) {
		t.Fatalf("Expected %d sections, got %d", len(want), len(result.Sections))
	}
	for i, typ := range want {
		if result.Sections[i].Type != typ {
			t.Errorf("Section %d: expected %s, got %s", i, typ, result.Sections[i].Type)
		}
		if result.Sections[i].ID != i {
			t.Errorf("Section %d: expected sequential ID %d, got %d", i, i, result.Sections[i].ID)
		}
	}
}

func TestRun_Deterministic(t *testing.T) {
	engine := &fakeEngine{byWidth: map[int][]recognize.Word{
		601: headingAndParagraphsWords(),
	}}
	processor := FromImages(blankPage(601, 800)).WithEngine(engine)

	first, err := processor.Run(context.Background())
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	second, err := processor.Run(context.Background())
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if len(first.Sections) != len(second.Sections) {
		t.Fatalf("Section counts differ: %d vs %d", len(first.Sections), len(second.Sections))
	}
	for i := range first.Sections {
		if first.Sections[i].Type != second.Sections[i].Type {
			t.Errorf("Section %d type differs: %s vs %s", i, first.Sections[i].Type, second.Sections[i].Type)
		}
		if first.Sections[i].Content != second.Sections[i].Content {
			t.Errorf("Section %d content differs", i)
		}
	}
	if first.DocumentID == second.DocumentID {
		t.Error("Each run should get its own document ID")
	}
}

func TestRun_EmptyPage(t *testing.T) {
	engine := &fakeEngine{byWidth: map[int][]recognize.Word{}}

	result, err := FromImages(blankPage(602, 800)).
		WithEngine(engine).
		Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Sections) != 0 {
		t.Errorf("Expected zero sections, got %d", len(result.Sections))
	}
	if result.Metadata.AverageConfidence != 0 {
		t.Errorf("Expected average confidence 0, got %v", result.Metadata.AverageConfidence)
	}
	if result.Metadata.PageStatuses[0].State != model.PageEmpty {
		t.Errorf("Expected page empty, got %s", result.Metadata.PageStatuses[0].State)
	}
	if len(result.Metadata.FailedPages()) != 0 {
		t.Error("An empty page is not a failed page")
	}
}

func TestRun_NumberedLinePrecedence(t *testing.T) {
	engine := &fakeEngine{byWidth: map[int][]recognize.Word{
		603: {
			word("1.", 50, 50, 20, 24, 0.9),
			word("Introduction", 80, 50, 180, 24, 0.9),
			word("Body", 50, 100, 50, 12, 0.9),
			word("text", 110, 100, 45, 12, 0.9),
			word("here", 165, 100, 45, 12, 0.9),
		},
	}}

	result, err := FromImages(blankPage(603, 800)).
		WithEngine(engine).
		Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Sections) != 2 {
		t.Fatalf("Expected 2 sections, got %d", len(result.Sections))
	}
	if result.Sections[0].Type != "list_item" {
		t.Errorf("Numbered line should be a list item, got %s", result.Sections[0].Type)
	}
	if result.Sections[0].Content != "1. Introduction" {
		t.Errorf("Unexpected content %q", result.Sections[0].Content)
	}
}

func TestRun_PageTimeoutIsolated(t *testing.T) {
	// Five pages distinguished by width; page 2 always exceeds the page
	// timeout, on the first attempt and on the reduced-resolution retry
	byWidth := make(map[int][]recognize.Word)
	images := make([]image.Image, 5)
	for i := 0; i < 5; i++ {
		width := 610 + i
		byWidth[width] = paragraphWords(0.9)
		images[i] = blankPage(width, 800)
	}
	engine := &fakeEngine{
		byWidth: byWidth,
		delays:  map[int]time.Duration{612: 150 * time.Millisecond},
	}

	result, err := FromImages(images...).
		WithEngine(engine).
		PageTimeout(25 * time.Millisecond).
		Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Sections) != 4 {
		t.Fatalf("Expected 4 sections from the surviving pages, got %d", len(result.Sections))
	}
	for i, s := range result.Sections {
		if s.PageIndex == 2 {
			t.Error("Failed page should contribute zero sections")
		}
		if s.ID != i {
			t.Errorf("Section %d: expected sequential ID %d, got %d", i, i, s.ID)
		}
	}
	if got := result.Sections[0].PageIndex; got != 0 {
		t.Errorf("Expected first section from page 0, got page %d", got)
	}

	status := result.Metadata.PageStatuses[2]
	if status.State != model.PageLowConfidence {
		t.Errorf("Expected low_confidence state for page 2, got %s", status.State)
	}
	if status.Error == "" {
		t.Error("Failed page should carry an error description")
	}
	failed := result.Metadata.FailedPages()
	if len(failed) != 1 || failed[0] != 2 {
		t.Errorf("Expected failed pages [2], got %v", failed)
	}

	// Four pages once, the failing page twice (retry)
	if got := engine.callCount(); got != 6 {
		t.Errorf("Expected 6 engine calls, got %d", got)
	}
}

func TestRun_UnprocessablePageSkipped(t *testing.T) {
	engine := &fakeEngine{byWidth: map[int][]recognize.Word{
		620: paragraphWords(0.9),
	}}

	result, err := FromImages(blankPage(620, 800), nil).
		WithEngine(engine).
		Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Sections) != 1 {
		t.Fatalf("Expected 1 section from the good page, got %d", len(result.Sections))
	}
	if result.Metadata.PageStatuses[1].State != model.PageUnprocessable {
		t.Errorf("Expected unprocessable, got %s", result.Metadata.PageStatuses[1].State)
	}
	if result.Metadata.PageStatuses[1].Error == "" {
		t.Error("Unprocessable page should carry an error description")
	}
	if engine.callCount() != 1 {
		t.Errorf("Skipped page should never reach the engine, got %d calls", engine.callCount())
	}
}

func TestRun_CancelledBeforeSubmission(t *testing.T) {
	engine := &fakeEngine{byWidth: map[int][]recognize.Word{
		600: paragraphWords(0.9),
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := FromImages(blankPage(600, 800), blankPage(600, 800)).
		WithEngine(engine).
		Run(ctx)

	if err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if result == nil {
		t.Fatal("Cancellation should still return the partial result")
	}
	if len(result.Sections) != 0 {
		t.Errorf("Expected no sections, got %d", len(result.Sections))
	}
	if result.Metadata.PageCount != 2 {
		t.Errorf("Expected page count 2, got %d", result.Metadata.PageCount)
	}
	for _, ps := range result.Metadata.PageStatuses {
		if ps.State != model.PageLowConfidence {
			t.Errorf("Page %d: expected low_confidence, got %s", ps.PageIndex, ps.State)
		}
	}
	if engine.callCount() != 0 {
		t.Errorf("No page should have been dispatched, got %d calls", engine.callCount())
	}
}

func TestRun_ResampledCoordinatesMapBack(t *testing.T) {
	// Source at 150 DPI, target 300: the page doubles for recognition and
	// the engine reports doubled coordinates
	engine := &fakeEngine{byWidth: map[int][]recognize.Word{
		1200: {
			word("Scaled", 100, 100, 120, 24, 0.9),
			word("text", 240, 100, 80, 24, 0.9),
		},
	}}

	result, err := FromImages(blankPage(600, 800)).
		WithEngine(engine).
		SourceDPI(150).
		Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Sections) != 1 {
		t.Fatalf("Expected 1 section, got %d", len(result.Sections))
	}
	box := result.Sections[0].BBox
	if box.X != 50 || box.Y != 50 {
		t.Errorf("Expected bbox mapped back to (50, 50), got (%v, %v)", box.X, box.Y)
	}
	if box.Height != 12 {
		t.Errorf("Expected bbox height 12 in source coordinates, got %v", box.Height)
	}
}

func TestRun_LowConfidenceSectionsFlagged(t *testing.T) {
	engine := &fakeEngine{byWidth: map[int][]recognize.Word{
		630: paragraphWords(0.9),
		631: paragraphWords(0.3),
	}}

	result, err := FromImages(blankPage(630, 800), blankPage(631, 800)).
		WithEngine(engine).
		Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Sections) != 2 {
		t.Fatalf("Expected 2 sections, got %d", len(result.Sections))
	}
	poor := result.Sections[1]
	if poor.PageIndex != 1 {
		t.Fatalf("Expected second section from page 1, got page %d", poor.PageIndex)
	}
	flagged := result.Metadata.LowConfidenceSectionIDs
	if len(flagged) != 1 || flagged[0] != poor.ID {
		t.Errorf("Expected section %d flagged, got %v", poor.ID, flagged)
	}
	wantAvg := 0.6
	if diff := result.Metadata.AverageConfidence - wantAvg; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected average confidence %v, got %v", wantAvg, result.Metadata.AverageConfidence)
	}
}
