// Command relayout reconstructs an editable, structured document from
// scanned page images and writes the result as JSON.
//
// The default build recognizes nothing: Tesseract support is compiled in
// with the "ocr" build tag.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tsawler/relayout"
	"github.com/tsawler/relayout/internal/config"
)

func main() {
	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "relayout: %v\n", err)
		os.Exit(2)
	}

	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "relayout: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("processing failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	images, err := loadImages(cfg.Inputs, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := relayout.FromImages(images...).
		WithLogger(logger).
		SourceDPI(cfg.SourceDPI).
		Language(cfg.Language).
		Workers(cfg.Workers).
		PageTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second).
		LowConfidenceThreshold(cfg.LowConfidenceThreshold).
		Run(ctx)
	if err != nil && result == nil {
		return err
	}
	if err != nil {
		logger.Warn("processing interrupted, writing partial result", zap.Error(err))
	}

	return writeResult(cfg.Output, result)
}

// loadImages decodes the input files in page order. A file that cannot be
// opened or decoded is passed through as a nil page so the pipeline
// reports it as unprocessable instead of aborting the document; only a
// document with no readable pages at all is an error.
func loadImages(paths []string, logger *zap.Logger) ([]image.Image, error) {
	images := make([]image.Image, len(paths))
	loaded := 0
	for i, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			logger.Warn("cannot open page", zap.String("path", path), zap.Error(err))
			continue
		}
		img, format, err := image.Decode(f)
		f.Close()
		if err != nil {
			logger.Warn("cannot decode page", zap.String("path", path), zap.Error(err))
			continue
		}
		logger.Debug("page loaded", zap.String("path", path), zap.String("format", format))
		images[i] = img
		loaded++
	}
	if loaded == 0 {
		return nil, fmt.Errorf("none of the %d input pages could be read", len(paths))
	}
	return images, nil
}

// Output document shape. Kept separate from the model types so the wire
// format is explicit and stable.
type outputDocument struct {
	DocumentID string                 `json:"document_id"`
	Sections   []outputSection        `json:"sections"`
	Styles     map[string]outputStyle `json:"style_catalog"`
	Metadata   outputMetadata         `json:"metadata"`
}

type outputSection struct {
	ID         int     `json:"id"`
	Type       string  `json:"section_type"`
	Content    string  `json:"content"`
	StyleToken string  `json:"style_token"`
	Editable   bool    `json:"editable"`
	PageIndex  int     `json:"page_index"`
	Confidence float64 `json:"confidence"`
}

type outputStyle struct {
	FontSize  float64 `json:"font_size"`
	Bold      bool    `json:"bold"`
	Alignment string  `json:"alignment"`
}

type outputMetadata struct {
	AverageConfidence       float64      `json:"average_confidence"`
	LowConfidenceSectionIDs []int        `json:"low_confidence_section_ids"`
	PageCount               int          `json:"page_count"`
	Pages                   []outputPage `json:"pages"`
}

type outputPage struct {
	Index         int      `json:"index"`
	State         string   `json:"state"`
	Error         string   `json:"error,omitempty"`
	Operations    []string `json:"operations,omitempty"`
	FragmentCount int      `json:"fragment_count"`
}

func buildOutput(result *relayout.Result) outputDocument {
	doc := outputDocument{
		DocumentID: result.DocumentID.String(),
		Sections:   make([]outputSection, 0, len(result.Sections)),
		Styles:     make(map[string]outputStyle, len(result.StyleCatalog)),
		Metadata: outputMetadata{
			AverageConfidence:       result.Metadata.AverageConfidence,
			LowConfidenceSectionIDs: result.Metadata.LowConfidenceSectionIDs,
			PageCount:               result.Metadata.PageCount,
		},
	}
	for _, s := range result.Sections {
		doc.Sections = append(doc.Sections, outputSection{
			ID:         s.ID,
			Type:       s.Type,
			Content:    s.Content,
			StyleToken: s.StyleToken,
			Editable:   s.Editable,
			PageIndex:  s.PageIndex,
			Confidence: s.Confidence,
		})
	}
	for token, style := range result.StyleCatalog {
		doc.Styles[token] = outputStyle{
			FontSize:  style.FontSize,
			Bold:      style.Bold,
			Alignment: style.Alignment.String(),
		}
	}
	for _, ps := range result.Metadata.PageStatuses {
		doc.Metadata.Pages = append(doc.Metadata.Pages, outputPage{
			Index:         ps.PageIndex,
			State:         ps.State.String(),
			Error:         ps.Error,
			Operations:    ps.Operations,
			FragmentCount: ps.FragmentCount,
		})
	}
	return doc
}

func writeResult(output string, result *relayout.Result) error {
	doc := buildOutput(result)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	data = append(data, '\n')

	if output == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	return zcfg.Build()
}
