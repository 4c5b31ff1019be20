package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"course-converter/internal/domain"
	"course-converter/internal/jsontree"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultBatchConcurrency = 4
	aiInputSuffix           = "_AIinput"
	finalOutputSuffix       = "_FinalOutput.json"
)

// BatchConversionService converts a directory of AI output files.
type BatchConversionService interface {
	ConvertDir(ctx context.Context, req domain.BatchRequest) (*domain.BatchSummary, error)
}

// batchService implements BatchConversionService.
type batchService struct {
	conversion ConversionService
	store      TemplateStore
	logger     *zap.Logger
}

// NewBatchService creates a new instance of batchService.
func NewBatchService(conversion ConversionService, store TemplateStore, logger *zap.Logger) BatchConversionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &batchService{
		conversion: conversion,
		store:      store,
		logger:     logger,
	}
}

// ConvertDir converts every *.json and *_AIinput.txt file of req.InputDir.
// A failing file is recorded in the summary and does not stop the batch;
// only an unreadable template or input directory fails the call.
func (s *batchService) ConvertDir(ctx context.Context, req domain.BatchRequest) (*domain.BatchSummary, error) {
	start := time.Now()
	s.logger.Info("Starting batch conversion",
		zap.String("input_dir", req.InputDir),
		zap.String("template", req.TemplatePath),
	)

	tmpl, err := s.store.Read(ctx, req.TemplatePath)
	if err != nil {
		return nil, err
	}
	inputs, err := findAIInputFiles(req.InputDir)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		s.logger.Info("No AI output files found. Batch finishing early.")
		return &domain.BatchSummary{Results: []domain.BatchItemResult{}}, nil
	}
	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return nil, domain.NewInternalError("failed to create output directory", err)
	}

	concurrency := req.Concurrency
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}

	results := make([]domain.BatchItemResult, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, input := range inputs {
		if input.clashesWith != "" {
			s.logger.Warn("Skipping file with a duplicate output name",
				zap.String("input", input.path),
				zap.String("output", input.output),
				zap.String("first_input", input.clashesWith),
			)
			results[i] = domain.BatchItemResult{
				InputFile: input.path,
				Error:     fmt.Sprintf("output %s is already produced by %s", input.output, filepath.Base(input.clashesWith)),
			}
			continue
		}
		i, input := i, input
		g.Go(func() error {
			results[i] = s.convertOne(gctx, input.path, string(tmpl.Data), filepath.Join(req.OutputDir, input.output))
			return nil
		})
	}
	_ = g.Wait()

	summary := &domain.BatchSummary{Results: results}
	for _, r := range results {
		if r.Success {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}
	s.logger.Info("Batch conversion completed",
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Duration("duration", time.Since(start)),
	)
	return summary, nil
}

func (s *batchService) convertOne(ctx context.Context, input, templateText, output string) domain.BatchItemResult {
	result := domain.BatchItemResult{InputFile: input}
	if err := ctx.Err(); err != nil {
		result.Error = err.Error()
		return result
	}

	file, err := s.store.Read(ctx, input)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	ai, err := domain.ParseAIOutput(file.Data)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	converted, err := s.conversion.Convert(ctx, ai, templateText)
	if err != nil {
		s.logger.Warn("Failed to convert file", zap.String("input", input), zap.Error(err))
		result.Error = err.Error()
		return result
	}

	data, err := jsontree.MarshalIndent(converted.Template, "  ")
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		result.Error = fmt.Sprintf("failed to write %s: %v", output, err)
		return result
	}

	stats := converted.Stats
	result.OutputFile = output
	result.Success = true
	result.Stats = &stats
	return result
}

// OutputName derives the output file name of a batch input:
// "course_AIinput.txt" and "course.json" both become "course_FinalOutput.json".
func OutputName(input string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return strings.TrimSuffix(base, aiInputSuffix) + finalOutputSuffix
}

// aiInput is one file of a batch. clashesWith names the earlier input that
// already maps to the same output file.
type aiInput struct {
	path        string
	output      string
	clashesWith string
}

func findAIInputFiles(dir string) ([]aiInput, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewNotFoundError(fmt.Sprintf("Input directory not found: %s", dir))
		}
		return nil, domain.NewInternalError(fmt.Sprintf("failed to read %s", dir), err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, finalOutputSuffix) {
			continue
		}
		if filepath.Ext(name) == ".json" || strings.HasSuffix(name, aiInputSuffix+".txt") {
			files = append(files, filepath.Join(dir, name))
		}
	}
	sort.Strings(files)

	inputs := make([]aiInput, 0, len(files))
	claimed := make(map[string]string, len(files))
	for _, f := range files {
		in := aiInput{path: f, output: OutputName(f)}
		if first, ok := claimed[in.output]; ok {
			in.clashesWith = first
		} else {
			claimed[in.output] = f
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}
