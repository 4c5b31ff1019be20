package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"course-converter/internal/catalog"
	"course-converter/internal/config"
	"course-converter/internal/domain"
	"course-converter/internal/jsontree"
	"course-converter/internal/logger"
	"course-converter/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	cfg        *config.Config
	store      service.TemplateStore
	conversion service.ConversionService
}

// newApp builds the services from defaults. The CLI reads no config file.
func newApp(verbose bool) (*app, error) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Logger.Level = "warn"
	if verbose {
		cfg.Logger.Level = "debug"
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return nil, err
	}

	cat, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	store := service.NewTemplateStore(nil, 0)
	return &app{
		cfg:        cfg,
		store:      store,
		conversion: service.NewConversionService(cfg, cat, nil, store, service.NewOutputStore(cfg.Outputs.Dir)),
	}, nil
}

func (a *app) readAIOutput(ctx context.Context, path string) (*domain.AIOutput, error) {
	file, err := a.store.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	return domain.ParseAIOutput(file.Data)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "converter",
		Short:        "Convert AI course content into e-learning templates",
		SilenceUsage: true,
	}
	root.AddCommand(newConvertCmd(), newValidateCmd(), newBatchCmd())
	return root
}

func newConvertCmd() *cobra.Command {
	var aiOutput, templatePath, output string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert one AI output file with a template",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(verbose)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			ai, err := a.readAIOutput(ctx, aiOutput)
			if err != nil {
				return err
			}
			tmpl, err := a.store.Read(ctx, templatePath)
			if err != nil {
				return err
			}
			result, err := a.conversion.Convert(ctx, ai, string(tmpl.Data))
			if err != nil {
				return err
			}

			data, err := jsontree.MarshalIndent(result.Template, "  ")
			if err != nil {
				return err
			}
			if dir := filepath.Dir(output); dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			logger.Get().Debug("Output written", zap.String("path", output), zap.Int("bytes", len(data)))

			s := result.Stats
			fmt.Fprintf(cmd.OutOrStdout(), "Converted %s -> %s\n", aiOutput, output)
			fmt.Fprintf(cmd.OutOrStdout(), "sections=%d quizzes=%d tags=%d replaced=%d unresolved=%d repaired=%d\n",
				s.Sections, s.Quizzes, s.TotalTags, s.ReplacedTags, s.UnresolvedTags, s.RepairedFields)
			return nil
		},
	}
	cmd.Flags().StringVar(&aiOutput, "ai-output", "", "AI output JSON file")
	cmd.Flags().StringVar(&templatePath, "template", "", "template JSON file")
	cmd.Flags().StringVar(&output, "output", "", "converted template file to write")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log conversion stages")
	_ = cmd.MarkFlagRequired("ai-output")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var aiOutput string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that an AI output file has the required fields",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}
			ai, err := a.readAIOutput(cmd.Context(), aiOutput)
			if err != nil {
				return err
			}
			if err := ai.Validate(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d sections, %d quizzes\n",
				aiOutput, len(ai.Sections), len(ai.GeneralQuiz))
			return nil
		},
	}
	cmd.Flags().StringVar(&aiOutput, "ai-output", "", "AI output JSON file")
	_ = cmd.MarkFlagRequired("ai-output")
	return cmd
}

func newBatchCmd() *cobra.Command {
	var req domain.BatchRequest

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Convert every AI output file of a directory with one template",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}
			summary, err := service.NewBatchService(a.conversion, a.store, logger.Get()).ConvertDir(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range summary.Results {
				if r.Success {
					fmt.Fprintf(out, "OK   %s -> %s\n", filepath.Base(r.InputFile), filepath.Base(r.OutputFile))
				} else {
					fmt.Fprintf(out, "FAIL %s: %s\n", filepath.Base(r.InputFile), r.Error)
				}
			}
			fmt.Fprintf(out, "%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
			if summary.Failed > 0 {
				return fmt.Errorf("%d file(s) failed to convert", summary.Failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&req.InputDir, "input-dir", "", "directory of AI output files")
	cmd.Flags().StringVar(&req.TemplatePath, "template", "", "template JSON file")
	cmd.Flags().StringVar(&req.OutputDir, "output-dir", "", "directory for converted templates")
	cmd.Flags().IntVar(&req.Concurrency, "concurrency", 4, "files converted in parallel")
	_ = cmd.MarkFlagRequired("input-dir")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("output-dir")
	return cmd
}
