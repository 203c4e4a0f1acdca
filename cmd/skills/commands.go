package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nguyentantai21042004/skill-flow/internal/conversation"
	"github.com/nguyentantai21042004/skill-flow/internal/imaging"
	"github.com/nguyentantai21042004/skill-flow/internal/memory"
	"github.com/nguyentantai21042004/skill-flow/internal/report"
	"github.com/nguyentantai21042004/skill-flow/internal/watcher"
)

func newAnalyzeCmd(v *viper.Viper) *cobra.Command {
	var (
		outDir string
		docx   bool
		name   string
	)

	cmd := &cobra.Command{
		Use:   "analyze <audio|->",
		Short: "Transcribe, diarize and remember one conversation",
		Long:  "Transcribe, diarize and remember one conversation. Pass - to read the audio from stdin; --name then supplies its file name.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			fromStdin := path == "-"
			if fromStdin {
				path = name
			}
			if !conversation.IsAudioFile(path) {
				return fmt.Errorf("unsupported audio file %s (allowed: %v)", path, conversation.SupportedFormats())
			}

			a, err := setup(cmd.Context(), v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			var res conversation.Result
			if fromStdin {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				res = a.analyzer.AnalyzeUpload(ctx, data, name)
			} else {
				res = a.analyzer.Analyze(ctx, path)
			}

			if outDir == "" {
				if err := printJSON(cmd.OutOrStdout(), res); err != nil {
					return err
				}
			} else {
				files, err := report.New(outDir, docx, a.logger).Write(cmd.Context(), path, res)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), files.JSON)
				if files.Docx != "" {
					fmt.Fprintln(cmd.OutOrStdout(), files.Docx)
				}
			}

			if res.Error != "" {
				return fmt.Errorf("analysis failed: %s", res.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "write <name>.json into this directory instead of stdout")
	cmd.Flags().BoolVar(&docx, "docx", false, "also write a <name>.docx report (requires --out)")
	cmd.Flags().StringVar(&name, "name", "upload.wav", "file name of audio read from stdin; its extension picks the decoder")
	return cmd
}

func newWatchCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Analyze every audio file dropped into the inbox directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := setup(ctx, v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			writer := report.New(a.cfg.Paths.Output, true, a.logger)
			handler := func(ctx context.Context, path string) error {
				rctx, cancel := a.withTimeout(ctx)
				defer cancel()

				res := a.analyzer.Analyze(rctx, path)
				if _, err := writer.Write(ctx, path, res); err != nil {
					return err
				}
				if res.Error != "" {
					return fmt.Errorf("analysis failed: %s", res.Error)
				}
				return nil
			}

			w, err := watcher.New(a.cfg.Paths.Input, handler, a.logger, a.cfg.Performance.MaxConcurrent)
			if err != nil {
				return err
			}
			defer w.Stop()

			a.logger.Info(ctx, "Skills watcher ready. Inbox: %s, output: %s", a.cfg.Paths.Input, a.cfg.Paths.Output)
			if err := w.Start(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			a.logger.Info(ctx, "Skills watcher stopped")
			return nil
		},
	}
}

func newMemoryCmd(v *viper.Viper) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "memory",
		Short: "List remembered conversations, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context(), v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			records := a.memory.All()
			if asJSON {
				return printJSON(cmd.OutOrStdout(), records)
			}
			return printRecords(cmd.OutOrStdout(), records)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw records as JSON")
	return cmd
}

// imageOutput is the image description plus the optional extras.
type imageOutput struct {
	imaging.Result
	ExtractedText   string `json:"extracted_text,omitempty"`
	ObjectsDetected string `json:"objects_detected,omitempty"`
}

func newImageCmd(v *viper.Viper) *cobra.Command {
	var ocr, objects bool

	cmd := &cobra.Command{
		Use:   "image <file>",
		Short: "Describe an image with the vision model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !imaging.IsImageFile(path) {
				return fmt.Errorf("unsupported image file %s", path)
			}

			a, err := setup(cmd.Context(), v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			out := imageOutput{Result: a.describer.Describe(ctx, path)}
			if ocr {
				text, err := a.describer.ExtractText(ctx, path)
				out.ExtractedText = orFailure(text, err, "Text extraction failed")
			}
			if objects {
				text, err := a.describer.DetectObjects(ctx, path)
				out.ObjectsDetected = orFailure(text, err, "Object detection failed")
			}

			if err := printJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			if out.Error != "" {
				return fmt.Errorf("%s", out.Error)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&ocr, "ocr", false, "also transcribe text visible in the image")
	cmd.Flags().BoolVar(&objects, "objects", false, "also list the objects in the image")
	return cmd
}

// orFailure reports a failed extra as "<label>: <err>" in place of its text.
func orFailure(text string, err error, label string) string {
	if err != nil {
		return label + ": " + err.Error()
	}
	return text
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func printRecords(w io.Writer, records []memory.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No conversations remembered yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tSPEAKERS\tDURATION\tSUMMARY")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%d\t%.1fs\t%s\n", r.Timestamp.Local().Format("2006-01-02 15:04"), r.Speakers, r.Duration, r.Summary)
	}
	return tw.Flush()
}
