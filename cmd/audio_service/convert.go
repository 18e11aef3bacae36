package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"audio_extract_service/internal/audio/app"
	"audio_extract_service/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	convertURL string
	convertOut string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert one remote video to MP3 without starting the server",
	Long: `Run the same download, convert and trim pipeline as the HTTP service and
write the result to a local file.

Example:
  audio_service convert --url https://example.com/clip.mp4 --out clip.mp3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if cfg.PipelineTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.PipelineTimeout)
			defer cancel()
		}

		pipeline, err := newPipeline(ctx, cfg)
		if err != nil {
			return err
		}
		n, err := runConvert(ctx, pipeline, cfg.WorkDir, convertURL, convertOut, cfg.MaxOutputBytes)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", convertOut, n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVar(&convertURL, "url", "", "source media url (required)")
	convertCmd.Flags().StringVar(&convertOut, "out", "output_audio.mp3", "destination mp3 file")
	convertCmd.MarkFlagRequired("url")
}

// runConvert run useCase inside a fresh workspace and copy the mp3 to dest
func runConvert(ctx context.Context, useCase app.ConvertUseCase, workDir, sourceURL, dest string, maxBytes int64) (int64, error) {
	ws, err := app.NewWorkspace(workDir)
	if err != nil {
		return 0, err
	}
	defer ws.Release()

	outputPath, err := useCase.Run(ctx, sourceURL, ws.Dir, maxBytes)
	if err != nil {
		return 0, err
	}

	src, err := os.Open(outputPath)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	dst, err := os.Create(dest)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(dest)
		return 0, fmt.Errorf("write %s: %w", dest, err)
	}

	logger.Log.Info("converted", zap.String("request_id", ws.ID), zap.String("dest", dest), zap.Int64("bytes", n))
	return n, nil
}
