package main

import (
	"fmt"
	"os"

	_ "audio_extract_service/cmd/audio_service/docs" // 引入生成的 Swagger 文档
	"audio_extract_service/pkg/config"
	"audio_extract_service/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	cfgPath string
	cfg     config.AudioService
)

var rootCmd = &cobra.Command{
	Use:   "audio_service",
	Short: "Extract the audio track of remote videos as MP3",
	Long: `audio_service downloads a remote media file, converts its audio track to
MP3 and trims it to a size ceiling.

Examples:
  audio_service serve
  audio_service convert --url https://example.com/clip.mp4 --out clip.mp3`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Log = logger.Initialize(config.EnvConfig.AudioService, config.EnvConfig.AudioServiceLogPath)

		var err error
		cfg, err = config.LoadConfig[config.AudioService](config.EnvConfig.AudioService, cfgPath, config.Defaults)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.EnvConfig.AudioServiceYAMLPath, "directory holding audio_service.yaml")
}

func main() {
	defer logger.Log.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
