package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Kishore121523/AI-content-factory/internal/pipeline"
	"github.com/spf13/cobra"
)

func run(cmd *cobra.Command, planPath string) error {
	outDir, _ := cmd.Flags().GetString("out")
	duration, _ := cmd.Flags().GetFloat64("duration")
	speechURL, _ := cmd.Flags().GetString("speech-url")

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return errors.New("OPENAI_API_KEY is required (set it in .env)")
	}
	if speechURL == "" {
		speechURL = os.Getenv("SPEECH_SERVICE_URL")
	}

	absPlan, err := filepath.Abs(planPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Hour)
	defer cancel()

	cfg := pipeline.Config{
		PlanPath:         absPlan,
		OutDir:           outDir,
		Logf:             log.Printf,
		FallbackDuration: duration,

		OpenAIAPIKey:  apiKey,
		OpenAIModel:   os.Getenv("OPENAI_MODEL"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),

		SpeechBaseURL: speechURL,
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return pipeline.Run(ctx, cfg)
}
