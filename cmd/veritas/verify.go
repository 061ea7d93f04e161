package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Harshitk-cp/veritas/internal/api"
	"github.com/Harshitk-cp/veritas/internal/config"
	"github.com/Harshitk-cp/veritas/internal/domain"
	"github.com/Harshitk-cp/veritas/internal/logging"
	"github.com/Harshitk-cp/veritas/internal/media"
	"github.com/spf13/cobra"
)

var errVerificationFailed = errors.New("verification failed")

type verifyOptions struct {
	image        string
	audio        string
	key          string
	mediaKey     string
	asJSON       bool
	showEvidence bool
	logLevel     string
}

// claimRunner is the slice of the pipeline the command needs.
type claimRunner interface {
	Run(ctx context.Context, claim, apiKey string) *domain.CheckResult
}

func verifyCmd() *cobra.Command {
	var opts verifyOptions

	cmd := &cobra.Command{
		Use:   "verify [claim...]",
		Short: "Verify a claim typed on the command line, read from stdin, or found in media",
		Example: `  veritas verify "COVID-19 vaccines cause infertility"
  echo "The moon landing was staged" | veritas verify -
  veritas verify --image screenshot.png
  veritas verify --audio clip.mp3 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(opts.logLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			httpClient := &http.Client{}
			pipeline, err := api.NewPipeline(httpClient, nil, logger)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			claim, err := resolveClaim(ctx, cmd.InOrStdin(), args, opts, mediaSources{
				ocr:         media.NewVisionOCR(config.MediaBaseURL(), config.VisionModel(), httpClient, logger),
				transcriber: media.NewTranscriber(config.MediaBaseURL(), config.TranscriptionModel(), httpClient, logger),
				key:         mediaAPIKey(opts, config.MediaSharesLLMKey(), config.MediaAPIKey()),
			})
			if err != nil {
				return err
			}

			return runVerify(ctx, cmd.OutOrStdout(), pipeline, claim, firstNonEmpty(opts.key, config.LLMAPIKey()), opts)
		},
	}

	cmd.Flags().StringVar(&opts.image, "image", "", "Extract the claim from an image file")
	cmd.Flags().StringVar(&opts.audio, "audio", "", "Transcribe the claim from an audio file")
	cmd.Flags().StringVar(&opts.key, "key", "", "LLM API key (defaults to the configured provider key)")
	cmd.Flags().StringVar(&opts.mediaKey, "media-key", "", "API key for image OCR and audio transcription (defaults to MEDIA_API_KEY)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the full result as JSON")
	cmd.Flags().BoolVar(&opts.showEvidence, "evidence", false, "Print the gathered evidence before the verdict")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.MarkFlagsMutuallyExclusive("image", "audio")

	return cmd
}

// mediaAPIKey picks the OCR and transcription key. --key is only reused when
// the media endpoint belongs to the LLM provider.
func mediaAPIKey(opts verifyOptions, shareLLMKey bool, configured string) string {
	if shareLLMKey {
		return firstNonEmpty(opts.mediaKey, opts.key, configured)
	}
	return firstNonEmpty(opts.mediaKey, configured)
}

type mediaSources struct {
	ocr         domain.ImageTextExtractor
	transcriber domain.AudioTranscriber
	key         string
}

// resolveClaim picks the claim from, in order: --image, --audio, "-" (stdin),
// or the positional arguments joined by spaces.
func resolveClaim(ctx context.Context, stdin io.Reader, args []string, opts verifyOptions, ms mediaSources) (string, error) {
	switch {
	case opts.image != "":
		data, err := os.ReadFile(opts.image)
		if err != nil {
			return "", fmt.Errorf("read image: %w", err)
		}
		return ms.ocr.ExtractText(ctx, ms.key, data, http.DetectContentType(data))

	case opts.audio != "":
		f, err := os.Open(opts.audio)
		if err != nil {
			return "", fmt.Errorf("open audio: %w", err)
		}
		defer func() { _ = f.Close() }()
		return ms.transcriber.Transcribe(ctx, ms.key, filepath.Base(opts.audio), f)

	case len(args) == 1 && args[0] == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil

	default:
		return strings.Join(args, " "), nil
	}
}

func runVerify(ctx context.Context, out io.Writer, r claimRunner, claim, key string, opts verifyOptions) error {
	res := r.Run(ctx, claim, key)

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		printResult(out, res, opts.showEvidence)
	}

	if res.Failed() {
		return fmt.Errorf("%w: %s", errVerificationFailed, res.Error)
	}
	return nil
}

func printResult(out io.Writer, res *domain.CheckResult, showEvidence bool) {
	if res.Failed() {
		return
	}

	if showEvidence {
		fmt.Fprintf(out, "Search query: %s\n", res.Query)
		var current domain.SourceTag
		for _, item := range res.Evidence {
			if item.Source != current {
				current = item.Source
				fmt.Fprintf(out, "\n%s:\n", current.DisplayName())
			}
			line := item.Summary
			if item.Title != "" {
				line = item.Title + ": " + line
			}
			if item.URL != "" {
				line += " (" + item.URL + ")"
			}
			fmt.Fprintf(out, "  - %s\n", line)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, res.Verdict)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
