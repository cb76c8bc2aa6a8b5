package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbukum/oasisdoc/bootstrap"
	apperrors "github.com/kbukum/oasisdoc/errors"
)

type generateFlags struct {
	file   string
	audio  string
	pretty bool
}

func newGenerateCmd(flags *rootFlags) *cobra.Command {
	var gf generateFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Extract documentation from one transcript and print the result as JSON",
		Long: `Reads a transcript from --file, from stdin, or transcribes --audio through
the whisper sidecar, runs every documentation element and prints the result
JSON to stdout. Element failures are reported inside the result; only a
transcription failure makes the command fail.`,
		Example: `  oasisd generate -f visit.txt
  cat visit.txt | oasisd generate --pretty
  oasisd generate --audio visit.wav`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if gf.file != "" && gf.audio != "" {
				return errors.New("--file and --audio are mutually exclusive")
			}
			cfg, err := loadConfig(flags.configFile, flags.envFile)
			if err != nil {
				return err
			}
			// stdout carries the result.
			cfg.Logging.Output = "stderr"
			return runGenerate(cmd, cfg, gf)
		},
	}
	cmd.Flags().StringVarP(&gf.file, "file", "f", "", "transcript file (default stdin)")
	cmd.Flags().StringVar(&gf.audio, "audio", "", "audio file to transcribe first")
	cmd.Flags().BoolVar(&gf.pretty, "pretty", false, "indent the JSON output")
	return cmd
}

func runGenerate(cmd *cobra.Command, cfg *Config, gf generateFlags) error {
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}
	d, err := buildDeps(cfg, app.Logger)
	if err != nil {
		return err
	}
	if err := app.RegisterComponent(bootstrap.Telemetry(cfg.Observability)); err != nil {
		return err
	}

	return app.RunTask(cmd.Context(), func(ctx context.Context) error {
		transcript, err := readTranscript(ctx, cmd.InOrStdin(), gf, d)
		if err != nil {
			return err
		}
		result := d.service.GenerateDocumentation(ctx, transcript)

		enc := json.NewEncoder(cmd.OutOrStdout())
		if gf.pretty {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(result)
	})
}

func readTranscript(ctx context.Context, stdin io.Reader, gf generateFlags, d *deps) (string, error) {
	switch {
	case gf.audio != "":
		text, err := audioFileTranscriber(d.transcription).Execute(ctx, gf.audio)
		if err != nil {
			return "", apperrors.TranscriptionFailed(err)
		}
		return text, nil
	case gf.file != "":
		b, err := os.ReadFile(gf.file)
		if err != nil {
			return "", fmt.Errorf("read transcript: %w", err)
		}
		return string(b), nil
	default:
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
}
