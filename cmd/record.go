package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vietvoice/voicebank/internal/capture"
	"github.com/vietvoice/voicebank/internal/library"
	"github.com/vietvoice/voicebank/internal/recorder"
	"github.com/vietvoice/voicebank/internal/session"
	"github.com/vietvoice/voicebank/internal/wordlist"
	"github.com/vietvoice/voicebank/pkg/config"
)

var (
	recordProfileID string
	recordText      string
	recordFile      string
	recordSplitPunc bool
)

// recordCmd represents the record command
var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Run a guided batch recording session",
	Long: `Record audio for each word of a text against a voicebank server.

The words are deduplicated in first-seen order and checked against the
profile's existing vocabulary. Each word gets a countdown, a fixed
recording window, and a save/re-record/skip prompt; words that already
exist remotely require an explicit overwrite confirmation before their
audio is replaced.

Example:
  voicebank record --profile 7f3c... --text "xin chào bạn"
  voicebank record --profile 7f3c... --file script.txt`,
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)

	recordCmd.Flags().StringVar(&recordProfileID, "profile", "", "voice profile ID (required)")
	recordCmd.Flags().StringVar(&recordText, "text", "", "text to record")
	recordCmd.Flags().StringVar(&recordFile, "file", "", "file containing text to record")
	recordCmd.Flags().BoolVar(&recordSplitPunc, "split-punctuation", false, "record punctuation marks as separate entries")
	_ = recordCmd.MarkFlagRequired("profile")
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	text := recordText
	if text == "" && recordFile != "" {
		raw, err := os.ReadFile(recordFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", recordFile, err)
		}
		text = string(raw)
	}
	if text == "" {
		return fmt.Errorf("either --text or --file is required")
	}

	words, err := wordlist.Build(text, wordlist.Options{SplitPunctuation: recordSplitPunc})
	if err != nil {
		return err
	}

	client := library.NewClient(library.Config{
		BaseURL:       cfg.Library.BaseURL,
		UserID:        cfg.Library.UserID,
		Timeout:       cfg.Library.ListTimeout,
		UploadTimeout: cfg.Library.UploadTimeout,
		PageLimit:     cfg.Library.PageLimit,
	})

	ctx := cmd.Context()
	existing, err := client.CheckExisting(ctx, recordProfileID)
	if err != nil {
		return err
	}

	device := capture.NewPortAudioDevice(capture.PortAudioConfig{
		SampleRate:      cfg.Recording.SampleRate,
		Channels:        cfg.Recording.Channels,
		FramesPerBuffer: cfg.Recording.FramesPerBuffer,
	})
	rec := recorder.New(device, recorder.Config{
		CountdownSeconds: cfg.Recording.CountdownSeconds,
		WindowSeconds:    cfg.Recording.WindowSeconds,
	})
	rec.OnTick = func(remaining int) {
		fmt.Printf("  %d...\n", remaining)
	}

	ctrl, err := session.New(session.Config{
		ProfileID: recordProfileID,
		Words:     words,
		Existing:  existing,
		Recorder:  rec,
		Uploader:  client,
		OnComplete: func() {
			fmt.Println("\nSession complete.")
		},
	})
	if err != nil {
		return err
	}

	fmt.Printf("Recording %d word(s) for profile %s\n", len(words), recordProfileID)
	if err := ctrl.Start(); err != nil {
		return err
	}

	stdin := bufio.NewScanner(os.Stdin)
	for !ctrl.Done() {
		word, ok := ctrl.Current()
		if !ok {
			break
		}

		marker := ""
		if word.ExistsRemotely {
			marker = " (already recorded)"
		}
		fmt.Printf("\n[%d/%d] %q%s — recording in:\n", int(ctrl.Progress()*float64(len(words)))+1, len(words), word.Text, marker)

		if err := ctrl.Record(ctx); err != nil {
			fmt.Printf("  Recording failed: %v\n", err)
			if !promptYes(stdin, "  Try this word again? [y/N] ") {
				if err := ctrl.Skip(); err != nil {
					return err
				}
			}
			continue
		}
		fmt.Println("  Captured.")

		if err := resolveCapture(ctx, ctrl, rec, stdin); err != nil {
			return err
		}
	}

	if ctrl.Aborted() {
		fmt.Println("Session aborted.")
		return nil
	}

	for _, w := range ctrl.Words() {
		status := "skipped"
		if w.Recorded {
			status = "saved"
		}
		fmt.Printf("  %-20s %s\n", w.Text, status)
	}
	return nil
}

// resolveCapture walks one captured word through save, re-record, skip
// or abort until the session has moved on.
func resolveCapture(ctx context.Context, ctrl *session.Controller, rec *recorder.Recorder, stdin *bufio.Scanner) error {
	for {
		choice := prompt(stdin, "  [s]ave, [r]e-record, s[k]ip, [q]uit: ")
		switch choice {
		case "s", "":
			err := ctrl.Save(ctx)
			if rec.Phase() == recorder.PhaseConfirmOverwrite {
				if promptYes(stdin, "  Word exists remotely. Overwrite? [y/N] ") {
					err = ctrl.ConfirmOverwrite(ctx)
				} else {
					return ctrl.DeclineOverwrite()
				}
			}
			if err != nil {
				fmt.Printf("  Upload failed: %v\n", err)
				if promptYes(stdin, "  Retry upload? [y/N] ") {
					continue
				}
				return ctrl.Skip()
			}
			fmt.Println("  Saved.")
			return nil
		case "r":
			if err := ctrl.Record(ctx); err != nil {
				fmt.Printf("  Recording failed: %v\n", err)
				continue
			}
			fmt.Println("  Captured.")
		case "k":
			return ctrl.Skip()
		case "q":
			ctrl.Abort()
			return nil
		default:
			fmt.Println("  Unknown choice.")
		}
	}
}

func prompt(stdin *bufio.Scanner, message string) string {
	fmt.Print(message)
	if !stdin.Scan() {
		return "q"
	}
	return strings.ToLower(strings.TrimSpace(stdin.Text()))
}

func promptYes(stdin *bufio.Scanner, message string) bool {
	return prompt(stdin, message) == "y"
}
