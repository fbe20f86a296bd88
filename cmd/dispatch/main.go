package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
	"unicode/utf8"

	"soulstart-be/internal/config"
	"soulstart-be/internal/pkg/logger"
	"soulstart-be/internal/service"
	"soulstart-be/pkg/devotion"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	mode    string
	date    string
	dryRun  bool
	send    bool
	apiBase string
)

var rootCmd = &cobra.Command{
	Use:   "soulstart-dispatch",
	Short: "Render and dispatch SoulStart devotion messages",
	Long: `Builds the WhatsApp-ready devotion message for a given date and mode.

By default the message is rendered locally from the devotion store and
printed as a preview. With --send the job is posted to a running SoulStart
API instead, and the command polls the dispatch job until the rendered
messages come back.`,
	RunE: runDispatch,
}

func init() {
	rootCmd.Flags().StringVar(&mode, "mode", "morning", "Dispatch mode: morning, night, verses, both or custom")
	rootCmd.Flags().StringVar(&date, "date", "", "Override date (YYYY-MM-DD); defaults to today")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render locally and print the preview (default unless --send)")
	rootCmd.Flags().BoolVar(&send, "send", false, "Post the job to a running API instead of rendering locally")
	rootCmd.Flags().StringVar(&apiBase, "api", "http://127.0.0.1:3000", "Base URL of the SoulStart API")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDispatch(cmd *cobra.Command, args []string) error {
	mode = service.NormalizeMode(mode)
	targets, ok := service.DispatchTargets(mode)
	if !ok {
		return fmt.Errorf("unsupported mode %q (use morning, night, verses, both or custom)", mode)
	}

	dt := time.Now()
	if date != "" {
		if parsed, parsedOK := devotion.ParseDate(date); parsedOK {
			dt = parsed
		} else {
			color.Red("[Error] --date must be a recognized calendar date. Using today instead.")
		}
	}

	// Safety: never touch the API without an explicit --send.
	if send && !dryRun {
		return sendToAPI(mode, devotion.ISODate(dt))
	}
	return renderLocally(targets, dt)
}

func renderLocally(targets []string, dt time.Time) error {
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	store := devotion.NewStore(cfg.Devotions.Dir)
	resolver := devotion.NewResolver(store, devotion.DefaultFallbacks())
	renderer := devotion.NewRenderer(cfg.Devotions.SiteURL, cfg.Dispatch.MaxMessageChars, func(format string, args ...any) {
		color.Yellow("[Warn] "+format, args...)
	})
	contentService := service.NewContentService(cfg.Devotions.Dir, cfg.Devotions.SiteURL, sysLogger)

	for _, target := range targets {
		var text string
		if target == "verses" {
			text = contentService.VersesMessage(context.Background())
		} else {
			slot := devotion.NormalizeSlot(target)
			record := resolver.Resolve(dt, slot)
			text = renderer.RenderRecord(&record, slot, dt)
		}

		color.Cyan("\n----- DRY RUN: %s message preview (%s) -----\n", target, devotion.ISODate(dt))
		fmt.Println(text)
		color.Cyan("\n----- END PREVIEW -----")
		fmt.Printf("(%d chars)\n", utf8.RuneCountInString(text))
	}
	return nil
}

func sendToAPI(mode, isoDate string) error {
	payload, err := json.Marshal(map[string]string{"mode": mode, "date": isoDate})
	if err != nil {
		return err
	}

	color.Cyan("🚀 Posting dispatch job to %s", apiBase)
	resp, err := http.Post(apiBase+"/api/dispatch/v1/send", "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusAccepted {
		color.Red("Status: %s", resp.Status)
		fmt.Println(string(body))
		return fmt.Errorf("dispatch request rejected")
	}
	color.Green("Status: %s", resp.Status)

	var sendResp struct {
		Data struct {
			JobID string `json:"job_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &sendResp); err != nil {
		return err
	}
	if sendResp.Data.JobID == "" {
		return fmt.Errorf("no job id in response: %s", string(body))
	}

	return pollJob(sendResp.Data.JobID)
}

func pollJob(jobID string) error {
	url := apiBase + "/api/dispatch/v1/jobs/" + jobID

	for attempt := 0; attempt < 10; attempt++ {
		time.Sleep(200 * time.Millisecond)

		resp, err := http.Get(url)
		if err != nil {
			return err
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		var jobResp struct {
			Data struct {
				Status   string `json:"status"`
				Messages []struct {
					Target string `json:"target"`
					Text   string `json:"text"`
					Chars  int    `json:"chars"`
				} `json:"messages"`
			} `json:"data"`
		}
		if err := json.Unmarshal(body, &jobResp); err != nil {
			return err
		}
		if jobResp.Data.Status != "completed" {
			continue
		}

		for _, m := range jobResp.Data.Messages {
			color.Cyan("\n----- %s message (%d chars) -----\n", m.Target, m.Chars)
			fmt.Println(m.Text)
		}
		color.Green("\n✅ Dispatch job %s completed", jobID)
		return nil
	}

	return fmt.Errorf("dispatch job %s did not complete in time", jobID)
}
