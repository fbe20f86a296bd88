package integration

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"soulstart-be/internal/bootstrap"
	"soulstart-be/internal/config"
	"soulstart-be/internal/dto"
	"soulstart-be/internal/pkg/serverutils"
	"soulstart-be/internal/server"
	"soulstart-be/pkg/devotion"

	"github.com/stretchr/testify/assert"
)

func TestRestAPI(t *testing.T) {
	// Setup
	// 1. Seed a devotions store in a temp dir.
	dataDir := t.TempDir()
	yearFile := `{
		"2026-01-02": {
			"theme": "Steadfast Love",
			"morning": {
				"verse_ref": "Lamentations 3:22-23",
				"verse_text": "His mercies never come to an end; they are new every morning.",
				"prayer": "Lord, thank You for fresh mercy today. Amen."
			},
			"night": {
				"verse_ref": "Psalm 121:4",
				"verse_text": "He who keeps Israel will neither slumber nor sleep.",
				"prayer": "Keep watch over us tonight. Amen."
			}
		}
	}`
	if err := os.WriteFile(filepath.Join(dataDir, "devotions_2026.json"), []byte(yearFile), 0o644); err != nil {
		t.Fatalf("Failed to seed devotions: %v", err)
	}
	versesFile := `{
		"theme": "Peace",
		"videos": [{"label": "Teaching", "url": "https://example.org/v1"}],
		"texts": [{"ref": "John 14:27", "line": "Peace I leave with you."}]
	}`
	if err := os.WriteFile(filepath.Join(dataDir, "verses.json"), []byte(versesFile), 0o644); err != nil {
		t.Fatalf("Failed to seed verses: %v", err)
	}
	studiesFile := `[
		{"title": "Undated outline"},
		{"title": "Walking in Grace", "date": "2026-01-10", "scripture": "Eph 2:8"},
		{"title": "The Shepherd", "date": "2026-02-01", "scripture": "Psalm 23"}
	]`
	if err := os.WriteFile(filepath.Join(dataDir, "studies.json"), []byte(studiesFile), 0o644); err != nil {
		t.Fatalf("Failed to seed studies: %v", err)
	}

	// 2. Point the app at the temp data and keep logs out of the repo.
	t.Setenv("DEVOTIONS_ROOT", dataDir)
	t.Setenv("SITE_URL", "https://example.org/")
	t.Setenv("LOG_FILE_PATH", filepath.Join(t.TempDir(), "app.log"))
	t.Setenv("DISPATCH_TOPIC_NAME", "TEST_DISPATCH_API")

	cfg := config.Load()
	container := bootstrap.NewContainer(cfg)
	srv := server.New(cfg, container)
	app := srv.GetApp()

	// 3. Start the consumer so dispatch jobs actually complete.
	if err := container.ConsumerService.Consume(context.Background()); err != nil {
		t.Fatalf("Failed to start consumer: %v", err)
	}

	t.Run("Health check", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/health", nil)
		resp, _ := app.Test(req, -1)

		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("Resolve devotion", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/devotion/v1/resolve?date=2026-01-02&slot=night", nil)
		resp, _ := app.Test(req, -1)

		assert.Equal(t, 200, resp.StatusCode)

		var result serverutils.BaseResponse[devotion.Record]
		json.NewDecoder(resp.Body).Decode(&result)

		assert.True(t, result.Success)
		assert.Equal(t, "2026-01-02", result.Data.Date)
		assert.Equal(t, devotion.SlotNight, result.Data.Mode)
		assert.Equal(t, "Psalm 121:4", result.Data.VerseRef)
		assert.False(t, result.Data.IsPlaceholder())
	})

	t.Run("Resolve accepts legacy date spellings", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/devotion/v1/resolve?date=02-01-2026", nil)
		resp, _ := app.Test(req, -1)

		assert.Equal(t, 200, resp.StatusCode)

		var result serverutils.BaseResponse[devotion.Record]
		json.NewDecoder(resp.Body).Decode(&result)

		assert.Equal(t, "2026-01-02", result.Data.Date)
		assert.Equal(t, devotion.SlotMorning, result.Data.Mode)
	})

	t.Run("Resolve rejects malformed date", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/devotion/v1/resolve?date=not-a-date", nil)
		resp, _ := app.Test(req, -1)

		assert.Equal(t, 400, resp.StatusCode)

		var result serverutils.BaseResponse[any]
		json.NewDecoder(resp.Body).Decode(&result)

		assert.False(t, result.Success)
	})

	t.Run("Resolve unknown date serves placeholder", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/devotion/v1/resolve?date=2026-07-04", nil)
		resp, _ := app.Test(req, -1)

		assert.Equal(t, 200, resp.StatusCode)

		var result serverutils.BaseResponse[devotion.Record]
		json.NewDecoder(resp.Body).Decode(&result)

		assert.True(t, result.Data.IsPlaceholder())
		assert.NotEmpty(t, result.Data.Prayer)
	})

	t.Run("Devotion message", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/devotion/v1/message?date=2026-01-02&slot=morning", nil)
		resp, _ := app.Test(req, -1)

		assert.Equal(t, 200, resp.StatusCode)

		var result serverutils.BaseResponse[dto.DevotionMessageResponse]
		json.NewDecoder(resp.Body).Decode(&result)

		assert.Equal(t, "2026-01-02", result.Data.Date)
		assert.Equal(t, "morning", result.Data.Slot)
		assert.Contains(t, result.Data.Message, "🌅 Sunrise Devotion")
		assert.Contains(t, result.Data.Message, "Lamentations 3:22-23")
		assert.Contains(t, result.Data.Message, "🔗 Visit our website")
	})

	t.Run("Today devotion", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/devotion/v1/today", nil)
		resp, _ := app.Test(req, -1)

		assert.Equal(t, 200, resp.StatusCode)

		var result serverutils.BaseResponse[dto.TodayDevotionResponse]
		json.NewDecoder(resp.Body).Decode(&result)

		today := devotion.ISODate(time.Now())
		assert.Equal(t, today, result.Data.Date)
		assert.Equal(t, today, result.Data.Morning.Date)
		assert.Equal(t, devotion.SlotMorning, result.Data.Morning.Mode)
		assert.Equal(t, devotion.SlotNight, result.Data.Night.Mode)
	})

	t.Run("Verses", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/content/v1/verses", nil)
		resp, _ := app.Test(req, -1)

		assert.Equal(t, 200, resp.StatusCode)

		var result serverutils.BaseResponse[dto.VersesResponse]
		json.NewDecoder(resp.Body).Decode(&result)

		assert.Equal(t, "Peace", result.Data.Theme)
		assert.Len(t, result.Data.Videos, 1)
		assert.NotNil(t, result.Data.Cards)
	})

	t.Run("Studies sorted newest first", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/content/v1/studies", nil)
		resp, _ := app.Test(req, -1)

		assert.Equal(t, 200, resp.StatusCode)

		var result serverutils.BaseResponse[[]dto.Study]
		json.NewDecoder(resp.Body).Decode(&result)

		if assert.Len(t, result.Data, 3) {
			assert.Equal(t, "The Shepherd", result.Data[0].Title)
			assert.Equal(t, "Walking in Grace", result.Data[1].Title)
			assert.Equal(t, "Undated outline", result.Data[2].Title)
		}
	})

	t.Run("Dispatch send and poll job", func(t *testing.T) {
		body := `{"mode": "both", "date": "2026-01-02"}`
		req := httptest.NewRequest("POST", "/api/dispatch/v1/send", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req, -1)

		assert.Equal(t, 202, resp.StatusCode)

		var sent serverutils.BaseResponse[dto.DispatchSendResponse]
		json.NewDecoder(resp.Body).Decode(&sent)

		assert.True(t, sent.Success)
		assert.NotEmpty(t, sent.Data.JobID)
		assert.Equal(t, []string{"morning", "night"}, sent.Data.Targets)

		// Poll until the consumer completes the job.
		var job dto.DispatchJobResult
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			jobReq := httptest.NewRequest("GET", "/api/dispatch/v1/jobs/"+sent.Data.JobID, nil)
			jobResp, _ := app.Test(jobReq, -1)

			var polled serverutils.BaseResponse[dto.DispatchJobResult]
			json.NewDecoder(jobResp.Body).Decode(&polled)
			if polled.Data.Status == dto.DispatchStatusCompleted {
				job = polled.Data
				break
			}
			time.Sleep(20 * time.Millisecond)
		}

		assert.Equal(t, dto.DispatchStatusCompleted, job.Status)
		if assert.Len(t, job.Messages, 2) {
			assert.Equal(t, "morning", job.Messages[0].Target)
			assert.Contains(t, job.Messages[0].Text, "🌅 Sunrise Devotion")
			assert.Equal(t, "night", job.Messages[1].Target)
			assert.Contains(t, job.Messages[1].Text, "🌙 Sunset Devotion")
		}
		assert.NotNil(t, job.CompletedAt)
	})

	t.Run("Dispatch folds custom mode", func(t *testing.T) {
		body := `{"mode": "custom"}`
		req := httptest.NewRequest("POST", "/api/dispatch/v1/send", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req, -1)

		assert.Equal(t, 202, resp.StatusCode)

		var sent serverutils.BaseResponse[dto.DispatchSendResponse]
		json.NewDecoder(resp.Body).Decode(&sent)

		assert.Equal(t, "morning", sent.Data.Mode)
		assert.Equal(t, devotion.ISODate(time.Now()), sent.Data.Date)
	})

	t.Run("Dispatch rejects unknown mode", func(t *testing.T) {
		body := `{"mode": "weekly"}`
		req := httptest.NewRequest("POST", "/api/dispatch/v1/send", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req, -1)

		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Dispatch rejects malformed date", func(t *testing.T) {
		body := `{"mode": "morning", "date": "someday"}`
		req := httptest.NewRequest("POST", "/api/dispatch/v1/send", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req, -1)

		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Unknown job returns 404", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/dispatch/v1/jobs/does-not-exist", nil)
		resp, _ := app.Test(req, -1)

		assert.Equal(t, 404, resp.StatusCode)

		var result serverutils.BaseResponse[any]
		json.NewDecoder(resp.Body).Decode(&result)

		assert.False(t, result.Success)
		assert.Equal(t, "Dispatch job not found", result.Message)
	})
}
