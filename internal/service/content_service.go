// FILE: internal/service/content_service.go
package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"soulstart-be/internal/dto"
	"soulstart-be/internal/pkg/logger"
)

const (
	versesFileName  = "verses.json"
	studiesFileName = "studies.json"
)

type IContentService interface {
	Verses(ctx context.Context) dto.VersesResponse
	Studies(ctx context.Context) []dto.Study
	VersesMessage(ctx context.Context) string
}

type contentService struct {
	dir     string
	siteURL string
	logger  logger.ILogger
}

func NewContentService(dir, siteURL string, logger logger.ILogger) IContentService {
	return &contentService{
		dir:     dir,
		siteURL: siteURL,
		logger:  logger,
	}
}

// Verses returns the shared verses pack. A missing or malformed file
// yields an empty pack, never an error.
func (s *contentService) Verses(ctx context.Context) dto.VersesResponse {
	var verses dto.VersesResponse
	if err := s.readJSON(versesFileName, &verses); err != nil {
		s.logger.Warn("ContentService", "Failed to load verses pack", map[string]interface{}{
			"file":  versesFileName,
			"error": err.Error(),
		})
		verses = dto.VersesResponse{}
	}
	if verses.Videos == nil {
		verses.Videos = []dto.VerseVideo{}
	}
	if verses.Texts == nil {
		verses.Texts = []dto.VerseText{}
	}
	if verses.Cards == nil {
		verses.Cards = []dto.VerseCard{}
	}
	return verses
}

// Studies returns the study outlines, newest first. Undated studies sort
// to the end.
func (s *contentService) Studies(ctx context.Context) []dto.Study {
	var studies []dto.Study
	if err := s.readJSON(studiesFileName, &studies); err != nil {
		s.logger.Warn("ContentService", "Failed to load studies", map[string]interface{}{
			"file":  studiesFileName,
			"error": err.Error(),
		})
		return []dto.Study{}
	}
	sort.SliceStable(studies, func(i, j int) bool {
		return studies[i].Date > studies[j].Date
	})
	return studies
}

// VersesMessage builds the shareable verses broadcast: theme header, up
// to two video links, the first text line, and the site promo.
func (s *contentService) VersesMessage(ctx context.Context) string {
	verses := s.Verses(ctx)

	theme := verses.Theme
	if theme == "" {
		theme = "Theme Verses"
	}
	lines := []string{"📖 SoulStart — " + theme}

	for i, video := range verses.Videos {
		if i == 2 {
			break
		}
		if video.URL == "" {
			continue
		}
		label := video.Label
		if label == "" {
			label = "Video"
		}
		lines = append(lines, "▪️ "+label+": "+video.URL)
	}

	if len(verses.Texts) > 0 {
		text := verses.Texts[0]
		if text.Ref != "" {
			lines = append(lines, strings.TrimSpace("▪️ "+text.Ref+": "+text.Line))
		}
	}

	if s.siteURL != "" {
		lines = append(lines, "🔗 Visit our website: "+s.siteURL)
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func (s *contentService) readJSON(name string, v interface{}) error {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
