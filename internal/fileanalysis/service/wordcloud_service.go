package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/edupipe/antiplagiarism/internal/fileanalysis/repository"
	"github.com/edupipe/antiplagiarism/internal/fileanalysis/service/analyzer"
	"github.com/edupipe/antiplagiarism/internal/fileanalysis/service/integration"
)

const (
	quickChartWordCloudURL = "https://quickchart.io/wordcloud"

	// Сколько самых частотных слов попадает в облако.
	maxWordCloudWords = 80
)

type WordCloudService interface {
	BuildURL(ctx context.Context, reportID string) (string, error)
}

type wordCloudService struct {
	reportRepo repository.ReportRepository
	fileClient integration.FileClient
	logger     zerolog.Logger
}

func NewWordCloudService(
	reportRepo repository.ReportRepository,
	fileClient integration.FileClient,
	logger zerolog.Logger,
) WordCloudService {
	return &wordCloudService{
		reportRepo: reportRepo,
		fileClient: fileClient,
		logger:     logger,
	}
}

// BuildURL строит ссылку на QuickChart по тексту файла отчёта: токены по
// правилам нормализации, топ-80 по частоте, каждое слово повторяется по числу
// вхождений, всё кодируется в query-параметр.
func (s *wordCloudService) BuildURL(ctx context.Context, reportID string) (string, error) {
	reportID = strings.TrimSpace(reportID)
	if reportID == "" {
		return "", fmt.Errorf("%w: report_id is required", ErrValidation)
	}

	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return "", fmt.Errorf("failed to get report: %w", err)
	}
	if report == nil {
		return "", ErrReportNotFound
	}

	content, err := s.fileClient.GetFileContent(ctx, report.FileID)
	if err != nil {
		if errors.Is(err, integration.ErrFileNotFound) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrFileService, err)
	}

	text := buildWordCloudText(string(content))

	s.logger.Debug().
		Str("report_id", reportID).
		Str("file_id", report.FileID).
		Int("text_len", len(text)).
		Msg("Word cloud text built")

	return quickChartWordCloudURL + "?text=" + url.QueryEscape(text), nil
}

func buildWordCloudText(raw string) string {
	tokens := analyzer.Tokenize(raw)

	type wordCount struct {
		word  string
		count int
	}

	counts := make(map[string]int, len(tokens))
	order := make([]wordCount, 0)
	for _, token := range tokens {
		if counts[token] == 0 {
			order = append(order, wordCount{word: token})
		}
		counts[token]++
	}
	for i := range order {
		order[i].count = counts[order[i].word]
	}

	// Стабильная сортировка: при равной частоте остаётся порядок первого
	// появления слова в тексте.
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].count > order[j].count
	})

	if len(order) > maxWordCloudWords {
		order = order[:maxWordCloudWords]
	}

	var b strings.Builder
	for _, wc := range order {
		for i := 0; i < wc.count; i++ {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(wc.word)
		}
	}

	return b.String()
}
