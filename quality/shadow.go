package quality

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kljensen/snowball"

	"namenorm/normalization"
)

// ShadowReport итог теневого сравнения быстрого пути с полным конвейером
type ShadowReport struct {
	Total          int     `json:"total"`
	ExactMatches   int     `json:"exact_matches"`
	StemMatches    int     `json:"stem_matches"`
	Mismatches     int     `json:"mismatches"`
	ExactMatchRate float64 `json:"exact_match_rate"`
	StemMatchRate  float64 `json:"stem_match_rate"`
	// Divergent примеры расхождений: вход -> (быстрый, полный)
	Divergent []Divergence `json:"divergent,omitempty"`
}

// Divergence одно расхождение быстрого пути с полным конвейером
type Divergence struct {
	Input    string `json:"input"`
	FastPath string `json:"fast_path"`
	Full     string `json:"full"`
}

// maxDivergentSamples предел сохраняемых примеров расхождений
const maxDivergentSamples = 50

// ShadowComparator офлайн сравнивает быстрый ASCII путь с полным
// конвейером на одном корпусе. Никогда не вызывается на пути запроса:
// сравнение предназначено для регрессионного контроля качества.
// Совпадение считается двумя метриками: дословным и по стеммам,
// чтобы отличить значимые расхождения от чисто морфологических.
type ShadowComparator struct {
	normalizer *normalization.Normalizer
	logger     *slog.Logger
}

// NewShadowComparator создает компаратор поверх готового конвейера
func NewShadowComparator(normalizer *normalization.Normalizer) *ShadowComparator {
	return &ShadowComparator{
		normalizer: normalizer,
		logger:     slog.Default().With("component", "shadow_comparator"),
	}
}

// Compare прогоняет корпус через оба пути и считает доли совпадений.
// Входы, не попадающие под условия быстрого пути, пропускаются.
func (c *ShadowComparator) Compare(ctx context.Context, corpus []string, opts normalization.Options) *ShadowReport {
	report := &ShadowReport{}

	fastOpts := opts
	fastOpts.ASCIIFastPath = true
	fullOpts := opts
	fullOpts.ASCIIFastPath = false

	for _, input := range corpus {
		select {
		case <-ctx.Done():
			c.logger.Info("Shadow comparison stopped by context", "processed", report.Total)
			c.finalize(report)
			return report
		default:
		}

		fast := c.normalizer.Normalize(ctx, input, fastOpts)
		full := c.normalizer.Normalize(ctx, input, fullOpts)
		if !fast.Success || !full.Success {
			continue
		}

		report.Total++
		switch {
		case fast.Normalized == full.Normalized:
			report.ExactMatches++
			report.StemMatches++
		case stemEquivalent(fast.Normalized, full.Normalized):
			report.StemMatches++
		default:
			report.Mismatches++
			if len(report.Divergent) < maxDivergentSamples {
				report.Divergent = append(report.Divergent, Divergence{
					Input:    input,
					FastPath: fast.Normalized,
					Full:     full.Normalized,
				})
			}
		}
	}

	c.finalize(report)
	c.logger.Info("Shadow comparison finished",
		"total", report.Total,
		"exact_match_rate", report.ExactMatchRate,
		"stem_match_rate", report.StemMatchRate)
	return report
}

func (c *ShadowComparator) finalize(report *ShadowReport) {
	if report.Total == 0 {
		return
	}
	report.ExactMatchRate = float64(report.ExactMatches) / float64(report.Total)
	report.StemMatchRate = float64(report.StemMatches) / float64(report.Total)
}

// stemEquivalent сравнивает два результата по стеммам слов:
// расхождение только в окончаниях не считается значимым.
func stemEquivalent(a, b string) bool {
	wordsA := splitWords(a)
	wordsB := splitWords(b)
	if len(wordsA) != len(wordsB) {
		return false
	}
	for i := range wordsA {
		if stemWord(wordsA[i]) != stemWord(wordsB[i]) {
			return false
		}
	}
	return true
}

func splitWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == ','
	})
}

func stemWord(word string) string {
	stemmed, err := snowball.Stem(word, "english", false)
	if err != nil {
		return word
	}
	return stemmed
}
