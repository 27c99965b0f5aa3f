package entityhints

import (
	"context"
	"strings"

	"github.com/jdkato/prose/v2"
)

// ProseProvider извлекает подсказки для английских текстов через prose.
// Статистическая модель prose обучена только на английском, поэтому
// провайдер регистрируется исключительно для языка en.
type ProseProvider struct{}

// NewProseProvider создает провайдер подсказок на базе prose
func NewProseProvider() *ProseProvider {
	return &ProseProvider{}
}

// Extract выполняет извлечение сущностей с учетом отмены контекста.
// prose не поддерживает отмену изнутри, поэтому разбор выполняется в
// горутине, а результат отбрасывается при истечении контекста.
func (p *ProseProvider) Extract(ctx context.Context, text string) (*Hints, error) {
	type outcome struct {
		hints *Hints
		err   error
	}

	done := make(chan outcome, 1)
	go func() {
		hints, err := p.extract(text)
		done <- outcome{hints: hints, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-done:
		return out.hints, out.err
	}
}

func (p *ProseProvider) extract(text string) (*Hints, error) {
	doc, err := prose.NewDocument(text, prose.WithExtraction(true))
	if err != nil {
		return nil, err
	}

	hints := &Hints{}
	for _, ent := range doc.Entities() {
		span := findSpan(text, ent.Text)
		if span == nil {
			continue
		}
		switch ent.Label {
		case "PERSON":
			hints.PersonSpans = append(hints.PersonSpans, *span)
		case "ORG", "GPE":
			hints.OrganizationSpans = append(hints.OrganizationSpans, *span)
		}
	}
	return hints, nil
}

// findSpan находит позицию текста сущности в исходной строке.
func findSpan(text, entity string) *Span {
	idx := strings.Index(text, entity)
	if idx < 0 {
		return nil
	}
	return &Span{Start: idx, End: idx + len(entity), Text: entity}
}
