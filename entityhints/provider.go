package entityhints

import (
	"context"
	"time"
)

// Span диапазон байтовых позиций в исходном тексте
type Span struct {
	Start int
	End   int
	Text  string
}

// Hints подсказки статистического извлечения сущностей
type Hints struct {
	PersonSpans       []Span
	OrganizationSpans []Span
}

// Provider необязательный поставщик подсказок о персонах и организациях.
// Конвейер обязан корректно работать при его отсутствии: таймаут или ошибка
// означают обработку без подсказок, а не отказ.
type Provider interface {
	Extract(ctx context.Context, text string) (*Hints, error)
}

// timeoutProvider ограничивает время извлечения подсказок
type timeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout оборачивает провайдер жестким таймаутом на извлечение.
// Неположительный таймаут возвращает провайдер без обертки.
func WithTimeout(inner Provider, timeout time.Duration) Provider {
	if timeout <= 0 {
		return inner
	}
	return &timeoutProvider{inner: inner, timeout: timeout}
}

func (p *timeoutProvider) Extract(ctx context.Context, text string) (*Hints, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.inner.Extract(ctx, text)
}

// Covers проверяет, покрывает ли какой-либо из диапазонов позицию токена.
func Covers(spans []Span, start, end int) bool {
	for _, s := range spans {
		if start >= s.Start && end <= s.End {
			return true
		}
	}
	return false
}
