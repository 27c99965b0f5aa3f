package normalization

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// AuditStore приемник записей аудита нормализации.
// Реализуется хранилищем сервиса; nil отключает аудит.
type AuditStore interface {
	SaveNormalization(requestID, input string, result *Result, duration time.Duration) error
}

// BatchItem один вход пакетной нормализации
type BatchItem struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// BatchItemResult результат нормализации одного входа пакета
type BatchItemResult struct {
	ID         int     `json:"id"`
	Input      string  `json:"input"`
	Result     *Result `json:"result"`
	DurationMS int64   `json:"duration_ms"`
}

// BatchResult итог пакетной нормализации
type BatchResult struct {
	TotalProcessed int               `json:"total_processed"`
	Succeeded      int               `json:"succeeded"`
	Failed         int               `json:"failed"`
	Items          []BatchItemResult `json:"items"`
	Errors         []string          `json:"errors"`
}

// ErrMsgBatchStopped сообщение об остановке пакетной обработки
const ErrMsgBatchStopped = "Нормализация остановлена пользователем"

// batchWorkers предел параллелизма пакетной обработки
const batchWorkers = 10

// BatchNormalizer пакетная нормализация поверх конвейера.
// Параллелизм живет здесь: сам конвейер остается синхронным
// вычислением на один вход.
type BatchNormalizer struct {
	normalizer   *Normalizer
	audit        AuditStore
	eventChannel chan<- string
	ctx          context.Context
	logger       *slog.Logger

	beforeProcessHook func(*BatchItem) // Используется в тестах для синхронизации остановки
}

// NewBatchNormalizer создает пакетный нормализатор.
// Если ctx равен nil, создается контекст, который никогда не отменяется.
// audit и eventChannel опциональны.
func NewBatchNormalizer(
	normalizer *Normalizer,
	audit AuditStore,
	eventChannel chan<- string,
	ctx context.Context,
) *BatchNormalizer {
	if ctx == nil {
		ctx = context.Background()
	}
	return &BatchNormalizer{
		normalizer:   normalizer,
		audit:        audit,
		eventChannel: eventChannel,
		ctx:          ctx,
		logger:       slog.Default().With("component", "batch_normalizer"),
	}
}

// IsStopped проверяет, была ли операция отменена через контекст
func (bn *BatchNormalizer) IsStopped() bool {
	select {
	case <-bn.ctx.Done():
		return true
	default:
		return false
	}
}

// Process нормализует пакет входов с ограниченным параллелизмом.
// Порядок Items соответствует порядку входов независимо от порядка
// завершения горутин. Отмена контекста не является ошибкой: обработка
// останавливается, частичный результат возвращается.
func (bn *BatchNormalizer) Process(items []BatchItem, opts Options) (*BatchResult, error) {
	result := &BatchResult{
		Items:  make([]BatchItemResult, len(items)),
		Errors: []string{},
	}

	if len(items) == 0 {
		bn.logger.Info("No items to process")
		return result, nil
	}

	select {
	case <-bn.ctx.Done():
		result.Errors = append(result.Errors, ErrMsgBatchStopped)
		return result, nil
	default:
	}

	startTime := time.Now()
	bn.logger.Info("Starting batch normalization", "total", len(items))

	var mu sync.Mutex
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, batchWorkers)
	stopReported := false
	reportStop := func() {
		mu.Lock()
		defer mu.Unlock()
		if stopReported {
			return
		}
		result.Errors = append(result.Errors, ErrMsgBatchStopped)
		stopReported = true
	}

	for i := range items {
		// Проверяем контекст перед каждой итерацией
		select {
		case <-bn.ctx.Done():
			reportStop()
			bn.logger.Info("Batch stopped by context",
				"processed", result.TotalProcessed,
				"total", len(items))
			wg.Wait()
			return result, nil
		default:
		}

		wg.Add(1)
		semaphore <- struct{}{} // Занимаем слот

		go func(index int, item BatchItem) {
			defer func() {
				// Обработка паники в горутине для предотвращения краша всего пакета
				if rec := recover(); rec != nil {
					bn.logger.Error("Panic in batch processing goroutine",
						"item_id", item.ID,
						"recovered", rec)
					mu.Lock()
					result.Errors = append(result.Errors, fmt.Sprintf("panic processing item %d: %v", item.ID, rec))
					mu.Unlock()
				}
				wg.Done()
				<-semaphore // Освобождаем слот
			}()

			// Повторная проверка контекста уже внутри горутины
			select {
			case <-bn.ctx.Done():
				reportStop()
				return
			default:
			}

			if bn.beforeProcessHook != nil {
				bn.beforeProcessHook(&item)
			}

			processStart := time.Now()
			res := bn.normalizer.Normalize(bn.ctx, item.Text, opts)
			duration := time.Since(processStart)

			mu.Lock()
			result.Items[index] = BatchItemResult{
				ID:         item.ID,
				Input:      item.Text,
				Result:     res,
				DurationMS: duration.Milliseconds(),
			}
			result.TotalProcessed++
			if res.Success {
				result.Succeeded++
			} else {
				result.Failed++
			}
			processed := result.TotalProcessed
			mu.Unlock()

			if bn.audit != nil {
				requestID := fmt.Sprintf("batch-%d", item.ID)
				if err := bn.audit.SaveNormalization(requestID, item.Text, res, duration); err != nil {
					bn.logger.Warn("Failed to persist normalization record",
						"item_id", item.ID,
						"error", err.Error())
				}
			}

			// Событие о прогрессе каждые 10 входов; отправка неблокирующая,
			// переполненный канал не тормозит обработку
			if bn.eventChannel != nil && (index+1)%10 == 0 {
				eventMsg := fmt.Sprintf("Обработано наименований: %d из %d", processed, len(items))
				select {
				case bn.eventChannel <- eventMsg:
				case <-time.After(100 * time.Millisecond):
					bn.logger.Debug("Event channel timeout, skipping progress event",
						"processed", processed,
						"total", len(items))
				case <-bn.ctx.Done():
					return
				}
			}
		}(i, items[i])
	}

	wg.Wait()

	select {
	case <-bn.ctx.Done():
		reportStop()
	default:
	}

	bn.logger.Info("Batch normalization finished",
		"total", len(items),
		"succeeded", result.Succeeded,
		"failed", result.Failed,
		"duration_ms", time.Since(startTime).Milliseconds())
	return result, nil
}
