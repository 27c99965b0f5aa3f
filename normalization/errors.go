package normalization

import "fmt"

// MaxInputLength предельная длина входа в байтах.
// Более длинные строки отклоняются до токенизации.
const MaxInputLength = 4096

// InputError ошибка входных данных: вход отклоняется до токенизации,
// результат пустой, Success=false.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// DegradedProcessing деградация обработки: внешний анализатор или
// провайдер подсказок недоступен. Не является ошибкой результата —
// фиксируется только в трассировке, обработка продолжается по
// таблицам правил.
type DegradedProcessing struct {
	Component string
	Cause     error
}

func (e *DegradedProcessing) Error() string {
	return fmt.Sprintf("degraded: %s unavailable: %v", e.Component, e.Cause)
}

func (e *DegradedProcessing) Unwrap() error { return e.Cause }

// InternalFault неожиданный сбой внутри этапа. Перехватывается на
// границе этапа, токен проходит дальше без изменений, сбой
// записывается в трассировку.
type InternalFault struct {
	Stage string
	Token string
	Cause any
}

func (e *InternalFault) Error() string {
	return fmt.Sprintf("internal fault in %s on %q: %v", e.Stage, e.Token, e.Cause)
}

func errEmptyInput() *InputError {
	return &InputError{Reason: "empty input"}
}

func errInputTooLong(length int) *InputError {
	return &InputError{Reason: fmt.Sprintf("input too long: %d bytes, limit %d", length, MaxInputLength)}
}

func errNoLetters() *InputError {
	return &InputError{Reason: "input contains no letters"}
}
