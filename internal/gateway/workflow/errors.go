package workflow

import (
	"errors"
	"fmt"
)

// ErrValidation — некорректный ввод клиента; поднимается до любых сетевых
// вызовов.
var ErrValidation = errors.New("validation error")

// UpstreamError — внутренний сервис ответил не-2xx или недоступен. Статус и
// тело апстрима сохраняются для диагностики.
type UpstreamError struct {
	Service string
	Status  int
	Body    string
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s is unreachable: %s", e.Service, e.Body)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.Status, e.Body)
}
