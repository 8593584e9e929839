// Package sl содержит вспомогательные функции для работы с логгером slog.
// Основная цель — единообразное формирование структурированных полей лога,
// прежде всего для передачи информации об ошибках.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
//
// Пример:
//
//	log.Error("failed to renew membership", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
