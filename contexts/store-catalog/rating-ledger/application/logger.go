package application

import "log/slog"

const Module = "store-catalog/rating-ledger"

func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
