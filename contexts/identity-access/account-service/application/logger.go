package application

import "log/slog"

const Module = "identity-access/account-service"

func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
