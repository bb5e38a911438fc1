package application

import "log/slog"

const Module = "internal-ops/admin-dashboard-service"

func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
