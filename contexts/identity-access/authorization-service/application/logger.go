package application

import "log/slog"

const moduleName = "identity-access/authorization-service"

// ResolveLogger falls back to the process default logger.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// ModuleName is the value every log line from this module carries under "module".
func ModuleName() string {
	return moduleName
}
