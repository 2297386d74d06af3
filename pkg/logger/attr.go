package logger

import "log/slog"

// Error returns the conventional attribute for error values.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}

// UserID returns the conventional attribute for user identifiers.
func UserID(id int64) slog.Attr {
	return slog.Int64("user_id", id)
}

// Component tags a record with the subsystem it came from.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
