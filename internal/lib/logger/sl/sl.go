package sl

import (
	"log/slog"
	"strings"
)

func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// MaskSecrets is a slog ReplaceAttr hook that hides credentials and the
// government id. Passwords keep their first and last rune when long enough.
func MaskSecrets(_ []string, a slog.Attr) slog.Attr {
	switch strings.ToLower(a.Key) {
	case "password", "pwd", "pass":
		return slog.String(a.Key, maskPassword(a.Value.String()))
	case "government_id", "token":
		return slog.String(a.Key, "****")
	}

	return a
}

func maskPassword(pwd string) string {
	r := []rune(pwd)
	if len(r) > 4 {
		return string(r[:1]) + "****" + string(r[len(r)-1:])
	}

	return "****"
}
