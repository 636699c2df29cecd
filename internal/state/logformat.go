package state

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// FormatLogMessage formats a message with key-value pairs as JSON for display
func FormatLogMessage(level, msg string, attrs ...any) string {
	type logEntry struct {
		Time  string `json:"time"`
		Level string `json:"level"`
		Msg   string `json:"msg"`
	}

	baseJSON, _ := json.Marshal(logEntry{
		Time:  time.Now().UTC().Format(time.RFC3339Nano),
		Level: level,
		Msg:   msg,
	})
	parts := []string{string(baseJSON[:len(baseJSON)-1])}

	for i := 0; i+1 < len(attrs); i += 2 {
		val := attrs[i+1]
		if err, ok := val.(error); ok {
			val = err.Error()
		}
		valJSON, _ := json.Marshal(val)
		parts = append(parts, fmt.Sprintf(`"%s":%s`, fmt.Sprint(attrs[i]), valJSON))
	}

	return strings.Join(parts, ",") + "}"
}
