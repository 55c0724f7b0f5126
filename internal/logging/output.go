package logging

import (
	"fmt"
	"log"
	"os"
	"sort"
	"time"
)

// writeLog formats and routes one log line. ERROR and FATAL go to stderr,
// everything else to stdout.
func (l *Logger) writeLog(level, msg string, fields map[string]interface{}) {
	line := fmt.Sprintf("[%s] [%s] %s: %s", timestamp(), level, l.name, msg)

	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		line += " |"
		for _, k := range keys {
			line += fmt.Sprintf(" %s=%v", k, fields[k])
		}
	}

	if level == "ERROR" || level == "FATAL" {
		fmt.Fprintf(os.Stderr, "%s\n", line)
	} else {
		log.Println(line)
	}
}

func (l *Logger) logf(level, msg string, args ...interface{}) {
	formatted := fmt.Sprintf(msg, args...)
	var fields map[string]interface{}
	if len(l.fields) > 0 {
		fields = l.fields
	}
	l.writeLog(level, formatted, fields)
}

// timestamp returns an RFC3339 timestamp, overridable via LOG_TIMESTAMP for
// deterministic test output.
func timestamp() string {
	if override := os.Getenv("LOG_TIMESTAMP"); override != "" {
		return override
	}
	return time.Now().Format(time.RFC3339)
}
