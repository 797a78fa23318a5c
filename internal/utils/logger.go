package utils

import (
	"log"
	"strconv"
	"strings"
)

// LogEvent prints a standardized line with module/action/request_id.
// Avoid logging sensitive payloads; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}

func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
