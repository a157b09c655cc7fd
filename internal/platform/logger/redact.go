package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// maxTextLen bounds string values such as page text, prompts and model
// replies that would otherwise land in logs whole.
const maxTextLen = 512

// redactor rewrites key/value pairs before they reach zap. A nil redactor
// passes everything through.
type redactor struct {
	salt string
}

func (r *redactor) apply(kv []interface{}) []interface{} {
	if r == nil || len(kv) == 0 {
		return kv
	}
	out := make([]interface{}, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		if i == len(kv)-1 {
			out = append(out, kv[i])
			break
		}
		key := toString(kv[i])
		out = append(out, key, r.value(strings.ToLower(strings.TrimSpace(key)), kv[i+1]))
	}
	return out
}

func (r *redactor) value(key string, val interface{}) interface{} {
	switch {
	case key == "":
		return val
	case isSecretKey(key):
		return "[REDACTED]"
	case isUserKey(key):
		return r.hash(val)
	case isLearnerTextKey(key):
		return fmt.Sprintf("[%d chars]", len(toString(val)))
	}
	switch v := val.(type) {
	case string:
		return truncate(v)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, inner := range v {
			out[k] = r.value(strings.ToLower(strings.TrimSpace(k)), inner)
		}
		return out
	default:
		return val
	}
}

func isSecretKey(key string) bool {
	for _, frag := range []string{"api_key", "apikey", "secret", "token", "password", "authorization", "email"} {
		if strings.Contains(key, frag) {
			return true
		}
	}
	return false
}

// user ids are pseudonymized, not dropped, so one user's requests still correlate.
func isUserKey(key string) bool {
	return key == "user_id" || key == "userid" || strings.HasSuffix(key, "_user_id")
}

// Learner answers are kept out of logs entirely; only their size is recorded.
func isLearnerTextKey(key string) bool {
	return key == "user_solution" || key == "solution"
}

func (r *redactor) hash(val interface{}) string {
	raw := toString(val)
	if raw == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(r.salt + raw))
	return "hash:" + hex.EncodeToString(sum[:])[:12]
}

func truncate(s string) string {
	if len(s) <= maxTextLen {
		return s
	}
	return fmt.Sprintf("%s...(%d more bytes)", s[:maxTextLen], len(s)-maxTextLen)
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
