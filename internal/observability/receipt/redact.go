package receipt

import (
	"regexp"
	"strings"
)

const redactedValue = "[REDACTED]"

// secretFlags are flag names whose values are never written to a receipt,
// with or without leading dashes.
var secretFlags = map[string]bool{
	"token":        true,
	"key":          true,
	"api-key":      true,
	"apikey":       true,
	"password":     true,
	"secret":       true,
	"auth":         true,
	"bearer":       true,
	"credential":   true,
	"credentials":  true,
	"access-token": true,
	"private-key":  true,
}

// secretPrefixes mark well-known token formats regardless of flag name.
var secretPrefixes = []string{
	"sk-",
	"ghp_",
	"github_pat_",
	"xoxb-",
	"xoxp-",
	"AKIA",
	"AIza",
	"ya29.",
	"npm_",
}

// three dot-separated base64ish runs, the JWT shape
var jwtRe = regexp.MustCompile(`^[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}$`)

// long undelimited alphanumeric runs; paths and URLs are excluded before this
// is consulted
var opaqueSecretRe = regexp.MustCompile(`^[A-Za-z0-9+/=_-]{32,}$`)

// RedactArgs returns a copy of args with secret-looking values replaced, and
// whether anything was replaced. Receipts store the result, never the
// original.
func RedactArgs(args []string) ([]string, bool) {
	if len(args) == 0 {
		return args, false
	}
	out := make([]string, len(args))
	redacted := false

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if eq := strings.Index(arg, "="); eq > 0 {
			// --flag=value
			if secretFlag(arg[:eq]) || secretValue(arg[eq+1:]) {
				out[i] = arg[:eq+1] + redactedValue
				redacted = true
			} else {
				out[i] = arg
			}
			continue
		}

		if strings.HasPrefix(arg, "-") && secretFlag(arg) && i+1 < len(args) {
			// --flag value
			out[i] = arg
			i++
			out[i] = redactedValue
			redacted = true
			continue
		}

		if secretValue(arg) {
			out[i] = redactedValue
			redacted = true
			continue
		}
		out[i] = arg
	}
	return out, redacted
}

func secretFlag(flag string) bool {
	flag = strings.TrimLeft(flag, "-")
	return secretFlags[strings.ToLower(flag)]
}

func secretValue(value string) bool {
	for _, p := range secretPrefixes {
		if strings.HasPrefix(value, p) {
			return true
		}
	}
	if jwtRe.MatchString(value) {
		return true
	}
	if len(value) >= 32 &&
		!strings.Contains(value, "/") && !strings.Contains(value, ".") {
		return opaqueSecretRe.MatchString(value)
	}
	return false
}
