package application

import (
	"strconv"
	"strings"
)

// MapRejection normalises a collaborator's error payload onto form field
// names. Paths may use JSON pointer, dotted or bracket notation and may be
// wrapped in envelopes such as "body" or "data". Paths that do not resolve to
// a field are returned as form-level messages so nothing is lost. When a field
// has several messages the first one wins.
func MapRejection(payload map[string][]string) (Errors, []string) {
	fields := Errors{}
	var form []string

	for _, rawPath := range sortedKeys(payload) {
		messages := normalizeMessages(payload[rawPath])
		if len(messages) == 0 {
			continue
		}

		name, ok := fieldForPath(rawPath)
		if !ok {
			form = append(form, messages...)
			continue
		}
		if _, exists := fields[name]; !exists {
			fields[name] = messages[0]
		}
	}

	return fields, normalizeMessages(form)
}

func fieldForPath(raw string) (string, bool) {
	if isFormLevelKey(raw) {
		return "", false
	}
	segments := stripNumericSegments(dropWrapperSegments(parsePathSegments(raw)))
	if len(segments) == 0 {
		return "", false
	}
	for _, name := range FieldNames() {
		if strings.EqualFold(segments[0], name) {
			return name, true
		}
	}
	return "", false
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = clean[1:]
	}

	replacer := strings.NewReplacer("[", ".", "]", "")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	out := segments
	for len(out) > 0 {
		switch strings.ToLower(out[0]) {
		case "body", "request", "payload", "data", "attributes", "application":
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func stripNumericSegments(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
