package assist

// extractJSON attempts to extract JSON from a string that may contain markdown formatting.
func extractJSON(s string) string {
	// Try to find ```json ... ``` block
	jsonStart := "```json"
	if idx := indexOf(s, jsonStart); idx != -1 {
		start := idx + len(jsonStart)
		// Skip newline after ```json
		for start < len(s) && (s[start] == '\n' || s[start] == '\r') {
			start++
		}
		// Find closing ```
		if end := indexOf(s[start:], "```"); end != -1 {
			result := s[start : start+end]
			// Trim trailing newlines
			for len(result) > 0 && (result[len(result)-1] == '\n' || result[len(result)-1] == '\r') {
				result = result[:len(result)-1]
			}
			return result
		}
	}

	// Try to find ``` ... ``` block (plain code block)
	codeStart := "```"
	if idx := indexOf(s, codeStart); idx != -1 {
		start := idx + len(codeStart)
		// Skip newline
		for start < len(s) && (s[start] == '\n' || s[start] == '\r') {
			start++
		}
		// Find closing ```
		if end := indexOf(s[start:], "```"); end != -1 {
			result := s[start : start+end]
			// Trim trailing newlines
			for len(result) > 0 && (result[len(result)-1] == '\n' || result[len(result)-1] == '\r') {
				result = result[:len(result)-1]
			}
			return result
		}
	}

	// Try to find raw JSON (starts with { or [)
	for i := 0; i < len(s); i++ {
		if s[i] == '{' || s[i] == '[' {
			// Find matching closing bracket
			depth := 0
			for j := i; j < len(s); j++ {
				switch s[j] {
				case '{', '[':
					depth++
				case '}', ']':
					depth--
					if depth == 0 {
						return s[i : j+1]
					}
				}
			}
		}
	}

	return s
}

// indexOf returns the index of the first occurrence of substr in s, or -1.
func indexOf(s, substr string) int {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
