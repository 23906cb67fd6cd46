// internals/features/challenges/generator/json_repair.go
package generator

import "strings"

/* =====================================================
   Perbaikan output JSON dari LLM.

   Model lokal sering membungkus JSON dengan code fence,
   menambah teks pembuka, atau menyisakan trailing comma.
   Di sini dibersihkan dulu sebelum unmarshal.
   ===================================================== */

// RepairJSON membersihkan respons LLM jadi JSON yang bisa di-parse
func RepairJSON(raw string) string {
	s := strings.TrimSpace(raw)
	s = stripCodeFence(s)
	s = extractOutermost(s)
	s = removeTrailingCommas(s)
	return strings.TrimSpace(s)
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	// buang baris fence pertama (``` atau ```json)
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	} else {
		return strings.TrimPrefix(s, "```")
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// extractOutermost ambil blok {..} atau [..] terluar, buang teks di sekitarnya
func extractOutermost(s string) string {
	startObj := strings.Index(s, "{")
	startArr := strings.Index(s, "[")

	start := startObj
	open, close := byte('{'), byte('}')
	if startArr >= 0 && (startObj < 0 || startArr < startObj) {
		start = startArr
		open, close = '[', ']'
	}
	if start < 0 {
		return s
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return s[start:]
}

// removeTrailingCommas: `,}` dan `,]` jadi valid (di luar string)
func removeTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			b.WriteByte(ch)
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
			continue
		}
		if ch == '"' {
			inString = true
			b.WriteByte(ch)
			continue
		}
		if ch == ',' {
			// lihat non-whitespace berikutnya
			j := i + 1
			for j < len(s) && (s[j] == ' ' || s[j] == '\n' || s[j] == '\t' || s[j] == '\r') {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue // skip koma
			}
		}
		b.WriteByte(ch)
	}
	return b.String()
}
