package company

import "strings"

const icoLength = 8

// CleanICO удаляет из IČO все, кроме цифр
func CleanICO(ico string) string {
	var b strings.Builder
	b.Grow(len(ico))
	for _, r := range ico {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatICO приводит IČO к 8 цифрам с ведущими нулями
func FormatICO(ico string) string {
	cleaned := CleanICO(ico)
	if len(cleaned) >= icoLength {
		return cleaned
	}
	return strings.Repeat("0", icoLength-len(cleaned)) + cleaned
}

// IsValidICO проверяет, что после очистки осталось от 6 до 8 цифр
func IsValidICO(ico string) bool {
	n := len(CleanICO(ico))
	return n >= 6 && n <= icoLength
}
