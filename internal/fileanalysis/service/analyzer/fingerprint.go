package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint вычисляет SHA-256 от UTF-8 байтов нормализованного текста.
// Дайджест в верхнем регистре hex; детерминирован, без fuzzy-сравнения.
func Fingerprint(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
