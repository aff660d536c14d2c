package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID 生成主键（UUID v4 字符串）
func NewID() string { return uuid.NewString() }

// NormalizeID 把外部传入的 id 规整成稳定的字符串形式，非法返回 false
func NormalizeID(raw string) (string, bool) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	return id.String(), true
}
