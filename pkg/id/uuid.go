package id

import (
	"strings"

	"github.com/google/uuid"
)

/**
 * @author: HuaiAn xu
 * @date: 2024-05-02 00:34:31
 * @file: uuid.go
 * @description: id util
 */

// GetUUID generates a new UUID
func GetUUID() string {
	return uuid.NewString()
}

// GetUUIDWithoutDashes generates a 32 char hex UUID, used as the user business key
func GetUUIDWithoutDashes() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
