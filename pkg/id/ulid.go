package id

import (
	"github.com/oklog/ulid/v2"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/16 21:53
 * @file: ulid.go
 * @description: ulid, sortable ids for stored objects
 */

// GetULID returns a lexicographically sortable id backed by crypto entropy.
func GetULID() string {
	return ulid.Make().String()
}
