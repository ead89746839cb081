package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetIfNotNil(t *testing.T) {
	m := map[string]any{}
	zero := ""
	SetIfNotNil[string](m, "a", nil)
	SetIfNotNil(m, "b", &zero)
	assert.NotContains(t, m, "a")
	assert.Equal(t, "", m["b"])
}

func TestSetIfNotNilFunc(t *testing.T) {
	m := map[string]any{}
	v := "  leak  "
	SetIfNotNilFunc(m, "subject", &v, strings.TrimSpace)
	SetIfNotNilFunc[string, string](m, "other", nil, strings.TrimSpace)
	assert.Equal(t, "leak", m["subject"])
	assert.NotContains(t, m, "other")
}
