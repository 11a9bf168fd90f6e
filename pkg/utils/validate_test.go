package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateShortCode(t *testing.T) {
	assert.NoError(t, ValidateShortCode("ex1"))
	assert.NoError(t, ValidateShortCode("my-link_2"))

	assert.Error(t, ValidateShortCode(""))
	assert.Error(t, ValidateShortCode("has space"))
	assert.Error(t, ValidateShortCode("slash/code"))
	assert.Error(t, ValidateShortCode("中文"))
}

func TestValidateTargetURL(t *testing.T) {
	assert.NoError(t, ValidateTargetURL("https://example.com"))
	assert.NoError(t, ValidateTargetURL("http://example.com/path?q=1"))

	assert.Error(t, ValidateTargetURL(""))
	assert.Error(t, ValidateTargetURL("example.com"))   // 缺少 scheme
	assert.Error(t, ValidateTargetURL("/relative/path")) // 缺少 host

	long := "https://example.com/" + strings.Repeat("a", 2048)
	assert.Error(t, ValidateTargetURL(long))
}
