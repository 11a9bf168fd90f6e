package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	// 测试用低 cost，避免拖慢用例
	hasher := NewBcryptHasher(4)

	hashed, err := hasher.Hash("secret1")
	assert.NoError(t, err)
	assert.NotEmpty(t, hashed)
	assert.NotEqual(t, "secret1", hashed)

	// 同一明文校验通过
	assert.NoError(t, hasher.Compare(hashed, "secret1"))

	// 其他明文校验失败
	assert.Error(t, hasher.Compare(hashed, "secret2"))
	assert.Error(t, hasher.Compare(hashed, ""))
}

func TestBcryptHasher_HashesAreSalted(t *testing.T) {
	hasher := NewBcryptHasher(4)

	first, err := hasher.Hash("secret1")
	assert.NoError(t, err)
	second, err := hasher.Hash("secret1")
	assert.NoError(t, err)

	// 盐不同，两次哈希结果不同，但都能校验通过
	assert.NotEqual(t, first, second)
	assert.NoError(t, hasher.Compare(first, "secret1"))
	assert.NoError(t, hasher.Compare(second, "secret1"))
}

func TestNewBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	hasher := NewBcryptHasher(-1)

	hashed, err := hasher.Hash("secret1")
	assert.NoError(t, err)
	assert.NoError(t, hasher.Compare(hashed, "secret1"))
}
