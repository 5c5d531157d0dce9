package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommitHashOutsideRepo(t *testing.T) {
	assert.Equal(t, "", computeHashFromPath(t.TempDir()))
	assert.NotEmpty(t, GetCommitHash())
	assert.Equal(t, "0123abcd", shortHash("0123abcdef"))
	assert.Equal(t, "abc", shortHash("abc"))
}
