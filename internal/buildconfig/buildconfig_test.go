package buildconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	assert.Equal(t, "dev", Version())
	assert.Equal(t, "unknown", Commit())
	assert.Equal(t, "veritas/dev (+https://github.com/Harshitk-cp/veritas)", UserAgent())
}
