package businessflow

import (
	"testing"

	"github.com/front-desk/visitor-register/utils"
	"github.com/stretchr/testify/assert"
)

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(-5))
	assert.Equal(t, 1, ClampPage(0))
	assert.Equal(t, 1, ClampPage(1))
	assert.Equal(t, 7, ClampPage(7))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, utils.DefaultPageSize, ClampLimit(-1))
	assert.Equal(t, utils.DefaultPageSize, ClampLimit(0))
	assert.Equal(t, 1, ClampLimit(1))
	assert.Equal(t, 50, ClampLimit(50))
}
