package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(gorm.ErrRecordNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("find protocol p-1: %w", gorm.ErrRecordNotFound)))
	assert.False(t, IsNotFound(errors.New("connection refused")))
	assert.False(t, IsNotFound(nil))
}
