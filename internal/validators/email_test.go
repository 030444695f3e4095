package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmailValid(t *testing.T) {
	valid := []string{
		"ana@example.com",
		"  ana@example.com  ",
		"first.last@shop.example.co",
	}
	for _, e := range valid {
		assert.True(t, IsEmailValid(e), e)
	}

	invalid := []string{
		"",
		"ana",
		"ana@",
		"@example.com",
		"ana@localhost",
		"ana example.com",
	}
	for _, e := range invalid {
		assert.False(t, IsEmailValid(e), e)
	}
}
