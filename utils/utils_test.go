package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsString(t *testing.T) {
	assert.True(t, ContainsString([]string{"a", "b"}, "b"))
	assert.False(t, ContainsString([]string{"a", "b"}, "c"))
	assert.False(t, ContainsString(nil, "a"))
}

func TestRandomAlphabetString(t *testing.T) {
	s := RandomAlphabetString(12)
	assert.Len(t, s, 12)
}

func TestNormalizeSiteURL(t *testing.T) {
	assert.Equal(t, "https://blog.example.com", NormalizeSiteURL("https://blog.example.com/"))
	assert.Equal(t, "https://blog.example.com", NormalizeSiteURL("http://blog.example.com"))
	assert.Equal(t, "https://blog.example.com", NormalizeSiteURL("blog.example.com"))
	assert.Equal(t, "", NormalizeSiteURL("  "))
}
