package utils

import (
	"math/rand"
	"os"
	"strings"

	"github.com/seoforge/seoforge/utils/dotenv"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// ContainsString returns true iff the provided string slice hay contains
// string needle.
func ContainsString(hay []string, needle string) bool {
	for _, str := range hay {
		if str == needle {
			return true
		}
	}
	return false
}

// RandomAlphabetString generates a random alphabet string with length n.
func RandomAlphabetString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}

// IsProdEnv returns true iff the service runs with the production environment.
func IsProdEnv() bool {
	return os.Getenv("SEOFORGE_ENV") == dotenv.ProdEnv
}

// NormalizeSiteURL forces https scheme and strips any trailing slash so that
// adapters can safely append API paths.
func NormalizeSiteURL(raw string) string {
	url := strings.TrimSpace(raw)
	url = strings.TrimSuffix(url, "/")
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http://") {
		url = "https://" + strings.TrimPrefix(url, "http://")
	} else if !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}
	return url
}
