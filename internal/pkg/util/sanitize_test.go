package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "hello world", "hello world"},
		{"trims whitespace", "  hello \n", "hello"},
		{"strips script block", "hi<script>alert(1)</script>", "hi"},
		{"strips script across lines", "a<script>\nalert(1)\n</script>b", "ab"},
		{"strips uppercase script", "x<SCRIPT src=evil.js></SCRIPT>y", "xy"},
		{"strips on handler quoted", `<img onerror="alert(1)" src=x>`, "<img src=x>"},
		{"strips on handler unquoted", "<div onclick=steal()>hi</div>", "<div>hi</div>"},
		{"strips javascript uri", `<a href="javascript:alert(1)">x</a>`, `<a href="alert(1)">x</a>`},
		{"whitespace only becomes empty", " \t\n ", ""},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"comma separated", "go,web,life", []string{"go", "web", "life"}},
		{"whitespace separated", "go web  life", []string{"go", "web", "life"}},
		{"strips hash prefix", "#go, #web", []string{"go", "web"}},
		{"dedups preserving order", "go,web,go", []string{"go", "web"}},
		{"empty string", "", nil},
		{"only separators", " , , ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTags(tt.in))
		})
	}
}
