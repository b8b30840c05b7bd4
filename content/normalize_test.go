package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractContentText(t *testing.T) {
	require.Equal(t, "hello", ExtractContentText("hello"))
	require.Equal(t, "hello", ExtractContentText(map[string]interface{}{"content": "hello"}))
	require.Equal(t, "", ExtractContentText(nil))

	// objects without a string content field fall back to their JSON form
	require.Equal(t, `{"title":"x"}`, ExtractContentText(map[string]interface{}{"title": "x"}))
	require.Equal(t, "42", ExtractContentText(42))
}

func TestExtractContentUnwrapsFencedJSON(t *testing.T) {
	raw := "```json\n{\"content\": \"## Real body\\n\\nSome text.\"}\n```"
	require.Equal(t, "## Real body\n\nSome text.", ExtractContent(raw))
}

func TestExtractContentLeavesPlainMarkdownAlone(t *testing.T) {
	raw := "## Heading\n\nJust markdown, no wrapping."
	require.Equal(t, raw, ExtractContent(raw))
}

func TestExtractContentLeavesBrokenJSONAlone(t *testing.T) {
	raw := "```json\n{not valid json}\n```"
	require.Equal(t, raw, ExtractContent(raw))

	// a json block without a content field is also left alone
	raw = "```json\n{\"title\": \"x\"}\n```"
	require.Equal(t, raw, ExtractContent(raw))
}

func TestIsLikelyHTML(t *testing.T) {
	require.True(t, IsLikelyHTML("<p>hi</p>"))
	require.False(t, IsLikelyHTML("# markdown"))
	require.False(t, IsLikelyHTML("3 < 4"))
}

func TestHTMLToText(t *testing.T) {
	require.Equal(t, "First Second paragraph.", HTMLToText("<h1>First</h1>\n<p>Second\nparagraph.</p>"))
}
