package integration

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relayout-dev/relayout/pkg/api"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		req  map[string]any
		want string
	}{
		{
			"qwerty to dvorak",
			map[string]any{"text": "hello", "from": "qwerty", "to": "dvorak"},
			"d.nnr",
		},
		{
			"qwerty to russian",
			map[string]any{"text": "hello", "from": "qwerty", "to": "russian"},
			"руддщ",
		},
		{
			"same layout",
			map[string]any{"text": "hello", "from": "qwerty", "to": "qwerty"},
			"hello",
		},
		{
			"case insensitive layout names",
			map[string]any{"text": "hello", "from": "QWERTY", "to": "Dvorak"},
			"d.nnr",
		},
		{
			"empty text",
			map[string]any{"text": "", "from": "qwerty", "to": "dvorak"},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, testEnv.BaseURL()+"/api/convert", tt.req)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var result api.ConvertResult
			decodeJSON(t, resp, &result)

			assert.Equal(t, "success", result.Status)
			assert.Equal(t, tt.want, result.Data)
		})
	}
}

func TestConvert_RoundTrip(t *testing.T) {
	const original = "The quick brown fox jumps over the lazy dog! 123"

	resp := postJSON(t, testEnv.BaseURL()+"/api/convert", map[string]any{
		"text": original, "from": "qwerty", "to": "russian",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var forward api.ConvertResult
	decodeJSON(t, resp, &forward)
	require.NotEqual(t, original, forward.Data)

	resp = postJSON(t, testEnv.BaseURL()+"/api/convert", map[string]any{
		"text": forward.Data, "from": "russian", "to": "qwerty",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var back api.ConvertResult
	decodeJSON(t, resp, &back)
	assert.Equal(t, original, back.Data)
}

func TestConvert_PassthroughCharacters(t *testing.T) {
	// Characters outside the keymaps (here CJK) pass through unchanged.
	resp := postJSON(t, testEnv.BaseURL()+"/api/convert", map[string]any{
		"text": "水曜日", "from": "qwerty", "to": "dvorak",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result api.ConvertResult
	decodeJSON(t, resp, &result)
	assert.Equal(t, "水曜日", result.Data)
}

func TestConvert_RequestIDEcho(t *testing.T) {
	body := strings.NewReader(`{"text":"abc","from":"qwerty","to":"dvorak"}`)
	req, err := http.NewRequest(http.MethodPost, testEnv.BaseURL()+"/api/convert", body)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "req-integration-42")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "req-integration-42", resp.Header.Get("X-Request-ID"))
}
