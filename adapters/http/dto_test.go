package http

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"array", `["tech","news"]`, []string{"tech", "news"}},
		{"bare string", `"tech"`, []string{"tech"}},
		{"comma separated string", `"bass, fly fishing"`, []string{"bass", "fly fishing"}},
		{"null", `null`, nil},
		{"empty array", `[]`, []string{}},
		{"blank entries dropped", `["", "  ", "ok"]`, []string{"ok"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got StringList
			require.NoError(t, json.Unmarshal([]byte(tc.in), &got))
			assert.Equal(t, StringList(tc.want), got)
		})
	}
}

func TestStringListUnmarshalRejectsOtherShapes(t *testing.T) {
	var got StringList
	assert.Error(t, json.Unmarshal([]byte(`42`), &got))
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &got))
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &got))
}

func TestPublishRequestToJobRequest(t *testing.T) {
	body := `{
		"topic": "fly fishing",
		"tag_names": "bass, trout",
		"category_names": ["Fishing"],
		"status": "publish",
		"generate": true
	}`

	var req PublishRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	jr := req.ToJobRequest()
	assert.Equal(t, "fly fishing", jr.Topic)
	assert.Equal(t, []string{"Fishing"}, jr.CategoryNames)
	assert.Equal(t, []string{"bass", "trout"}, jr.TagNames)
	assert.True(t, jr.Generate)
}
