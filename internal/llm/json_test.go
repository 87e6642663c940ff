package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type payload struct {
	Summary string   `json:"company_summary"`
	Vibe    []string `json:"brand_vibe"`
}

func TestDecodeJSON(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"raw", `{"company_summary": "Rockets", "brand_vibe": ["bold"]}`},
		{"fenced", "```json\n{\"company_summary\": \"Rockets\", \"brand_vibe\": [\"bold\"]}\n```"},
		{"bare fence", "```\n{\"company_summary\": \"Rockets\", \"brand_vibe\": [\"bold\"]}\n```"},
		{"prose", "Here is the profile:\n{\"company_summary\": \"Rockets\", \"brand_vibe\": [\"bold\"]}\nHope it helps!"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out payload
			err := DecodeJSON(tc.content, &out)
			require.NoError(t, err)
			require.Equal(t, payload{Summary: "Rockets", Vibe: []string{"bold"}}, out)
		})
	}
}

func TestDecodeJSONErrors(t *testing.T) {
	var out payload
	require.Error(t, DecodeJSON("", &out))
	require.Error(t, DecodeJSON("   ", &out))

	err := DecodeJSON("no json here at all", &out)
	require.Error(t, err)
	require.Contains(t, err.Error(), "(reply: no json here at all)")

	err = DecodeJSON("prefix {not: valid} suffix", &out)
	require.Error(t, err)
	require.Contains(t, err.Error(), "(object: {not: valid})")

	err = DecodeJSON("{\"company_summary\": \"cut off", &out)
	require.Error(t, err)

	long := strings.Repeat("word ", 100)
	err = DecodeJSON(long, &out)
	require.Error(t, err)
	require.Contains(t, err.Error(), strings.Repeat("word ", 32)+"...)")
}

func TestDecodeJSONFirstObject(t *testing.T) {
	type post struct {
		Title   string `json:"title"`
		Caption string `json:"caption"`
	}

	testCases := []struct {
		name    string
		content string
	}{
		{"braces in strings", `Sure! {"title": "Launch {day}", "caption": "Say \"hi\" }"} Also see {notes}.`},
		{"fence after prose", "Here you go:\n```json\n{\"title\": \"Launch {day}\", \"caption\": \"Say \\\"hi\\\" }\"}\n```\nThanks {!}"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out post
			require.NoError(t, DecodeJSON(tc.content, &out))
			require.Equal(t, post{Title: "Launch {day}", Caption: `Say "hi" }`}, out)
		})
	}
}
