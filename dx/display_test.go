package dx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"mkdx/dx"
	"mkdx/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayDataEmpty(t *testing.T) {
	tests := []struct {
		name string
		data any
	}{
		{name: "nil", data: nil},
		{name: "empty object", data: map[string]any{}},
		{name: "empty list", data: []any{}},
		{name: "empty string", data: ""},
		{name: "false", data: false},
		{name: "zero number", data: json.Number("0")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, dx.DisplayData(&buf, tt.data))
			assert.Equal(t, "No data to display.\n", buf.String())
		})
	}
}

func TestDisplayDataIndents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dx.DisplayData(&buf, map[string]any{"a": 1}))
	assert.Equal(t, "{\n    \"a\": 1\n}\n", buf.String())
}

func TestDisplayDataNoHTMLEscape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dx.DisplayData(&buf, map[string]any{"value": "<5 & >2"}))
	assert.Contains(t, buf.String(), `"value": "<5 & >2"`)
}

func TestGetDisplay(t *testing.T) {
	srv, _ := newAPI(t, http.StatusOK, `{"streamId":"100","value":"AQI: 2"}`)

	var buf bytes.Buffer
	c := dx.New("secret", "feed-1", dx.WithAPIURL(srv.URL), dx.WithOutput(&buf))

	res, err := c.Get(context.Background(), models.Query{StreamId: "100", Display: true})
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Contains(t, buf.String(), `    "value": "AQI: 2"`)

	buf.Reset()
	_, err = c.Get(context.Background(), models.Query{StreamId: "100"})
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}
