package dx

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
)

const NoDataMessage = "No data to display."

// DisplayData pretty-prints data as indented JSON. Empty values (nil, empty
// objects, lists and strings, false and zero) print NoDataMessage instead.
func DisplayData(w io.Writer, data any) error {
	if isEmpty(data) {
		_, err := fmt.Fprintln(w, NoDataMessage)
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(data)
}

// DisplayData writes data to the client's output
func (c *Client) DisplayData(data any) error {
	return DisplayData(c.output, data)
}

func isEmpty(data any) bool {
	if data == nil {
		return true
	}
	if n, ok := data.(json.Number); ok {
		f, err := n.Float64()
		return err == nil && f == 0
	}

	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String:
		return v.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}
