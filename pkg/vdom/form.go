package vdom

import "net/url"

// FormData holds the fields of a submitted form, first value per name.
type FormData map[string]string

// Get returns the value for name, or "" when absent.
func (f FormData) Get(name string) string {
	return f[name]
}

// FormDataFromValues converts url.Values (as parsed from a POST body) to
// FormData, keeping the first value of every field.
func FormDataFromValues(values url.Values) FormData {
	data := make(FormData, len(values))
	for k, v := range values {
		if len(v) > 0 {
			data[k] = v[0]
		}
	}
	return data
}
