package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// JSONLoader accepts either a bare array of lines or an object carrying the
// lines under "suggestions" (the stored trip shape) or "lines".
type JSONLoader struct{}

func (l *JSONLoader) Load(r io.Reader, filename string) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var lines []string
		if err := json.Unmarshal(data, &lines); err != nil {
			return nil, fmt.Errorf("parse json lines: %w", err)
		}
		return lines, nil
	}

	var obj struct {
		Suggestions []string `json:"suggestions"`
		Lines       []string `json:"lines"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("parse json object: %w", err)
	}
	if obj.Suggestions != nil {
		return obj.Suggestions, nil
	}
	if obj.Lines != nil {
		return obj.Lines, nil
	}
	return nil, fmt.Errorf("json object has no \"suggestions\" or \"lines\" array")
}
