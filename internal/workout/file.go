package workout

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ReadLogFile reads a log payload from a YAML or JSON file
func ReadLogFile(path string) (WorkoutLogCreate, error) {
	file, err := os.Open(path)
	if err != nil {
		return WorkoutLogCreate{}, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	return DecodeLog(file)
}

// DecodeLog decodes a single log payload and rejects unknown fields
func DecodeLog(reader io.Reader) (WorkoutLogCreate, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	var log WorkoutLogCreate
	if err := decoder.Decode(&log); err != nil {
		if errors.Is(err, io.EOF) {
			return WorkoutLogCreate{}, errors.New("log file is empty")
		}
		return WorkoutLogCreate{}, fmt.Errorf("decoder.Decode > %w", err)
	}
	return log, nil
}

// WriteYAML writes any record as YAML
func WriteYAML(writer io.Writer, value interface{}) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encoder.Encode > %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encoder.Close > %w", err)
	}
	return nil
}
