package quote0

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// Bool returns a pointer to a bool.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to an int.
func Int(v int) *int { return &v }

// Ptr returns a pointer to v, for optional request fields of any type.
func Ptr[T any](v T) *T { return &v }

// NewTaskKey generates a unique task key for text/image pushes. Task keys are
// unique per device and type; reusing a key replaces the existing task.
func NewTaskKey() string {
	return uuid.NewString()
}

func encodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("quote0: read image file: %w", err)
	}
	return data, nil
}
