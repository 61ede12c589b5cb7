package export

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Kinds(t *testing.T) {
	cause := os.ErrPermission
	tests := []struct {
		name string
		err  error
		is   func(error) bool
		kind error
		msg  string
	}{
		{"config", configErrorf("%d files but %d labels", 2, 1), IsConfigError, ErrConfig, "config error: 2 files but 1 labels"},
		{"io", ioError("a.vec", "opening", cause), IsIOError, ErrIO, "io error: opening (a.vec): permission denied"},
		{"format", formatErrorf("a.vec", 7, "short line"), IsFormatError, ErrFormat, "format error: short line (a.vec:7)"},
		{"value", valueErrorf("", 0, "nan"), IsValueError, ErrValue, "value error: nan"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.is(tt.err))
			assert.ErrorIs(t, tt.err, tt.kind)
			assert.Equal(t, tt.msg, tt.err.Error())

			wrapped := fmt.Errorf("export: %w", tt.err)
			assert.True(t, tt.is(wrapped))
			for _, other := range []error{ErrConfig, ErrIO, ErrFormat, ErrValue} {
				if other != tt.kind {
					assert.False(t, errors.Is(wrapped, other))
				}
			}
		})
	}
	assert.ErrorIs(t, ioError("a.vec", "opening", cause), os.ErrPermission)
}
