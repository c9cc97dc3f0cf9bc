package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrollDelta_Pixels(t *testing.T) {
	tests := []struct {
		name  string
		delta ScrollDelta
		want  float32
	}{
		{"one line", ScrollDelta{Unit: ScrollLines, Y: 1}, 100},
		{"negative lines", ScrollDelta{Unit: ScrollLines, Y: -0.5}, -50},
		{"pixels pass through", ScrollDelta{Unit: ScrollPixels, Y: 50}, 50},
		{"horizontal ignored", ScrollDelta{Unit: ScrollPixels, X: 30}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.delta.Pixels())
		})
	}
}
