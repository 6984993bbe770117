package env

import (
	"testing"
	"time"
)

func TestGetOrDefault(t *testing.T) {
	t.Setenv("INLRETRO_TEST_SET", "usb")
	t.Setenv("INLRETRO_TEST_EMPTY", "")

	tests := []struct {
		name string
		key  string
		want string
	}{
		{"set", "INLRETRO_TEST_SET", "usb"},
		{"empty", "INLRETRO_TEST_EMPTY", "def"},
		{"unset", "INLRETRO_TEST_UNSET", "def"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetOrDefault(tt.key, "def"); got != tt.want {
				t.Errorf("GetOrDefault() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetIntAndDuration(t *testing.T) {
	t.Setenv("INLRETRO_TEST_INT", "40")
	t.Setenv("INLRETRO_TEST_BAD", "x")
	t.Setenv("INLRETRO_TEST_DUR", "5ms")

	if got := GetIntOrDefault("INLRETRO_TEST_INT", 20); got != 40 {
		t.Errorf("GetIntOrDefault() got = %v, want 40", got)
	}
	if got := GetIntOrDefault("INLRETRO_TEST_BAD", 20); got != 20 {
		t.Errorf("GetIntOrDefault() got = %v, want 20", got)
	}
	if got := GetDurationOrDefault("INLRETRO_TEST_DUR", 0); got != 5*time.Millisecond {
		t.Errorf("GetDurationOrDefault() got = %v, want 5ms", got)
	}
}
