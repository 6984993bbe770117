package usb

import (
	"errors"
	"testing"

	"inlretro/device"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name    string
		want    Location
		wantErr bool
	}{
		{"", Location{}, false},
		{"1:7", Location{Bus: 1, Address: 7}, false},
		{"1", Location{}, true},
		{"a:7", Location{}, true},
		{"1:b", Location{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocation(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLocation() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var cerr *device.ConfigurationError
				if !errors.As(err, &cerr) {
					t.Errorf("ParseLocation() error = %T, want *device.ConfigurationError", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseLocation() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLocationMatches(t *testing.T) {
	zero := Location{}
	if !zero.Matches(3, 9) {
		t.Error("zero Location should match any device")
	}
	l := Location{Bus: 1, Address: 7}
	if !l.Matches(1, 7) {
		t.Error("Matches(1, 7) got = false, want true")
	}
	if l.Matches(1, 8) {
		t.Error("Matches(1, 8) got = true, want false")
	}
}

func TestCheckIdentity(t *testing.T) {
	tests := []struct {
		name                  string
		manufacturer, product string
		wantErr               bool
	}{
		{"programmer", "InfiniteNesLives.com", "INL Retro-Prog", false},
		{"other product", "InfiniteNesLives.com", "Kazzo", true},
		{"other vendor", "obdev.at", "INL Retro-Prog", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := CheckIdentity(tt.manufacturer, tt.product); (err != nil) != tt.wantErr {
				t.Errorf("CheckIdentity() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
