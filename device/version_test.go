package device

import "testing"

func TestFirmwareVersionCheck(t *testing.T) {
	tests := []struct {
		name    string
		bcd     uint16
		want    FirmwareVersion
		wantErr bool
	}{
		{"1.9.9", 0x0199, FirmwareVersion{1, 9, 9}, true},
		{"2.0.0", 0x0200, FirmwareVersion{2, 0, 0}, true},
		{"2.0.1", 0x0201, FirmwareVersion{2, 0, 1}, false},
		{"2.3.0", 0x0230, FirmwareVersion{2, 3, 0}, false},
		{"3.0.0", 0x0300, FirmwareVersion{3, 0, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseBCDDevice(tt.bcd)
			if got != tt.want {
				t.Errorf("ParseBCDDevice() got = %v, want %v", got, tt.want)
			}
			err := got.Check()
			if (err != nil) != tt.wantErr {
				t.Errorf("Check() err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if _, ok := err.(*VersionError); !ok {
					t.Errorf("Check() err type = %T, want *VersionError", err)
				}
			}
		})
	}
}
