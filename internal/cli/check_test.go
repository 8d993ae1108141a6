package cli

import "testing"

func TestValidateCheckFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{format: "table", wantErr: false},
		{format: "json", wantErr: false},
		{format: "html", wantErr: true},
		{format: "csv", wantErr: true},
		{format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := validateCheckFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateCheckFormat(%q) error = %v, wantErr %v",
					tt.format, err, tt.wantErr)
			}
		})
	}
}
