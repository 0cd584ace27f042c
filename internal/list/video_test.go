package list

import "testing"

func TestValidateVideo(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "youtube watch url",
			input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name:  "youtube without www",
			input: "https://youtube.com/watch?v=dQw4w9WgXcQ",
			want:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name:  "youtu.be short url",
			input: "https://youtu.be/dQw4w9WgXcQ",
			want:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name:  "youtube drops extra params",
			input: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42",
			want:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name:  "twitch video",
			input: "https://twitch.tv/videos/123456",
			want:  "https://www.twitch.tv/videos/123456",
		},
		{
			name:    "youtube missing video id",
			input:   "https://www.youtube.com/watch",
			wantErr: true,
		},
		{
			name:    "unsupported host",
			input:   "https://vimeo.com/123456",
			wantErr: true,
		},
		{
			name:    "bad scheme",
			input:   "ftp://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantErr: true,
		},
		{
			name:    "not a url",
			input:   "definitely not a url",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateVideo(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateVideo(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ValidateVideo(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateRawFootage(t *testing.T) {
	if err := ValidateRawFootage("https://example.com/raw.mp4"); err != nil {
		t.Errorf("ValidateRawFootage() error = %v, want nil", err)
	}
	if err := ValidateRawFootage("relative/path.mp4"); err == nil {
		t.Error("ValidateRawFootage() = nil, want error for relative url")
	}
}
