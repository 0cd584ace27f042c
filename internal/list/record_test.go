package list

import "testing"

func TestParseRecordStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RecordStatus
		wantErr bool
	}{
		{name: "submitted", input: "submitted", want: StatusSubmitted},
		{name: "approved", input: "approved", want: StatusApproved},
		{name: "rejected", input: "rejected", want: StatusRejected},
		{name: "under consideration", input: "under consideration", want: StatusUnderConsideration},
		{name: "unknown status", input: "pending", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRecordStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRecordStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseRecordStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateProgress(t *testing.T) {
	tests := []struct {
		name        string
		progress    int
		requirement int
		wantErr     bool
	}{
		{name: "at requirement", progress: 50, requirement: 50, wantErr: false},
		{name: "full completion", progress: 100, requirement: 50, wantErr: false},
		{name: "below requirement", progress: 49, requirement: 50, wantErr: true},
		{name: "above hundred", progress: 101, requirement: 50, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProgress(tt.progress, tt.requirement)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProgress(%d, %d) error = %v, wantErr %v", tt.progress, tt.requirement, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEnjoyment(t *testing.T) {
	for _, valid := range []int{0, 5, 10} {
		if err := ValidateEnjoyment(valid); err != nil {
			t.Errorf("ValidateEnjoyment(%d) error = %v, want nil", valid, err)
		}
	}
	for _, invalid := range []int{-1, 11} {
		if err := ValidateEnjoyment(invalid); err == nil {
			t.Errorf("ValidateEnjoyment(%d) = nil, want error", invalid)
		}
	}
}

func TestRecord_Clone(t *testing.T) {
	video := "https://www.youtube.com/watch?v=abc"
	raw := "https://example.com/raw.mp4"
	enjoyment := 7
	r := &Record{ID: 1, Progress: 80, Video: &video, RawFootage: &raw, Enjoyment: &enjoyment}

	cp := r.Clone()
	*cp.Video = "changed"
	*cp.RawFootage = "changed"
	*cp.Enjoyment = 2

	if *r.Video != video {
		t.Errorf("Video mutated through clone: %q", *r.Video)
	}
	if *r.RawFootage != raw {
		t.Errorf("RawFootage mutated through clone: %q", *r.RawFootage)
	}
	if *r.Enjoyment != enjoyment {
		t.Errorf("Enjoyment mutated through clone: %d", *r.Enjoyment)
	}
}
