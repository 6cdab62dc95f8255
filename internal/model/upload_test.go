package model

import "testing"

func TestStatusOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   UploadResult
		want UploadStatus
	}{
		{"all ok", UploadResult{Success: true, Inserted: 3}, UploadStatusCompleted},
		{"empty batch", UploadResult{Success: true}, UploadStatusCompleted},
		{"some failed", UploadResult{Inserted: 1, Updated: 1, Errors: []string{"x"}}, UploadStatusPartial},
		{"nothing saved", UploadResult{Errors: []string{"x", "y"}}, UploadStatusFailed},
	}
	for _, tc := range cases {
		if got := StatusOf(tc.in); got != tc.want {
			t.Fatalf("%s: got=%s want=%s", tc.name, got, tc.want)
		}
	}
}
