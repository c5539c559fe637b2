package platform

import "testing"

func TestParseInfoJSON_SingleVideo(t *testing.T) {
	output := `{"id":"abc123","title":"Test Video","thumbnail":"https://img/1.jpg","webpage_url":"https://www.youtube.com/watch?v=abc123","duration":212.5,"formats":[{"format_id":"22","ext":"mp4","vcodec":"avc1","acodec":"mp4a","width":1280,"height":720,"fps":30,"filesize":52428800}]}`

	videos := ParseInfoJSON(output)

	if len(videos) != 1 {
		t.Fatalf("Expected 1 video, got %d", len(videos))
	}
	v := videos[0]
	if v.Title != "Test Video" {
		t.Errorf("Expected title 'Test Video', got %q", v.Title)
	}
	if v.WebpageURL != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("Unexpected webpage URL: %q", v.WebpageURL)
	}
	if len(v.Formats) != 1 {
		t.Fatalf("Expected 1 format, got %d", len(v.Formats))
	}
	f := v.Formats[0]
	if f.FormatID != "22" || f.Ext != "mp4" {
		t.Errorf("Unexpected format: %+v", f)
	}
	if !f.HasVideo() || !f.HasAudio() {
		t.Error("Expected muxed format to have both codecs")
	}
}

func TestParseInfoJSON_MultipleLines(t *testing.T) {
	output := `{"id":"a","title":"First","formats":[{"format_id":"18","ext":"mp4","vcodec":"avc1","acodec":"mp4a"}]}
{"id":"b","title":"Second","formats":[{"format_id":"18","ext":"mp4","vcodec":"avc1","acodec":"mp4a"}]}`

	videos := ParseInfoJSON(output)

	if len(videos) != 2 {
		t.Fatalf("Expected 2 videos, got %d", len(videos))
	}
	if videos[0].Title != "First" || videos[1].Title != "Second" {
		t.Errorf("Unexpected titles: %q, %q", videos[0].Title, videos[1].Title)
	}
}

func TestParseInfoJSON_PlaylistEntries(t *testing.T) {
	output := `{"id":"PL1","title":"My List","entries":[{"id":"a","title":"One","formats":[]},null,{"id":"b","title":"Two","formats":[]}]}`

	videos := ParseInfoJSON(output)

	if len(videos) != 2 {
		t.Fatalf("Expected 2 entries (nil skipped), got %d", len(videos))
	}
	if videos[0].Title != "One" || videos[1].Title != "Two" {
		t.Errorf("Unexpected titles: %q, %q", videos[0].Title, videos[1].Title)
	}
}

func TestParseInfoJSON_GarbageLinesSkipped(t *testing.T) {
	output := `not json at all
{"id":"a","title":"Valid","formats":[{"format_id":"18","ext":"mp4"}]}

WARNING: something`

	videos := ParseInfoJSON(output)

	if len(videos) != 1 {
		t.Fatalf("Expected 1 video, got %d", len(videos))
	}
	if videos[0].Title != "Valid" {
		t.Errorf("Expected title 'Valid', got %q", videos[0].Title)
	}
}

func TestParseInfoJSON_Empty(t *testing.T) {
	if videos := ParseInfoJSON(""); len(videos) != 0 {
		t.Errorf("Expected no videos from empty output, got %d", len(videos))
	}
}

func TestFormatInfo_Size(t *testing.T) {
	tests := []struct {
		name     string
		format   FormatInfo
		expected int64
	}{
		{"exact preferred", FormatInfo{Filesize: 100, FilesizeApprox: 999}, 100},
		{"approx fallback", FormatInfo{FilesizeApprox: 999}, 999},
		{"unknown", FormatInfo{}, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.format.Size(); got != test.expected {
				t.Errorf("Size() = %d, expected %d", got, test.expected)
			}
		})
	}
}
