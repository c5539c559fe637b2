package model

import "testing"

func TestSortFormats_TierOrder(t *testing.T) {
	formats := []MediaFormat{
		{ID: "vo", Kind: KindVideoOnly, Filesize: 900},
		{ID: "v-big", Kind: KindVideo, Filesize: 500},
		{ID: "a", Kind: KindAudioOnly, Filesize: 100},
		{ID: "v-small", Kind: KindVideo, Filesize: 200},
	}

	SortFormats(formats)

	want := []string{"a", "v-big", "v-small", "vo"}
	for i, id := range want {
		if formats[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, formats[i].ID)
		}
	}
}

func TestSortFormats_SizeDescWithinTier(t *testing.T) {
	formats := []MediaFormat{
		{ID: "small", Kind: KindAudioOnly, Filesize: 10},
		{ID: "big", Kind: KindAudioOnly, Filesize: 9999},
		{ID: "mid", Kind: KindAudioOnly, Filesize: 500},
	}

	SortFormats(formats)

	want := []string{"big", "mid", "small"}
	for i, id := range want {
		if formats[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, formats[i].ID)
		}
	}
}

func TestSortFormats_StableForEqualKeys(t *testing.T) {
	formats := []MediaFormat{
		{ID: "first", Kind: KindVideo, Filesize: 100},
		{ID: "second", Kind: KindVideo, Filesize: 100},
	}

	SortFormats(formats)

	if formats[0].ID != "first" || formats[1].ID != "second" {
		t.Errorf("Expected stable order for equal keys, got %s, %s", formats[0].ID, formats[1].ID)
	}
}
