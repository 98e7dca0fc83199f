package pagination

import (
	"testing"
	"time"
)

func TestCursorRoundTrip(t *testing.T) {
	token, err := EncodeCursor(Cursor{ID: "1234567890", CreatedAt: "2024-07-15T09:30:00Z"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	cursor, err := DecodeCursor(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	createdAt, id, ok := cursor.Keys()
	if !ok {
		t.Fatalf("keys not ok for %+v", cursor)
	}
	if id != 1234567890 {
		t.Errorf("id = %d, want 1234567890", id)
	}
	if want := time.Date(2024, time.July, 15, 9, 30, 0, 0, time.UTC); !createdAt.Equal(want) {
		t.Errorf("createdAt = %v, want %v", createdAt, want)
	}
}

func TestDecodeCursorEmptyToken(t *testing.T) {
	cursor, err := DecodeCursor("  ")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, _, ok := cursor.Keys(); ok {
		t.Errorf("zero cursor should not produce keys")
	}
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	if _, err := DecodeCursor("not-base64!!"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestBuildCursorPageInfo(t *testing.T) {
	type row struct{ ID string }
	rows := []*row{{"a"}, {"b"}, {"c"}}

	info := BuildCursorPageInfo(rows, 2, func(r *row) string { return r.ID })
	if !info.HasMore || info.NextPageToken != "b" {
		t.Errorf("info = %+v, want hasMore with token at last visible row", info)
	}

	info = BuildCursorPageInfo(rows[:2], 2, func(r *row) string { return r.ID })
	if info.HasMore || info.NextPageToken != "" {
		t.Errorf("info = %+v, want final page", info)
	}
}
