package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/reoring/plistream/library"
)

func TestSaveTracksReplaces(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, filepath.Join(t.TempDir(), "tracks.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	first := []library.Track{
		{Artist: "A", Album: "B", Name: "C"},
		{Artist: "D", Album: "E", Name: "F"},
		{Artist: "G", Album: "H", Name: "I"},
	}
	if err := s.SaveTracks(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	n, err := s.CountTracks(ctx)
	if err != nil || n != 3 {
		t.Fatalf("count: %d %v", n, err)
	}

	second := []library.Track{{Artist: "Z", Album: "Y", Name: "X"}}
	if err := s.SaveTracks(ctx, second); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Tracks(ctx)
	if err != nil {
		t.Fatalf("tracks: %v", err)
	}
	if len(got) != 1 || got[0] != second[0] {
		t.Fatalf("got %+v", got)
	}
}

func TestSaveTracksOrder(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, filepath.Join(t.TempDir(), "tracks.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	in := []library.Track{
		{Artist: "b", Album: "x", Name: "1"},
		{Artist: "a", Album: "x", Name: "2"},
	}
	if err := s.SaveTracks(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Tracks(ctx)
	if err != nil {
		t.Fatalf("tracks: %v", err)
	}
	for i := range in {
		if got[i] != in[i] {
			t.Fatalf("position %d: got %+v want %+v", i, got[i], in[i])
		}
	}
}

func TestSaveTracksCanceled(t *testing.T) {
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "tracks.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.SaveTracks(ctx, []library.Track{{Artist: "a"}}); err == nil {
		t.Fatalf("expected error on canceled context")
	}
	n, err := s.CountTracks(context.Background())
	if err != nil || n != 0 {
		t.Fatalf("count after cancel: %d %v", n, err)
	}
}
