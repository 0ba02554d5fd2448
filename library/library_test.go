package library

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/reoring/plistream"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
	<key>Tracks</key>
	<dict>
		<key>1</key>
		<dict>
			<key>Name</key><string>Zebra</string>
			<key>Artist</key><string>beta</string>
			<key>Album</key><string>One</string>
		</dict>
		<key>2</key>
		<dict>
			<key>Name</key><string>Apple</string>
			<key>Artist</key><string>Session Player</string>
			<key>Album Artist</key><string>Alpha</string>
			<key>Album</key><string>Two</string>
		</dict>
		<key>3</key>
		<dict>
			<key>Track ID</key><integer>3</integer>
		</dict>
		<key>4</key>
		<string>not a track</string>
	</dict>
	<key>Playlists</key>
	<array><dict><key>Name</key><string>Library</string></dict></array>
</dict>
</plist>`

func TestTracks(t *testing.T) {
	root, err := plistream.Parse([]byte(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got, err := Tracks(root)
	if err != nil {
		t.Fatalf("tracks: %v", err)
	}
	want := []Track{
		{Artist: "beta", Album: "One", Name: "Zebra"},
		{Artist: "Alpha", Album: "Two", Name: "Apple"},
		{Artist: "Unknown", Album: "Unknown", Name: "Unknown"},
	}
	if len(got) != len(want) {
		t.Fatalf("len: got %d want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("track %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestTracksMissing(t *testing.T) {
	root, err := plistream.Parse([]byte(`<plist><dict><key>Major Version</key><integer>1</integer></dict></plist>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := Tracks(root); !errors.Is(err, ErrNoTracks) {
		t.Fatalf("want ErrNoTracks, got %v", err)
	}
	root, err = plistream.Parse([]byte(`<plist><dict><key>Tracks</key><array/></dict></plist>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := Tracks(root); err == nil {
		t.Fatalf("expected error for non-dict Tracks")
	}
}

func TestSort(t *testing.T) {
	tracks := []Track{
		{Artist: "beta", Album: "A", Name: "x"},
		{Artist: "Alpha", Album: "B", Name: "y"},
		{Artist: "Alpha", Album: "A", Name: "z"},
		{Artist: "Ålpha", Album: "A", Name: "a"},
		{Artist: "The-Band", Album: "A", Name: "a"},
		{Artist: "Thé Band", Album: "A", Name: "b"},
	}
	Sort(tracks)
	want := []string{
		"Ålpha ▻ A ▻ a",
		"Alpha ▻ A ▻ z",
		"Alpha ▻ B ▻ y",
		"beta ▻ A ▻ x",
		"The-Band ▻ A ▻ a",
		"Thé Band ▻ A ▻ b",
	}
	for i, w := range want {
		if got := Format(tracks[i]); got != w {
			t.Fatalf("position %d: got %q want %q", i, got, w)
		}
	}
}

func TestFormat(t *testing.T) {
	got := Format(Track{Artist: "A", Album: "B", Name: "C"})
	if got != "A ▻ B ▻ C" {
		t.Fatalf("got %q", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Library.xml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	root, err := Load(context.Background(), path, plistream.ParseOpt{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := plistream.Lookup(root, "Playlists"); ok {
		t.Fatalf("Playlists should be elided by default")
	}
	root, err = Load(context.Background(), path, plistream.ParseOpt{WithPlaylists: true})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := plistream.Lookup(root, "Playlists"); !ok {
		t.Fatalf("Playlists should be kept")
	}
	if _, err := Load(context.Background(), filepath.Join(dir, "missing.xml"), plistream.ParseOpt{}); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want ErrNotExist, got %v", err)
	}
}
