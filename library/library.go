// Package library turns a parsed Music library export into sorted track
// listings.
package library

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/reoring/plistream"
)

const unknown = "Unknown"

// Track is the subset of a library track used for listings.
type Track struct {
	Artist string `json:"artist" yaml:"artist"`
	Album  string `json:"album" yaml:"album"`
	Name   string `json:"name" yaml:"name"`
}

// ErrNoTracks is returned when the library has no "Tracks" dict.
var ErrNoTracks = errors.New("library: no Tracks dictionary")

// Load reads and parses the library export at path.
func Load(ctx context.Context, path string, opt plistream.ParseOpt) (plistream.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return plistream.ParseReader(ctx, f, opt)
}

// Tracks extracts one Track per entry of the root's "Tracks" dict, in
// document order. Entries that are not dicts are skipped.
func Tracks(root plistream.Value) ([]Track, error) {
	v, ok := plistream.Lookup(root, "Tracks")
	if !ok {
		return nil, ErrNoTracks
	}
	d, ok := v.(*plistream.Dict)
	if !ok {
		return nil, fmt.Errorf("library: Tracks is a %s, not a dict", v.Kind())
	}
	out := make([]Track, 0, d.Len())
	d.Range(func(_ string, tv plistream.Value) bool {
		if td, ok := tv.(*plistream.Dict); ok {
			out = append(out, trackFrom(td))
		}
		return true
	})
	return out, nil
}

func trackFrom(d *plistream.Dict) Track {
	return Track{
		Artist: firstString(d, "Album Artist", "Artist"),
		Album:  firstString(d, "Album"),
		Name:   firstString(d, "Name"),
	}
}

// firstString returns the first non-empty string among keys, or "Unknown".
func firstString(d *plistream.Dict, keys ...string) string {
	for _, k := range keys {
		if s, ok := d.StringAt(k); ok && s != "" {
			return s
		}
	}
	return unknown
}

// Sorter orders tracks by artist, album, then name with a collator that
// ignores case, accents, and punctuation.
type Sorter struct {
	col *collate.Collator
}

// NewSorter returns a Sorter for the given locale. An empty tag selects the
// root collation.
func NewSorter(tag language.Tag) *Sorter {
	// ka-shifted makes punctuation and spaces ignorable
	t, err := language.All.Parse(tag.String() + "-u-ka-shifted")
	if err != nil {
		t = tag
	}
	return &Sorter{col: collate.New(t, collate.Loose)}
}

// Compare returns -1, 0, or 1.
func (s *Sorter) Compare(a, b Track) int {
	if c := s.col.CompareString(a.Artist, b.Artist); c != 0 {
		return c
	}
	if c := s.col.CompareString(a.Album, b.Album); c != 0 {
		return c
	}
	return s.col.CompareString(a.Name, b.Name)
}

// Sort orders tracks in place. The sort is stable so equal tracks keep their
// library order.
func (s *Sorter) Sort(tracks []Track) {
	slices.SortStableFunc(tracks, s.Compare)
}

// Sort orders tracks with the root collation.
func Sort(tracks []Track) { NewSorter(language.Und).Sort(tracks) }

// Format renders a track as "artist ▻ album ▻ name".
func Format(t Track) string {
	return strings.Join([]string{t.Artist, t.Album, t.Name}, " ▻ ")
}
