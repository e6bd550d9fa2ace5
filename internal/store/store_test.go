package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/saju/internal/calendar"
	"github.com/f3rmion/saju/internal/engine"
	"github.com/f3rmion/saju/internal/saju"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "readings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func reading(t *testing.T, in saju.BirthInput) *engine.Reading {
	t.Helper()
	r, err := engine.New(calendar.NewLunarAdapter()).Compute(in)
	require.NoError(t, err)
	return r
}

func fixedClock(start time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return start.Add(time.Duration(n) * time.Minute)
	}
}

func TestSaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	r := reading(t, saju.BirthInput{Year: 1995, Month: 3, Day: 21, Hour: "묘시초 (05:00~05:30)", Gender: saju.Female})
	id, err := s.Save(ctx, r)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, r.Archetype.ID, got.Archetype)
	assert.Equal(t, r.Archetype.AffinityScore, got.AffinityScore)
	assert.Equal(t, engine.Version, got.EngineVersion)
	assert.Equal(t, r.Input, got.Input)

	if diff := cmp.Diff(r, got.Reading, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("stored reading differs (-want +got):\n%s", diff)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	s.now = fixedClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	var ids []string
	for _, y := range []int{1980, 1990, 2000} {
		id, err := s.Save(ctx, reading(t, saju.BirthInput{Year: y, Month: 6, Day: 1, Hour: saju.UnknownHour, Gender: saju.Male}))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, 2000, all[0].Input.Year)
	assert.Equal(t, saju.Solar, all[0].Input.Calendar)
	assert.Equal(t, saju.Male, all[0].Input.Gender)

	two, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)

	counts, err := s.CountByArchetype(ctx)
	require.NoError(t, err)
	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, 3, total)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, reading(t, saju.BirthInput{Year: 1970, Month: 12, Day: 31, Hour: saju.UnknownHour, Gender: saju.Female}))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, id))
	assert.ErrorIs(t, s.Delete(ctx, id), ErrNotFound)

	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReopenKeepsReadings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readings.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	id, err := s.Save(ctx, reading(t, saju.BirthInput{Year: 1988, Month: 8, Day: 8, Hour: saju.UnknownHour, Gender: saju.Male}))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	_, err = s.Get(ctx, id)
	assert.NoError(t, err)
}

func TestOpenFailure(t *testing.T) {
	orig := openDB
	t.Cleanup(func() { openDB = orig })
	openDB = func(string, string) (*sql.DB, error) { return nil, errors.New("boom") }

	_, err := Open(filepath.Join(t.TempDir(), "readings.db"))
	assert.ErrorContains(t, err, "boom")
}

func TestResolvePrefix(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	r := reading(t, saju.BirthInput{Year: 1988, Month: 8, Day: 8, Hour: saju.UnknownHour, Gender: saju.Male})
	first, err := s.Save(ctx, r)
	require.NoError(t, err)

	got, err := s.Resolve(ctx, first[:8])
	require.NoError(t, err)
	assert.Equal(t, first, got)

	_, err = s.Resolve(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Resolve(ctx, "not-an-id")
	assert.ErrorIs(t, err, ErrNotFound)

	second, err := s.Save(ctx, r)
	require.NoError(t, err)
	_, err = s.db.ExecContext(ctx, `UPDATE readings SET id = ? WHERE id = ?`, "abc-1", first)
	require.NoError(t, err)
	_, err = s.db.ExecContext(ctx, `UPDATE readings SET id = ? WHERE id = ?`, "abc-2", second)
	require.NoError(t, err)

	_, err = s.Resolve(ctx, "abc")
	assert.ErrorIs(t, err, ErrAmbiguous)
	got, err = s.Resolve(ctx, "abc-2")
	require.NoError(t, err)
	assert.Equal(t, "abc-2", got)
}
