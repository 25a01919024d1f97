package history

import (
	"testing"
	"time"
)

func TestStoreRoundTrip(t *testing.T) {
	store := &Store{}
	if err := store.Init(":memory:"); nil != err {
		t.Fatal("unable to open store", err)
	}
	defer store.Deinit()

	saved := Result{
		Sum:      "sum-a",
		Mode:     "window",
		Hits:     12,
		Misses:   3,
		Mistakes: 2,
		Elapsed:  90 * time.Second,
		Played:   time.Unix(1700000000, 0),
	}
	if err := store.Save(saved); nil != err {
		t.Fatal("unable to save result", err)
	}

	results := store.Load("sum-a")
	if len(results) != 1 {
		t.Fatal("result count", len(results))
	}
	got := results[0]
	if got.ID == "" {
		t.Log("missing generated id")
		t.Fail()
	}
	if got.Sum != saved.Sum || got.Mode != saved.Mode ||
		got.Hits != saved.Hits || got.Misses != saved.Misses ||
		got.Mistakes != saved.Mistakes ||
		got.Elapsed != saved.Elapsed || !got.Played.Equal(saved.Played) {
		t.Log("saved ", saved)
		t.Log("loaded", got)
		t.Fail()
	}

	if others := store.Load("sum-b"); len(others) != 0 {
		t.Log("unexpected results", others)
		t.Fail()
	}
}

// A query failure is logged and yields an empty history, not a panic.
func TestStoreLoadAfterDeinit(t *testing.T) {
	store := &Store{}
	if err := store.Init(":memory:"); nil != err {
		t.Fatal("unable to open store", err)
	}
	store.Deinit()

	if results := store.Load("sum-a"); len(results) != 0 {
		t.Log("unexpected results", results)
		t.Fail()
	}
}
