package ephemeris

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func TestCatalogLookup(t *testing.T) {
	c := Builtin()

	earth, err := c.Lookup("EARTH")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if earth.Mu != 3.986004418e14 {
		t.Errorf("earth mu = %v", earth.Mu)
	}
	if math.Abs(earth.Axis.Len()-1) > 1e-12 {
		t.Errorf("earth axis not unit: %v", earth.Axis.Len())
	}

	_, err = c.Lookup("VULCAN")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalogNamesHeaviestFirst(t *testing.T) {
	c := Builtin()
	names := c.Names()

	if len(names) == 0 {
		t.Fatal("empty catalog")
	}
	prev := math.Inf(1)
	for _, n := range names {
		r, err := c.Lookup(n)
		if err != nil {
			t.Fatalf("lookup %s: %v", n, err)
		}
		if r.Mu > prev {
			t.Errorf("names not sorted by mu: %s", n)
		}
		prev = r.Mu
	}
}

func TestSuitableFiltering(t *testing.T) {
	c := Builtin()

	for name, wantOK := range map[string]bool{
		"SUN":                     true,
		"EARTH":                   true,
		"MOON":                    true,
		"SOLAR SYSTEM BARYCENTER": false, // barycenter
		"PHOBOS":                  false, // negligible mass
	} {
		r, err := c.Lookup(name)
		if err != nil {
			t.Fatalf("lookup %s: %v", name, err)
		}
		if got := Suitable(r) == nil; got != wantOK {
			t.Errorf("Suitable(%s) = %v, want %v", name, got, wantOK)
		}
	}
}

func TestHandleSerializesAndCloses(t *testing.T) {
	h := NewHandle(Builtin())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := h.Lookup("EARTH"); err != nil {
				t.Errorf("lookup: %v", err)
			}
		}()
	}
	wg.Wait()

	if err := h.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := h.Lookup("EARTH"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if h.Names() != nil {
		t.Error("names after close should be nil")
	}
}
