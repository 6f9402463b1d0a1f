package collection

import "testing"

type widget struct {
	name string
	oid  uint32
}

func newWidgets() *Collection[widget] {
	c := New("name", func(w widget) string { return w.name })
	c.WithIndex("oid", func(w widget) string { return itoa(w.oid) })
	return c
}

func itoa(u uint32) string {
	if u == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for u > 0 {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
	}
	return string(buf[i:])
}

func TestAddAndGet(t *testing.T) {
	c := newWidgets()
	if err := c.Add(widget{name: "account", oid: 100}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Add(widget{name: "order", oid: 200}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	got, err := c.Get("account")
	if err != nil {
		t.Fatalf("Get(account): %v", err)
	}
	if got.oid != 100 {
		t.Errorf("got oid %d, want 100", got.oid)
	}

	got, err = c.Get("200", Options{Key: "oid"})
	if err != nil {
		t.Fatalf("Get(200, oid): %v", err)
	}
	if got.name != "order" {
		t.Errorf("got name %q, want order", got.name)
	}
}

func TestGetNotFound(t *testing.T) {
	c := newWidgets()
	_, err := c.Get("missing")
	if err == nil {
		t.Fatal("expected NotFoundError")
	}
	if _, ok := err.(*NotFoundError); !ok {
		t.Errorf("expected *NotFoundError, got %T", err)
	}
}

func TestGetMaybe(t *testing.T) {
	c := newWidgets()
	_, ok := c.GetMaybe("missing")
	if ok {
		t.Error("expected ok=false for missing key")
	}
}

func TestDuplicateKeyRejected(t *testing.T) {
	c := newWidgets()
	if err := c.Add(widget{name: "account", oid: 1}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	err := c.Add(widget{name: "account", oid: 2})
	if err == nil {
		t.Fatal("expected DuplicateKeyError")
	}
	if _, ok := err.(*DuplicateKeyError); !ok {
		t.Errorf("expected *DuplicateKeyError, got %T", err)
	}
}

func TestCaseInsensitiveLookup(t *testing.T) {
	c := newWidgets()
	_ = c.Add(widget{name: "Account", oid: 1})

	if _, err := c.Get("account"); err == nil {
		t.Fatal("expected case-sensitive Get to miss")
	}
	if _, ok := c.GetMaybe("account", Options{CaseInsensitive: true}); !ok {
		t.Error("expected case-insensitive GetMaybe to hit")
	}
}

func TestOrderingPreserved(t *testing.T) {
	c := newWidgets()
	_ = c.Add(widget{name: "third", oid: 3})
	_ = c.Add(widget{name: "first", oid: 1})
	_ = c.Add(widget{name: "second", oid: 2})

	all := c.All()
	want := []string{"third", "first", "second"}
	for i, w := range all {
		if w.name != want[i] {
			t.Errorf("position %d: got %q, want %q", i, w.name, want[i])
		}
	}

	if w, ok := c.At(1); !ok || w.name != "first" {
		t.Errorf("At(1) = %+v, %v; want first, true", w, ok)
	}
}
