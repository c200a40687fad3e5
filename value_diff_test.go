package liquid

import (
	"testing"

	"github.com/kr/pretty"
)

// Nested Value trees (arrays of dictionaries) are awkward to compare with
// reflect.DeepEqual failure output alone; kr/pretty's Diff gives a readable
// field-by-field breakdown when one of these assertions fails.
func TestDictionaryCloneIsDeepEqual(t *testing.T) {
	d := NewDictionary()
	d.Set("name", StringValue("ada"))
	d.Set("tags", ArrayValue([]*Value{StringValue("x"), StringValue("y")}))

	clone := d.Clone()
	for _, k := range d.Keys() {
		want, _ := d.Get(k)
		got, ok := clone.Get(k)
		if !ok {
			t.Fatalf("clone missing key %q", k)
		}
		if diff := pretty.Diff(want, got); len(diff) > 0 {
			t.Errorf("clone of key %q diverged: %v", k, diff)
		}
	}
}

func TestForloopObjectFields(t *testing.T) {
	got := forloopObject(1, 3)
	want := NewDictionary()
	want.Set("index", IntegerValue(2))
	want.Set("index0", IntegerValue(1))
	want.Set("rindex", IntegerValue(2))
	want.Set("rindex0", IntegerValue(1))
	want.Set("first", BoolValue(false))
	want.Set("last", BoolValue(false))
	want.Set("length", IntegerValue(3))

	for _, k := range want.Keys() {
		w, _ := want.Get(k)
		g, ok := got.Get(k)
		if !ok {
			t.Fatalf("forloop object missing key %q", k)
		}
		if diff := pretty.Diff(w, g); len(diff) > 0 {
			t.Errorf("forloop.%s diverged: %v", k, diff)
		}
	}
}
