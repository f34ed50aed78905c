package interpolate

import "testing"

func mutatorsLib(seed int64) (*Library, Rng) {
	rng := NewRng(seed)
	lib := NewLibrary()
	registerMutatorBuiltins(lib, rng)
	return lib, rng
}

func TestMutatorsRandomIsDeterministicWithSeededRng(t *testing.T) {
	lib1, _ := mutatorsLib(42)
	lib2, _ := mutatorsLib(42)

	b1, _ := lib1.Lookup("random")
	b2, _ := lib2.Lookup("random")

	if got1, got2 := b1.Fn(nil).AsString(), b2.Fn(nil).AsString(); got1 != got2 {
		t.Fatalf("same seed should reproduce: %q != %q", got1, got2)
	}
}

func TestMutatorsRandomRange(t *testing.T) {
	lib, _ := mutatorsLib(1)
	b, _ := lib.Lookup("random")
	for i := 0; i < 20; i++ {
		v := b.Fn([]Value{StringValue("5"), StringValue("10")})
		n := int(mustFloat(v.AsString()))
		if n < 5 || n >= 10 {
			t.Fatalf("out of range: %d", n)
		}
	}
}

func TestMutatorsRandomSingleArgIsUpperBound(t *testing.T) {
	lib, _ := mutatorsLib(1)
	b, _ := lib.Lookup("random")
	for i := 0; i < 20; i++ {
		v := b.Fn([]Value{StringValue("3")})
		n := int(mustFloat(v.AsString()))
		if n < 0 || n >= 3 {
			t.Fatalf("out of range: %d", n)
		}
	}
}

func TestMutatorsRandomseedReturnsItsArgument(t *testing.T) {
	lib, _ := mutatorsLib(1)
	b, _ := lib.Lookup("randomseed")
	if got := b.Fn([]Value{StringValue("99")}).AsString(); got != "99" {
		t.Fatalf("got %q", got)
	}
}

func TestMutatorsChooseFromMapValues(t *testing.T) {
	lib, _ := mutatorsLib(7)
	b, _ := lib.Lookup("choose")
	m := NewMultiMap().With("a", "x").With("b", "y").With("c", "z")
	for i := 0; i < 20; i++ {
		got := b.Fn([]Value{MapValue(m)}).AsString()
		if got != "x" && got != "y" && got != "z" {
			t.Fatalf("got %q", got)
		}
	}
}

func TestMutatorsChooseFromArgumentList(t *testing.T) {
	lib, _ := mutatorsLib(7)
	b, _ := lib.Lookup("choose")
	for i := 0; i < 20; i++ {
		got := b.Fn([]Value{StringValue("x"), StringValue("y")}).AsString()
		if got != "x" && got != "y" {
			t.Fatalf("got %q", got)
		}
	}
}

func TestMutatorsChooseEmptyIsAbsent(t *testing.T) {
	lib, _ := mutatorsLib(7)
	b, _ := lib.Lookup("choose")
	if got := b.Fn(nil).AsString(); got != "" {
		t.Fatalf("got %q", got)
	}
}
