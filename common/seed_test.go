package common

import "testing"

func TestSeededRNG_Deterministic(t *testing.T) {
	a := NewSeededRNG(12345)
	b := NewSeededRNG(12345)

	for i := 0; i < 100; i++ {
		if a.Random() != b.Random() {
			t.Fatalf("Sequences diverged at step %d", i)
		}
	}
}

func TestSeededRNG_Range(t *testing.T) {
	r := NewSeededRNG(1)
	for i := 0; i < 1000; i++ {
		v := r.Random()
		if v < 0 || v >= 1 {
			t.Fatalf("Random() = %f out of [0,1)", v)
		}
	}
}

func TestSeededRNG_Reset(t *testing.T) {
	r := NewSeededRNG(777)
	first := r.Random()
	r.Random()
	r.Random()

	r.Reset()
	if got := r.Random(); got != first {
		t.Errorf("Expected %f after reset, got %f", first, got)
	}
}

func TestSeededRNG_SetSeed(t *testing.T) {
	r := NewSeededRNG(1)
	r.SetSeed(2)
	want := NewSeededRNG(2).Random()
	if got := r.Random(); got != want {
		t.Errorf("Expected %f after SetSeed, got %f", want, got)
	}
}

func TestSeededRNG_RandomInt(t *testing.T) {
	r := NewSeededRNG(42)
	for i := 0; i < 1000; i++ {
		v := r.RandomInt(5, 10)
		if v < 5 || v >= 10 {
			t.Fatalf("RandomInt(5,10) = %d out of range", v)
		}
	}
}

func TestSeededRNG_RandomFloat(t *testing.T) {
	r := NewSeededRNG(42)
	for i := 0; i < 1000; i++ {
		v := r.RandomFloat(-2, 2)
		if v < -2 || v >= 2 {
			t.Fatalf("RandomFloat(-2,2) = %f out of range", v)
		}
	}
}

func TestStreamSeed(t *testing.T) {
	base := uint32(999)

	if StreamSeed(base, 0) == StreamSeed(base, 1) {
		t.Error("Expected different seeds for different streams")
	}
	if StreamSeed(base, 1) != StreamSeed(base, 1) {
		t.Error("Expected stream seed derivation to be deterministic")
	}

	// Streams must not collide for a handful of consecutive indices
	seen := map[uint32]int{}
	for i := 0; i < 16; i++ {
		s := StreamSeed(base, i)
		if prev, ok := seen[s]; ok {
			t.Fatalf("Streams %d and %d collided on seed %d", prev, i, s)
		}
		seen[s] = i
	}
}
