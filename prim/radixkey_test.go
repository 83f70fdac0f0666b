package prim

import (
	"math"
	"math/rand"
	"slices"
	"testing"
)

// TestKeyBits checks the significant bit widths of every key type.
func TestKeyBits(t *testing.T) {
	if got := KeyBits[uint8](); got != 8 {
		t.Errorf("KeyBits[uint8] = %d, want 8", got)
	}
	if got := KeyBits[int16](); got != 16 {
		t.Errorf("KeyBits[int16] = %d, want 16", got)
	}
	if got := KeyBits[float32](); got != 32 {
		t.Errorf("KeyBits[float32] = %d, want 32", got)
	}
	if got := KeyBits[uint64](); got != 64 {
		t.Errorf("KeyBits[uint64] = %d, want 64", got)
	}
	if got := KeyMask[uint16](); got != 0xffff {
		t.Errorf("KeyMask[uint16] = %#x, want 0xffff", got)
	}
	if got := KeyMask[uint64](); got != ^uint64(0) {
		t.Errorf("KeyMask[uint64] = %#x, want all ones", got)
	}
}

func roundTrip[K Lanes](t *testing.T, key K, descending bool) {
	t.Helper()
	bits := Encode(key, descending)
	if bits&^KeyMask[K]() != 0 {
		t.Errorf("Encode(%v) = %#x has bits above KeyBits", key, bits)
	}
	back := Decode[K](bits, descending)
	if back != key {
		t.Errorf("Decode(Encode(%v, %v)) = %v", key, descending, back)
	}
}

// TestEncodeRoundTripIntegers checks Decode(Encode(k)) == k for integer keys.
func TestEncodeRoundTripIntegers(t *testing.T) {
	for _, desc := range []bool{false, true} {
		roundTrip(t, uint8(0), desc)
		roundTrip(t, uint8(255), desc)
		roundTrip(t, uint16(0x8001), desc)
		roundTrip(t, uint32(0xdeadbeef), desc)
		roundTrip(t, uint64(math.MaxUint64), desc)
		roundTrip(t, int8(math.MinInt8), desc)
		roundTrip(t, int8(-1), desc)
		roundTrip(t, int16(math.MaxInt16), desc)
		roundTrip(t, int32(math.MinInt32), desc)
		roundTrip(t, int32(0), desc)
		roundTrip(t, int64(math.MinInt64), desc)
		roundTrip(t, int64(math.MaxInt64), desc)
	}
}

// TestEncodeRoundTripFloats checks bit-exact float round trips, including
// NaN payloads and both zeros.
func TestEncodeRoundTripFloats(t *testing.T) {
	f32 := []uint32{
		math.Float32bits(0),
		math.Float32bits(float32(math.Copysign(0, -1))),
		math.Float32bits(1.5),
		math.Float32bits(-1.5),
		math.Float32bits(float32(math.Inf(1))),
		math.Float32bits(float32(math.Inf(-1))),
		0x7fc00001, // NaN with payload
		0xffc00001, // negative NaN with payload
		0x7fffffff,
	}
	for _, desc := range []bool{false, true} {
		for _, b := range f32 {
			bits := Encode(math.Float32frombits(b), desc)
			got := math.Float32bits(Decode[float32](bits, desc))
			if got != b {
				t.Errorf("float32 round trip %#x -> %#x (descending=%v)", b, got, desc)
			}
		}
		f64 := []uint64{
			math.Float64bits(0),
			math.Float64bits(math.Copysign(0, -1)),
			math.Float64bits(-math.Pi),
			math.Float64bits(math.Inf(1)),
			0x7ff8000000000001,
			0xfff8000000000001,
		}
		for _, b := range f64 {
			bits := Encode(math.Float64frombits(b), desc)
			got := math.Float64bits(Decode[float64](bits, desc))
			if got != b {
				t.Errorf("float64 round trip %#x -> %#x (descending=%v)", b, got, desc)
			}
		}
	}
}

func checkOrderPreserved[K Lanes](t *testing.T, keys []K) {
	t.Helper()
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	for i := 1; i < len(sorted); i++ {
		a := Encode(sorted[i-1], false)
		b := Encode(sorted[i], false)
		if a > b {
			t.Errorf("ascending encode not monotone: %v (%#x) then %v (%#x)",
				sorted[i-1], a, sorted[i], b)
		}
		da := Encode(sorted[i-1], true)
		db := Encode(sorted[i], true)
		if da < db {
			t.Errorf("descending encode not antitone: %v (%#x) then %v (%#x)",
				sorted[i-1], da, sorted[i], db)
		}
	}
}

// TestEncodeOrder checks that unsigned comparison of bit keys matches the
// natural order of the keys.
func TestEncodeOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	ints := make([]int32, 200)
	for i := range ints {
		ints[i] = int32(rng.Uint32())
	}
	checkOrderPreserved(t, ints)

	uints := make([]uint64, 200)
	for i := range uints {
		uints[i] = rng.Uint64()
	}
	checkOrderPreserved(t, uints)

	floats := make([]float64, 200)
	for i := range floats {
		floats[i] = (rng.Float64() - 0.5) * 1e6
	}
	floats = append(floats, 0, math.Copysign(0, -1), math.Inf(1), math.Inf(-1))
	checkOrderPreserved(t, floats)

	bytes := make([]int8, 64)
	for i := range bytes {
		bytes[i] = int8(rng.Intn(256) - 128)
	}
	checkOrderPreserved(t, bytes)
}

// TestMaxBitKeySortsLast checks that the tile padding key follows every
// encoded key, for both directions.
func TestMaxBitKeySortsLast(t *testing.T) {
	samples := []float32{-1e30, -1, 0, 1, 1e30, float32(math.Inf(1)), float32(math.Inf(-1))}
	for _, desc := range []bool{false, true} {
		pad := MaxBitKey[float32]()
		for _, k := range samples {
			if Encode(k, desc) > pad {
				t.Errorf("Encode(%v, %v) sorts after the padding key", k, desc)
			}
		}
		// The padding key must survive a decode and encode unchanged.
		if got := Encode(Decode[float32](pad, desc), desc); got != pad {
			t.Errorf("padding key round trip = %#x, want %#x", got, pad)
		}
	}
	if got := Encode(Decode[uint16](MaxBitKey[uint16](), false), false); got != 0xffff {
		t.Errorf("uint16 padding key round trip = %#x, want 0xffff", got)
	}
}

// TestDigit checks digit extraction windows.
func TestDigit(t *testing.T) {
	key := uint64(0xabcdef12)
	if got := Digit(key, 0, 0xff); got != 0x12 {
		t.Errorf("Digit(bit 0) = %#x, want 0x12", got)
	}
	if got := Digit(key, 8, 0xff); got != 0xef {
		t.Errorf("Digit(bit 8) = %#x, want 0xef", got)
	}
	if got := Digit(key, 24, 0xff); got != 0xab {
		t.Errorf("Digit(bit 24) = %#x, want 0xab", got)
	}
	// A narrow window masks down to the remaining bits.
	if got := Digit(key, 28, 0xf); got != 0xa {
		t.Errorf("Digit(bit 28, 4 bits) = %#x, want 0xa", got)
	}
}

// TestCanEncode checks codec support probing.
func TestCanEncode(t *testing.T) {
	if !CanEncode[uint32]() || !CanEncode[float64]() || !CanEncode[int8]() {
		t.Error("CanEncode rejects a supported key type")
	}
	type myFloat float32
	if CanEncode[myFloat]() {
		t.Error("CanEncode accepts a named key type")
	}
}
