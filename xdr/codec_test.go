package xdr

import (
	"bytes"
	"testing"

	"soroban-host/host"
)

func TestWriteReadValRoundTripScalars(t *testing.T) {
	cases := []ScVal{
		{Kind: ScVoid},
		{Kind: ScBool, Bool: true},
		{Kind: ScBool, Bool: false},
		{Kind: ScU32, U32: 42},
		{Kind: ScI32, I32: -7},
		{Kind: ScSymbol, Symbol: "transfer"},
		{Kind: ScStatus, Status: host.Status{Domain: host.DomainContractError, Code: 3}},
		{Kind: ScObjectU64, U64: 1 << 40},
		{Kind: ScObjectI64, I64: -(1 << 40)},
		{Kind: ScObjectBytes, Bytes: []byte{1, 2, 3, 4}},
		{Kind: ScObjectBigInt, BigInt: &ScBigInt{Negative: true, Magnitude: []byte{0xFF, 0x01}}},
	}

	for _, sc := range cases {
		var buf bytes.Buffer
		if err := WriteVal(&buf, sc); err != nil {
			t.Fatalf("WriteVal(%+v): %v", sc, err)
		}
		got, err := ReadVal(&buf)
		if err != nil {
			t.Fatalf("ReadVal after WriteVal(%+v): %v", sc, err)
		}
		assertScValEqual(t, sc, got)
	}
}

func TestWriteReadValRoundTripVecAndMap(t *testing.T) {
	sc := ScVal{
		Kind: ScObjectVec,
		Vec: []ScVal{
			{Kind: ScU32, U32: 1},
			{Kind: ScSymbol, Symbol: "x"},
			{Kind: ScObjectBytes, Bytes: []byte("hi")},
		},
	}
	var buf bytes.Buffer
	if err := WriteVal(&buf, sc); err != nil {
		t.Fatal(err)
	}
	got, err := ReadVal(&buf)
	if err != nil {
		t.Fatal(err)
	}
	assertScValEqual(t, sc, got)

	m := ScVal{
		Kind: ScObjectMap,
		Map: []ScMapEntry{
			{Key: ScVal{Kind: ScSymbol, Symbol: "a"}, Val: ScVal{Kind: ScU32, U32: 1}},
			{Key: ScVal{Kind: ScSymbol, Symbol: "b"}, Val: ScVal{Kind: ScU32, U32: 2}},
		},
	}
	buf.Reset()
	if err := WriteVal(&buf, m); err != nil {
		t.Fatal(err)
	}
	got, err = ReadVal(&buf)
	if err != nil {
		t.Fatal(err)
	}
	assertScValEqual(t, m, got)
}

func TestReadValTruncatedInputErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteVal(&buf, ScVal{Kind: ScObjectBytes, Bytes: []byte{1, 2, 3}}); err != nil {
		t.Fatal(err)
	}
	truncated := bytes.NewReader(buf.Bytes()[:buf.Len()-2])
	if _, err := ReadVal(truncated); err == nil {
		t.Fatal("expected error reading a truncated ScVal")
	}
}

func TestEncodeScValSymbolTooLongErrors(t *testing.T) {
	long := make([]byte, 256)
	var buf bytes.Buffer
	if err := WriteVal(&buf, ScVal{Kind: ScSymbol, Symbol: string(long)}); err == nil {
		t.Fatal("expected error encoding a symbol longer than 255 bytes")
	}
}

func assertScValEqual(t *testing.T, want, got ScVal) {
	t.Helper()
	if want.Kind != got.Kind {
		t.Fatalf("Kind = %v, want %v", got.Kind, want.Kind)
	}
	switch want.Kind {
	case ScBool:
		if want.Bool != got.Bool {
			t.Fatalf("Bool = %v, want %v", got.Bool, want.Bool)
		}
	case ScU32:
		if want.U32 != got.U32 {
			t.Fatalf("U32 = %v, want %v", got.U32, want.U32)
		}
	case ScI32:
		if want.I32 != got.I32 {
			t.Fatalf("I32 = %v, want %v", got.I32, want.I32)
		}
	case ScSymbol:
		if want.Symbol != got.Symbol {
			t.Fatalf("Symbol = %q, want %q", got.Symbol, want.Symbol)
		}
	case ScStatus:
		if want.Status != got.Status {
			t.Fatalf("Status = %+v, want %+v", got.Status, want.Status)
		}
	case ScObjectU64:
		if want.U64 != got.U64 {
			t.Fatalf("U64 = %v, want %v", got.U64, want.U64)
		}
	case ScObjectI64:
		if want.I64 != got.I64 {
			t.Fatalf("I64 = %v, want %v", got.I64, want.I64)
		}
	case ScObjectBytes:
		if !bytes.Equal(want.Bytes, got.Bytes) {
			t.Fatalf("Bytes = %v, want %v", got.Bytes, want.Bytes)
		}
	case ScObjectBigInt:
		if want.BigInt.Negative != got.BigInt.Negative || !bytes.Equal(want.BigInt.Magnitude, got.BigInt.Magnitude) {
			t.Fatalf("BigInt = %+v, want %+v", got.BigInt, want.BigInt)
		}
	case ScObjectVec:
		if len(want.Vec) != len(got.Vec) {
			t.Fatalf("Vec len = %d, want %d", len(got.Vec), len(want.Vec))
		}
		for i := range want.Vec {
			assertScValEqual(t, want.Vec[i], got.Vec[i])
		}
	case ScObjectMap:
		if len(want.Map) != len(got.Map) {
			t.Fatalf("Map len = %d, want %d", len(got.Map), len(want.Map))
		}
		for i := range want.Map {
			assertScValEqual(t, want.Map[i].Key, got.Map[i].Key)
			assertScValEqual(t, want.Map[i].Val, got.Map[i].Val)
		}
	}
}
