package host

import "testing"

// fakeLinearMemory is a fixed-size byte slice standing in for guest wasm
// linear memory in Bytes<->memory bridge tests.
type fakeLinearMemory struct {
	data []byte
}

func newFakeLinearMemory(size int) *fakeLinearMemory {
	return &fakeLinearMemory{data: make([]byte, size)}
}

func (m *fakeLinearMemory) Read(pos, length uint32) ([]byte, error) {
	if uint64(pos)+uint64(length) > uint64(len(m.data)) {
		return nil, newErr(DomainVmError, CodeVmMemory, "read out of bound")
	}
	out := make([]byte, length)
	copy(out, m.data[pos:pos+length])
	return out, nil
}

func (m *fakeLinearMemory) Write(pos uint32, data []byte) error {
	if uint64(pos)+uint64(len(data)) > uint64(len(m.data)) {
		return newErr(DomainVmError, CodeVmMemory, "write out of bound")
	}
	copy(m.data[pos:], data)
	return nil
}

func (m *fakeLinearMemory) Grow(pages uint32) error {
	m.data = append(m.data, make([]byte, pages*65536)...)
	return nil
}

func TestBytesPushPopGetPut(t *testing.T) {
	h := newTestHost(nil)
	v, err := h.BytesNew()
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range []byte{1, 2, 3} {
		if err := h.BytesPush(v, b); err != nil {
			t.Fatal(err)
		}
	}
	n, err := h.BytesLen(v)
	if err != nil || n != 3 {
		t.Fatalf("BytesLen = (%d, %v), want (3, nil)", n, err)
	}

	if err := h.BytesPut(v, 1, 99); err != nil {
		t.Fatal(err)
	}
	got, err := h.BytesGet(v, 1)
	if err != nil || got != 99 {
		t.Fatalf("BytesGet(1) = (%d, %v), want (99, nil)", got, err)
	}

	if err := h.BytesPop(v); err != nil {
		t.Fatal(err)
	}
	if n, _ := h.BytesLen(v); n != 2 {
		t.Fatalf("BytesLen after Pop = %d, want 2", n)
	}
}

func TestBytesCloneIsCopyOnWrite(t *testing.T) {
	original := BytesFrom([]byte{1, 2, 3})
	shared := &Bytes{data: original.data, shared: true}
	original.shared = true

	shared.ensureOwned()
	shared.data[0] = 9

	if original.data[0] != 1 {
		t.Fatal("ensureOwned must copy before mutating a shared buffer")
	}
}

func TestBytesOutOfBoundErrors(t *testing.T) {
	h := newTestHost(nil)
	v, _ := h.BytesNew()
	if _, err := h.BytesGet(v, 0); err == nil {
		t.Fatal("expected error indexing empty bytes")
	}
	if err := h.BytesPop(v); err == nil {
		t.Fatal("expected error popping empty bytes")
	}
}

func TestBytesSliceAndAppend(t *testing.T) {
	h := newTestHost(nil)
	v, err := h.NewBytesObject([]byte{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatal(err)
	}

	sliced, err := h.BytesSlice(v, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	n, _ := h.BytesLen(sliced)
	if n != 2 {
		t.Fatalf("slice length = %d, want 2", n)
	}
	b0, _ := h.BytesGet(sliced, 0)
	if b0 != 2 {
		t.Fatalf("slice[0] = %d, want 2", b0)
	}

	other, _ := h.NewBytesObject([]byte{6, 7})
	appended, err := h.BytesAppend(v, other)
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := h.BytesLen(appended); n != 7 {
		t.Fatalf("appended length = %d, want 7", n)
	}

	if _, err := h.BytesSlice(v, 3, 1); err == nil {
		t.Fatal("expected error for a slice with start > end")
	}
}

func TestBytesLinearMemoryBridge(t *testing.T) {
	h := newTestHost(nil)
	mem := newFakeLinearMemory(64)
	v, err := h.NewBytesObject([]byte{10, 20, 30})
	if err != nil {
		t.Fatal(err)
	}

	if err := h.BytesCopyToLinearMemory(mem, v, 0, 8, 3); err != nil {
		t.Fatal(err)
	}
	if mem.data[8] != 10 || mem.data[9] != 20 || mem.data[10] != 30 {
		t.Fatalf("memory at [8:11) = %v, want [10 20 30]", mem.data[8:11])
	}

	mem.data[16] = 100
	mem.data[17] = 101
	dest, _ := h.BytesNew()
	if err := h.BytesCopyFromLinearMemory(mem, dest, 0, 16, 2); err != nil {
		t.Fatal(err)
	}
	n, _ := h.BytesLen(dest)
	if n != 2 {
		t.Fatalf("dest length after copy-from = %d, want 2", n)
	}
	b0, _ := h.BytesGet(dest, 0)
	b1, _ := h.BytesGet(dest, 1)
	if b0 != 100 || b1 != 101 {
		t.Fatalf("dest bytes = [%d %d], want [100 101]", b0, b1)
	}
}

func TestBytesCopyFromLinearMemoryGrowsWithZeroPadding(t *testing.T) {
	h := newTestHost(nil)
	mem := newFakeLinearMemory(64)
	mem.data[0] = 7
	v, _ := h.NewBytesObject([]byte{1, 2})

	if err := h.BytesCopyFromLinearMemory(mem, v, 5, 0, 1); err != nil {
		t.Fatal(err)
	}
	n, _ := h.BytesLen(v)
	if n != 6 {
		t.Fatalf("length after write-extend = %d, want 6", n)
	}
	b2, _ := h.BytesGet(v, 2)
	if b2 != 0 {
		t.Fatalf("gap byte at index 2 = %d, want 0", b2)
	}
	b5, _ := h.BytesGet(v, 5)
	if b5 != 7 {
		t.Fatalf("written byte at index 5 = %d, want 7", b5)
	}
}
