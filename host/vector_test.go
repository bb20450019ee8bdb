package host

import "testing"

func TestVectorPushPopFrontBack(t *testing.T) {
	v := NewVector()
	v.Push(FromU32(1))
	v.Push(FromU32(2))
	v.Push(FromU32(3))

	front, err := v.Front()
	if err != nil || front != FromU32(1) {
		t.Fatalf("Front() = (%v, %v), want (1, nil)", front, err)
	}
	back, err := v.Back()
	if err != nil || back != FromU32(3) {
		t.Fatalf("Back() = (%v, %v), want (3, nil)", back, err)
	}

	if err := v.Pop(); err != nil {
		t.Fatal(err)
	}
	if v.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", v.Len())
	}
}

func TestVectorCloneIsCopyOnWrite(t *testing.T) {
	v := NewVector()
	v.Push(FromU32(1))
	clone := v.Clone()

	clone.Push(FromU32(2))

	if v.Len() != 1 {
		t.Fatalf("mutating the clone must not affect the original, got len %d", v.Len())
	}
	if clone.Len() != 2 {
		t.Fatalf("the clone itself should observe its own write, got len %d", clone.Len())
	}
}

func TestVectorInsertAndSlice(t *testing.T) {
	v := VectorFrom([]RawVal{FromU32(1), FromU32(3)})
	if err := v.Insert(1, FromU32(2)); err != nil {
		t.Fatal(err)
	}
	for i, want := range []uint32{1, 2, 3} {
		got, err := v.Get(uint32(i))
		if err != nil || got != FromU32(want) {
			t.Fatalf("Get(%d) = (%v, %v), want (%d, nil)", i, got, err, want)
		}
	}

	sliced, err := v.Slice(1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if sliced.Len() != 2 {
		t.Fatalf("Slice(1,3) length = %d, want 2", sliced.Len())
	}
}

func TestVectorIndexOutOfBoundErrors(t *testing.T) {
	v := NewVector()
	if _, err := v.Get(0); err == nil {
		t.Fatal("expected error indexing an empty vector")
	}
	if err := v.Pop(); err == nil {
		t.Fatal("expected error popping an empty vector")
	}
}

func TestVectorAppend(t *testing.T) {
	a := VectorFrom([]RawVal{FromU32(1), FromU32(2)})
	b := VectorFrom([]RawVal{FromU32(3)})
	out := a.Append(b)
	if out.Len() != 3 {
		t.Fatalf("Append length = %d, want 3", out.Len())
	}
	if a.Len() != 2 {
		t.Fatal("Append must not mutate its receiver")
	}
}
