package host

import "testing"

func TestObjCmpOrdersByTagThenType(t *testing.T) {
	h := newTestHost(nil)

	boolVal := FromBool(true)
	u32Val := FromU32(1)
	if c, err := h.ObjCmp(boolVal, u32Val); err != nil || c >= 0 {
		t.Fatalf("ObjCmp(Bool,U32) = (%d, %v), want (<0, nil)", c, err)
	}
}

func TestObjCmpBytesLexicographic(t *testing.T) {
	h := newTestHost(nil)
	a, _ := h.NewBytesObject([]byte{1, 2})
	b, _ := h.NewBytesObject([]byte{1, 3})

	c, err := h.ObjCmp(a, b)
	if err != nil || c >= 0 {
		t.Fatalf("ObjCmp([1,2],[1,3]) = (%d, %v), want (<0, nil)", c, err)
	}
	c, err = h.ObjCmp(a, a)
	if err != nil || c != 0 {
		t.Fatalf("ObjCmp(a,a) = (%d, %v), want (0, nil)", c, err)
	}
}

func TestObjCmpBigIntNumeric(t *testing.T) {
	h := newTestHost(nil)
	small, _ := h.BigIntFromI64(5)
	big, _ := h.BigIntFromI64(500)

	c, err := h.ObjCmp(small, big)
	if err != nil || c >= 0 {
		t.Fatalf("ObjCmp(5,500) = (%d, %v), want (<0, nil)", c, err)
	}
}

func TestObjCmpVecElementwise(t *testing.T) {
	h := newTestHost(nil)
	v1, _ := h.VecNew()
	v1, _ = h.VecPush(v1, FromU32(1))
	v2, _ := h.VecNew()
	v2, _ = h.VecPush(v2, FromU32(2))

	c, err := h.ObjCmp(v1, v2)
	if err != nil || c >= 0 {
		t.Fatalf("ObjCmp([1],[2]) = (%d, %v), want (<0, nil)", c, err)
	}
}

func TestObjCmpDifferentObjectTypesOrderByType(t *testing.T) {
	h := newTestHost(nil)
	bytesObj, _ := h.NewBytesObject([]byte{1})
	vecObj, _ := h.VecNew()

	c, err := h.ObjCmp(bytesObj, vecObj)
	if err != nil {
		t.Fatal(err)
	}
	if c == 0 {
		t.Fatal("objects of different ObjectType must not compare equal")
	}
}

// A guest contract can build any Object RawVal it likes; the handle's
// recorded type in the object table is the only trustworthy source of
// truth. A forged Object claiming a handle is a BigInt when the table
// actually holds a Vec there must be rejected, not dereferenced.
func TestObjCmpRejectsForgedObjectType(t *testing.T) {
	h := newTestHost(nil)
	vecObj, err := h.VecNew()
	if err != nil {
		t.Fatal(err)
	}
	realObj, err := vecObj.AsObject()
	if err != nil {
		t.Fatal(err)
	}
	forged := FromObject(Object{Type: ObjBigInt, Handle: realObj.Handle})

	if _, err := h.ObjCmp(forged, forged); err == nil {
		t.Fatal("expected ObjCmp to reject a forged object type instead of dereferencing the wrong union field")
	}
}
