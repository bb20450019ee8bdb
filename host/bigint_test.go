package host

import "testing"

func TestBigIntArithmeticRoundTrip(t *testing.T) {
	h := newTestHost(nil)

	a, err := h.BigIntFromI64(40)
	if err != nil {
		t.Fatal(err)
	}
	b, err := h.BigIntFromI64(2)
	if err != nil {
		t.Fatal(err)
	}

	sum, err := h.BigIntAdd(a, b)
	if err != nil {
		t.Fatal(err)
	}
	got, err := h.BigIntToI64(sum)
	if err != nil || got != 42 {
		t.Fatalf("BigIntAdd(40,2) = (%d, %v), want (42, nil)", got, err)
	}

	diff, err := h.BigIntSub(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := h.BigIntToI64(diff); got != 38 {
		t.Fatalf("BigIntSub(40,2) = %d, want 38", got)
	}

	prod, err := h.BigIntMul(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := h.BigIntToI64(prod); got != 80 {
		t.Fatalf("BigIntMul(40,2) = %d, want 80", got)
	}
}

func TestBigIntDivisionByZero(t *testing.T) {
	h := newTestHost(nil)
	a, _ := h.BigIntFromI64(1)
	zero, _ := h.BigIntFromI64(0)

	if _, err := h.BigIntDiv(a, zero); err == nil {
		t.Fatal("expected error dividing by zero")
	}
	if _, err := h.BigIntRem(a, zero); err == nil {
		t.Fatal("expected error for remainder by zero")
	}
}

func TestBigIntCmpAndIsZero(t *testing.T) {
	h := newTestHost(nil)
	a, _ := h.BigIntFromI64(5)
	b, _ := h.BigIntFromI64(10)

	cmp, err := h.BigIntCmp(a, b)
	if err != nil || cmp != -1 {
		t.Fatalf("BigIntCmp(5,10) = (%d, %v), want (-1, nil)", cmp, err)
	}

	zero, _ := h.BigIntFromU64(0)
	isZero, err := h.BigIntIsZero(zero)
	if err != nil || !isZero {
		t.Fatalf("BigIntIsZero(0) = (%v, %v), want (true, nil)", isZero, err)
	}
}

func TestBigIntShiftsAndBitwise(t *testing.T) {
	h := newTestHost(nil)
	one, _ := h.BigIntFromU64(1)

	shl, err := h.BigIntShl(one, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := h.BigIntToU64(shl); got != 16 {
		t.Fatalf("BigIntShl(1,4) = %d, want 16", got)
	}

	shr, err := h.BigIntShr(shl, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := h.BigIntToU64(shr); got != 4 {
		t.Fatalf("BigIntShr(16,2) = %d, want 4", got)
	}
}

func TestBigIntGcdLcmPowSqrt(t *testing.T) {
	h := newTestHost(nil)
	twelve, _ := h.BigIntFromI64(12)
	eighteen, _ := h.BigIntFromI64(18)

	gcd, err := h.BigIntGcd(twelve, eighteen)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := h.BigIntToI64(gcd); got != 6 {
		t.Fatalf("BigIntGcd(12,18) = %d, want 6", got)
	}

	lcm, err := h.BigIntLcm(twelve, eighteen)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := h.BigIntToI64(lcm); got != 36 {
		t.Fatalf("BigIntLcm(12,18) = %d, want 36", got)
	}

	two, _ := h.BigIntFromI64(2)
	ten, _ := h.BigIntFromI64(10)
	pow, err := h.BigIntPow(two, ten)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := h.BigIntToI64(pow); got != 1024 {
		t.Fatalf("BigIntPow(2,10) = %d, want 1024", got)
	}

	hundred, _ := h.BigIntFromI64(100)
	sqrt, err := h.BigIntSqrt(hundred)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := h.BigIntToI64(sqrt); got != 10 {
		t.Fatalf("BigIntSqrt(100) = %d, want 10", got)
	}
}

func TestBigIntPowNegativeExponentErrors(t *testing.T) {
	h := newTestHost(nil)
	two, _ := h.BigIntFromI64(2)
	negOne, _ := h.BigIntFromI64(-1)
	if _, err := h.BigIntPow(two, negOne); err == nil {
		t.Fatal("expected error for a negative exponent")
	}
}

func TestBigIntToBytesAndRadix(t *testing.T) {
	h := newTestHost(nil)
	v, _ := h.BigIntFromU64(255)

	bytesObj, err := h.BigIntToBytesBE(v)
	if err != nil {
		t.Fatal(err)
	}
	n, err := h.BytesLen(bytesObj)
	if err != nil || n != 1 {
		t.Fatalf("BigIntToBytesBE(255) length = (%d, %v), want (1, nil)", n, err)
	}
	b0, err := h.BytesGet(bytesObj, 0)
	if err != nil || b0 != 0xFF {
		t.Fatalf("BigIntToBytesBE(255)[0] = (%x, %v), want (ff, nil)", b0, err)
	}

	radixObj, err := h.BigIntToRadixBE(v, 16)
	if err != nil {
		t.Fatal(err)
	}
	rl, err := h.BytesLen(radixObj)
	if err != nil || rl != 2 {
		t.Fatalf("BigIntToRadixBE(255,16) length = (%d, %v), want (2, nil)", rl, err)
	}
}

func TestBigIntToBytesBERoundTripsViaFromBytesBE(t *testing.T) {
	h := newTestHost(nil)
	v, _ := h.BigIntFromU64(0x1234567890)

	bytesObj, err := h.BigIntToBytesBE(v)
	if err != nil {
		t.Fatal(err)
	}
	got, err := h.BigIntFromBytesBE(bytesObj)
	if err != nil {
		t.Fatal(err)
	}
	cmp, err := h.BigIntCmp(v, got)
	if err != nil {
		t.Fatal(err)
	}
	if cmp != 0 {
		t.Fatalf("BigIntFromBytesBE(BigIntToBytesBE(v)) != v")
	}
}
