package mem

import "testing"

func TestClearBytes(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5}
	ClearBytes(b)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not cleared: got %d", i, v)
		}
	}
}

func TestClearBytesEmpty(t *testing.T) {
	ClearBytes(nil)
	ClearBytes([]byte{})
}

func TestClearAll(t *testing.T) {
	a := []byte{9, 9}
	b := []byte{8, 8, 8}
	ClearAll(a, b)
	for _, v := range a {
		if v != 0 {
			t.Fatal("a not cleared")
		}
	}
	for _, v := range b {
		if v != 0 {
			t.Fatal("b not cleared")
		}
	}
}
