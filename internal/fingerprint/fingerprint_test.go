package fingerprint

import "testing"

func TestOf(t *testing.T) {
	a, err := Of([]byte("hello"))
	if err != nil {
		t.Fatalf("Of: %v", err)
	}
	b, _ := Of([]byte("hello"))
	c, _ := Of([]byte("hello!"))
	if a != b {
		t.Fatalf("expected stable hash")
	}
	if a == c {
		t.Fatalf("expected different hash for different content")
	}
	if same, err := Equal([]byte("x"), []byte("x")); err != nil || !same {
		t.Fatalf("Equal: %v %v", same, err)
	}
}
