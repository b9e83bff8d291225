package gid

import "testing"

func TestFromBytesLength(t *testing.T) {
	tests := []struct {
		name    string
		in      []byte
		wantErr bool
	}{
		{"correct length", make([]byte, StorageSize), false},
		{"too short", make([]byte, StorageSize-1), true},
		{"too long", make([]byte, StorageSize+1), true},
		{"empty", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromBytes(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("FromBytes(%d bytes) error = %v, wantErr %v", len(tt.in), err, tt.wantErr)
			}
		})
	}
}

func TestCompareOrdering(t *testing.T) {
	a := Gid{}
	b := Gid{}
	b[StorageSize-1] = 1

	if !Less(a, b) {
		t.Errorf("expected a < b")
	}
	if Less(b, a) {
		t.Errorf("expected b not < a")
	}
	if Compare(a, a) != 0 {
		t.Errorf("expected a == a")
	}
}

func TestEqualAndZero(t *testing.T) {
	var z Gid
	if !z.IsZero() {
		t.Errorf("expected zero value to report IsZero")
	}
	g, err := FromBytes(make([]byte, StorageSize))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(g, z) {
		t.Errorf("expected all-zero bytes to equal Zero")
	}

	nonZero := z
	nonZero[0] = 1
	if nonZero.IsZero() {
		t.Errorf("expected non-zero Gid to report IsZero() == false")
	}
	if Equal(nonZero, z) {
		t.Errorf("expected distinct Gids to not be Equal")
	}
}

func TestStringIsStableHex(t *testing.T) {
	g, _ := FromBytes([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10,
		0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18})
	want := "0102030405060708090a0b0c0d0e0f101112131415161718"
	if got := g.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
