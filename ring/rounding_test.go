package ring

import (
	"math/rand"
	"testing"
)

var gammas = []uint32{(Q - 1) / 88, (Q - 1) / 32}

func TestPower2RoundExhaustive(t *testing.T) {
	for r := uint32(0); r < Q; r++ {
		r1, r0 := Power2Round(r)
		if r0 <= -(1<<12) || r0 > 1<<12 {
			t.Fatalf("Power2Round(%d): r0 = %d out of range", r, r0)
		}
		if int64(r1)<<13+int64(r0) != int64(r) {
			t.Fatalf("Power2Round(%d) = (%d, %d) does not reconstruct", r, r1, r0)
		}
		if r1 > 1023 {
			t.Fatalf("Power2Round(%d): r1 = %d exceeds 10 bits", r, r1)
		}
	}
}

func TestDecomposeExhaustive(t *testing.T) {
	for _, g := range gammas {
		m := (Q - 1) / (2 * g)
		for r := uint32(0); r < Q; r++ {
			r1, r0 := Decompose(r, g)
			if r1 >= m {
				t.Fatalf("gamma2=%d r=%d: r1=%d >= %d", g, r, r1, m)
			}
			if r0 < -int32(g) || r0 > int32(g) {
				t.Fatalf("gamma2=%d r=%d: r0=%d out of range", g, r, r0)
			}
			rec := (int64(r1)*2*int64(g) + int64(r0) + Q) % Q
			if rec != int64(r) {
				t.Fatalf("gamma2=%d r=%d: (%d, %d) reconstructs %d", g, r, r1, r0, rec)
			}
		}
	}
}

func TestDecomposeTopBucket(t *testing.T) {
	for _, g := range gammas {
		r1, r0 := Decompose(Q-1, g)
		if r1 != 0 || r0 != -1 {
			t.Errorf("gamma2=%d: Decompose(q-1) = (%d, %d), want (0, -1)", g, r1, r0)
		}
	}
}

func TestHintRecoversHighBits(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, g := range gammas {
		for i := 0; i < 200000; i++ {
			r := uint32(rng.Int63n(Q))
			z := FromInt32(int32(rng.Int63n(int64(2*g+1))) - int32(g))
			h := MakeHint(z, r, g)
			if got, want := UseHint(h, r, g), HighBits(fieldAdd(r, z), g); got != want {
				t.Fatalf("gamma2=%d r=%d z=%d: UseHint=%d, HighBits(r+z)=%d", g, r, z, got, want)
			}
		}
	}
}

func TestUseHintWraps(t *testing.T) {
	for _, g := range gammas {
		m := (Q - 1) / (2 * g)
		// r with r1 = 0 and r0 <= 0 wraps down to m-1.
		if got := UseHint(1, 0, g); got != m-1 {
			t.Errorf("gamma2=%d: UseHint(1, 0) = %d, want %d", g, got, m-1)
		}
		// r with r1 = m-1 and r0 > 0 wraps up to 0.
		r := (m-1)*2*g + 1
		if got := UseHint(1, r, g); got != 0 {
			t.Errorf("gamma2=%d: UseHint(1, %d) = %d, want 0", g, r, got)
		}
		if got := UseHint(0, r, g); got != m-1 {
			t.Errorf("gamma2=%d: UseHint(0, %d) = %d, want %d", g, r, got, m-1)
		}
	}
}

func TestVecRoundingHelpers(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	w := Vec{randomPoly(rng), randomPoly(rng)}
	g := gammas[1]

	hi := HighBitsVec(w, g)
	lo := LowBitsVec(w, g)
	for i := range w {
		for j := range w[i] {
			rec := fieldAdd(uint32(uint64(hi[i][j])*uint64(2*g)%Q), lo[i][j])
			if rec != w[i][j] {
				t.Fatalf("HighBits/LowBits do not reconstruct at %d,%d", i, j)
			}
		}
	}
	if lo.InfinityNorm() > g {
		t.Error("LowBitsVec exceeds gamma2")
	}

	t1, t0 := Power2RoundVec(w)
	rec := t1.ShiftLeft(13).Add(t0)
	if !rec.Equal(w) {
		t.Error("t1*2^d + t0 != t")
	}

	z := NewVec(2)
	h, weight := MakeHintVec(z, w, g)
	if weight != 0 || h.CountOnes() != 0 {
		t.Error("zero perturbation produced hints")
	}
	if !UseHintVec(h, w, g).Equal(hi) {
		t.Error("UseHintVec with empty hint != HighBitsVec")
	}
}
