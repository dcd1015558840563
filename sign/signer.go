package sign

import (
	mldsa "github.com/BackendStack21/ml-dsa-go"
	"github.com/BackendStack21/ml-dsa-go/encoding"
	"github.com/BackendStack21/ml-dsa-go/ring"
	"github.com/BackendStack21/ml-dsa-go/sample"
	"github.com/BackendStack21/ml-dsa-go/utils"
)

// MaxSignAttempts bounds the rejection loop. FIPS 204 Appendix C requires
// at least 814 attempts before giving up; the expected count is below 5.
const MaxSignAttempts = 814

type signState int

const (
	stateSampling signState = iota
	stateCheckZ
	stateCheckR0
	stateCheckHint
	stateAccept
	stateRetryExhausted
)

func (s signState) String() string {
	switch s {
	case stateSampling:
		return "sampling"
	case stateCheckZ:
		return "check-z"
	case stateCheckR0:
		return "check-r0"
	case stateCheckHint:
		return "check-hint"
	case stateAccept:
		return "accept"
	case stateRetryExhausted:
		return "retry-exhausted"
	default:
		return "unknown"
	}
}

// signer carries one execution of ML-DSA.Sign_internal. Each attempt moves
// through sampling and three rejection checks; any failed check returns the
// machine to sampling with a fresh mask.
type signer struct {
	sk          *SecretKey
	mu          [mldsa.MuSize]byte
	rhoPP       [mldsa.RhoPrimeSize]byte
	kappa       int
	attempts    int
	maxAttempts int

	y      ring.Vec
	w      ring.Vec
	w1     ring.Vec
	cTilde []byte
	cHat   ring.NTTPoly
	z      ring.Vec
	r      ring.Vec // w - c*s2
	r0     ring.Vec
	ct0    ring.Vec
	h      ring.Vec
	weight int
}

func newSigner(sk *SecretKey, mu [mldsa.MuSize]byte, rnd []byte) *signer {
	s := &signer{sk: sk, mu: mu, maxAttempts: MaxSignAttempts}
	// rho'' = H(K || rnd || mu, 64)
	utils.Shake256Into(s.rhoPP[:], sk.key[:], rnd, mu[:])
	return s
}

// run drives the state machine to acceptance or exhaustion.
func (s *signer) run() ([]byte, error) {
	state := stateSampling
	for {
		switch state {
		case stateSampling:
			if s.attempts >= s.maxAttempts {
				state = stateRetryExhausted
				continue
			}
			s.sample()
			state = stateCheckZ
		case stateCheckZ:
			state = next(s.checkZ(), stateCheckR0)
		case stateCheckR0:
			state = next(s.checkR0(), stateCheckHint)
		case stateCheckHint:
			state = next(s.checkHint(), stateAccept)
		case stateAccept:
			return encoding.EncodeSignature(s.sk.params, &encoding.Signature{
				CTilde: s.cTilde,
				Z:      s.z,
				H:      s.h,
			})
		case stateRetryExhausted:
			return nil, ErrRetryExhausted
		}
	}
}

func next(ok bool, onPass signState) signState {
	if ok {
		return onPass
	}
	return stateSampling
}

// sample draws y for the current kappa and derives the commitment and challenge.
func (s *signer) sample() {
	p := s.sk.params
	s.wipeAttempt()

	s.y = sample.ExpandMask(s.rhoPP[:], s.kappa, p.L, p.Gamma1Bits)
	s.kappa += p.L
	s.attempts++

	s.w = s.sk.a.MulVec(s.y.NTT()).InvNTT()
	s.w1 = ring.HighBitsVec(s.w, uint32(p.Gamma2))
	s.cTilde = utils.Shake256Concat(p.CTildeSize(), s.mu[:], encoding.EncodeW1(p, s.w1))
	c := sample.SampleInBall(s.cTilde, p.Tau)
	s.cHat = ring.NTT(&c)
}

// checkZ computes z = y + c*s1.
func (s *signer) checkZ() bool {
	cs1 := s.sk.s1Hat.ScalarMul(&s.cHat).InvNTT()
	s.z = s.y.Add(cs1)
	cs1.Zeroize()
	return s.zOK()
}

func (s *signer) zOK() bool {
	p := s.sk.params
	return s.z.InfinityNorm() < uint32(p.Gamma1()-p.Beta)
}

// checkR0 computes r0 = LowBits(w - c*s2).
func (s *signer) checkR0() bool {
	cs2 := s.sk.s2Hat.ScalarMul(&s.cHat).InvNTT()
	s.r = s.w.Sub(cs2)
	cs2.Zeroize()
	s.r0 = ring.LowBitsVec(s.r, uint32(s.sk.params.Gamma2))
	return s.r0OK()
}

func (s *signer) r0OK() bool {
	p := s.sk.params
	return s.r0.InfinityNorm() < uint32(p.Gamma2-p.Beta)
}

// checkHint computes c*t0 and the hint h = MakeHint(-c*t0, w - c*s2 + c*t0).
func (s *signer) checkHint() bool {
	p := s.sk.params
	s.ct0 = s.sk.t0Hat.ScalarMul(&s.cHat).InvNTT()
	if !s.ct0OK() {
		return false
	}
	s.h, s.weight = ring.MakeHintVec(s.ct0.Neg(), s.r.Add(s.ct0), uint32(p.Gamma2))
	return s.weight <= p.Omega
}

func (s *signer) ct0OK() bool {
	return s.ct0.InfinityNorm() < uint32(s.sk.params.Gamma2)
}

// wipeAttempt clears the secret-dependent values of the previous attempt.
func (s *signer) wipeAttempt() {
	for _, v := range []ring.Vec{s.y, s.w, s.z, s.r, s.r0, s.ct0} {
		v.Zeroize()
	}
}

// release scrubs all secret-dependent state.
func (s *signer) release() {
	s.wipeAttempt()
	utils.Zeroize(s.rhoPP[:])
	s.cHat.Zeroize()
}
