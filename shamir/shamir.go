// Package shamir implements GF(256) Shamir secret sharing for
// byte-string secrets. Shares are self-contained: each is the secret's
// length in payload bytes plus one trailing index byte, so Combine
// needs nothing beyond the shares themselves.
package shamir

import (
	"crypto/rand"
	"errors"
	"io"
)

// ErrInvalidParameters is returned by Split when the requested
// threshold/share-count/secret violate the scheme's constraints.
var ErrInvalidParameters = errors.New("shamir: invalid parameters")

// Split divides secret into n shares, any m of which reconstruct it.
// Two calls over the same secret produce different share sets: the
// polynomial coefficients (beyond the constant term, which is the
// secret byte itself) are freshly random every call.
func Split(secret []byte, n, m int) ([][]byte, error) {
	if m < 1 || m > n || n < 1 || n > 255 || len(secret) == 0 {
		return nil, ErrInvalidParameters
	}

	shares := make([][]byte, n)
	for i := range shares {
		buf := make([]byte, len(secret)+1)
		buf[len(secret)] = byte(i + 1) // x-coordinates are 1..n, never 0
		shares[i] = buf
	}

	coeffs := make([]byte, m)
	for byteIdx, secretByte := range secret {
		coeffs[0] = secretByte
		if _, err := io.ReadFull(rand.Reader, coeffs[1:]); err != nil {
			return nil, err
		}

		for shareIdx := range shares {
			x := shares[shareIdx][len(secret)]
			shares[shareIdx][byteIdx] = evalPolynomial(coeffs, x)
		}
	}

	return shares, nil
}

// evalPolynomial evaluates the polynomial with the given coefficients
// (coeffs[0] is the constant term) at point x, using Horner's method
// in GF(256).
func evalPolynomial(coeffs []byte, x byte) byte {
	result := coeffs[len(coeffs)-1]
	for i := len(coeffs) - 2; i >= 0; i-- {
		result = gfAdd(gfMul(result, x), coeffs[i])
	}
	return result
}

// Combine reconstructs the secret from shares. Any m correctly-formed
// shares from the same Split call reconstruct the original secret;
// fewer than m shares are not detected as insufficient here — per
// spec, they simply produce a value that is (with overwhelming
// probability) not the original secret, and callers are expected to
// treat the resulting downstream AEAD failure as authoritative.
func Combine(shares [][]byte) ([]byte, error) {
	if len(shares) == 0 {
		return nil, ErrInvalidParameters
	}

	secretLen := len(shares[0]) - 1
	if secretLen < 1 {
		return nil, ErrInvalidParameters
	}

	xs := make([]byte, len(shares))
	seen := make(map[byte]bool, len(shares))
	for i, s := range shares {
		if len(s) != secretLen+1 {
			return nil, ErrInvalidParameters
		}
		x := s[secretLen]
		if x == 0 || seen[x] {
			return nil, ErrInvalidParameters
		}
		seen[x] = true
		xs[i] = x
	}

	secret := make([]byte, secretLen)
	for byteIdx := 0; byteIdx < secretLen; byteIdx++ {
		var y byte
		for i := range shares {
			y = gfAdd(y, gfMul(shares[i][byteIdx], lagrangeBasis(xs, i)))
		}
		secret[byteIdx] = y
	}

	return secret, nil
}

// lagrangeBasis evaluates the i-th Lagrange basis polynomial at x=0,
// i.e. the weight by which shares[i]'s y-value contributes to f(0).
func lagrangeBasis(xs []byte, i int) byte {
	num := byte(1)
	den := byte(1)
	for j := range xs {
		if j == i {
			continue
		}
		// (0 - xs[j]) == xs[j] in GF(256) since subtraction is XOR.
		num = gfMul(num, xs[j])
		den = gfMul(den, gfAdd(xs[i], xs[j]))
	}
	return gfDiv(num, den)
}
