// Package vectors loads one-time-password conformance vectors from YAML and
// runs them against pkg/totp.
//
// A suite file looks like:
//
//	name: RFC 4226 Appendix D
//	cases:
//	  - name: counter 0
//	    kind: hotp
//	    secret_ascii: "12345678901234567890"
//	    counter: 0
//	    expected: "755224"
//	  - name: T=59 SHA256
//	    kind: totp
//	    secret_ascii: "12345678901234567890123456789012"
//	    algorithm: SHA256
//	    digits: 8
//	    time: 59
//	    expected: "46119246"
//
// Quote expected codes so YAML keeps their leading zeros. Builtin returns the
// RFC 4226 and RFC 6238 suites compiled into the package.
package vectors
