// Package identity is a credential-issuance core: it registers users,
// verifies credentials at login, and issues signed bearer tokens asserting
// identity for subsequent requests.
//
// Credential lifecycle:
//   - Passwords are hashed with bcrypt (per-call random salt, adaptive cost)
//     and are never stored or logged in cleartext. HashPassword and
//     ComparePasswordAndHash cover the full hash/verify contract.
//
// Registration and login:
//   - Auth orchestrates both flows against a narrow Users repository port.
//     Outcomes are explicit tagged results (Success/Failure) so call sites
//     handle every branch; a lost uniqueness race on registration surfaces
//     as the same duplicate-identity failure as the pre-check.
//
// Token issuance:
//   - TokenService signs HS256 JWTs carrying sub, email, iss, aud, iat and
//     exp. The signing secret, issuer, audience, and lifetime come from
//     Config and are validated at construction, never at request time.
//     middleware/jwtware verifies inbound tokens at the transport boundary
//     with the same secret and algorithm contract.
package identity
