// Package auth implements the password login and bearer token core used by
// the event desk API.
//
// Login flow:
//   - Authenticator resolves the login identifier against the CredentialStore.
//     Identifiers that are syntactically valid email addresses are looked up
//     by email, everything else by username.
//   - The PasswordHasher verifies the plaintext against the stored hash.
//   - On success the TokenCodec mints a signed, time limited token whose
//     subject is the user's username.
//
// Request flow:
//   - PrincipalResolver decodes a presented token, extracts the subject and
//     resolves it to a live user record by username.
//
// Failures are reported as *AuthFailure and *DecodeError values that can be
// matched with errors.Is. Use PublicError to collapse them into the generic
// responses exposed to clients.
//
// Tokens are stateless: there is no server side record of issued tokens, and
// deleting a user does not revoke tokens already minted for them. Those tokens
// fail at resolution time with ErrPrincipalNotFound.
package auth
