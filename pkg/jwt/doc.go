// Package jwt implements RS256 JSON Web Tokens for the Frame Your
// Voice API.
//
// Tokens are signed with an RSA private key and validated against the
// matching public key, so read-only deployments can verify tokens
// without holding signing material. Claims carry the user ID and role;
// the moderation surface gates on Claims.IsAdmin.
package jwt
