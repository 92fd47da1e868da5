package common

// TokenCookieName is the cookie carrying the signed authentication token
// between the client and the server.
const TokenCookieName = "token"
