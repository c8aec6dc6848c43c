// Package redact scrubs credential material from text before it reaches
// logs or error messages.
//
// Detection uses regex heuristics covering the shapes that show up around
// authenticated review servers: basic-auth userinfo inside URLs, echoed
// Authorization headers, bearer tokens, and password-like assignments in
// response bodies.
package redact
