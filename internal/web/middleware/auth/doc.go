// Package auth provides the authentication middleware for the API.
//
// The middleware identifies the caller and nothing else:
//   - an "Authorization: Bearer <token>" header is verified with the token issuer
//   - otherwise the session cookie is looked up in the session store
//   - the resulting auth.Actor is stored in fiber.Locals for handlers and route guards
//   - requests without valid credentials get 401
//
// What the actor may do on a property is decided later by auth.Service.
//
// Usage:
//
//	api.Use(authmiddleware.New(tokens))
package auth
