// Package auth provides authentication and the enforcement boundary for property-scoped access.
//
// # Authentication
//
// LocalProvider registers and authenticates accounts stored in the local database with Argon2id
// password hashes. It also resolves emails to account ids for manager provisioning.
// TokenIssuer signs HS256 bearer tokens for API clients; browsers use the session cookie.
//
// # Enforcement Boundary
//
// Service.Check is the only place where "may this actor do X on this property" is decided:
//  1. the property's owner is always allowed
//  2. an actor without a manager row on the property is denied
//  3. a manager is evaluated against the persisted capability set
//
// Client-side gating is a hint only. Data-access code calls Service.Authorize, which turns a
// deny into ErrNotAuthorized, before touching property-scoped rows.
//
// # Middleware
//
// RequireOwner only lets property owners through and stores their property in fiber.Locals.
//
// Example usage:
//
//	authService := auth.NewService(db, managers)
//
//	decision, err := authService.Check(ctx, userID, propertyID, capability.Rents, capability.Manage)
//
//	app.Get("/api/managers", auth.RequireOwner(authService), handler)
package auth
