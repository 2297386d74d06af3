// Package auth implements the account workflows: registration with email
// verification, password login, password reset, and Google OAuth login.
//
// The service works against small storage interfaces so the Postgres
// implementation and test fakes stay interchangeable. Authentication
// failures are deliberately generic: a missing user and a wrong password
// both surface ErrInvalidCredentials so the login form cannot be used to
// probe which addresses have accounts. The one sanctioned exception is
// ErrEmailNotConfirmed, which tells a correctly authenticated user to go
// verify their address first.
package auth
