// Package web is the HTTP surface of the service: login and signup in
// both realms, stateless signed-cookie sessions, the superadmin tenant
// administration and the per-tenant user administration. Handlers speak
// JSON; the login response carries the landing page for the client to
// redirect to.
package web
