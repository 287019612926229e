// Package tenants manages tenant records: superadmin CRUD and the
// self-service registration flow that creates a tenant together with its
// initial admin user. The service satisfies tenant.Directory, so the same
// storage backs both management and request-time resolution.
package tenants
