// Package requestid provides request ID middleware and context helpers.
//
// Besides log correlation, the request ID serves as the request identity
// key for the tenant registry fallback, which is why the middleware sits
// at the very top of the chain.
package requestid
