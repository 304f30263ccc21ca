// Package registry provides the central catalog of node types.
//
// The Registry stores the mapping between the type identifiers used in
// graph documents (e.g., "oscillator") and the immutable NodeSpec templates
// that describe each type's ports, parameters, and code templates.
//
// During application startup the registry is populated from the builtin
// catalog packages under nodes/ (and optionally from HCL spec manifests),
// and every spec is validated at registration so that template or port
// declaration mistakes surface immediately rather than mid-compile. After
// startup the registry is read-only; the compiler consults it concurrently
// without locking.
package registry
