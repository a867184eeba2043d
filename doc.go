// Package connectors provides the shared HTTP plumbing used by the
// per-provider connector packages in this module.
//
// Each provider package (airtable, hubspot, slack, ...) maps a small set of
// typed operations 1:1 onto the provider's REST endpoints. The shared Client
// handles the parts that are the same everywhere: attaching credentials via
// an injected Authorizer, retrying transient status codes with jittered
// exponential backoff, and turning non-2xx responses into *APIError values
// with a best-effort human-readable message.
//
// Credentials are never stored by this module; callers supply an Authorizer
// backed by whatever token machinery they already have.
package connectors
