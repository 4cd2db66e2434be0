// Package services contains the HTTP client for the publishing backend and
// typed wrappers for each endpoint group: content generation, upload,
// scheduling, account connections, and analytics.
//
// All methods take a context, return structs, and surface errors explicitly.
// Transport failures and non-2xx statuses become a *RequestError at the
// client boundary; a 200 carrying success:false becomes a server rejection
// the caller is expected to present to the user.
package services
