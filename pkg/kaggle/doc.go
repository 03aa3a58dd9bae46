// Package kaggle provides a client for the Kaggle public API.
//
// The client covers the three operations the harvester needs: listing
// competitions, listing the kernels submitted to a competition, and pulling a
// single kernel's metadata and source blob. Responses are decoded into the
// models in models.go; failures surface as *Error values carrying an ErrorType
// so callers can tell a dead kernel (not found, forbidden) from a flaky
// endpoint (network, rate limit, server error).
//
// Authentication uses HTTP basic auth with a Kaggle username and API key, the
// same credentials the official CLI reads from kaggle.json.
package kaggle
