// Package omdb provides the minimal OMDb API client used to fetch movie
// metadata.
//
// It authenticates requests with the API key query parameter and exposes
// title lookup, IMDb ID lookup, and paged search. OMDb reports misses with a
// 200 response carrying Response "False", which the client turns into
// ErrNotFound or ErrUnauthorized. Requests are paced by a token-bucket
// limiter so bulk use stays inside the free tier.
package omdb
