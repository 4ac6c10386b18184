package cors

import (
	"context"
	"net/http"

	"github.com/jub0bs/corsfilter/internal/headers"
)

// Tags describe the CORS aspects of a request. A [Middleware] attaches them
// to the context of every request it lets through to the wrapped handler;
// call [TagsFromContext] to retrieve them.
type Tags struct {
	IsCORSRequest bool
	// Origin is the value of the request's Origin header;
	// it is empty if the request isn't a CORS request.
	Origin string
	// RequestType is Actual or Preflight for CORS requests, and Other
	// otherwise.
	RequestType RequestType
	// RequestHeaders is the value of the request's
	// Access-Control-Request-Headers header;
	// it is only set for preflight requests.
	RequestHeaders string
}

// NewTags computes the tags of a request, given its method and headers.
func NewTags(method string, hdrs http.Header) Tags {
	typ := Classify(method, hdrs)
	if typ == Other {
		return Tags{}
	}
	tags := Tags{
		IsCORSRequest: true,
		RequestType:   typ,
	}
	tags.Origin, _ = headers.First(hdrs, headers.Origin)
	if typ == Preflight {
		tags.RequestHeaders, _ = headers.First(hdrs, headers.ACRH)
	}
	return tags
}

type tagsKey struct{}

// NewContext returns a copy of ctx that carries tags.
func NewContext(ctx context.Context, tags Tags) context.Context {
	return context.WithValue(ctx, tagsKey{}, tags)
}

// TagsFromContext returns the tags carried by ctx, if any.
func TagsFromContext(ctx context.Context) (Tags, bool) {
	tags, ok := ctx.Value(tagsKey{}).(Tags)
	return tags, ok
}
