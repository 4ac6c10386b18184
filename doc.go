/*
Package cors provides a [Cross-Origin Resource Sharing (CORS)] policy engine
and [net/http] middleware that enforces it.

A [Policy] is built once, from a generic map of string-valued properties
(as found in configuration files or servlet-style deployment descriptors),
and is immutable thereafter. For each request, the engine

  - classifies the request as a non-CORS request, an actual CORS request,
    or a [CORS-preflight request] (see [Classify]);
  - checks the request against the policy
    (see [*Policy.HandleActual] and [*Policy.HandlePreflight]);
  - either produces the CORS response headers to add to the response,
    or rejects the request with a [*RequestError] whose [ErrorKind]
    determines the status of the response.

A [Middleware] applies those decisions to the requests that reach it.
Care is required for CORS middleware to work as intended.
Be particularly wary of negative interference from other software components
that play a role in processing requests and composing their responses,
including intermediaries (proxies and gateways), routers, other middleware
in the chain, and the ultimate handler. Follow the rules listed below:

  - Because [CORS-preflight request]s use [OPTIONS] as their method,
    you [SHOULD NOT] prevent OPTIONS requests from reaching your CORS
    middleware.
    Otherwise, preflight requests will not get properly handled
    and browser-based clients will likely experience CORS-related errors.
  - Because [CORS-preflight requests are not authenticated], authentication
    [SHOULD NOT] take place "ahead of" a CORS middleware.
    However, a CORS middleware [MAY] wrap an authentication middleware.
  - Intermediaries [SHOULD NOT] alter or augment the [CORS request headers]
    that are set by browsers.
  - Multiple CORS middleware [MUST NOT] be stacked.

[CORS request headers]: https://developer.mozilla.org/en-US/docs/Web/HTTP/CORS#the_http_request_headers
[CORS-preflight requests are not authenticated]: https://fetch.spec.whatwg.org/#cors-protocol-and-credentials
[CORS-preflight request]: https://developer.mozilla.org/en-US/docs/Glossary/Preflight_request
[Cross-Origin Resource Sharing (CORS)]: https://developer.mozilla.org/en-US/docs/Web/HTTP/CORS
[MAY]: https://www.ietf.org/rfc/rfc2119.txt
[MUST NOT]: https://www.ietf.org/rfc/rfc2119.txt
[OPTIONS]: https://developer.mozilla.org/en-US/docs/Web/HTTP/Methods/OPTIONS
[SHOULD NOT]: https://www.ietf.org/rfc/rfc2119.txt
*/
package cors
