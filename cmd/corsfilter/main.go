// Corsfilter enforces a CORS policy in front of a demo HTTP endpoint
// and validates CORS policies.
//
// Usage:
//
//	# Serve the demo endpoint behind the policy in cors.yaml
//	corsfilter serve --config cors.yaml
//
//	# Reload the policy whenever cors.yaml changes
//	corsfilter serve --config cors.yaml --watch
//
//	# Validate a policy and print its properties
//	corsfilter check --config cors.yaml --set maxAge=600
//
//	# Ask how the policy would answer a preflight request
//	corsfilter check --config cors.yaml --origin https://example.com \
//	  --preflight --method PUT --request-headers X-Foo
package main

func main() {
	Execute()
}
