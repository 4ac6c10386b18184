package cors_test

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/jub0bs/corsfilter"
)

func ExampleMiddleware_Wrap() {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /hello", handleHello) // note: not configured for CORS

	// build the CORS policy, e.g. from properties read from some file
	policy, err := cors.NewPolicy(map[string]string{
		"allowOrigin":      "https://example.com",
		"supportedMethods": "GET, POST, PUT, DELETE, OPTIONS",
		"supportedHeaders": "Authorization, Content-Type",
	})
	if err != nil {
		log.Fatal(err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	corsMw := cors.NewMiddleware(policy, cors.WithLogger(logger))

	api := http.NewServeMux()
	mux.Handle("/api/", corsMw.Wrap(api)) // note: method-less pattern here
	api.HandleFunc("GET /api/users", handleUsersGet)
	api.HandleFunc("POST /api/users", handleUsersPost)
	api.HandleFunc("PUT /api/users", handleUsersPut)
	api.HandleFunc("DELETE /api/users", handleUsersDelete)

	log.Fatal(http.ListenAndServe(":8080", mux))
}

// Handlers wrapped by a Middleware can inspect the CORS aspects of the
// requests that reach them.
func ExampleTagsFromContext() {
	policy, err := cors.NewPolicy(nil) // default policy
	if err != nil {
		log.Fatal(err)
	}
	inner := func(w http.ResponseWriter, r *http.Request) {
		tags, _ := cors.TagsFromContext(r.Context())
		fmt.Printf("%t %q %q\n", tags.IsCORSRequest, tags.RequestType, tags.Origin)
	}
	handler := cors.NewMiddleware(policy).Wrap(http.HandlerFunc(inner))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://example.com")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	// Output:
	// false "" ""
	// true "actual" "https://example.com"
}

func handleHello(w http.ResponseWriter, _ *http.Request) {
	io.WriteString(w, "Hello, World!")
}

func handleUsersGet(w http.ResponseWriter, _ *http.Request) {
	// omitted
}

func handleUsersPost(w http.ResponseWriter, _ *http.Request) {
	// omitted
}

func handleUsersPut(w http.ResponseWriter, _ *http.Request) {
	// omitted
}

func handleUsersDelete(w http.ResponseWriter, _ *http.Request) {
	// omitted
}
