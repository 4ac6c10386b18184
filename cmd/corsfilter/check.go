package main

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"

	"github.com/jub0bs/corsfilter"
	"github.com/jub0bs/corsfilter/cfgerrors"
	"github.com/spf13/cobra"
)

var checkFlags struct {
	origin         string
	method         string
	requestHeaders string
	preflight      bool
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a CORS policy",
	Long: `Validate a CORS policy and print its effective properties.

If the policy is invalid, every problem found is reported and the command
fails. If --origin is specified, the command also reports how the policy
would answer a request from that origin.

Examples:
  # Validate the policy in cors.yaml
  corsfilter check --config cors.yaml

  # Validate a policy given entirely on the command line
  corsfilter check --set allowOrigin=https://example.com --set supportsCredentials=true

  # Ask how the policy would answer a preflight request
  corsfilter check -c cors.yaml --origin https://example.com --preflight --method PUT`,
	RunE: checkPolicy,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkFlags.origin, "origin", "", "simulate a request from this origin")
	checkCmd.Flags().StringVar(&checkFlags.method, "method", http.MethodGet, "method of the simulated request (or requested method, with --preflight)")
	checkCmd.Flags().StringVar(&checkFlags.requestHeaders, "request-headers", "", "headers requested by the simulated preflight request")
	checkCmd.Flags().BoolVar(&checkFlags.preflight, "preflight", false, "simulate a preflight request")
}

func checkPolicy(cmd *cobra.Command, args []string) error {
	props, err := loadProperties()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	p, err := cors.NewPolicy(props)
	if err != nil {
		var n int
		for err := range cfgerrors.All(err) {
			fmt.Fprintf(cmd.ErrOrStderr(), "✗ %v\n", err)
			n++
		}
		return fmt.Errorf("invalid CORS policy (%d problems)", n)
	}
	fmt.Fprintln(out, "✓ CORS policy valid")
	if verbose || checkFlags.origin == "" {
		printProperties(out, p)
	}
	if checkFlags.origin == "" {
		return nil
	}
	fmt.Fprintln(out)
	return simulate(out, p)
}

func printProperties(w io.Writer, p *cors.Policy) {
	props := p.Properties()
	for _, name := range slices.Sorted(maps.Keys(props)) {
		fmt.Fprintf(w, "  %s: %s\n", name, props[name])
	}
}

// simulate reports how p answers the request described by checkFlags.
func simulate(w io.Writer, p *cors.Policy) error {
	method := checkFlags.method
	hdrs := http.Header{}
	hdrs.Set("Origin", checkFlags.origin)
	if checkFlags.preflight {
		hdrs.Set("Access-Control-Request-Method", method)
		if checkFlags.requestHeaders != "" {
			hdrs.Set("Access-Control-Request-Headers", checkFlags.requestHeaders)
		}
		method = http.MethodOptions
	}
	typ := cors.Classify(method, hdrs)
	var (
		resHdrs http.Header
		err     error
	)
	switch typ {
	case cors.Preflight:
		resHdrs, err = p.HandlePreflight(method, hdrs)
	default:
		resHdrs, err = p.HandleActual(method, hdrs)
	}
	fmt.Fprintf(w, "%s request from %s:\n", typ, checkFlags.origin)
	var rerr *cors.RequestError
	if errors.As(err, &rerr) {
		fmt.Fprintf(w, "  denied (%d %s): %s\n", rerr.Status(), rerr.Kind, rerr.Error())
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "  allowed; response headers:")
	for _, name := range slices.Sorted(maps.Keys(resHdrs)) {
		for _, v := range resHdrs[name] {
			fmt.Fprintf(w, "  %s: %s\n", name, v)
		}
	}
	return nil
}
