// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gogama/rage"
	"github.com/gogama/rage/config"
	"github.com/gogama/rage/plugins"
	"github.com/gogama/rage/retry"
	"github.com/spf13/cobra"
)

type doOptions struct {
	headers []string
	query   []string
	data    string
	timeout time.Duration
	stub    *string
	config  string
	retries int
	json    string
	verbose bool
	noColor bool
}

func newDoCmd() *cobra.Command {
	opts := &doOptions{}
	var stub string
	cmd := &cobra.Command{
		Use:   "do METHOD URL",
		Short: "Send one request and print the response body",
		Long: `Send one request and print the response body to standard output.

URL may be an absolute URL, or a path relative to the base_url of the
file named by --config. The status line goes to standard error.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("stub") {
				opts.stub = &stub
			}
			return runDo(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, args[0], args[1])
		},
	}
	f := cmd.Flags()
	f.StringArrayVarP(&opts.headers, "header", "H", nil, "request header as 'Name: value'")
	f.StringArrayVarP(&opts.query, "query", "q", nil, "query parameter as 'name=value'")
	f.StringVarP(&opts.data, "data", "d", "", "request body")
	f.DurationVar(&opts.timeout, "timeout", 0, "request timeout (default from config, or 60s)")
	f.StringVar(&stub, "stub", "", "answer with this body instead of sending")
	f.StringVarP(&opts.config, "config", "c", "", "YAML client configuration file")
	f.IntVar(&opts.retries, "retries", 0, "retry transient failures up to this many times")
	f.StringVar(&opts.json, "json", "", "print only the value at this JSON path")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline events to standard error")
	f.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	return cmd
}

func runDo(out, errOut io.Writer, opts *doOptions, method, target string) error {
	if opts.noColor {
		color.NoColor = true
	}

	r, err := buildRequest(errOut, opts, method, target)
	if err != nil {
		return err
	}

	res := r.Execute()
	resp := res.Response
	if res.Err != nil {
		resp = res.Err.Response
	}
	printStatus(errOut, resp, res.Err)
	if resp != nil && len(resp.Data) > 0 {
		if opts.json != "" {
			fmt.Fprintln(out, resp.JSON(opts.json).String())
		} else {
			_, _ = out.Write(resp.Data)
		}
	}
	if res.Err != nil {
		return res.Err
	}
	return nil
}

func buildRequest(errOut io.Writer, opts *doOptions, method, target string) (*rage.Request, error) {
	m := rage.Method(strings.ToUpper(method))
	if !m.Valid() {
		return nil, fmt.Errorf("invalid method %q", method)
	}

	c := &rage.Client{}
	if opts.config != "" {
		f, err := config.Load(opts.config)
		if err != nil {
			return nil, err
		}
		c = f.Client()
	}
	return requestFor(c, errOut, opts, m, target)
}

// requestFor builds the request from c's defaults and the flags. An
// authenticator may return a different request, so the authorized one
// is returned.
func requestFor(c *rage.Client, errOut io.Writer, opts *doOptions, m rage.Method, target string) (*rage.Request, error) {
	r := c.Call(m, "")
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		r.URL(target)
	} else {
		r.Path(target)
	}

	for _, h := range opts.headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			return nil, fmt.Errorf("header %q is not 'Name: value'", h)
		}
		r.Header(strings.TrimSpace(name), strings.TrimSpace(value))
	}
	for _, q := range opts.query {
		name, value, ok := strings.Cut(q, "=")
		if !ok {
			return nil, fmt.Errorf("query parameter %q is not 'name=value'", q)
		}
		r.Query(name, value)
	}
	if opts.data != "" {
		if !m.HasBody() {
			return nil, errors.New(m.String() + " request can't have a body")
		}
		r.WithBody().BodyString(opts.data)
	}
	if opts.timeout > 0 {
		r.WithTimeout(opts.timeout)
	}
	if opts.stub != nil {
		r.StubString(*opts.stub)
	}
	if opts.retries > 0 {
		d := retry.Times(opts.retries).And(retry.StatusCode(429, 502, 503, 504).Or(retry.TransientErr))
		h := &retry.Handler{Policy: retry.NewPolicy(d, retry.DefaultWaiter)}
		r.WithErrorHandlers(append(r.ErrorHandlers(), h)...)
	}
	if opts.verbose {
		l := plugins.NewLogger(log.New(errOut, "", log.Ltime|log.Lmicroseconds), "")
		r.WithPlugins(append(append([]rage.Plugin(nil), r.Plugins()...), l)...)
	}
	if r.Authenticator() != nil {
		r = r.Authorized()
	}
	return r, nil
}

var (
	okColor    = color.New(color.FgGreen, color.Bold)
	stubColor  = color.New(color.FgCyan)
	errorColor = color.New(color.FgRed, color.Bold)
)

func printStatus(w io.Writer, resp *rage.Response, err *rage.Error) {
	switch {
	case err != nil && resp != nil && resp.HTTP != nil:
		errorColor.Fprintf(w, "%s (%s)\n", resp.HTTP.Status, err.Kind)
	case err != nil:
		errorColor.Fprintf(w, "%s\n", err)
	case resp.Stubbed:
		stubColor.Fprintf(w, "stubbed (%d bytes)\n", len(resp.Data))
	default:
		okColor.Fprintf(w, "%s in %s\n", resp.HTTP.Status, resp.Duration().Round(time.Millisecond))
	}
}
