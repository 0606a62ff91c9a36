// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads rage.Client settings from YAML.
//
// A configuration file looks like this:
//
//	base_url: https://api.example.com/v1
//	headers:
//	  Accept: application/json
//	content_type: application/json
//	timeout_ms: 5000
//	auth:
//	  bearer: s3cr3t
//	retry:
//	  attempts: 3
//	  wait_ms: 100
//	  statuses: [429, 503]
//	  transient: true
//
// At most one of the auth methods basic, bearer, api_key and oauth2
// may be given.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gogama/rage"
	"github.com/gogama/rage/auth"
	"github.com/gogama/rage/retry"
	"golang.org/x/oauth2/clientcredentials"
	"gopkg.in/yaml.v3"
)

// File is the parsed form of a configuration file.
type File struct {
	BaseURL       string            `yaml:"base_url"`
	Headers       map[string]string `yaml:"headers"`
	ContentType   string            `yaml:"content_type"`
	TimeoutMillis int               `yaml:"timeout_ms"`
	Auth          *Auth             `yaml:"auth"`
	Retry         *Retry            `yaml:"retry"`
}

// Auth selects the authenticator.
type Auth struct {
	Basic  *Basic  `yaml:"basic"`
	Bearer string  `yaml:"bearer"`
	APIKey *APIKey `yaml:"api_key"`
	OAuth2 *OAuth2 `yaml:"oauth2"`
}

// Basic holds HTTP Basic credentials.
type Basic struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// APIKey is sent either as a header or as a query parameter.
type APIKey struct {
	Header string `yaml:"header"`
	Query  string `yaml:"query"`
	Value  string `yaml:"value"`
}

// OAuth2 configures the client credentials grant. A client using it
// refreshes its token when the server answers 401.
type OAuth2 struct {
	TokenURL     string   `yaml:"token_url"`
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	Scopes       []string `yaml:"scopes"`
}

// Retry configures a retry.Handler.
type Retry struct {
	Attempts   int   `yaml:"attempts"`
	WaitMillis int   `yaml:"wait_ms"`
	Statuses   []int `yaml:"statuses"`
	Transient  bool  `yaml:"transient"`
}

// Load reads and parses the named file.
func Load(name string) (*File, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rage/config: %s: %w", name, err)
	}
	return f, nil
}

// Parse parses and validates YAML configuration. Unknown keys are an
// error.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	if f.TimeoutMillis < 0 {
		return errors.New("timeout_ms must not be negative")
	}
	if a := f.Auth; a != nil {
		n := 0
		if a.Basic != nil {
			n++
		}
		if a.Bearer != "" {
			n++
		}
		if a.APIKey != nil {
			n++
			if (a.APIKey.Header == "") == (a.APIKey.Query == "") {
				return errors.New("api_key needs exactly one of header and query")
			}
		}
		if a.OAuth2 != nil {
			n++
			if a.OAuth2.TokenURL == "" {
				return errors.New("oauth2 needs token_url")
			}
		}
		if n > 1 {
			return errors.New("auth has more than one method")
		}
	}
	if r := f.Retry; r != nil && (r.Attempts < 0 || r.WaitMillis < 0) {
		return errors.New("retry attempts and wait_ms must not be negative")
	}
	return nil
}

// Client returns a client carrying the configured defaults.
func (f *File) Client() *rage.Client {
	c := &rage.Client{
		BaseURL:     f.BaseURL,
		Header:      f.Headers,
		ContentType: rage.CustomContentType(f.ContentType),
		Timeout:     time.Duration(f.TimeoutMillis) * time.Millisecond,
	}
	if f.Retry != nil {
		c.ErrorHandlers = append(c.ErrorHandlers, f.Retry.handler())
	}
	if f.Auth != nil {
		c.Authenticator = f.Auth.authenticator()
		if o, ok := c.Authenticator.(*auth.OAuth2); ok {
			c.ErrorHandlers = append([]rage.ErrorHandler{o.RefreshHandler()}, c.ErrorHandlers...)
		}
	}
	return c
}

func (a *Auth) authenticator() rage.Authenticator {
	switch {
	case a.Basic != nil:
		return auth.Basic(a.Basic.Username, a.Basic.Password)
	case a.Bearer != "":
		return auth.Bearer(a.Bearer)
	case a.APIKey != nil && a.APIKey.Header != "":
		return auth.Header(a.APIKey.Header, a.APIKey.Value)
	case a.APIKey != nil:
		return auth.Query(a.APIKey.Query, a.APIKey.Value)
	case a.OAuth2 != nil:
		return auth.ClientCredentials(&clientcredentials.Config{
			ClientID:     a.OAuth2.ClientID,
			ClientSecret: a.OAuth2.ClientSecret,
			TokenURL:     a.OAuth2.TokenURL,
			Scopes:       a.OAuth2.Scopes,
		})
	default:
		return nil
	}
}

func (r *Retry) handler() *retry.Handler {
	var d retry.DeciderFunc
	if len(r.Statuses) > 0 {
		d = retry.StatusCode(r.Statuses...)
	}
	if r.Transient {
		if d == nil {
			d = retry.TransientErr
		} else {
			d = d.Or(retry.TransientErr)
		}
	}
	if d == nil {
		d = retry.Kind(rage.KindNetworkError)
	}
	wait := time.Duration(r.WaitMillis) * time.Millisecond
	return &retry.Handler{
		Policy: retry.NewPolicy(retry.Times(r.Attempts).And(d), retry.NewFixedWaiter(wait)),
	}
}
