package cacheengine

import (
	"bytes"
	"errors"
	"io"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// LoadEnv reads the plain-data Options fields from environment variables,
// each name prefixed with prefix (e.g. "CACHE_" => CACHE_LOCATION,
// CACHE_PARTITION, CACHE_TIMEOUT=2s, CACHE_CODEC=msgpack).
//
// CACHE_LOCATION uses the "host:port[=weight],..." form.
func LoadEnv(prefix string) (Options, error) {
	var o Options
	if err := env.ParseWithOptions(&o, env.Options{Prefix: prefix}); err != nil {
		return Options{}, err
	}
	return o, nil
}

// LoadYAML reads Options from a YAML document. Unknown keys are rejected.
//
//	partition: app
//	location:            # or "h:11211", or ["h1:11211", "h2:11211"]
//	  h1:11211: 1
//	  h2:11211: 2
//	timeout: 500ms
func LoadYAML(b []byte) (Options, error) {
	var o Options
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, err
	}
	return o, nil
}
