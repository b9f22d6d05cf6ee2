package main

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parsePrice(t *testing.T, args ...string) (priceFlag, error) {
	t.Helper()
	fs := flag.NewFlagSet("rank", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var p priceFlag
	fs.Var(&p, "price", "")
	return p, fs.Parse(args)
}

func TestPriceFlag(t *testing.T) {
	p, err := parsePrice(t)
	require.NoError(t, err)
	assert.Nil(t, p.value, "unset falls back to config")

	p, err = parsePrice(t, "--price", "0")
	require.NoError(t, err)
	require.NotNil(t, p.value)
	assert.Equal(t, 0.0, *p.value)
	assert.Equal(t, "0", p.String())

	p, err = parsePrice(t, "--price", "0.28")
	require.NoError(t, err)
	assert.Equal(t, 0.28, *p.value)

	for _, bad := range []string{"-0.1", "NaN", "+Inf", "cheap"} {
		_, err := parsePrice(t, "--price", bad)
		assert.Error(t, err, bad)
	}
}
