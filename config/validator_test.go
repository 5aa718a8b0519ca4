package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		file  File
		paths []string
	}{
		{
			name: "Empty file is valid",
			file: File{},
		},
		{
			name: "Complete file",
			file: File{
				Provider:  Provider{APIKey: "k", APISecret: "s", Charset: "UTF-8"},
				Transport: Transport{Kind: TransportFastHTTP, Timeout: "10s"},
			},
		},
		{
			name:  "Secret without key",
			file:  File{Provider: Provider{APISecret: "s"}},
			paths: []string{"provider.apiKey"},
		},
		{
			name:  "Unknown charset",
			file:  File{Provider: Provider{Charset: "EBCDIC-what"}},
			paths: []string{"provider.charset"},
		},
		{
			name:  "Unknown transport and bad timeout",
			file:  File{Transport: Transport{Kind: "grpc", Timeout: "eventually"}},
			paths: []string{"transport.kind", "transport.timeout"},
		},
		{
			name:  "Negative timeout",
			file:  File{Transport: Transport{Timeout: "-1s"}},
			paths: []string{"transport.timeout"},
		},
		{
			name:  "Redirects with fasthttp",
			file:  File{Transport: Transport{Kind: TransportFastHTTP, FollowRedirects: true}},
			paths: []string{"transport.followRedirects"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(&tt.file)

			var paths []string
			for _, err := range errs {
				var ve ValidationError
				if assert.ErrorAs(t, err, &ve) {
					paths = append(paths, ve.Path)
				}
			}
			assert.Equal(t, tt.paths, paths)
		})
	}
}
