// Package config loads scribe configuration files.
//
// A file describes one OAuth provider and the transport used to reach it:
//
//	provider:
//	  apiKey: dpf43f3p2l4k3l03
//	  apiSecret: kd94hf93k423kf44
//	  charset: UTF-8
//	transport:
//	  kind: nethttp
//	  timeout: 10s
//
// YAML and JSON are both accepted; the format is picked by file extension.
//
// Basic Usage:
//
//	file, err := config.LoadConfig("scribe.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if errs := config.Validate(file); len(errs) > 0 {
//	    for _, err := range errs {
//	        log.Printf("Validation error: %s", err)
//	    }
//	}
//
//	conn, err := file.Connection(slog.Default())
//	req, err := oauth.NewRequest(oauth.GET, url, file.OAuthConfig(), oauth.WithConnection(conn))
package config
