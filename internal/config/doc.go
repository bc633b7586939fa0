// Package config provides configuration loading for reactorctl.
//
// Configuration lives in reactorctl.json at the project root:
//
//	{
//	  "host": "localhost",
//	  "port": 4173,
//	  "logLevel": "info",
//	  "metricsPort": 4174
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("listening on", cfg.Address())
package config
