// Package config loads logger and Shed configuration from files and the
// environment.
//
// Parse strictly decodes a YAML document; Load goes through viper, so the
// file may also be JSON or TOML and every scalar setting can be overridden
// with a SHEDLOG_-prefixed environment variable:
//
//	log:
//	  level: 6
//	  filters:
//	    namespace:
//	      include: [http]
//	shed:
//	  cacheLimit: 500
//	  strictExclude: true
package config
