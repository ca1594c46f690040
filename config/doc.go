// Package config handles application configuration loading and validation.
package config
