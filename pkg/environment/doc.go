// Package environment names the deployment environment and carries it through
// request contexts so handlers and log records can tell production from
// development without extra parameters.
package environment
